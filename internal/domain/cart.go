package domain

// CartItem represents a confirmed line entry in the remote shopping cart.
// Instances are value objects produced by normalization; updates replace the
// whole item rather than mutating it.
type CartItem struct {
	ItemID          string         `json:"itemId"`
	ProductID       string         `json:"productId"`
	Name            string         `json:"name"`
	Quantity        float64        `json:"quantity"`
	Unit            string         `json:"unit"`
	MeasurementType string         `json:"measurementType"`
	Price           *float64       `json:"price,omitempty"`
	RawPayload      map[string]any `json:"-"` // retained for diagnostics
}

// ProductSummary is a single hit from the remote product search.
type ProductSummary struct {
	ProductID       string   `json:"product_id"`
	SKU             string   `json:"sku"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	Unit            string   `json:"unit,omitempty"`
	MeasurementType string   `json:"measurement_type,omitempty"`
	Category        string   `json:"category,omitempty"`
	Brand           string   `json:"brand,omitempty"`
}

// ParsedText is the result of parsing a free-text item description.
// Nil fields mean the corresponding token was not found in the text.
type ParsedText struct {
	Quantity        *float64
	Unit            string
	MeasurementType string
	ProductID       string
}

// CartUpdate describes a partial update to a cart line item.
// Nil/empty fields are left unchanged on the remote side.
type CartUpdate struct {
	Quantity        *float64
	Unit            string
	Weight          *float64
	MeasurementType string
}

// IsEmpty reports whether the update carries no changes at all.
func (u CartUpdate) IsEmpty() bool {
	return u.Quantity == nil && u.Unit == "" && u.Weight == nil && u.MeasurementType == ""
}
