package domain

// Checklist item statuses as exchanged with the host platform.
const (
	StatusNeedsAction = "needs_action"
	StatusCompleted   = "completed"
)

// Extra tag keys mirrored onto checklist items for programmatic access.
const (
	TagProductID       = "product_id"
	TagQuantity        = "quantity"
	TagUnit            = "unit"
	TagWeight          = "weight"
	TagMeasurementType = "measurement_type"
)

// ChecklistItem is the local, human-editable representation of a cart line.
// UID matches the backing CartItem's ItemID once synced. Description is free
// text and may encode a quantity, a unit word and a product_id tag; Extra holds
// the same data as structured tags.
type ChecklistItem struct {
	UID         string            `json:"uid,omitempty"`
	Summary     string            `json:"summary"`
	Description string            `json:"description,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
	Status      string            `json:"status"`
}
