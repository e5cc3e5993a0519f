package store

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cartlist/backend/internal/domain"
	"github.com/cartlist/backend/internal/units"
)

// Store payloads are inconsistently shaped across endpoints and over time:
// the same logical field appears under several alternate keys, envelopes vary
// and placeholder rows show up without identity. Every extraction here is
// defensive; records lacking a true identity key are dropped, everything else
// degrades to a default.

// Matches "<number> <unit word>" inside free text, used to pull a unit out of
// measurement descriptions and product names.
var unitInTextPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*([a-zA-Záéíóúñ]+)`)

const defaultProductName = "Producto"

// normalizeCartItems converts a decoded cart response into canonical cart
// items. The payload may be a mapping carrying an "orderItem"/"orderItems"
// list, a bare list, or empty.
func normalizeCartItems(data any) []domain.CartItem {
	var rawItems []any
	switch payload := data.(type) {
	case map[string]any:
		rawItems = asList(firstPresent(payload, "orderItem", "orderItems"))
	case []any:
		rawItems = payload
	default:
		return nil
	}

	items := make([]domain.CartItem, 0, len(rawItems))
	for _, entry := range rawItems {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		itemID := firstText(raw, "orderItemId", "id", "itemId")
		if itemID == "" {
			// Placeholder/incomplete rows without identity are dropped.
			continue
		}

		unit := extractCartUnit(raw)
		measurementType := units.CategoryOf(unit)
		if measurementType == "" {
			measurementType = units.CategoryPiece
		}

		quantity := 1.0
		if qty := coerceFloat(raw["quantity"]); qty != nil {
			quantity = *qty
		}

		items = append(items, domain.CartItem{
			ItemID:          itemID,
			ProductID:       firstText(raw, "productId", "catEntryId", "catalogEntryId", "productPartNumber"),
			Name:            firstNonEmptyString(raw, "productName", "name", "description"),
			Quantity:        quantity,
			Unit:            unit,
			MeasurementType: measurementType,
			Price:           coerceFloat(firstPresent(raw, "price", "offerPrice", "unitPrice", "orderItemAmount")),
			RawPayload:      raw,
		})
	}
	return items
}

// normalizeSearchResults converts a decoded search response into product
// summaries. The envelope differs per endpoint family: a catalogEntryView
// list, a nested product/docs collection, a generic items list, or a bare
// list.
func normalizeSearchResults(data any) []domain.ProductSummary {
	var rawItems []any
	switch payload := data.(type) {
	case map[string]any:
		if entries, ok := payload["catalogEntryView"]; ok {
			rawItems = asList(entries)
		} else if product, ok := payload["product"].(map[string]any); ok {
			rawItems = asList(product["docs"])
		} else {
			rawItems = asList(payload["items"])
		}
	case []any:
		rawItems = payload
	default:
		return nil
	}

	results := make([]domain.ProductSummary, 0, len(rawItems))
	for _, entry := range rawItems {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		productID := firstText(raw, "partNumber", "uniqueID", "productId", "id")
		if productID == "" {
			continue
		}

		sku := firstText(raw, "sku", "partNumber")
		if sku == "" {
			sku = productID
		}

		name := firstNonEmptyString(raw, "name", "productName", "shortDescription", "description")
		unit := extractSearchUnit(raw)
		measurementType := ""
		if unit != "" {
			measurementType = units.CategoryOf(unit)
		} else {
			measurementType = inferMeasurementTypeFromName(name)
		}

		brand, _ := raw["brand"].(string)

		results = append(results, domain.ProductSummary{
			ProductID:       productID,
			SKU:             sku,
			Name:            name,
			Price:           coerceFloat(firstPresent(raw, "price", "offerPrice", "bestPrice", "unitPrice")),
			Unit:            unit,
			MeasurementType: measurementType,
			Category:        extractCategory(raw),
			Brand:           brand,
		})
	}
	return results
}

// extractCartUnit resolves a cart record's unit. Direct unit keys get the
// permissive uppercase fallback; measurement keys resolve through known
// aliases only. Records without any usable unit default to the piece unit.
func extractCartUnit(raw map[string]any) string {
	for _, key := range []string{"uom", "unitOfMeasure", "unit", "measure"} {
		if value, ok := raw[key].(string); ok && value != "" {
			return units.ResolveAlias(value)
		}
	}
	for _, key := range []string{"measurementUnit", "measurement"} {
		if value, ok := raw[key].(string); ok && value != "" {
			if canonical, ok := units.LookupAlias(value); ok {
				return canonical
			}
		}
	}
	return units.Piece
}

// extractSearchUnit resolves a search record's unit: direct unit keys first,
// then free-text unit-description fields, then a scan of measurement text for
// a "<number> <unit>" token. No match leaves the unit unset.
func extractSearchUnit(raw map[string]any) string {
	for _, key := range []string{"uom", "unitOfMeasure", "unit", "measure"} {
		if value, ok := raw[key].(string); ok && value != "" {
			return units.ResolveAlias(value)
		}
	}
	for _, key := range []string{"unitOfMeasureText", "measurement"} {
		if value, ok := raw[key].(string); ok && value != "" {
			if canonical, ok := units.LookupAlias(value); ok {
				return canonical
			}
		}
	}
	for _, key := range []string{"measurement", "measure"} {
		if value, ok := raw[key].(string); ok && value != "" {
			if m := unitInTextPattern.FindStringSubmatch(value); m != nil {
				return units.ResolveAlias(m[2])
			}
		}
	}
	return ""
}

// inferMeasurementTypeFromName scans a product name for a quantity token and
// derives the measurement category from its unit word, when recognized.
func inferMeasurementTypeFromName(name string) string {
	m := unitInTextPattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	canonical, ok := units.LookupAlias(m[2])
	if !ok {
		return ""
	}
	return units.CategoryOf(canonical)
}

// extractCategory returns the last element of a category path list when it is
// textual.
func extractCategory(raw map[string]any) string {
	categories := firstPresent(raw, "category", "categoryPath")
	list, ok := categories.([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	last, _ := list[len(list)-1].(string)
	return last
}

// firstPresent returns the value of the first key whose value is usable:
// nil values, empty strings and zero numbers fall through to the next key.
func firstPresent(raw map[string]any, keys ...string) any {
	for _, key := range keys {
		switch value := raw[key].(type) {
		case nil:
			continue
		case string:
			if value != "" {
				return value
			}
		case float64:
			if value != 0 {
				return value
			}
		default:
			return value
		}
	}
	return nil
}

// firstText returns the first present key's value coerced to text. Numeric
// identifiers are formatted without a decimal part.
func firstText(raw map[string]any, keys ...string) string {
	switch value := firstPresent(raw, keys...).(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return ""
	}
}

// firstNonEmptyString returns the first key holding a non-empty string, or
// the generic product placeholder.
func firstNonEmptyString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := raw[key].(string); ok && value != "" {
			return value
		}
	}
	return defaultProductName
}

// coerceFloat permissively coerces a value to a float, treating a comma as a
// decimal point in strings. Unparseable or absent values yield nil.
func coerceFloat(value any) *float64 {
	switch v := value.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case string:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

// asList coerces a decoded JSON value to a list, wrapping a single mapping.
func asList(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case map[string]any:
		return []any{v}
	default:
		return nil
	}
}
