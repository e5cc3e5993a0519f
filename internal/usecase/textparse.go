package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cartlist/backend/internal/domain"
	"github.com/cartlist/backend/internal/units"
)

// Compiled regex patterns for description parsing
var (
	// Matches the first "<number> <unit word>" occurrence, e.g. "2.5 kg",
	// "3 piezas", "1,5 litros". Unit words may carry Spanish accented vowels.
	quantityUnitPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*([a-zA-Záéíóúñ]+)`)

	// Matches an explicit product tag, e.g. "product_id:998877" or
	// "product_id = ABC123".
	productIDPattern = regexp.MustCompile(`(?i)product_id\s*[:=]\s*(\w+)`)
)

// ParseText extracts a quantity, unit, measurement type and product id from a
// free-text item description. Each extraction takes the first match in
// left-to-right order; fields without a match are left unset. The two scans
// are independent: a description may carry both, either, or neither.
func ParseText(text string) domain.ParsedText {
	var parsed domain.ParsedText

	if m := quantityUnitPattern.FindStringSubmatch(text); m != nil {
		if qty, ok := parseQuantity(m[1]); ok {
			parsed.Quantity = &qty
		}
		parsed.Unit = units.ResolveAlias(m[2])
		parsed.MeasurementType = units.CategoryOf(parsed.Unit)
	}

	if m := productIDPattern.FindStringSubmatch(text); m != nil {
		parsed.ProductID = m[1]
	}

	return parsed
}

// FormatDescription renders a quantity and unit back into the description
// text shown on a checklist item. Parsing the result with ParseText recovers
// the same quantity and unit.
func FormatDescription(quantity float64, unit string) string {
	qty := strconv.FormatFloat(quantity, 'f', -1, 64)
	if unit == "" {
		return qty
	}
	return qty + " " + unit
}

// parseQuantity parses a numeric token, treating a comma as a decimal point.
func parseQuantity(token string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
