// Package units maintains the canonical unit codes used by the store and the
// alias table that maps free-form spellings onto them.
package units

import (
	"sort"
	"strings"
)

// Canonical unit codes as used by the store API.
const (
	Piece      = "EA"
	Kilogram   = "KGM"
	Gram       = "GRM"
	Pound      = "LBR"
	Liter      = "LTR"
	Milliliter = "MLT"
)

// Measurement categories derived from a canonical unit.
const (
	CategoryPiece  = "piece"
	CategoryWeight = "weight"
	CategoryVolume = "volume"
)

// aliases maps lowercase free-form spellings (Spanish and English variants,
// abbreviations, plurals) to canonical unit codes.
var aliases = map[string]string{
	"pieza":    Piece,
	"piezas":   Piece,
	"pz":       Piece,
	"pieza(s)": Piece,
	"piece":    Piece,
	"pieces":   Piece,
	"ea":       Piece,
	"unit":     Piece,
	"units":    Piece,
	"unidad":   Piece,
	"unidades": Piece,

	"kg":         Kilogram,
	"kilogram":   Kilogram,
	"kilograms":  Kilogram,
	"kilogramo":  Kilogram,
	"kilogramos": Kilogram,
	"kilo":       Kilogram,
	"kilos":      Kilogram,

	"g":      Gram,
	"gr":     Gram,
	"gram":   Gram,
	"grams":  Gram,
	"gramo":  Gram,
	"gramos": Gram,

	"lb":     Pound,
	"lbs":    Pound,
	"pound":  Pound,
	"pounds": Pound,

	"l":      Liter,
	"lt":     Liter,
	"liter":  Liter,
	"liters": Liter,
	"litro":  Liter,
	"litros": Liter,

	"ml":         Milliliter,
	"mililitro":  Milliliter,
	"mililitros": Milliliter,
}

var categories = map[string]string{
	Piece:      CategoryPiece,
	Kilogram:   CategoryWeight,
	Gram:       CategoryWeight,
	Pound:      CategoryWeight,
	Liter:      CategoryVolume,
	Milliliter: CategoryVolume,
}

// ResolveAlias maps a free-form unit spelling to its canonical code. Unknown
// spellings are returned uppercased and treated as already-canonical codes, so
// new codes introduced by the store pass through unchanged.
func ResolveAlias(text string) string {
	if canonical, ok := aliases[strings.ToLower(text)]; ok {
		return canonical
	}
	return strings.ToUpper(text)
}

// LookupAlias maps a spelling to its canonical code without the uppercase
// fallback, reporting whether the spelling is a known alias.
func LookupAlias(text string) (string, bool) {
	canonical, ok := aliases[strings.ToLower(text)]
	return canonical, ok
}

// CategoryOf returns the measurement category for a canonical unit code, or
// the empty string when the code is not one of the known six.
func CategoryOf(unit string) string {
	return categories[unit]
}

// DefaultUnitFor returns the canonical unit used when a caller supplies only a
// measurement category, or the empty string for an unknown category.
func DefaultUnitFor(category string) string {
	switch strings.ToLower(category) {
	case CategoryPiece:
		return Piece
	case CategoryWeight:
		return Kilogram
	case CategoryVolume:
		return Liter
	}
	return ""
}

// Normalize resolves a caller-supplied unit and/or measurement category to a
// canonical unit code. With neither supplied it returns the empty string. A
// resolved code outside the known set falls back to the piece unit.
func Normalize(unit, measurementType string) string {
	if unit == "" && measurementType == "" {
		return ""
	}

	var normalized string
	if unit != "" {
		normalized = ResolveAlias(unit)
	} else {
		normalized = DefaultUnitFor(measurementType)
	}

	if normalized == "" {
		return ""
	}
	if _, ok := categories[normalized]; !ok {
		return Piece
	}
	return normalized
}

// Known returns the canonical unit codes in sorted order.
func Known() []string {
	codes := make([]string, 0, len(categories))
	for code := range categories {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// MeasurementTypes returns the supported measurement categories in sorted order.
func MeasurementTypes() []string {
	return []string{CategoryPiece, CategoryVolume, CategoryWeight}
}
