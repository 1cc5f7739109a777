package domain

import (
	"fmt"
	"math"
	"strings"
)

// SupplyQuantities holds the six supply counters of a store delivery.
// The same shape is used for what a store requires and what was loaded.
type SupplyQuantities struct {
	Sleeves      int `json:"sleeves"`
	Caps         int `json:"caps"`
	Canvases     int `json:"canvases"`
	Totes        int `json:"totes"`
	HardlinesRaw int `json:"hardlines_raw"`
	SoftlinesRaw int `json:"softlines_raw"`
}

type SupplyField string

const (
	FieldSleeves      SupplyField = "sleeves"
	FieldCaps         SupplyField = "caps"
	FieldCanvases     SupplyField = "canvases"
	FieldTotes        SupplyField = "totes"
	FieldHardlinesRaw SupplyField = "hardlines_raw"
	FieldSoftlinesRaw SupplyField = "softlines_raw"
)

// SupplyFields lists every counter in display order.
var SupplyFields = []SupplyField{
	FieldSleeves,
	FieldCaps,
	FieldCanvases,
	FieldTotes,
	FieldHardlinesRaw,
	FieldSoftlinesRaw,
}

// ParseSupplyField maps a JSON key to a SupplyField.
func ParseSupplyField(s string) (SupplyField, error) {
	f := SupplyField(strings.TrimSpace(s))
	for _, known := range SupplyFields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("parse supply field %q: %w", s, ErrUnknownField)
}

// Label renders the field for display: "hardlines_raw" -> "Hardlines Raw".
func (f SupplyField) Label() string {
	words := strings.Fields(strings.ReplaceAll(string(f), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Get returns the counter for field. Unknown fields read as zero.
func (q SupplyQuantities) Get(f SupplyField) int {
	switch f {
	case FieldSleeves:
		return q.Sleeves
	case FieldCaps:
		return q.Caps
	case FieldCanvases:
		return q.Canvases
	case FieldTotes:
		return q.Totes
	case FieldHardlinesRaw:
		return q.HardlinesRaw
	case FieldSoftlinesRaw:
		return q.SoftlinesRaw
	}
	return 0
}

// Set updates one counter.
func (q *SupplyQuantities) Set(f SupplyField, v int) error {
	switch f {
	case FieldSleeves:
		q.Sleeves = v
	case FieldCaps:
		q.Caps = v
	case FieldCanvases:
		q.Canvases = v
	case FieldTotes:
		q.Totes = v
	case FieldHardlinesRaw:
		q.HardlinesRaw = v
	case FieldSoftlinesRaw:
		q.SoftlinesRaw = v
	default:
		return fmt.Errorf("set quantity %q: %w", f, ErrUnknownField)
	}
	return nil
}

// Tone classifies a discrepancy for display.
type Tone string

const (
	ToneExact     Tone = "exact"
	ToneShortfall Tone = "shortfall"
	ToneOverage   Tone = "overage"
)

// Discrepancy is loaded minus required for one field.
// Zero is an exact match, negative is under-loaded, positive is over-loaded.
func Discrepancy(required, loaded SupplyQuantities, f SupplyField) int {
	return loaded.Get(f) - required.Get(f)
}

func ToneFor(discrepancy int) Tone {
	if discrepancy == 0 {
		return ToneExact
	}
	if discrepancy < 0 {
		return ToneShortfall
	}
	return ToneOverage
}

// ParseQuantity coerces a raw numeric input the way a browser form does:
// leading whitespace is skipped, an optional sign and the leading digits are
// taken, and anything unparsable becomes zero.
func ParseQuantity(raw string) int {
	s := strings.TrimLeft(raw, " \t\n\r\f\v")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	// Results saturate at the int32 range of the storage columns.
	limit := math.MaxInt32
	if neg {
		limit = -math.MinInt32
	}

	n := 0
	digits := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		d := int(c - '0')
		if n > (limit-d)/10 {
			n = limit
		} else {
			n = n*10 + d
		}
		digits++
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}
