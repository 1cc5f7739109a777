package domain

import "time"

// LoadingForm is the open loading form of one operator.
// Required is read-only reference data; Loaded is edited field by field and
// lives only until the form is completed or cancelled.
type LoadingForm struct {
	RunID     string           `json:"run_id"`
	StoreID   string           `json:"store_id"`
	StoreName string           `json:"store_name"`
	Required  SupplyQuantities `json:"required"`
	Loaded    SupplyQuantities `json:"loaded"`
	OpenedAt  time.Time        `json:"opened_at"`
}

// NewLoadingForm opens a form for run with every loaded counter at zero.
func NewLoadingForm(run *DeliveryRun, required SupplyQuantities, now time.Time) *LoadingForm {
	return &LoadingForm{
		RunID:     run.ID,
		StoreID:   run.StoreID,
		StoreName: run.StoreName,
		Required:  required,
		OpenedAt:  now,
	}
}

// Set records an operator-entered loaded quantity.
func (f *LoadingForm) Set(field SupplyField, value int) error {
	return f.Loaded.Set(field, value)
}

type FieldDiscrepancy struct {
	Field      SupplyField
	Label      string
	Required   int
	Loaded     int
	Difference int
	Tone       Tone
}

// Discrepancies recomputes the variance of every field in display order.
func (f *LoadingForm) Discrepancies() []FieldDiscrepancy {
	out := make([]FieldDiscrepancy, 0, len(SupplyFields))
	for _, field := range SupplyFields {
		d := Discrepancy(f.Required, f.Loaded, field)
		out = append(out, FieldDiscrepancy{
			Field:      field,
			Label:      field.Label(),
			Required:   f.Required.Get(field),
			Loaded:     f.Loaded.Get(field),
			Difference: d,
			Tone:       ToneFor(d),
		})
	}
	return out
}

// LoadingRecord is the persisted outcome of a completed loading form.
type LoadingRecord struct {
	RunID       string
	DriverID    string
	Loaded      SupplyQuantities
	CompletedAt time.Time
}
