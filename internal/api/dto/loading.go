package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// QuantityInput is the raw text of an entered quantity.
// It accepts a JSON string or number; null reads as empty.
type QuantityInput string

func (q *QuantityInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*q = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*q = QuantityInput(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("quantity must be a string or number: %w", err)
		}
		*q = QuantityInput(n.String())
	}
	return nil
}

type SetQuantityRequest struct {
	Field string        `json:"field"`
	Value QuantityInput `json:"value"`
}

type QuantitiesResponse struct {
	Sleeves      int `json:"sleeves"`
	Caps         int `json:"caps"`
	Canvases     int `json:"canvases"`
	Totes        int `json:"totes"`
	HardlinesRaw int `json:"hardlines_raw"`
	SoftlinesRaw int `json:"softlines_raw"`
}

type DiscrepancyResponse struct {
	Field      string `json:"field"`
	Label      string `json:"label"`
	Required   int    `json:"required"`
	Loaded     int    `json:"loaded"`
	Difference int    `json:"difference"`
	Tone       string `json:"tone"`
}

type LoadingFormResponse struct {
	RunID         string                `json:"run_id"`
	StoreName     string                `json:"store_name"`
	Required      QuantitiesResponse    `json:"required"`
	Loaded        QuantitiesResponse    `json:"loaded"`
	Discrepancies []DiscrepancyResponse `json:"discrepancies"`
}

type CompleteLoadingResponse struct {
	RunID       string             `json:"run_id"`
	Status      string             `json:"status"`
	Loaded      QuantitiesResponse `json:"loaded"`
	CompletedAt time.Time          `json:"completed_at"`
}
