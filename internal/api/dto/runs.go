package dto

import "time"

type StoreResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address"`
}

type RunActionResponse struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
	Wired   bool   `json:"wired"`
}

type RunCardResponse struct {
	ID        string              `json:"id"`
	StoreID   string              `json:"store_id"`
	StoreName string              `json:"store_name"`
	RunType   string              `json:"run_type"`
	Status    string              `json:"status"`
	StartTime *time.Time          `json:"start_time"`
	StartedAt *string             `json:"started_at"`
	CreatedAt time.Time           `json:"created_at"`
	Store     *StoreResponse      `json:"store"`
	Actions   []RunActionResponse `json:"actions"`
}

type ListRunsResponse struct {
	Runs []RunCardResponse `json:"runs"`
}
