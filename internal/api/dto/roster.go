package dto

import "time"

type RosterRowResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	HasCDL            bool      `json:"has_cdl"`
	CDLNumber         *string   `json:"cdl_number"`
	CDLExpirationDate *string   `json:"cdl_expiration_date"`
	CDLStatus         string    `json:"cdl_status"`
	CDLExpires        *string   `json:"cdl_expires"`
	IsActive          bool      `json:"is_active"`
	Status            string    `json:"status"`
	ToggleLabel       string    `json:"toggle_label"`
	CreatedAt         time.Time `json:"created_at"`
}

type RosterResponse struct {
	ShowInactive bool                `json:"show_inactive"`
	Drivers      []RosterRowResponse `json:"drivers"`
	Error        string              `json:"error"`
}

// ToggleActiveRequest carries the driver's current flag; the server stores its negation.
type ToggleActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

type UpdateCDLRequest struct {
	HasCDL            bool   `json:"has_cdl"`
	CDLNumber         string `json:"cdl_number"`
	CDLExpirationDate string `json:"cdl_expiration_date"`
}
