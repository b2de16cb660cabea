package models

import "time"

type Payment struct {
	ID         int       `json:"id"`
	LeadID     int       `json:"lead_id"`
	Amount     float64   `json:"amount"`
	Method     string    `json:"method"`
	Notes      string    `json:"notes"`
	RecordedBy int       `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
