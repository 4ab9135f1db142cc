package dto

import "time"

type ViewResponse struct {
	ID        string    `json:"id"`
	Phase     string    `json:"phase"`
	Message   string    `json:"message"`
	Error     string    `json:"error"`
	Heading   string    `json:"heading"`
	Text      string    `json:"text"`
	IsError   bool      `json:"is_error"`
	Loading   bool      `json:"loading"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
