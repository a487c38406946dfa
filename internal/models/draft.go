package models

import "time"

// Draft is the single device-local composition slot. It expires 30 days
// after SavedAt and is overwritten only with explicit confirmation.
type Draft struct {
	Content    string    `json:"content"`
	Categories []string  `json:"categories,omitempty"`
	FeedType   string    `json:"feed_type"`
	IsPublic   bool      `json:"is_public"`
	SavedAt    time.Time `json:"saved_at"`
}

// SaveDraftRequest defines the request body for saving the draft slot.
// Overwrite must be set when a draft already exists.
type SaveDraftRequest struct {
	Content    string   `json:"content" validate:"required,max=750"`
	Categories []string `json:"categories,omitempty"`
	FeedType   string   `json:"feed_type" validate:"required,oneof=worry grateful"`
	IsPublic   *bool    `json:"is_public,omitempty"`
	Overwrite  bool     `json:"overwrite,omitempty"`
}
