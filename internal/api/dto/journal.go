package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateEntryRequest represents the request to write a journal entry
type CreateEntryRequest struct {
	Content string `json:"content" binding:"required"`
	Mood    string `json:"mood"`
	Prompt  string `json:"prompt"`
}

// EntryResponse represents a journal entry in API responses
type EntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Prompt    string    `json:"prompt,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// EntryListResponse represents the paginated response for listing entries
type EntryListResponse struct {
	Entries    []EntryResponse `json:"entries"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}
