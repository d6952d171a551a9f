package journal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is a dated journal entry. The per-user entry count feeds the
// journal badge requirement.
type Entry struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_journal_user"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Mood      string    `json:"mood" gorm:"size:32"`
	Prompt    string    `json:"prompt" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp;index:idx_journal_created"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the Entry model
func (Entry) TableName() string {
	return "journal_entries"
}

// BeforeCreate is called before creating a new journal entry
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// CreateEntryInput represents the input for writing a journal entry
type CreateEntryInput struct {
	UserID  uuid.UUID `json:"user_id"`
	Content string    `json:"content"`
	Mood    string    `json:"mood"`
	Prompt  string    `json:"prompt"`
}
