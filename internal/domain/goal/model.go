package goal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Goal represents a long-horizon commitment tracked against milestones.
type Goal struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index:idx_goal_user"`
	Title       string         `json:"title" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category" gorm:"size:64;index:idx_goal_category"`
	TargetDate  *time.Time     `json:"target_date,omitempty"`
	Milestones  datatypes.JSON `json:"milestones,omitempty" gorm:"type:jsonb"`
	Progress    int            `json:"progress" gorm:"default:0;not null"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// Milestone is the element shape stored in the Milestones JSON column.
type Milestone struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// TableName specifies the table name for the Goal model
func (Goal) TableName() string {
	return "goals"
}

// BeforeCreate is called before creating a new goal record
func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// CreateGoalInput represents the input for creating a new goal
type CreateGoalInput struct {
	UserID      uuid.UUID   `json:"user_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	TargetDate  *time.Time  `json:"target_date"`
	Milestones  []Milestone `json:"milestones"`
}

// UpdateGoalInput represents the input for updating a goal
type UpdateGoalInput struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Category    *string     `json:"category,omitempty"`
	TargetDate  *time.Time  `json:"target_date,omitempty"`
	Milestones  []Milestone `json:"milestones,omitempty"`
}
