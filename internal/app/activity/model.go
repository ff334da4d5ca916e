package activity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Type string

const (
	TypeCreated Type = "created"
	TypeMoved   Type = "moved"
	TypeUpdated Type = "updated"
)

// Activity is an append-only audit record of one change to a task. Rows are
// never updated or deleted directly; they disappear only when their task is
// cascade-deleted.
type Activity struct {
	ID          uint64     `json:"id" gorm:"primaryKey"`
	TaskID      uint64     `json:"task_id" gorm:"not null;index"`
	Type        Type       `json:"type" gorm:"type:varchar(32);not null"`
	Description string     `json:"description" gorm:"not null"`
	Properties  Properties `json:"properties" gorm:"type:jsonb"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Properties is a tagged union keyed by activity type. Exactly one branch is
// set, matching Activity.Type; the envelope key doubles as the discriminator
// in the stored jsonb.
type Properties struct {
	Created *CreatedPayload `json:"created,omitempty"`
	Moved   *MovedPayload   `json:"moved,omitempty"`
	Updated *UpdatedPayload `json:"updated,omitempty"`
}

// CreatedPayload records the fields submitted at task creation.
type CreatedPayload struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// MovedPayload records a status transition.
type MovedPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// UpdatedPayload records every changed attribute of a non-status update.
// Unchanged fields stay nil.
type UpdatedPayload struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

func CreatedProperties(p CreatedPayload) Properties {
	return Properties{Created: &p}
}

func MovedProperties(from, to string) Properties {
	return Properties{Moved: &MovedPayload{From: from, To: to}}
}

func UpdatedProperties(p UpdatedPayload) Properties {
	return Properties{Updated: &p}
}

func (p Properties) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *Properties) Scan(value interface{}) error {
	if value == nil {
		*p = Properties{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported properties column type %T", value)
	}
}
