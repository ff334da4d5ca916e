package board

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WIPLimits maps a status column name to its optional task cap. Stored as
// jsonb; a missing key means the column is uncapped.
type WIPLimits map[string]int

func (w WIPLimits) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

func (w *WIPLimits) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	default:
		return fmt.Errorf("unsupported wip_limits column type %T", value)
	}
}

type Board struct {
	ID          uint64    `json:"id" gorm:"primaryKey"`
	UserID      uint64    `json:"user_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description *string   `json:"description,omitempty"`
	ThemeColor  string    `json:"theme_color" gorm:"not null;default:'#4A90E2'"`
	WIPLimits   WIPLimits `json:"wip_limits,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateBoardRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description,omitempty"`
	ThemeColor  string  `json:"theme_color" binding:"omitempty,hexcolor"`
}

type UpdateBoardRequest struct {
	Title      *string `json:"title,omitempty" binding:"omitempty,max=255"`
	ThemeColor *string `json:"theme_color,omitempty" binding:"omitempty,hexcolor"`
}

type SettingsRequest struct {
	Title       *string        `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string        `json:"description,omitempty" binding:"omitempty,max=1000"`
	ThemeColor  *string        `json:"theme_color,omitempty" binding:"omitempty,hexcolor"`
	WIPLimits   map[string]int `json:"wip_limits,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
