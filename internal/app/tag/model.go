package tag

import "time"

type Tag struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	BoardID   uint64    `json:"board_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	Color     string    `json:"color" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateTagRequest struct {
	BoardID uint64 `json:"board_id" binding:"required"`
	Name    string `json:"name" binding:"required,max=255"`
	Color   string `json:"color" binding:"required,hexcolor"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
