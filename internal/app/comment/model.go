package comment

import (
	"time"

	"flowboard/internal/app/user"
)

type Comment struct {
	ID        uint64     `json:"id" gorm:"primaryKey"`
	TaskID    uint64     `json:"task_id" gorm:"not null;index"`
	UserID    uint64     `json:"user_id" gorm:"not null"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	User      *user.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
