package task

import (
	"time"

	"flowboard/internal/app/tag"

	"github.com/go-playground/validator/v10"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusInReview   Status = "in-review"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusInReview, StatusDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidateStatus and ValidatePriority back the "taskstatus" and
// "taskpriority" binding tags registered at router setup.
func ValidateStatus(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).Valid()
}

func ValidatePriority(fl validator.FieldLevel) bool {
	return Priority(fl.Field().String()).Valid()
}

type Task struct {
	ID          uint64     `json:"id" gorm:"primaryKey"`
	BoardID     uint64     `json:"board_id" gorm:"not null;index"`
	Title       string     `json:"title" gorm:"not null"`
	Description *string    `json:"description,omitempty"`
	Priority    Priority   `json:"priority" gorm:"type:varchar(16);not null;default:'medium'"`
	Status      Status     `json:"status" gorm:"type:varchar(16);not null;default:'todo';index"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Tags        []tag.Tag  `json:"tags" gorm:"many2many:task_tag"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description *string    `json:"description,omitempty"`
	Priority    Priority   `json:"priority" binding:"required,taskpriority"`
	Status      Status     `json:"status" binding:"required,taskstatus"`
	BoardID     *uint64    `json:"board_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" binding:"omitempty,max=255"`
	Description *string    `json:"description,omitempty"`
	Priority    *Priority  `json:"priority,omitempty" binding:"omitempty,taskpriority"`
	Status      *Status    `json:"status,omitempty" binding:"omitempty,taskstatus"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// ListQuery carries the my-tasks filters. Nil fields mean "no filter".
type ListQuery struct {
	BoardID   *uint64
	Status    *Status
	Priority  *Priority
	TagID     *uint64
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

type ErrorResponse struct {
	Error string `json:"error"`
}
