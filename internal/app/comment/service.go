package comment

import (
	"errors"
	"fmt"

	"flowboard/internal/app/task"
	"flowboard/internal/apperr"
	"flowboard/internal/utils"

	"gorm.io/gorm"
)

type Service interface {
	ListComments(userID, taskID uint64) ([]*Comment, error)
	CreateComment(userID, taskID uint64, req CreateCommentRequest) (*Comment, error)
	DeleteComment(userID, commentID uint64) error
}

type service struct {
	repo     Repository
	taskSvc  task.Service
	eventBus *utils.EventBus
}

func NewService(repo Repository, taskSvc task.Service, eventBus *utils.EventBus) Service {
	return &service{repo: repo, taskSvc: taskSvc, eventBus: eventBus}
}

func (s *service) ListComments(userID, taskID uint64) ([]*Comment, error) {
	if _, err := s.taskSvc.GetTask(userID, taskID); err != nil {
		return nil, err
	}
	return s.repo.GetByTaskID(taskID)
}

func (s *service) CreateComment(userID, taskID uint64, req CreateCommentRequest) (*Comment, error) {
	t, err := s.taskSvc.GetTask(userID, taskID)
	if err != nil {
		return nil, err
	}

	cm := &Comment{
		TaskID:  t.ID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := s.repo.Create(cm); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.eventBus.Publish("comment_created", map[string]interface{}{
		"comment_id": cm.ID,
		"task_id":    cm.TaskID,
		"board_id":   t.BoardID,
	})

	return cm, nil
}

func (s *service) DeleteComment(userID, commentID uint64) error {
	cm, err := s.repo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("comment")
		}
		return fmt.Errorf("failed to get comment: %w", err)
	}

	// Only the author may delete a comment.
	if cm.UserID != userID {
		return apperr.Forbidden("comment delete")
	}

	if err := s.repo.Delete(cm); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
