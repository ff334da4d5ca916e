package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flowboard/internal/app/activity"
	"flowboard/internal/app/board"
	"flowboard/internal/apperr"
	"flowboard/internal/providers/redis"
	"flowboard/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CreateTask(ctx context.Context, userID uint64, req CreateTaskRequest) (*Task, error)
	UpdateTask(ctx context.Context, userID, taskID uint64, req UpdateTaskRequest) (*Task, error)
	DeleteTask(ctx context.Context, userID, taskID uint64) error
	GetTask(userID, taskID uint64) (*Task, error)
	GetTasksByBoardID(ctx context.Context, userID, boardID uint64) ([]*Task, error)
	ListTasks(ctx context.Context, userID uint64, q ListQuery) ([]*Task, int64, error)
	GetTaskActivities(userID, taskID uint64) ([]*activity.Activity, error)
}

type service struct {
	repo        Repository
	boardSvc    board.Service
	activitySvc activity.Service
	redisP      *redis.RedisProvider
	eventBus    *utils.EventBus
	logger      *zap.SugaredLogger
	cachePrefix string
	now         func() time.Time
}

func NewService(
	repo Repository,
	boardSvc board.Service,
	activitySvc activity.Service,
	redisP *redis.RedisProvider,
	eventBus *utils.EventBus,
	logger *zap.Logger,
) Service {
	return &service{
		repo:        repo,
		boardSvc:    boardSvc,
		activitySvc: activitySvc,
		redisP:      redisP,
		eventBus:    eventBus,
		logger:      logger.Sugar(),
		cachePrefix: "tasks:board",
		now:         time.Now,
	}
}

func (s *service) CreateTask(ctx context.Context, userID uint64, req CreateTaskRequest) (*Task, error) {
	var b *board.Board
	var err error
	if req.BoardID != nil {
		b, err = s.boardSvc.GetBoard(userID, *req.BoardID)
	} else {
		b, err = s.boardSvc.EnsureDefaultBoard(userID)
	}
	if err != nil {
		return nil, err
	}

	t := &Task{
		BoardID:     b.ID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}
	act := &activity.Activity{
		Type:        activity.TypeCreated,
		Description: "Task created",
		Properties: activity.CreatedProperties(activity.CreatedPayload{
			Title:       req.Title,
			Description: req.Description,
			Priority:    string(req.Priority),
			Status:      string(req.Status),
			DueDate:     req.DueDate,
		}),
	}

	if err := s.repo.CreateWithActivity(t, act); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidateBoardCache(ctx, b.ID)
	s.eventBus.Publish("task_created", map[string]interface{}{
		"task_id":  t.ID,
		"board_id": t.BoardID,
		"title":    t.Title,
		"status":   t.Status,
		"priority": t.Priority,
	})

	return t, nil
}

func (s *service) UpdateTask(ctx context.Context, userID, taskID uint64, req UpdateTaskRequest) (*Task, error) {
	t, err := s.getOwnedTask(userID, taskID)
	if err != nil {
		return nil, err
	}

	oldStatus := t.Status
	var changes activity.UpdatedPayload
	changed := false

	if req.Title != nil && *req.Title != t.Title {
		t.Title = *req.Title
		changes.Title = req.Title
		changed = true
	}
	if req.Description != nil && (t.Description == nil || *req.Description != *t.Description) {
		t.Description = req.Description
		changes.Description = req.Description
		changed = true
	}
	if req.Priority != nil && *req.Priority != t.Priority {
		t.Priority = *req.Priority
		changes.Priority = (*string)(req.Priority)
		changed = true
	}
	if req.DueDate != nil && (t.DueDate == nil || !req.DueDate.Equal(*t.DueDate)) {
		t.DueDate = req.DueDate
		changes.DueDate = req.DueDate
		changed = true
	}

	statusChanged := req.Status != nil && *req.Status != oldStatus
	if statusChanged {
		t.Status = *req.Status
	}

	if !statusChanged && !changed {
		return t, nil
	}

	// A status change takes precedence: it is the only activity logged for
	// the request, even when other fields changed alongside it.
	var act *activity.Activity
	if statusChanged {
		now := s.now()
		if t.Status == StatusInProgress && t.StartedAt == nil {
			t.StartedAt = &now
		}
		if t.Status == StatusDone && t.CompletedAt == nil {
			t.CompletedAt = &now
		}
		act = &activity.Activity{
			Type:        activity.TypeMoved,
			Description: fmt.Sprintf("Moved from %s to %s", oldStatus, t.Status),
			Properties:  activity.MovedProperties(string(oldStatus), string(t.Status)),
		}
	} else {
		desc := "Task updated"
		switch {
		case changes.Title != nil:
			desc = "Updated title"
		case changes.Priority != nil:
			desc = fmt.Sprintf("Changed priority to %s", *changes.Priority)
		case changes.Description != nil:
			desc = "Updated description"
		}
		act = &activity.Activity{
			Type:        activity.TypeUpdated,
			Description: desc,
			Properties:  activity.UpdatedProperties(changes),
		}
	}

	if err := s.repo.UpdateWithActivity(t, act); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.invalidateBoardCache(ctx, t.BoardID)

	event := "task_updated"
	if statusChanged {
		event = "task_moved"
	}
	s.eventBus.Publish(event, map[string]interface{}{
		"task_id":  t.ID,
		"board_id": t.BoardID,
		"status":   t.Status,
	})

	return t, nil
}

func (s *service) DeleteTask(ctx context.Context, userID, taskID uint64) error {
	t, err := s.getOwnedTask(userID, taskID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(t); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.invalidateBoardCache(ctx, t.BoardID)
	s.eventBus.Publish("task_deleted", map[string]interface{}{
		"task_id":  t.ID,
		"board_id": t.BoardID,
	})

	return nil
}

func (s *service) GetTask(userID, taskID uint64) (*Task, error) {
	return s.getOwnedTask(userID, taskID)
}

func (s *service) GetTasksByBoardID(ctx context.Context, userID, boardID uint64) ([]*Task, error) {
	if _, err := s.boardSvc.GetBoard(userID, boardID); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s:%d", s.cachePrefix, boardID)
	if s.redisP != nil {
		if cached, err := s.redisP.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var tasks []*Task
			if json.Unmarshal([]byte(cached), &tasks) == nil {
				return tasks, nil
			}
		}
	}

	tasks, err := s.repo.GetByBoardID(boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get board tasks: %w", err)
	}

	if s.redisP != nil {
		if data, err := json.Marshal(tasks); err == nil {
			s.redisP.SetWithDefaultTTL(ctx, cacheKey, data, 0)
		}
	}

	return tasks, nil
}

func (s *service) ListTasks(ctx context.Context, userID uint64, q ListQuery) ([]*Task, int64, error) {
	if q.BoardID != nil {
		if _, err := s.boardSvc.GetBoard(userID, *q.BoardID); err != nil {
			return nil, 0, err
		}
	}

	boards, err := s.boardSvc.ListBoards(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list boards: %w", err)
	}
	boardIDs := make([]uint64, 0, len(boards))
	for _, b := range boards {
		boardIDs = append(boardIDs, b.ID)
	}
	if len(boardIDs) == 0 {
		return []*Task{}, 0, nil
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.Limit > 50 {
		q.Limit = 50
	}

	tasks, total, err := s.repo.List(boardIDs, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

func (s *service) GetTaskActivities(userID, taskID uint64) ([]*activity.Activity, error) {
	if _, err := s.getOwnedTask(userID, taskID); err != nil {
		return nil, err
	}
	return s.activitySvc.GetActivitiesByTaskID(taskID)
}

func (s *service) getOwnedTask(userID, taskID uint64) (*Task, error) {
	t, err := s.repo.GetByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task")
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if _, err := s.boardSvc.GetBoard(userID, t.BoardID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) invalidateBoardCache(ctx context.Context, boardID uint64) {
	if s.redisP == nil {
		return
	}
	cacheKey := fmt.Sprintf("%s:%d", s.cachePrefix, boardID)
	if err := s.redisP.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Warnw("Failed to invalidate board task cache", "board_id", boardID, "error", err)
	}
}
