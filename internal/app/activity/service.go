package activity

import "fmt"

type Service interface {
	GetActivitiesByTaskID(taskID uint64) ([]*Activity, error)
	GetRecentByBoardIDs(boardIDs []uint64, limit int) ([]*Activity, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetActivitiesByTaskID(taskID uint64) ([]*Activity, error) {
	activities, err := s.repo.GetByTaskID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	return activities, nil
}

func (s *service) GetRecentByBoardIDs(boardIDs []uint64, limit int) ([]*Activity, error) {
	if limit < 1 {
		limit = 15
	}
	activities, err := s.repo.GetRecentByBoardIDs(boardIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activities: %w", err)
	}
	return activities, nil
}
