package tag

import (
	"context"
	"errors"
	"fmt"

	"flowboard/internal/app/board"
	"flowboard/internal/apperr"
	"flowboard/internal/providers/redis"

	"gorm.io/gorm"
)

type Service interface {
	// ListTags returns the tags of one board, or of every board the user
	// owns when boardID is nil.
	ListTags(userID uint64, boardID *uint64) ([]*Tag, error)
	CreateTag(userID uint64, req CreateTagRequest) (*Tag, error)
	DeleteTag(userID, tagID uint64) error
}

type service struct {
	repo     Repository
	boardSvc board.Service
	redisP   *redis.RedisProvider
}

func NewService(repo Repository, boardSvc board.Service, redisP *redis.RedisProvider) Service {
	return &service{repo: repo, boardSvc: boardSvc, redisP: redisP}
}

func (s *service) ListTags(userID uint64, boardID *uint64) ([]*Tag, error) {
	if boardID != nil {
		if _, err := s.boardSvc.GetBoard(userID, *boardID); err != nil {
			return nil, err
		}
		return s.repo.GetByBoardID(*boardID)
	}

	boards, err := s.boardSvc.ListBoards(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	if len(boards) == 0 {
		return []*Tag{}, nil
	}
	boardIDs := make([]uint64, 0, len(boards))
	for _, b := range boards {
		boardIDs = append(boardIDs, b.ID)
	}
	return s.repo.GetByBoardIDs(boardIDs)
}

func (s *service) CreateTag(userID uint64, req CreateTagRequest) (*Tag, error) {
	b, err := s.boardSvc.GetBoard(userID, req.BoardID)
	if err != nil {
		return nil, err
	}

	t := &Tag{
		BoardID: b.ID,
		Name:    req.Name,
		Color:   req.Color,
	}
	if err := s.repo.Create(t); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return t, nil
}

func (s *service) DeleteTag(userID, tagID uint64) error {
	t, err := s.repo.GetByID(tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("tag")
		}
		return fmt.Errorf("failed to get tag: %w", err)
	}

	if _, err := s.boardSvc.GetBoard(userID, t.BoardID); err != nil {
		return err
	}

	if err := s.repo.Delete(t); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	// Cached board task lists embed tag rows; drop the stale copy.
	if s.redisP != nil {
		s.redisP.Del(context.Background(), fmt.Sprintf("tasks:board:%d", t.BoardID))
	}
	return nil
}
