package board

import (
	"errors"
	"fmt"
	"math/rand"

	"flowboard/internal/apperr"

	"gorm.io/gorm"
)

const (
	defaultBoardTitle = "Personal"
	defaultThemeColor = "#4A90E2"
)

type Service interface {
	ListBoards(userID uint64) ([]*Board, error)
	CreateBoard(userID uint64, req CreateBoardRequest) (*Board, error)
	GetBoard(userID, boardID uint64) (*Board, error)
	UpdateBoard(userID, boardID uint64, req UpdateBoardRequest) (*Board, error)
	UpdateSettings(userID, boardID uint64, req SettingsRequest) (*Board, error)
	DeleteBoard(userID, boardID uint64) error

	// DefaultBoard returns the user's lowest-id board.
	DefaultBoard(userID uint64) (*Board, error)
	// EnsureDefaultBoard returns the user's default board, creating a
	// "Personal" board when the user has none yet.
	EnsureDefaultBoard(userID uint64) (*Board, error)
	// CanModify is the single ownership capability check used across
	// board, task, tag and comment operations.
	CanModify(b *Board, userID uint64) bool
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CanModify(b *Board, userID uint64) bool {
	return b != nil && b.UserID == userID
}

func (s *service) ListBoards(userID uint64) ([]*Board, error) {
	return s.repo.GetByUserID(userID)
}

func (s *service) CreateBoard(userID uint64, req CreateBoardRequest) (*Board, error) {
	color := req.ThemeColor
	if color == "" {
		color = randomThemeColor()
	}

	b := &Board{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ThemeColor:  color,
	}
	if err := s.repo.Create(b); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	return b, nil
}

func (s *service) GetBoard(userID, boardID uint64) (*Board, error) {
	b, err := s.repo.GetByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("board")
		}
		return nil, fmt.Errorf("failed to get board: %w", err)
	}
	if !s.CanModify(b, userID) {
		return nil, apperr.Forbidden("board access")
	}
	return b, nil
}

func (s *service) UpdateBoard(userID, boardID uint64, req UpdateBoardRequest) (*Board, error) {
	b, err := s.GetBoard(userID, boardID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.ThemeColor != nil {
		b.ThemeColor = *req.ThemeColor
	}

	if err := s.repo.Update(b); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	return b, nil
}

func (s *service) UpdateSettings(userID, boardID uint64, req SettingsRequest) (*Board, error) {
	b, err := s.GetBoard(userID, boardID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.ThemeColor != nil {
		b.ThemeColor = *req.ThemeColor
	}
	if req.WIPLimits != nil {
		b.WIPLimits = WIPLimits(req.WIPLimits)
	}

	if err := s.repo.Update(b); err != nil {
		return nil, fmt.Errorf("failed to update board settings: %w", err)
	}
	return b, nil
}

func (s *service) DeleteBoard(userID, boardID uint64) error {
	b, err := s.GetBoard(userID, boardID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(b); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	return nil
}

func (s *service) DefaultBoard(userID uint64) (*Board, error) {
	b, err := s.repo.GetFirstByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("board")
		}
		return nil, fmt.Errorf("failed to get default board: %w", err)
	}
	return b, nil
}

func (s *service) EnsureDefaultBoard(userID uint64) (*Board, error) {
	b, err := s.repo.GetFirstByUserID(userID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get default board: %w", err)
	}

	b = &Board{
		UserID:     userID,
		Title:      defaultBoardTitle,
		ThemeColor: defaultThemeColor,
	}
	if err := s.repo.Create(b); err != nil {
		return nil, fmt.Errorf("failed to create default board: %w", err)
	}
	return b, nil
}

func randomThemeColor() string {
	return fmt.Sprintf("#%06X", rand.Intn(0x1000000))
}
