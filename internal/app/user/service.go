package user

import (
	"errors"
	"fmt"

	"flowboard/internal/apperr"

	"gorm.io/gorm"
)

type Service interface {
	GetUserByID(id uint64) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetUserByID(id uint64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
