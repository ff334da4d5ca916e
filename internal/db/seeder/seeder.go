package seeder

import (
	"flowboard/internal/app/board"
	"flowboard/internal/app/tag"
	"flowboard/internal/app/task"
	"flowboard/internal/app/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSeeder(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger,
	}
}

func (s *Seeder) Seed() error {
	s.logger.Info("Running database seeders...")

	if err := s.seedDemo(); err != nil {
		return err
	}

	s.logger.Info("Database seeders completed successfully")
	return nil
}

func (s *Seeder) seedDemo() error {
	var count int64
	s.db.Model(&user.User{}).Count(&count)
	if count > 0 {
		s.logger.Info("Users already exist, skipping seed")
		return nil
	}

	demo := user.User{Name: "Demo User", Email: "demo@flowboard.local"}
	if err := s.db.Create(&demo).Error; err != nil {
		return err
	}

	b := board.Board{
		UserID:     demo.ID,
		Title:      "Personal",
		ThemeColor: "#4A90E2",
	}
	if err := s.db.Create(&b).Error; err != nil {
		return err
	}

	tags := []tag.Tag{
		{BoardID: b.ID, Name: "bug", Color: "#E74C3C"},
		{BoardID: b.ID, Name: "feature", Color: "#2ECC71"},
		{BoardID: b.ID, Name: "chore", Color: "#95A5A6"},
	}
	if err := s.db.Create(&tags).Error; err != nil {
		return err
	}

	tasks := []task.Task{
		{BoardID: b.ID, Title: "Set up the board", Priority: task.PriorityMedium, Status: task.StatusDone},
		{BoardID: b.ID, Title: "Plan the week", Priority: task.PriorityHigh, Status: task.StatusInProgress},
		{BoardID: b.ID, Title: "Review backlog", Priority: task.PriorityLow, Status: task.StatusTodo},
	}
	if err := s.db.Create(&tasks).Error; err != nil {
		return err
	}

	s.logger.Info("Seeded demo data",
		zap.Uint64("user_id", demo.ID),
		zap.Uint64("board_id", b.ID),
		zap.Int("tasks", len(tasks)),
	)
	return nil
}
