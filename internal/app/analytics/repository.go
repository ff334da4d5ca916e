package analytics

import (
	"time"

	"flowboard/internal/app/task"

	"gorm.io/gorm"
)

type Repository interface {
	GetCycleSamples(boardID uint64) ([]CycleSample, error)
	CountDone(boardID uint64) (int64, error)
	CountCompletedSince(boardID uint64, since time.Time) (int64, error)
	CountWIP(boardID uint64) (int64, error)

	GetBoardSummaries(userID uint64) ([]BoardSummary, error)
	CountTasks(boardIDs []uint64) (int64, error)
	CountCompletedSinceAcross(boardIDs []uint64, since time.Time) (int64, error)
	CountWIPAcross(boardIDs []uint64) (int64, error)
	GetOverdueTasks(boardIDs []uint64, now time.Time) ([]*task.Task, error)
	GetUpcomingTasks(boardIDs []uint64, from, until time.Time, limit int) ([]*task.Task, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetCycleSamples(boardID uint64) ([]CycleSample, error) {
	var samples []CycleSample
	err := r.db.Model(&task.Task{}).
		Select("started_at, completed_at").
		Where("board_id = ?", boardID).
		Where("status = ?", task.StatusDone).
		Where("started_at IS NOT NULL").
		Where("completed_at IS NOT NULL").
		Scan(&samples).Error
	return samples, err
}

func (r *repository) CountDone(boardID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&task.Task{}).
		Where("board_id = ? AND status = ?", boardID, task.StatusDone).
		Count(&count).Error
	return count, err
}

func (r *repository) CountCompletedSince(boardID uint64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&task.Task{}).
		Where("board_id = ? AND status = ?", boardID, task.StatusDone).
		Where("completed_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *repository) CountWIP(boardID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&task.Task{}).
		Where("board_id = ?", boardID).
		Where("status IN ?", []task.Status{task.StatusInProgress, task.StatusInReview}).
		Count(&count).Error
	return count, err
}

func (r *repository) GetBoardSummaries(userID uint64) ([]BoardSummary, error) {
	var summaries []BoardSummary
	err := r.db.Table("boards").
		Select(`
			boards.*,
			COUNT(tasks.id) FILTER (WHERE tasks.status = 'done') AS done_tasks_count,
			COUNT(tasks.id) AS total_tasks_count
		`).
		Joins("LEFT JOIN tasks ON tasks.board_id = boards.id").
		Where("boards.user_id = ?", userID).
		Group("boards.id").
		Order("boards.id ASC").
		Scan(&summaries).Error
	return summaries, err
}

func (r *repository) CountTasks(boardIDs []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&task.Task{}).
		Where("board_id IN ?", boardIDs).
		Count(&count).Error
	return count, err
}

func (r *repository) CountCompletedSinceAcross(boardIDs []uint64, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&task.Task{}).
		Where("board_id IN ? AND status = ?", boardIDs, task.StatusDone).
		Where("completed_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *repository) CountWIPAcross(boardIDs []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&task.Task{}).
		Where("board_id IN ?", boardIDs).
		Where("status IN ?", []task.Status{task.StatusInProgress, task.StatusInReview}).
		Count(&count).Error
	return count, err
}

func (r *repository) GetOverdueTasks(boardIDs []uint64, now time.Time) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.
		Preload("Tags").
		Where("board_id IN ?", boardIDs).
		Where("status <> ?", task.StatusDone).
		Where("due_date IS NOT NULL AND due_date < ?", now).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) GetUpcomingTasks(boardIDs []uint64, from, until time.Time, limit int) ([]*task.Task, error) {
	var tasks []*task.Task
	err := r.db.
		Preload("Tags").
		Where("board_id IN ?", boardIDs).
		Where("status <> ?", task.StatusDone).
		Where("due_date IS NOT NULL AND due_date >= ? AND due_date <= ?", from, until).
		Order("due_date ASC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}
