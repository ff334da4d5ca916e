package activity

import "gorm.io/gorm"

type Repository interface {
	GetByTaskID(taskID uint64) ([]*Activity, error)
	GetRecentByBoardIDs(boardIDs []uint64, limit int) ([]*Activity, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByTaskID(taskID uint64) ([]*Activity, error) {
	var activities []*Activity
	err := r.db.
		Where("task_id = ?", taskID).
		Order("created_at DESC, id DESC").
		Find(&activities).Error
	return activities, err
}

func (r *repository) GetRecentByBoardIDs(boardIDs []uint64, limit int) ([]*Activity, error) {
	var activities []*Activity
	err := r.db.
		Joins("JOIN tasks ON tasks.id = activities.task_id").
		Where("tasks.board_id IN ?", boardIDs).
		Order("activities.created_at DESC, activities.id DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}
