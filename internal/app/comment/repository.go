package comment

import "gorm.io/gorm"

type Repository interface {
	GetByID(id uint64) (*Comment, error)
	GetByTaskID(taskID uint64) ([]*Comment, error)
	Create(cm *Comment) error
	Delete(cm *Comment) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(id uint64) (*Comment, error) {
	var cm Comment
	if err := r.db.Preload("User").First(&cm, id).Error; err != nil {
		return nil, err
	}
	return &cm, nil
}

func (r *repository) GetByTaskID(taskID uint64) ([]*Comment, error) {
	var comments []*Comment
	err := r.db.
		Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

func (r *repository) Create(cm *Comment) error {
	if err := r.db.Create(cm).Error; err != nil {
		return err
	}
	return r.db.Preload("User").First(cm, cm.ID).Error
}

func (r *repository) Delete(cm *Comment) error {
	return r.db.Delete(cm).Error
}
