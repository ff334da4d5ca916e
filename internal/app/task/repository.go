package task

import (
	"flowboard/internal/app/activity"

	"gorm.io/gorm"
)

type Repository interface {
	GetByID(id uint64) (*Task, error)
	GetByBoardID(boardID uint64) ([]*Task, error)
	List(boardIDs []uint64, q ListQuery) ([]*Task, int64, error)

	// CreateWithActivity and UpdateWithActivity persist the task mutation
	// and its audit row in a single transaction so the trail never
	// diverges from task state. A nil activity skips the audit write.
	CreateWithActivity(t *Task, a *activity.Activity) error
	UpdateWithActivity(t *Task, a *activity.Activity) error
	Delete(t *Task) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(id uint64) (*Task, error) {
	var t Task
	err := r.db.Preload("Tags").First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) GetByBoardID(boardID uint64) ([]*Task, error) {
	var tasks []*Task
	err := r.db.
		Preload("Tags").
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *repository) List(boardIDs []uint64, q ListQuery) ([]*Task, int64, error) {
	query := r.db.Model(&Task{}).Where("tasks.board_id IN ?", boardIDs)

	if q.BoardID != nil {
		query = query.Where("tasks.board_id = ?", *q.BoardID)
	}
	if q.Status != nil {
		query = query.Where("tasks.status = ?", *q.Status)
	}
	if q.Priority != nil {
		query = query.Where("tasks.priority = ?", *q.Priority)
	}
	if q.TagID != nil {
		query = query.
			Joins("JOIN task_tag ON task_tag.task_id = tasks.id").
			Where("task_tag.tag_id = ?", *q.TagID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "DESC"
	if q.SortOrder == "asc" {
		order = "ASC"
	}
	switch q.SortBy {
	case "due_date":
		query = query.Order("tasks.due_date IS NULL").Order("tasks.due_date " + order)
	case "priority":
		query = query.Order("CASE tasks.priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END " + order)
	case "title":
		query = query.Order("tasks.title " + order)
	default:
		query = query.Order("tasks.created_at " + order)
	}

	offset := (q.Page - 1) * q.Limit
	var tasks []*Task
	err := query.
		Preload("Tags").
		Offset(offset).
		Limit(q.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *repository) CreateWithActivity(t *Task, a *activity.Activity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		if a != nil {
			a.TaskID = t.ID
			if err := tx.Create(a).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) UpdateWithActivity(t *Task, a *activity.Activity) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Save(t).Error; err != nil {
			return err
		}
		if a != nil {
			a.TaskID = t.ID
			if err := tx.Create(a).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the task together with its comments, activities and tag
// links. No activity is recorded for the deletion itself.
func (r *repository) Delete(t *Task) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM task_tag WHERE task_id = ?`, t.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM comments WHERE task_id = ?`, t.ID).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", t.ID).Delete(&activity.Activity{}).Error; err != nil {
			return err
		}
		return tx.Delete(t).Error
	})
}
