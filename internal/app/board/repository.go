package board

import "gorm.io/gorm"

type Repository interface {
	GetByID(id uint64) (*Board, error)
	GetByUserID(userID uint64) ([]*Board, error)
	GetFirstByUserID(userID uint64) (*Board, error)
	Create(b *Board) error
	Update(b *Board) error
	Delete(b *Board) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(id uint64) (*Board, error) {
	var b Board
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) GetByUserID(userID uint64) ([]*Board, error) {
	var boards []*Board
	err := r.db.
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&boards).Error
	return boards, err
}

// GetFirstByUserID resolves the user's default board deterministically by
// lowest id, not by insertion order.
func (r *repository) GetFirstByUserID(userID uint64) (*Board, error) {
	var b Board
	err := r.db.
		Where("user_id = ?", userID).
		Order("id ASC").
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Create(b *Board) error {
	return r.db.Create(b).Error
}

func (r *repository) Update(b *Board) error {
	return r.db.Save(b).Error
}

// Delete removes the board with everything under it: tasks, their comments,
// activities and tag links, and the board's tags.
func (r *repository) Delete(b *Board) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM activities WHERE task_id IN (SELECT id FROM tasks WHERE board_id = ?)`, b.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM comments WHERE task_id IN (SELECT id FROM tasks WHERE board_id = ?)`, b.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM task_tag WHERE task_id IN (SELECT id FROM tasks WHERE board_id = ?)`, b.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM tasks WHERE board_id = ?`, b.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec(`DELETE FROM tags WHERE board_id = ?`, b.ID).Error; err != nil {
			return err
		}
		return tx.Delete(b).Error
	})
}
