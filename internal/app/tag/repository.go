package tag

import "gorm.io/gorm"

type Repository interface {
	GetByID(id uint64) (*Tag, error)
	GetByBoardID(boardID uint64) ([]*Tag, error)
	GetByBoardIDs(boardIDs []uint64) ([]*Tag, error)
	Create(t *Tag) error
	Delete(t *Tag) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(id uint64) (*Tag, error) {
	var t Tag
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) GetByBoardID(boardID uint64) ([]*Tag, error) {
	var tags []*Tag
	err := r.db.
		Where("board_id = ?", boardID).
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}

func (r *repository) GetByBoardIDs(boardIDs []uint64) ([]*Tag, error) {
	var tags []*Tag
	err := r.db.
		Where("board_id IN ?", boardIDs).
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}

// Delete removes the tag and detaches it from every task in one transaction.
func (r *repository) Delete(t *Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM task_tag WHERE tag_id = ?`, t.ID).Error; err != nil {
			return err
		}
		return tx.Delete(t).Error
	})
}

func (r *repository) Create(t *Tag) error {
	return r.db.Create(t).Error
}
