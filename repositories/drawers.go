package repositories

import (
	"errors"

	"gorm.io/gorm"

	"inventory-server/apperrors"
	"inventory-server/db"
	"inventory-server/entities"
)

type drawerGormRepository struct {
	db db.Database
}

// NewDrawerRepository builds the drawer store for multi-row operations.
func NewDrawerRepository(database db.Database) DrawerRepository {
	return &drawerGormRepository{db: database}
}

// DeleteCascade removes a drawer together with every object it contains, in
// one transaction. Returns the drawer's prior state, or nil when no row
// matched.
func (r *drawerGormRepository) DeleteCascade(drawerID uint) (*entities.Drawer, error) {
	var drawer entities.Drawer
	found := false
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&drawer, drawerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		if err := tx.Where("drawer_id = ?", drawerID).Delete(&entities.Object{}).Error; err != nil {
			return err
		}
		return tx.Delete(&drawer).Error
	})
	if err != nil {
		return nil, apperrors.Storage("delete drawer", err)
	}
	if !found {
		return nil, nil
	}
	return &drawer, nil
}
