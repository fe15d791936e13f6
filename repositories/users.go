package repositories

import (
	"errors"

	"gorm.io/gorm"

	"inventory-server/apperrors"
	"inventory-server/db"
	"inventory-server/entities"
)

type userGormRepository struct {
	db db.Database
}

// NewUserRepository builds the user store for the deletion purge.
func NewUserRepository(database db.Database) UserRepository {
	return &userGormRepository{db: database}
}

// PurgeUser deletes a user together with everything the user owns: action
// history, objects inside the user's drawers, and the drawers themselves.
// One transaction; returns the user's prior state, or nil when no row
// matched.
func (r *userGormRepository) PurgeUser(dni string) (*entities.User, error) {
	var user entities.User
	found := false
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("dni = ?", dni).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		var drawerIDs []uint
		if err := tx.Model(&entities.Drawer{}).Where("user_id = ?", dni).Pluck("id", &drawerIDs).Error; err != nil {
			return err
		}
		if len(drawerIDs) > 0 {
			if err := tx.Where("drawer_id IN ?", drawerIDs).Delete(&entities.Object{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", drawerIDs).Delete(&entities.Drawer{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", dni).Delete(&entities.ActionHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return nil, apperrors.Storage("purge user", err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}
