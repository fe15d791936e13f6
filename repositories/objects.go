package repositories

import (
	"errors"

	"gorm.io/gorm"

	"inventory-server/apperrors"
	"inventory-server/db"
	"inventory-server/entities"
)

// Guard errors from the conditional occupancy updates. Callers translate
// these into validation failures.
var (
	ErrDrawerFull  = errors.New("drawer is at capacity")
	ErrDrawerEmpty = errors.New("drawer occupancy is already zero")
)

type objectGormRepository struct {
	db db.Database
}

// NewObjectRepository builds the transactional object store.
func NewObjectRepository(database db.Database) ObjectRepository {
	return &objectGormRepository{db: database}
}

// incrOccupancy bumps a drawer's counter by +1/-1 only while the invariant
// 0 <= actual_obj <= max_obj still holds. Zero rows affected means the guard
// lost: the drawer is gone, full, or empty.
func incrOccupancy(tx *gorm.DB, drawerID uint, delta int) error {
	q := tx.Model(&entities.Drawer{})
	if delta > 0 {
		q = q.Where("id = ? AND actual_obj < max_obj", drawerID)
	} else {
		q = q.Where("id = ? AND actual_obj > 0", drawerID)
	}
	res := q.Update("actual_obj", gorm.Expr("actual_obj + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if delta > 0 {
			return ErrDrawerFull
		}
		return ErrDrawerEmpty
	}
	return nil
}

// CreateInDrawer persists obj and increments its drawer's occupancy in one
// transaction. The conditional increment makes concurrent creations safe:
// whichever writers lose the capacity race get ErrDrawerFull and nothing is
// persisted for them.
func (r *objectGormRepository) CreateInDrawer(obj *entities.Object) error {
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := incrOccupancy(tx, obj.DrawerID, +1); err != nil {
			return err
		}
		return tx.Create(obj).Error
	})
	if errors.Is(err, ErrDrawerFull) {
		return err
	}
	return apperrors.Storage("create object", err)
}

// DeleteWithOccupancy removes the object and decrements its drawer's counter
// in one transaction. Returns the object's prior state, or nil when no row
// matched.
func (r *objectGormRepository) DeleteWithOccupancy(objectID uint) (*entities.Object, error) {
	var obj entities.Object
	found := false
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&obj, objectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		if err := incrOccupancy(tx, obj.DrawerID, -1); err != nil {
			return err
		}
		return tx.Delete(&obj).Error
	})
	if err != nil {
		return nil, apperrors.Storage("delete object", err)
	}
	if !found {
		return nil, nil
	}
	return &obj, nil
}

// Move re-points the object at targetDrawerID, decrementing the source
// counter and incrementing the target counter as one transaction. A full
// target rejects the whole move with ErrDrawerFull and no partial mutation.
func (r *objectGormRepository) Move(objectID, targetDrawerID uint) (*entities.Object, error) {
	var obj entities.Object
	found := false
	err := r.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&obj, objectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		if err := incrOccupancy(tx, obj.DrawerID, -1); err != nil {
			return err
		}
		if err := incrOccupancy(tx, targetDrawerID, +1); err != nil {
			return err
		}
		return tx.Model(&obj).Update("drawer_id", targetDrawerID).Error
	})
	if errors.Is(err, ErrDrawerFull) {
		return nil, err
	}
	if err != nil {
		return nil, apperrors.Storage("move object", err)
	}
	if !found {
		return nil, nil
	}
	return &obj, nil
}
