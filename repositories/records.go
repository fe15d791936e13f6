package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inventory-server/apperrors"
	"inventory-server/db"
)

// byPrimaryKey builds an equality condition on the model's primary key
// column, whatever it is named. Works for numeric and string keys alike.
func byPrimaryKey(id any) clause.Eq {
	return clause.Eq{Column: clause.PrimaryColumn, Value: id}
}

type gormRecordStore[T any] struct {
	db db.Database
}

// NewRecordStore builds a RecordStore for entity T backed by gorm.
func NewRecordStore[T any](database db.Database) RecordStore[T] {
	return &gormRecordStore[T]{db: database}
}

func (s *gormRecordStore[T]) Create(rec *T) error {
	err := s.db.GetDB().Transaction(func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
	return apperrors.Storage("create record", err)
}

func (s *gormRecordStore[T]) GetByID(id any) (*T, error) {
	var rec T
	err := s.db.GetDB().Where(byPrimaryKey(id)).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Storage("get record", err)
	}
	return &rec, nil
}

// GetMany returns rows with pagination. A non-positive limit means no cap,
// so full-collection reads see every row.
func (s *gormRecordStore[T]) GetMany(skip, limit int) ([]T, error) {
	q := s.db.GetDB()
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []T
	if err := q.Find(&recs).Error; err != nil {
		return nil, apperrors.Storage("list records", err)
	}
	return recs, nil
}

// FilterBy returns matching rows. As with GetMany, a non-positive limit
// means no cap.
func (s *gormRecordStore[T]) FilterBy(filters map[string]any, skip, limit int, orderBy string) ([]T, error) {
	q := s.db.GetDB()
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if len(filters) > 0 {
		q = q.Where(filters)
	}
	if orderBy != "" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: orderBy}})
	}
	var recs []T
	if err := q.Find(&recs).Error; err != nil {
		return nil, apperrors.Storage("filter records", err)
	}
	return recs, nil
}

func (s *gormRecordStore[T]) Update(id any, fields map[string]any) (*T, error) {
	var rec T
	found := false
	err := s.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(byPrimaryKey(id)).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		return tx.Model(&rec).Updates(fields).Error
	})
	if err != nil {
		return nil, apperrors.Storage("update record", err)
	}
	if !found {
		return nil, nil
	}
	return &rec, nil
}

func (s *gormRecordStore[T]) Delete(id any) (*T, error) {
	var rec T
	found := false
	err := s.db.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(byPrimaryKey(id)).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		return tx.Delete(&rec).Error
	})
	if err != nil {
		return nil, apperrors.Storage("delete record", err)
	}
	if !found {
		return nil, nil
	}
	return &rec, nil
}

func (s *gormRecordStore[T]) Count(filters map[string]any) (int64, error) {
	var rec T
	q := s.db.GetDB().Model(&rec)
	if len(filters) > 0 {
		q = q.Where(filters)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, apperrors.Storage("count records", err)
	}
	return n, nil
}
