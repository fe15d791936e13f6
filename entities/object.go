package entities

import (
	"strings"
	"time"

	"inventory-server/apperrors"
)

// SizeConcept classifies an object's size.
type SizeConcept string

const (
	SizeTiny   SizeConcept = "TINY"
	SizeSmall  SizeConcept = "SMALL"
	SizeMedium SizeConcept = "MEDIUM"
	SizeLarge  SizeConcept = "LARGE"
	SizeXLarge SizeConcept = "XLARGE"
)

// ParseSizeConcept validates and normalizes a size value from a request.
func ParseSizeConcept(value string) (SizeConcept, error) {
	switch SizeConcept(strings.ToUpper(value)) {
	case SizeTiny, SizeSmall, SizeMedium, SizeLarge, SizeXLarge:
		return SizeConcept(strings.ToUpper(value)), nil
	}
	return "", apperrors.Validation("invalid size concept %q: must be one of TINY, SMALL, MEDIUM, LARGE, XLARGE", value)
}

// Object is an inventory item stored in one drawer and tagged with one type.
type Object struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Name         string      `gorm:"index;not null;size:100" json:"name"`
	SizeConcept  SizeConcept `gorm:"index;not null;size:10" json:"size_concept"`
	DrawerID     uint        `gorm:"index;not null" json:"drawer_id"`
	ObjectTypeID uint        `gorm:"index;not null" json:"object_type_id"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
