package entities

import "time"

// Drawer is a capacity-bounded container of objects owned by one user.
// Invariant: 0 <= ActualObj <= MaxObj after every operation.
type Drawer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index;not null;size:100" json:"name"`
	MaxObj    int       `gorm:"not null" json:"max_obj"`
	ActualObj int       `gorm:"not null;default:0" json:"actual_obj"`
	UserID    string    `gorm:"index;not null;size:20" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasCapacity reports whether another object fits.
func (d *Drawer) HasCapacity() bool {
	return d.ActualObj < d.MaxObj
}
