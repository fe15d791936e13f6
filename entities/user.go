package entities

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an account holder, keyed by national ID document.
type User struct {
	DNI          string    `gorm:"column:dni;primaryKey;size:20" json:"dni"`
	Username     string    `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null;size:100" json:"email"`
	PasswordHash string    `gorm:"not null;size:100" json:"-"`
	JWTToken     string    `gorm:"column:jwt_token;size:512" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SetPassword stores a bcrypt hash of plain. The plaintext is never kept.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
