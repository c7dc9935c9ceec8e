package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Role elevation happens outside this service.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account that can publish recipes and follow other users
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username     string    `json:"username" db:"username" gorm:"type:varchar(150);not null;unique;uniqueIndex:idx_users_signup"`
	Email        string    `json:"email" db:"email" gorm:"type:varchar(254);not null;unique;uniqueIndex:idx_users_signup"`
	FirstName    string    `json:"firstName" db:"first_name" gorm:"type:varchar(150);not null"`
	LastName     string    `json:"lastName" db:"last_name" gorm:"type:varchar(150);not null"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:varchar(150);not null"`
	Role         string    `json:"role" db:"role" gorm:"type:text;not null;default:user"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
