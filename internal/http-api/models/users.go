package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"` // bcrypt hash once persisted
	Created   time.Time  `gorm:"type:date;not null" json:"created"`
	Modified  *time.Time `gorm:"type:date" json:"modified"` // nil until the first update
	LastLogin *time.Time `gorm:"type:date" json:"last_login,omitempty"`
	Token     string     `gorm:"type:text" json:"token"`
	IsActive  *bool      `gorm:"column:is_active" json:"is_active"`
	Phones    []Phone    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"phones"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
