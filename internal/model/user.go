package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a landlord account
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email       *string   `json:"email,omitempty" gorm:"type:varchar(100);uniqueIndex"`
	PhoneNumber *string   `json:"phoneNumber,omitempty" gorm:"type:varchar(20);uniqueIndex"`
	Password    string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if one is not already set
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
