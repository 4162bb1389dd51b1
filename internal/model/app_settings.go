package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultUnitPrice is the electricity unit price seeded for new accounts
const DefaultUnitPrice = 8

// AppSettings holds the per-user application settings, one row per user
type AppSettings struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID           string    `json:"userId" gorm:"type:varchar(36);uniqueIndex;not null"`
	DefaultUnitPrice float64   `json:"defaultUnitPrice" gorm:"not null;default:8"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if one is not already set
func (s *AppSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
