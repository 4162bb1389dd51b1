package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RentCollector is a named collector used to populate selection lists.
// RentLog.Collector matches it by name only, there is no enforced relation.
type RentCollector struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if one is not already set
func (rc *RentCollector) BeforeCreate(tx *gorm.DB) error {
	if rc.ID == "" {
		rc.ID = uuid.New().String()
	}
	return nil
}
