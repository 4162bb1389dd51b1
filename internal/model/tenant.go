package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Property types accepted for a tenant record
const (
	PropertyTypeResidential = "residential"
	PropertyTypeCommercial  = "commercial"
)

// Tenant represents a rental relationship owned by a user.
// An archived tenant keeps its history; closing_date and closing_notes are
// set exactly when is_archived is true.
type Tenant struct {
	ID                string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID            string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	Name              string    `json:"name" gorm:"type:varchar(255);not null"`
	PropertyName      string    `json:"propertyName" gorm:"type:varchar(255);not null"`
	MonthlyRent       float64   `json:"monthlyRent" gorm:"not null"`
	SecurityDeposit   float64   `json:"securityDeposit" gorm:"not null"`
	StartDate         string    `json:"startDate" gorm:"type:varchar(10);not null"`
	StartMeterReading string    `json:"startMeterReading" gorm:"type:varchar(50);not null"`
	PropertyType      string    `json:"propertyType" gorm:"type:varchar(20);not null"`
	PhoneNumber       *string   `json:"phoneNumber,omitempty" gorm:"type:varchar(20)"`
	Notes             *string   `json:"notes,omitempty" gorm:"type:text"`
	IsArchived        bool      `json:"isArchived" gorm:"default:false;index"`
	ClosingDate       *string   `json:"closingDate,omitempty" gorm:"type:varchar(10)"`
	ClosingNotes      *string   `json:"closingNotes,omitempty" gorm:"type:text"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key if one is not already set
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// ValidPropertyType reports whether the given value is an accepted property type
func ValidPropertyType(pt string) bool {
	return pt == PropertyTypeResidential || pt == PropertyTypeCommercial
}
