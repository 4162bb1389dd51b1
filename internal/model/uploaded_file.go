package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadedFile stores a base64-encoded document attached to a tenant or a
// rent log. Deleting the owning record removes its files.
type UploadedFile struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null"`
	Type       string    `json:"type" gorm:"type:varchar(100);not null"`
	Size       float64   `json:"size" gorm:"not null"`
	Data       string    `json:"data" gorm:"type:text;not null"`
	UploadedAt time.Time `json:"uploadedAt"`
	TenantID   *string   `json:"tenantId,omitempty" gorm:"type:varchar(36);index"`
	RentLogID  *string   `json:"rentLogId,omitempty" gorm:"type:varchar(36);index"`

	Tenant  *Tenant  `json:"-" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	RentLog *RentLog `json:"-" gorm:"foreignKey:RentLogID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key and upload timestamp
func (f *UploadedFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.UploadedAt.IsZero() {
		f.UploadedAt = time.Now()
	}
	return nil
}
