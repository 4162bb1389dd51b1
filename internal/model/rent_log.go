package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment modes accepted for a rent log
const (
	PaymentModeOnline = "online"
	PaymentModeCash   = "cash"
)

// RentLog represents one recorded payment event combining rent and
// electricity charges. TenantName is a snapshot taken at creation time and
// is not updated when the tenant is renamed. Units, MeterBill and Total are
// derived from the meter readings, unit price and rent paid.
type RentLog struct {
	ID                   string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID               string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	TenantID             string    `json:"tenantId" gorm:"type:varchar(36);index;not null"`
	TenantName           string    `json:"tenantName" gorm:"type:varchar(255);not null"`
	Date                 string    `json:"date" gorm:"type:varchar(10);not null;index"`
	RentPaid             float64   `json:"rentPaid" gorm:"not null"`
	PreviousMeterReading float64   `json:"previousMeterReading" gorm:"not null"`
	CurrentMeterReading  float64   `json:"currentMeterReading" gorm:"not null"`
	Units                float64   `json:"units" gorm:"not null"`
	UnitPrice            float64   `json:"unitPrice" gorm:"not null"`
	MeterBill            float64   `json:"meterBill" gorm:"not null"`
	Total                float64   `json:"total" gorm:"not null"`
	Collector            string    `json:"collector" gorm:"type:varchar(255);not null"`
	PaymentMode          string    `json:"paymentMode" gorm:"type:varchar(10);not null"`
	Notes                string    `json:"notes" gorm:"type:text"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`

	Tenant *Tenant `json:"-" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key if one is not already set
func (r *RentLog) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// ValidPaymentMode reports whether the given value is an accepted payment mode
func ValidPaymentMode(pm string) bool {
	return pm == PaymentModeOnline || pm == PaymentModeCash
}
