package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TenantStatus string

const (
	TenantActive   TenantStatus = "active"
	TenantInactive TenantStatus = "inactive"
	TenantEvicted  TenantStatus = "evicted"
)

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "cash"
	PaymentBank        PaymentMethod = "bank"
	PaymentMobileMoney PaymentMethod = "mobile_money"
)

// Tenant is a person renting a property. Payment tracking fields are
// optional bookkeeping; occupancy itself is decided by active leases,
// not by tenant status.
type Tenant struct {
	ID            string           `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string           `gorm:"size:100;not null" json:"name"`
	Phone         string           `gorm:"size:20;not null" json:"phone"`
	Email         string           `gorm:"size:100" json:"email,omitempty"`
	Address       string           `gorm:"type:text" json:"address,omitempty"`
	IDNumber      string           `gorm:"size:16" json:"idNumber,omitempty"`
	Status        TenantStatus     `gorm:"size:20;not null;default:active" json:"status"`
	Payment       *decimal.Decimal `gorm:"type:decimal(10,2)" json:"payment,omitempty"`
	PaymentDate   *time.Time       `gorm:"type:date" json:"paymentDate,omitempty"`
	PaymentMethod PaymentMethod    `gorm:"size:20" json:"paymentMethod,omitempty"`
	MonthsPaid    *int             `json:"monthsPaid,omitempty"`
	StayStartDate *time.Time       `gorm:"type:date" json:"stayStartDate,omitempty"`
	StayEndDate   *time.Time       `gorm:"type:date" json:"stayEndDate,omitempty"`
	PropertyID    string           `gorm:"type:uuid;not null;index" json:"propertyId"`
	Property      *Property        `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = TenantActive
	}
	return nil
}
