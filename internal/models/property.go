package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PropertyType string

const (
	PropertyHouse     PropertyType = "house"
	PropertyApartment PropertyType = "apartment"
)

type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyInactive PropertyStatus = "inactive"
)

// Property is a rentable unit owned by exactly one user. Every tenant,
// lease and maintenance record is reachable only through its property's
// OwnerID; there is no direct owner key on those tables.
type Property struct {
	ID          string           `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string           `gorm:"size:200;not null" json:"name"`
	Address     string           `gorm:"type:text;not null" json:"address"`
	Type        PropertyType     `gorm:"size:20;not null" json:"type"`
	Status      PropertyStatus   `gorm:"size:20;not null;default:active" json:"status"`
	MonthlyRent *decimal.Decimal `gorm:"type:decimal(10,2)" json:"monthlyRent,omitempty"`
	OwnerID     string           `gorm:"type:uuid;not null;index" json:"ownerId"`
	Owner       *User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PropertyActive
	}
	return nil
}
