package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LeaseStatus string

const (
	LeaseActive     LeaseStatus = "active"
	LeaseExpired    LeaseStatus = "expired"
	LeaseTerminated LeaseStatus = "terminated"
)

// Lease binds a tenant to a property for an inclusive calendar date range.
// At most one active lease may exist per property at any time; the store
// enforces this with a partial unique index and the lifecycle engine checks
// it before every write. Expired and terminated are terminal states.
type Lease struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID  string          `gorm:"type:uuid;not null;index" json:"propertyId"`
	TenantID    string          `gorm:"type:uuid;not null;index" json:"tenantId"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"startDate"`
	EndDate     time.Time       `gorm:"type:date;not null" json:"endDate"`
	MonthlyRent decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"monthlyRent"`
	Status      LeaseStatus     `gorm:"size:20;not null;default:active;index" json:"status"`
	Notes       string          `gorm:"type:text" json:"notes,omitempty"`
	Property    *Property       `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Tenant      *Tenant         `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (l *Lease) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = LeaseActive
	}
	return nil
}
