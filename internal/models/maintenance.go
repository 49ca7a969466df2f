package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "pending"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCancelled  MaintenanceStatus = "cancelled"
)

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
	PriorityUrgent MaintenancePriority = "urgent"
)

// Maintenance is a repair or upkeep request against a property.
type Maintenance struct {
	ID            string              `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string              `gorm:"size:200;not null" json:"title"`
	Description   string              `gorm:"type:text;not null" json:"description"`
	Status        MaintenanceStatus   `gorm:"size:20;not null;default:pending" json:"status"`
	Priority      MaintenancePriority `gorm:"size:20;not null;default:medium" json:"priority"`
	PropertyID    string              `gorm:"type:uuid;not null;index" json:"propertyId"`
	Cost          *decimal.Decimal    `gorm:"type:decimal(10,2)" json:"cost,omitempty"`
	ScheduledDate *time.Time          `gorm:"type:date" json:"scheduledDate,omitempty"`
	CompletedDate *time.Time          `gorm:"type:date" json:"completedDate,omitempty"`
	Notes         string              `gorm:"type:text" json:"notes,omitempty"`
	Property      *Property           `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

func (m *Maintenance) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = MaintenancePending
	}
	if m.Priority == "" {
		m.Priority = PriorityMedium
	}
	return nil
}
