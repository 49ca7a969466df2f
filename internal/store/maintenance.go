package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rental-backoffice/internal/common"
	"rental-backoffice/internal/models"
)

// MaintenanceStore persists maintenance requests.
type MaintenanceStore struct {
	db *gorm.DB
}

func NewMaintenanceStore(db *gorm.DB) *MaintenanceStore {
	return &MaintenanceStore{db: db}
}

// MaintenanceQuery filters and paginates maintenance listings.
type MaintenanceQuery struct {
	ListQuery
	Status     string
	Priority   string
	PropertyID string
}

// MaintenancePatch is the whitelisted set of updatable maintenance fields.
type MaintenancePatch struct {
	Title         *string
	Description   *string
	Status        *models.MaintenanceStatus
	Priority      *models.MaintenancePriority
	Cost          *decimal.Decimal
	ScheduledDate *time.Time
	CompletedDate *time.Time
	Notes         *string
}

func (p MaintenancePatch) changes() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.Priority != nil {
		updates["priority"] = *p.Priority
	}
	if p.Cost != nil {
		updates["cost"] = *p.Cost
	}
	if p.ScheduledDate != nil {
		updates["scheduled_date"] = *p.ScheduledDate
	}
	if p.CompletedDate != nil {
		updates["completed_date"] = *p.CompletedDate
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	return updates
}

var maintenanceSortColumns = map[string]string{
	"title":         "title",
	"status":        "status",
	"priority":      "priority",
	"scheduledDate": "scheduled_date",
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
}

func (s *MaintenanceStore) Create(ctx context.Context, request *models.Maintenance) error {
	if err := s.db.WithContext(ctx).Create(request).Error; err != nil {
		return common.ErrStoreFailureError("failed to create maintenance request", err)
	}
	return nil
}

func (s *MaintenanceStore) GetByID(ctx context.Context, id string, propertyIDs []string) (*models.Maintenance, error) {
	if len(propertyIDs) == 0 {
		return nil, common.ErrNotFoundError("maintenance request not found")
	}
	var request models.Maintenance
	err := s.db.WithContext(ctx).
		Preload("Property").
		Where("id = ? AND property_id IN ?", id, propertyIDs).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFoundError("maintenance request not found")
	}
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query maintenance request", err)
	}
	return &request, nil
}

func (s *MaintenanceStore) List(ctx context.Context, q MaintenanceQuery, propertyIDs []string) ([]models.Maintenance, Pagination, error) {
	q.normalize()
	if len(propertyIDs) == 0 {
		return []models.Maintenance{}, newPagination(q.ListQuery, 0), nil
	}

	tx := s.db.WithContext(ctx).Model(&models.Maintenance{}).
		Where("property_id IN ?", propertyIDs)
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Priority != "" {
		tx = tx.Where("priority = ?", q.Priority)
	}
	if q.PropertyID != "" {
		tx = tx.Where("property_id = ?", q.PropertyID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, Pagination{}, common.ErrStoreFailureError("failed to count maintenance requests", err)
	}

	var requests []models.Maintenance
	err := tx.Preload("Property").
		Order(q.orderClause(maintenanceSortColumns, "created_at")).
		Offset(q.offset()).Limit(q.Limit).
		Find(&requests).Error
	if err != nil {
		return nil, Pagination{}, common.ErrStoreFailureError("failed to list maintenance requests", err)
	}
	return requests, newPagination(q.ListQuery, total), nil
}

func (s *MaintenanceStore) Update(ctx context.Context, id string, propertyIDs []string, patch MaintenancePatch) (*models.Maintenance, error) {
	if len(propertyIDs) == 0 {
		return nil, common.ErrNotFoundError("maintenance request not found")
	}
	updates := patch.changes()
	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&models.Maintenance{}).
			Where("id = ? AND property_id IN ?", id, propertyIDs).
			Updates(updates)
		if result.Error != nil {
			return nil, common.ErrStoreFailureError("failed to update maintenance request", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, common.ErrNotFoundError("maintenance request not found")
		}
	}
	return s.GetByID(ctx, id, propertyIDs)
}

func (s *MaintenanceStore) Delete(ctx context.Context, id string, propertyIDs []string) error {
	if len(propertyIDs) == 0 {
		return common.ErrNotFoundError("maintenance request not found")
	}
	result := s.db.WithContext(ctx).
		Where("id = ? AND property_id IN ?", id, propertyIDs).
		Delete(&models.Maintenance{})
	if result.Error != nil {
		return common.ErrStoreFailureError("failed to delete maintenance request", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFoundError("maintenance request not found")
	}
	return nil
}
