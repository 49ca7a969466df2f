package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rental-backoffice/internal/common"
	"rental-backoffice/internal/models"
)

// PropertyStore persists properties and answers the ownership and
// availability questions the rest of the system is scoped by.
type PropertyStore struct {
	db *gorm.DB
}

func NewPropertyStore(db *gorm.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

// PropertyQuery filters and paginates property listings.
type PropertyQuery struct {
	ListQuery
	Type   string
	Status string
}

// PropertyPatch is the whitelisted set of updatable property fields.
// Absent (nil) fields are left untouched.
type PropertyPatch struct {
	Name        *string
	Address     *string
	Type        *models.PropertyType
	Status      *models.PropertyStatus
	MonthlyRent *decimal.Decimal
}

func (p PropertyPatch) changes() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Address != nil {
		updates["address"] = *p.Address
	}
	if p.Type != nil {
		updates["type"] = *p.Type
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.MonthlyRent != nil {
		updates["monthly_rent"] = *p.MonthlyRent
	}
	return updates
}

var propertySortColumns = map[string]string{
	"name":      "name",
	"type":      "type",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (s *PropertyStore) Create(ctx context.Context, property *models.Property) error {
	if err := s.db.WithContext(ctx).Create(property).Error; err != nil {
		return common.ErrStoreFailureError("failed to create property", err)
	}
	return nil
}

// GetForOwner treats "not yours" the same as "does not exist".
func (s *PropertyStore) GetForOwner(ctx context.Context, id, ownerID string) (*models.Property, error) {
	var property models.Property
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&property).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFoundError("property not found")
	}
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query property", err)
	}
	return &property, nil
}

func (s *PropertyStore) List(ctx context.Context, q PropertyQuery, ownerID string) ([]models.Property, Pagination, error) {
	q.normalize()

	tx := s.db.WithContext(ctx).Model(&models.Property{}).Where("owner_id = ?", ownerID)
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("LOWER(name) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)", pattern, pattern)
	}
	if q.Type != "" {
		tx = tx.Where("type = ?", q.Type)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, Pagination{}, common.ErrStoreFailureError("failed to count properties", err)
	}

	var properties []models.Property
	err := tx.Order(q.orderClause(propertySortColumns, "created_at")).
		Offset(q.offset()).Limit(q.Limit).
		Find(&properties).Error
	if err != nil {
		return nil, Pagination{}, common.ErrStoreFailureError("failed to list properties", err)
	}
	return properties, newPagination(q.ListQuery, total), nil
}

func (s *PropertyStore) Update(ctx context.Context, id, ownerID string, patch PropertyPatch) (*models.Property, error) {
	updates := patch.changes()
	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&models.Property{}).
			Where("id = ? AND owner_id = ?", id, ownerID).
			Updates(updates)
		if result.Error != nil {
			return nil, common.ErrStoreFailureError("failed to update property", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, common.ErrNotFoundError("property not found")
		}
	}
	return s.GetForOwner(ctx, id, ownerID)
}

func (s *PropertyStore) Delete(ctx context.Context, id, ownerID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Property{})
	if result.Error != nil {
		return common.ErrStoreFailureError("failed to delete property", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFoundError("property not found")
	}
	return nil
}

// IDsByOwner returns the ownership scope used to filter every tenant,
// lease and maintenance query.
func (s *PropertyStore) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&models.Property{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query owned properties", err)
	}
	return ids, nil
}

// FindAvailable returns the owner's properties with no active lease.
// Active leases are the single availability predicate; tenant status
// plays no part in it.
func (s *PropertyStore) FindAvailable(ctx context.Context, ownerID string) ([]models.Property, error) {
	activeLeases := s.db.Model(&models.Lease{}).
		Select("property_id").
		Where("status = ?", models.LeaseActive)

	var properties []models.Property
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where("id NOT IN (?)", activeLeases).
		Find(&properties).Error
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query available properties", err)
	}
	return properties, nil
}

// IsAvailable reports whether a property has no active lease.
func (s *PropertyStore) IsAvailable(ctx context.Context, propertyID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Lease{}).
		Where("property_id = ? AND status = ?", propertyID, models.LeaseActive).
		Count(&count).Error
	if err != nil {
		return false, common.ErrStoreFailureError("failed to check availability", err)
	}
	return count == 0, nil
}
