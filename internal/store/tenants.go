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

// TenantStore persists tenants. All reads are scoped to a set of owned
// property IDs resolved by the caller.
type TenantStore struct {
	db *gorm.DB
}

func NewTenantStore(db *gorm.DB) *TenantStore {
	return &TenantStore{db: db}
}

// TenantQuery filters and paginates tenant listings.
type TenantQuery struct {
	ListQuery
	Status     string
	PropertyID string
}

// TenantPatch is the whitelisted set of updatable tenant fields.
type TenantPatch struct {
	Name          *string
	Phone         *string
	Email         *string
	Address       *string
	IDNumber      *string
	Status        *models.TenantStatus
	Payment       *decimal.Decimal
	PaymentDate   *time.Time
	PaymentMethod *models.PaymentMethod
	MonthsPaid    *int
	StayStartDate *time.Time
	StayEndDate   *time.Time
	PropertyID    *string
}

func (p TenantPatch) changes() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.Address != nil {
		updates["address"] = *p.Address
	}
	if p.IDNumber != nil {
		updates["id_number"] = *p.IDNumber
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.Payment != nil {
		updates["payment"] = *p.Payment
	}
	if p.PaymentDate != nil {
		updates["payment_date"] = *p.PaymentDate
	}
	if p.PaymentMethod != nil {
		updates["payment_method"] = *p.PaymentMethod
	}
	if p.MonthsPaid != nil {
		updates["months_paid"] = *p.MonthsPaid
	}
	if p.StayStartDate != nil {
		updates["stay_start_date"] = *p.StayStartDate
	}
	if p.StayEndDate != nil {
		updates["stay_end_date"] = *p.StayEndDate
	}
	if p.PropertyID != nil {
		updates["property_id"] = *p.PropertyID
	}
	return updates
}

var tenantSortColumns = map[string]string{
	"name":      "tenants.name",
	"status":    "tenants.status",
	"createdAt": "tenants.created_at",
	"updatedAt": "tenants.updated_at",
}

func (s *TenantStore) Create(ctx context.Context, tenant *models.Tenant) error {
	if err := s.db.WithContext(ctx).Create(tenant).Error; err != nil {
		return common.ErrStoreFailureError("failed to create tenant", err)
	}
	return nil
}

func (s *TenantStore) GetByID(ctx context.Context, id string, propertyIDs []string) (*models.Tenant, error) {
	if len(propertyIDs) == 0 {
		return nil, common.ErrNotFoundError("tenant not found")
	}
	var tenant models.Tenant
	err := s.db.WithContext(ctx).
		Preload("Property").
		Where("id = ? AND property_id IN ?", id, propertyIDs).
		First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFoundError("tenant not found")
	}
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query tenant", err)
	}
	return &tenant, nil
}

func (s *TenantStore) List(ctx context.Context, q TenantQuery, propertyIDs []string) ([]models.Tenant, Pagination, error) {
	q.normalize()
	if len(propertyIDs) == 0 {
		return []models.Tenant{}, newPagination(q.ListQuery, 0), nil
	}

	tx := s.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("tenants.property_id IN ?", propertyIDs)
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where("LOWER(tenants.name) LIKE LOWER(?) OR tenants.phone LIKE ?", pattern, pattern)
	}
	if q.Status != "" {
		tx = tx.Where("tenants.status = ?", q.Status)
	}
	if q.PropertyID != "" {
		tx = tx.Where("tenants.property_id = ?", q.PropertyID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, Pagination{}, common.ErrStoreFailureError("failed to count tenants", err)
	}

	var tenants []models.Tenant
	err := tx.Preload("Property").
		Order(q.orderClause(tenantSortColumns, "tenants.created_at")).
		Offset(q.offset()).Limit(q.Limit).
		Find(&tenants).Error
	if err != nil {
		return nil, Pagination{}, common.ErrStoreFailureError("failed to list tenants", err)
	}
	return tenants, newPagination(q.ListQuery, total), nil
}

func (s *TenantStore) Update(ctx context.Context, id string, propertyIDs []string, patch TenantPatch) (*models.Tenant, error) {
	if len(propertyIDs) == 0 {
		return nil, common.ErrNotFoundError("tenant not found")
	}
	updates := patch.changes()
	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&models.Tenant{}).
			Where("id = ? AND property_id IN ?", id, propertyIDs).
			Updates(updates)
		if result.Error != nil {
			return nil, common.ErrStoreFailureError("failed to update tenant", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, common.ErrNotFoundError("tenant not found")
		}
	}
	return s.GetByID(ctx, id, propertyIDs)
}

func (s *TenantStore) Delete(ctx context.Context, id string, propertyIDs []string) error {
	if len(propertyIDs) == 0 {
		return common.ErrNotFoundError("tenant not found")
	}
	result := s.db.WithContext(ctx).
		Where("id = ? AND property_id IN ?", id, propertyIDs).
		Delete(&models.Tenant{})
	if result.Error != nil {
		return common.ErrStoreFailureError("failed to delete tenant", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFoundError("tenant not found")
	}
	return nil
}

// FindByProperty returns the tenant attached to a property, if any.
func (s *TenantStore) FindByProperty(ctx context.Context, tenantID, propertyID string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.WithContext(ctx).
		Where("id = ? AND property_id = ?", tenantID, propertyID).
		First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query tenant", err)
	}
	return &tenant, nil
}
