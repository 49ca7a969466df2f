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

// LeaseStore persists leases and provides the query primitives the
// lifecycle engine is built on: find-active-by-property with an optional
// exclusion, active-set scans and bulk status updates.
type LeaseStore struct {
	db *gorm.DB
}

func NewLeaseStore(db *gorm.DB) *LeaseStore {
	return &LeaseStore{db: db}
}

// LeaseQuery filters and paginates lease listings.
type LeaseQuery struct {
	ListQuery
	Status     string
	PropertyID string
	TenantID   string
}

// LeasePatch is the whitelisted set of updatable lease fields.
type LeasePatch struct {
	PropertyID  *string
	TenantID    *string
	StartDate   *time.Time
	EndDate     *time.Time
	MonthlyRent *decimal.Decimal
	Status      *models.LeaseStatus
	Notes       *string
}

func (p LeasePatch) changes() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.PropertyID != nil {
		updates["property_id"] = *p.PropertyID
	}
	if p.TenantID != nil {
		updates["tenant_id"] = *p.TenantID
	}
	if p.StartDate != nil {
		updates["start_date"] = *p.StartDate
	}
	if p.EndDate != nil {
		updates["end_date"] = *p.EndDate
	}
	if p.MonthlyRent != nil {
		updates["monthly_rent"] = *p.MonthlyRent
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	return updates
}

var leaseSortColumns = map[string]string{
	"startDate": "leases.start_date",
	"endDate":   "leases.end_date",
	"status":    "leases.status",
	"createdAt": "leases.created_at",
	"updatedAt": "leases.updated_at",
}

func (s *LeaseStore) Create(ctx context.Context, lease *models.Lease) error {
	if err := s.db.WithContext(ctx).Create(lease).Error; err != nil {
		if isUniqueViolation(err) {
			return common.ErrConflictError("property already has an active lease")
		}
		return common.ErrStoreFailureError("failed to create lease", err)
	}
	return nil
}

func (s *LeaseStore) GetByID(ctx context.Context, id string, propertyIDs []string) (*models.Lease, error) {
	if len(propertyIDs) == 0 {
		return nil, common.ErrNotFoundError("lease not found")
	}
	var lease models.Lease
	err := s.db.WithContext(ctx).
		Preload("Property").Preload("Tenant").
		Where("id = ? AND property_id IN ?", id, propertyIDs).
		First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFoundError("lease not found")
	}
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query lease", err)
	}
	return &lease, nil
}

func (s *LeaseStore) List(ctx context.Context, q LeaseQuery, propertyIDs []string) ([]models.Lease, Pagination, error) {
	q.normalize()
	if len(propertyIDs) == 0 {
		return []models.Lease{}, newPagination(q.ListQuery, 0), nil
	}

	tx := s.db.WithContext(ctx).Model(&models.Lease{}).
		Where("leases.property_id IN ?", propertyIDs)
	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.
			Joins("LEFT JOIN tenants ON tenants.id = leases.tenant_id").
			Joins("LEFT JOIN properties ON properties.id = leases.property_id").
			Where("LOWER(tenants.name) LIKE LOWER(?) OR LOWER(properties.name) LIKE LOWER(?)", pattern, pattern)
	}
	if q.Status != "" {
		tx = tx.Where("leases.status = ?", q.Status)
	}
	if q.PropertyID != "" {
		tx = tx.Where("leases.property_id = ?", q.PropertyID)
	}
	if q.TenantID != "" {
		tx = tx.Where("leases.tenant_id = ?", q.TenantID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, Pagination{}, common.ErrStoreFailureError("failed to count leases", err)
	}

	var leases []models.Lease
	err := tx.Preload("Property").Preload("Tenant").
		Order(q.orderClause(leaseSortColumns, "leases.created_at")).
		Offset(q.offset()).Limit(q.Limit).
		Find(&leases).Error
	if err != nil {
		return nil, Pagination{}, common.ErrStoreFailureError("failed to list leases", err)
	}
	return leases, newPagination(q.ListQuery, total), nil
}

func (s *LeaseStore) Update(ctx context.Context, id string, patch LeasePatch) (*models.Lease, error) {
	updates := patch.changes()
	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&models.Lease{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return nil, common.ErrConflictError("property already has an active lease")
			}
			return nil, common.ErrStoreFailureError("failed to update lease", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, common.ErrNotFoundError("lease not found")
		}
	}

	var lease models.Lease
	err := s.db.WithContext(ctx).
		Preload("Property").Preload("Tenant").
		First(&lease, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFoundError("lease not found")
	}
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query lease", err)
	}
	return &lease, nil
}

func (s *LeaseStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Lease{})
	if result.Error != nil {
		return common.ErrStoreFailureError("failed to delete lease", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFoundError("lease not found")
	}
	return nil
}

// FindActiveByProperty returns the active lease on a property, or nil.
// excludeLeaseID, when non-empty, skips the lease being re-saved so an
// update does not trip on itself.
func (s *LeaseStore) FindActiveByProperty(ctx context.Context, propertyID, excludeLeaseID string) (*models.Lease, error) {
	tx := s.db.WithContext(ctx).
		Where("property_id = ? AND status = ?", propertyID, models.LeaseActive)
	if excludeLeaseID != "" {
		tx = tx.Where("id <> ?", excludeLeaseID)
	}

	var lease models.Lease
	err := tx.First(&lease).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query active lease", err)
	}
	return &lease, nil
}

// FindActive returns every active lease; the expiration sweep scans this set.
func (s *LeaseStore) FindActive(ctx context.Context) ([]models.Lease, error) {
	var leases []models.Lease
	err := s.db.WithContext(ctx).
		Where("status = ?", models.LeaseActive).
		Find(&leases).Error
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query active leases", err)
	}
	return leases, nil
}

// FindActiveByPropertyIDs returns active leases within an ownership scope,
// with property and tenant loaded for reporting.
func (s *LeaseStore) FindActiveByPropertyIDs(ctx context.Context, propertyIDs []string) ([]models.Lease, error) {
	if len(propertyIDs) == 0 {
		return []models.Lease{}, nil
	}
	var leases []models.Lease
	err := s.db.WithContext(ctx).
		Preload("Property").Preload("Tenant").
		Where("property_id IN ? AND status = ?", propertyIDs, models.LeaseActive).
		Find(&leases).Error
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query active leases", err)
	}
	return leases, nil
}

// FindByPropertyIDsAndStatus returns an owner's leases in a given status,
// most recently ended first.
func (s *LeaseStore) FindByPropertyIDsAndStatus(ctx context.Context, propertyIDs []string, status models.LeaseStatus) ([]models.Lease, error) {
	if len(propertyIDs) == 0 {
		return []models.Lease{}, nil
	}
	var leases []models.Lease
	err := s.db.WithContext(ctx).
		Preload("Property").Preload("Tenant").
		Where("property_id IN ? AND status = ?", propertyIDs, status).
		Order("end_date DESC").
		Find(&leases).Error
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query leases", err)
	}
	return leases, nil
}

// ActiveEndingBetween returns active leases whose end date falls in
// [from, to] inclusive, soonest first.
func (s *LeaseStore) ActiveEndingBetween(ctx context.Context, from, to time.Time) ([]models.Lease, error) {
	var leases []models.Lease
	err := s.db.WithContext(ctx).
		Preload("Property").Preload("Tenant").
		Where("status = ? AND end_date >= ? AND end_date <= ?", models.LeaseActive, from, to).
		Order("end_date ASC").
		Find(&leases).Error
	if err != nil {
		return nil, common.ErrStoreFailureError("failed to query expiring leases", err)
	}
	return leases, nil
}

// UpdateStatusByIDs bulk-transitions the given leases to a new status.
func (s *LeaseStore) UpdateStatusByIDs(ctx context.Context, ids []string, status models.LeaseStatus) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Model(&models.Lease{}).
		Where("id IN ?", ids).
		Update("status", status).Error
	if err != nil {
		return common.ErrStoreFailureError("failed to update lease statuses", err)
	}
	return nil
}
