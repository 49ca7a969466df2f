package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rental-backoffice/internal/lease"
	"rental-backoffice/internal/models"
	"rental-backoffice/internal/report"
	"rental-backoffice/internal/store"
)

// LeaseHandler serves lease CRUD plus the lifecycle operations: the
// on-demand expiration sweep, the expiring-soon lookahead and the
// monthly revenue summary.
type LeaseHandler struct {
	leases     *store.LeaseStore
	properties *store.PropertyStore
	tenants    *store.TenantStore
	engine     *lease.Engine
}

func NewLeaseHandler(leases *store.LeaseStore, properties *store.PropertyStore, tenants *store.TenantStore, engine *lease.Engine) *LeaseHandler {
	return &LeaseHandler{leases: leases, properties: properties, tenants: tenants, engine: engine}
}

type createLeaseRequest struct {
	PropertyID  string          `json:"propertyId" binding:"required"`
	TenantID    string          `json:"tenantId" binding:"required"`
	StartDate   string          `json:"startDate" binding:"required"`
	EndDate     string          `json:"endDate" binding:"required"`
	MonthlyRent decimal.Decimal `json:"monthlyRent" binding:"required"`
	Notes       string          `json:"notes"`
}

type updateLeaseRequest struct {
	PropertyID  *string          `json:"propertyId"`
	TenantID    *string          `json:"tenantId"`
	StartDate   *string          `json:"startDate"`
	EndDate     *string          `json:"endDate"`
	MonthlyRent *decimal.Decimal `json:"monthlyRent"`
	Status      *string          `json:"status" binding:"omitempty,oneof=active expired terminated"`
	Notes       *string          `json:"notes"`
}

func (h *LeaseHandler) Create(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req createLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid lease payload")
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondBadRequest(c, "Invalid startDate, expected YYYY-MM-DD")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		respondBadRequest(c, "Invalid endDate, expected YYYY-MM-DD")
		return
	}
	if endDate.Before(startDate) {
		respondBadRequest(c, "endDate must not be before startDate")
		return
	}

	ctx := c.Request.Context()

	if _, err := h.properties.GetForOwner(ctx, req.PropertyID, ownerID); err != nil {
		respondError(c, err)
		return
	}

	tenant, err := h.tenants.FindByProperty(ctx, req.TenantID, req.PropertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	if tenant == nil {
		c.JSON(http.StatusNotFound, apiResponse{
			Success: false,
			Message: "Tenant not found or not associated with this property",
		})
		return
	}

	conflict, err := h.engine.ValidateNewActiveLease(ctx, req.PropertyID, "")
	if err != nil {
		respondError(c, err)
		return
	}
	if conflict {
		c.JSON(http.StatusConflict, apiResponse{
			Success: false,
			Message: "Property already has an active lease",
		})
		return
	}

	newLease := &models.Lease{
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		StartDate:   startDate,
		EndDate:     endDate,
		MonthlyRent: req.MonthlyRent,
		Status:      models.LeaseActive,
		Notes:       req.Notes,
	}
	if err := h.leases.Create(ctx, newLease); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, "Lease created successfully", newLease)
}

func (h *LeaseHandler) List(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	query := store.LeaseQuery{
		ListQuery:  listQueryFrom(c),
		Status:     c.Query("status"),
		PropertyID: c.Query("propertyId"),
		TenantID:   c.Query("tenantId"),
	}

	leases, pagination, err := h.leases.List(c.Request.Context(), query, propertyIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, "Leases retrieved successfully", leases, pagination)
}

func (h *LeaseHandler) Get(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	found, err := h.leases.GetByID(c.Request.Context(), c.Param("id"), propertyIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Lease retrieved successfully", found)
}

func (h *LeaseHandler) Update(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	id := c.Param("id")

	var req updateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid lease payload")
		return
	}

	ctx := c.Request.Context()

	propertyIDs, err := h.properties.IDsByOwner(ctx, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	existing, err := h.leases.GetByID(ctx, id, propertyIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	// Moving the lease to another property requires owning the target too.
	if req.PropertyID != nil && *req.PropertyID != existing.PropertyID {
		if _, err := h.properties.GetForOwner(ctx, *req.PropertyID, ownerID); err != nil {
			respondError(c, err)
			return
		}
	}

	patch := store.LeasePatch{
		PropertyID:  req.PropertyID,
		TenantID:    req.TenantID,
		MonthlyRent: req.MonthlyRent,
		Notes:       req.Notes,
	}
	if req.StartDate != nil {
		parsed, err := parseDate(*req.StartDate)
		if err != nil {
			respondBadRequest(c, "Invalid startDate, expected YYYY-MM-DD")
			return
		}
		patch.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			respondBadRequest(c, "Invalid endDate, expected YYYY-MM-DD")
			return
		}
		patch.EndDate = &parsed
	}
	if req.Status != nil {
		s := models.LeaseStatus(*req.Status)
		patch.Status = &s
	}

	// Re-activating (or keeping active while re-homing) must pass the
	// conflict guard, excluding the lease being saved.
	if willBeActive(existing, patch) {
		targetProperty := existing.PropertyID
		if patch.PropertyID != nil {
			targetProperty = *patch.PropertyID
		}
		conflict, err := h.engine.ValidateNewActiveLease(ctx, targetProperty, id)
		if err != nil {
			respondError(c, err)
			return
		}
		if conflict {
			c.JSON(http.StatusConflict, apiResponse{
				Success: false,
				Message: "Property already has an active lease",
			})
			return
		}
	}

	updated, err := h.leases.Update(ctx, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Lease updated successfully", updated)
}

func willBeActive(existing *models.Lease, patch store.LeasePatch) bool {
	if patch.Status != nil {
		return *patch.Status == models.LeaseActive
	}
	return existing.Status == models.LeaseActive && patch.PropertyID != nil
}

func (h *LeaseHandler) Delete(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := h.leases.GetByID(c.Request.Context(), c.Param("id"), propertyIDs); err != nil {
		respondError(c, err)
		return
	}

	if err := h.leases.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Lease deleted successfully")
}

// CheckExpired runs the expiration sweep on demand and returns the
// caller's expired leases alongside the number just transitioned.
func (h *LeaseHandler) CheckExpired(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	updatedCount, err := h.engine.SweepExpiredLeases(ctx, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(ctx, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	expired, err := h.leases.FindByPropertyIDsAndStatus(ctx, propertyIDs, models.LeaseExpired)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Checked expired leases", gin.H{
		"updatedCount":  updatedCount,
		"expiredLeases": expired,
	})
}

// ExpiringSoon lists the caller's active leases ending within the horizon.
func (h *LeaseHandler) ExpiringSoon(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	expiring, err := h.engine.FindExpiringSoon(ctx, days, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(ctx, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	owned := make(map[string]bool, len(propertyIDs))
	for _, id := range propertyIDs {
		owned[id] = true
	}

	scoped := make([]models.Lease, 0, len(expiring))
	for _, l := range expiring {
		if owned[l.PropertyID] {
			scoped = append(scoped, l)
		}
	}

	respondData(c, http.StatusOK, "Leases expiring soon retrieved successfully", scoped)
}

// MonthlyRevenue sums rent over the caller's active leases. Year and
// month are echoed back for display; they do not filter which leases are
// summed — "all currently active" is the contract.
func (h *LeaseHandler) MonthlyRevenue(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		respondBadRequest(c, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		respondBadRequest(c, "Invalid month")
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(ctx, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	active, err := h.leases.FindActiveByPropertyIDs(ctx, propertyIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	summary := report.ComputeRevenue(active)

	respondData(c, http.StatusOK, "Monthly revenue calculated successfully", gin.H{
		"year":             year,
		"month":            month,
		"totalRevenue":     summary.TotalRevenue,
		"activeLeases":     summary.ActiveLeases,
		"revenueBreakdown": summary.Breakdown,
	})
}
