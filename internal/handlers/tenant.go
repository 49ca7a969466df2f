package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rental-backoffice/internal/models"
	"rental-backoffice/internal/store"
)

// TenantHandler serves tenant CRUD, scoped to the caller's properties.
type TenantHandler struct {
	tenants    *store.TenantStore
	properties *store.PropertyStore
}

func NewTenantHandler(tenants *store.TenantStore, properties *store.PropertyStore) *TenantHandler {
	return &TenantHandler{tenants: tenants, properties: properties}
}

type createTenantRequest struct {
	Name          string           `json:"name" binding:"required"`
	Phone         string           `json:"phone" binding:"required"`
	Email         string           `json:"email" binding:"omitempty,email"`
	Address       string           `json:"address"`
	IDNumber      string           `json:"idNumber" binding:"required,len=16,numeric"`
	PropertyID    string           `json:"propertyId" binding:"required"`
	Status        string           `json:"status" binding:"omitempty,oneof=active inactive evicted"`
	Payment       *decimal.Decimal `json:"payment"`
	PaymentDate   string           `json:"paymentDate"`
	PaymentMethod string           `json:"paymentMethod" binding:"omitempty,oneof=cash bank mobile_money"`
	MonthsPaid    *int             `json:"monthsPaid" binding:"omitempty,min=0"`
	StayStartDate string           `json:"stayStartDate"`
	StayEndDate   string           `json:"stayEndDate"`
}

type updateTenantRequest struct {
	Name          *string          `json:"name"`
	Phone         *string          `json:"phone"`
	Email         *string          `json:"email" binding:"omitempty,email"`
	Address       *string          `json:"address"`
	IDNumber      *string          `json:"idNumber" binding:"omitempty,len=16,numeric"`
	Status        *string          `json:"status" binding:"omitempty,oneof=active inactive evicted"`
	Payment       *decimal.Decimal `json:"payment"`
	PaymentDate   *string          `json:"paymentDate"`
	PaymentMethod *string          `json:"paymentMethod" binding:"omitempty,oneof=cash bank mobile_money"`
	MonthsPaid    *int             `json:"monthsPaid" binding:"omitempty,min=0"`
	StayStartDate *string          `json:"stayStartDate"`
	StayEndDate   *string          `json:"stayEndDate"`
	PropertyID    *string          `json:"propertyId"`
}

func (h *TenantHandler) Create(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid tenant payload")
		return
	}

	if _, err := h.properties.GetForOwner(c.Request.Context(), req.PropertyID, ownerID); err != nil {
		respondError(c, err)
		return
	}

	available, err := h.properties.IsAvailable(c.Request.Context(), req.PropertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !available {
		c.JSON(http.StatusConflict, apiResponse{
			Success: false,
			Message: "Property is not available for new tenants",
		})
		return
	}

	tenant := &models.Tenant{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		IDNumber:      req.IDNumber,
		PropertyID:    req.PropertyID,
		Status:        models.TenantStatus(req.Status),
		Payment:       req.Payment,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		MonthsPaid:    req.MonthsPaid,
	}

	dates := []struct {
		value  string
		target **time.Time
	}{
		{req.PaymentDate, &tenant.PaymentDate},
		{req.StayStartDate, &tenant.StayStartDate},
		{req.StayEndDate, &tenant.StayEndDate},
	}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		parsed, err := parseDate(d.value)
		if err != nil {
			respondBadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		*d.target = &parsed
	}

	if err := h.tenants.Create(c.Request.Context(), tenant); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, "Tenant created successfully", tenant)
}

func (h *TenantHandler) List(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	query := store.TenantQuery{
		ListQuery:  listQueryFrom(c),
		Status:     c.Query("status"),
		PropertyID: c.Query("propertyId"),
	}

	tenants, pagination, err := h.tenants.List(c.Request.Context(), query, propertyIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, "Tenants retrieved successfully", tenants, pagination)
}

func (h *TenantHandler) Get(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	tenant, err := h.tenants.GetByID(c.Request.Context(), c.Param("id"), propertyIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Tenant retrieved successfully", tenant)
}

func (h *TenantHandler) Update(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req updateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid tenant payload")
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Moving a tenant to another property requires owning the target too.
	if req.PropertyID != nil {
		if _, err := h.properties.GetForOwner(c.Request.Context(), *req.PropertyID, ownerID); err != nil {
			respondError(c, err)
			return
		}
	}

	patch := store.TenantPatch{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		IDNumber:   req.IDNumber,
		Payment:    req.Payment,
		MonthsPaid: req.MonthsPaid,
		PropertyID: req.PropertyID,
	}
	if req.Status != nil {
		s := models.TenantStatus(*req.Status)
		patch.Status = &s
	}
	if req.PaymentMethod != nil {
		m := models.PaymentMethod(*req.PaymentMethod)
		patch.PaymentMethod = &m
	}

	dates := []struct {
		value  *string
		target **time.Time
	}{
		{req.PaymentDate, &patch.PaymentDate},
		{req.StayStartDate, &patch.StayStartDate},
		{req.StayEndDate, &patch.StayEndDate},
	}
	for _, d := range dates {
		if d.value == nil {
			continue
		}
		parsed, err := parseDate(*d.value)
		if err != nil {
			respondBadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		*d.target = &parsed
	}

	tenant, err := h.tenants.Update(c.Request.Context(), c.Param("id"), propertyIDs, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Tenant updated successfully", tenant)
}

func (h *TenantHandler) Delete(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.tenants.Delete(c.Request.Context(), c.Param("id"), propertyIDs); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Tenant deleted successfully")
}
