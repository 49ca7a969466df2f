package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rental-backoffice/internal/models"
	"rental-backoffice/internal/store"
)

// MaintenanceHandler serves maintenance request CRUD, scoped to the
// caller's properties.
type MaintenanceHandler struct {
	maintenance *store.MaintenanceStore
	properties  *store.PropertyStore
}

func NewMaintenanceHandler(maintenance *store.MaintenanceStore, properties *store.PropertyStore) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance, properties: properties}
}

type createMaintenanceRequest struct {
	Title         string           `json:"title" binding:"required"`
	Description   string           `json:"description" binding:"required"`
	PropertyID    string           `json:"propertyId" binding:"required"`
	Status        string           `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority      string           `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Cost          *decimal.Decimal `json:"cost"`
	ScheduledDate string           `json:"scheduledDate"`
	Notes         string           `json:"notes"`
}

type updateMaintenanceRequest struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Status        *string          `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority      *string          `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Cost          *decimal.Decimal `json:"cost"`
	ScheduledDate *string          `json:"scheduledDate"`
	CompletedDate *string          `json:"completedDate"`
	Notes         *string          `json:"notes"`
}

func (h *MaintenanceHandler) Create(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req createMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid maintenance payload")
		return
	}

	if _, err := h.properties.GetForOwner(c.Request.Context(), req.PropertyID, ownerID); err != nil {
		respondError(c, err)
		return
	}

	request := &models.Maintenance{
		Title:       req.Title,
		Description: req.Description,
		PropertyID:  req.PropertyID,
		Status:      models.MaintenanceStatus(req.Status),
		Priority:    models.MaintenancePriority(req.Priority),
		Cost:        req.Cost,
		Notes:       req.Notes,
	}
	if req.ScheduledDate != "" {
		parsed, err := parseDate(req.ScheduledDate)
		if err != nil {
			respondBadRequest(c, "Invalid scheduledDate, expected YYYY-MM-DD")
			return
		}
		request.ScheduledDate = &parsed
	}

	if err := h.maintenance.Create(c.Request.Context(), request); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, "Maintenance request created successfully", request)
}

func (h *MaintenanceHandler) List(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	query := store.MaintenanceQuery{
		ListQuery:  listQueryFrom(c),
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		PropertyID: c.Query("propertyId"),
	}

	requests, pagination, err := h.maintenance.List(c.Request.Context(), query, propertyIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, "Maintenance requests retrieved successfully", requests, pagination)
}

func (h *MaintenanceHandler) Get(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	request, err := h.maintenance.GetByID(c.Request.Context(), c.Param("id"), propertyIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Maintenance request retrieved successfully", request)
}

func (h *MaintenanceHandler) Update(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req updateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid maintenance payload")
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	patch := store.MaintenancePatch{
		Title:       req.Title,
		Description: req.Description,
		Cost:        req.Cost,
		Notes:       req.Notes,
	}
	if req.Status != nil {
		s := models.MaintenanceStatus(*req.Status)
		patch.Status = &s
		// Completing a request stamps the completion date unless the
		// caller provides one explicitly.
		if s == models.MaintenanceCompleted && req.CompletedDate == nil {
			now := time.Now()
			patch.CompletedDate = &now
		}
	}
	if req.Priority != nil {
		p := models.MaintenancePriority(*req.Priority)
		patch.Priority = &p
	}
	if req.ScheduledDate != nil {
		parsed, err := parseDate(*req.ScheduledDate)
		if err != nil {
			respondBadRequest(c, "Invalid scheduledDate, expected YYYY-MM-DD")
			return
		}
		patch.ScheduledDate = &parsed
	}
	if req.CompletedDate != nil {
		parsed, err := parseDate(*req.CompletedDate)
		if err != nil {
			respondBadRequest(c, "Invalid completedDate, expected YYYY-MM-DD")
			return
		}
		patch.CompletedDate = &parsed
	}

	request, err := h.maintenance.Update(c.Request.Context(), c.Param("id"), propertyIDs, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Maintenance request updated successfully", request)
}

func (h *MaintenanceHandler) Delete(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	propertyIDs, err := h.properties.IDsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.maintenance.Delete(c.Request.Context(), c.Param("id"), propertyIDs); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Maintenance request deleted successfully")
}
