package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"rental-backoffice/internal/models"
	"rental-backoffice/internal/store"
)

// PropertyHandler serves property CRUD and availability lookups.
type PropertyHandler struct {
	properties *store.PropertyStore
}

func NewPropertyHandler(properties *store.PropertyStore) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

type createPropertyRequest struct {
	Name        string           `json:"name" binding:"required"`
	Address     string           `json:"address" binding:"required"`
	Type        string           `json:"type" binding:"required,oneof=house apartment"`
	Status      string           `json:"status" binding:"omitempty,oneof=active inactive"`
	MonthlyRent *decimal.Decimal `json:"monthlyRent"`
}

type updatePropertyRequest struct {
	Name        *string          `json:"name"`
	Address     *string          `json:"address"`
	Type        *string          `json:"type" binding:"omitempty,oneof=house apartment"`
	Status      *string          `json:"status" binding:"omitempty,oneof=active inactive"`
	MonthlyRent *decimal.Decimal `json:"monthlyRent"`
}

func (h *PropertyHandler) Create(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid property payload")
		return
	}

	property := &models.Property{
		Name:        req.Name,
		Address:     req.Address,
		Type:        models.PropertyType(req.Type),
		Status:      models.PropertyStatus(req.Status),
		MonthlyRent: req.MonthlyRent,
		OwnerID:     ownerID,
	}
	if err := h.properties.Create(c.Request.Context(), property); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, "Property created successfully", property)
}

func (h *PropertyHandler) List(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	query := store.PropertyQuery{
		ListQuery: listQueryFrom(c),
		Type:      c.Query("type"),
		Status:    c.Query("status"),
	}

	properties, pagination, err := h.properties.List(c.Request.Context(), query, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, "Properties retrieved successfully", properties, pagination)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	property, err := h.properties.GetForOwner(c.Request.Context(), c.Param("id"), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Property retrieved successfully", property)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid property payload")
		return
	}

	patch := store.PropertyPatch{
		Name:        req.Name,
		Address:     req.Address,
		MonthlyRent: req.MonthlyRent,
	}
	if req.Type != nil {
		t := models.PropertyType(*req.Type)
		patch.Type = &t
	}
	if req.Status != nil {
		s := models.PropertyStatus(*req.Status)
		patch.Status = &s
	}

	property, err := h.properties.Update(c.Request.Context(), c.Param("id"), ownerID, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Property updated successfully", property)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	id := c.Param("id")

	if _, err := h.properties.GetForOwner(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}

	available, err := h.properties.IsAvailable(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !available {
		c.JSON(http.StatusConflict, apiResponse{
			Success: false,
			Message: "Cannot delete property with active leases",
		})
		return
	}

	if err := h.properties.Delete(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "Property deleted successfully")
}

// Availability answers "is this property currently occupied" from the
// active-lease predicate.
func (h *PropertyHandler) Availability(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}
	id := c.Param("id")

	if _, err := h.properties.GetForOwner(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}

	available, err := h.properties.IsAvailable(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Property availability checked successfully", gin.H{
		"isAvailable": available,
	})
}

func (h *PropertyHandler) Available(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	properties, err := h.properties.FindAvailable(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, "Available properties retrieved successfully", properties)
}

// listQueryFrom parses the shared pagination parameters.
func listQueryFrom(c *gin.Context) store.ListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return store.ListQuery{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Search:    c.Query("search"),
	}
}
