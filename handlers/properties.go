package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/models"
)

type PropertyHandler struct {
	db *gorm.DB
}

func NewPropertyHandler(db *gorm.DB) *PropertyHandler {
	return &PropertyHandler{db: db}
}

type PropertyRequest struct {
	Name          string `json:"name" binding:"required"`
	StreetAddress string `json:"street_address" binding:"required"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	PropertyType  string `json:"property_type"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}

func (h *PropertyHandler) getOwned(ownerID, id uint) (*models.Property, error) {
	var property models.Property
	err := h.db.Scopes(models.NotDeleted, models.OwnedBy(ownerID)).First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (h *PropertyHandler) Create(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	property := models.Property{
		OwnerID:       ownerID,
		Name:          req.Name,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		PropertyType:  req.PropertyType,
		Status:        req.Status,
		Notes:         req.Notes,
	}
	if property.PropertyType == "" {
		property.PropertyType = "single_family"
	}
	if property.Status == "" {
		property.Status = models.PropertyStatusActive
	}

	if err := h.db.Create(&property).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to create property")
		return
	}
	respondOK(c, http.StatusCreated, property)
}

func (h *PropertyHandler) List(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	page, pageSize := pageParams(c)
	q := h.db.Model(&models.Property{}).Scopes(models.NotDeleted, models.OwnedBy(ownerID))
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to fetch properties")
		return
	}

	var properties []models.Property
	if err := q.Preload("Units", models.NotDeleted).
		Offset((page - 1) * pageSize).Limit(pageSize).
		Order("created_at DESC").Find(&properties).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to fetch properties")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"results":   properties,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *PropertyHandler) Get(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var property models.Property
	err := h.db.Scopes(models.NotDeleted, models.OwnedBy(ownerID)).
		Preload("Units", models.NotDeleted).
		First(&property, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Property not found.")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to fetch property")
		return
	}
	respondOK(c, http.StatusOK, property)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	property, err := h.getOwned(ownerID, id)
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Property not found.")
		return
	}

	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	property.Name = req.Name
	property.StreetAddress = req.StreetAddress
	property.City = req.City
	property.State = req.State
	property.ZipCode = req.ZipCode
	if req.PropertyType != "" {
		property.PropertyType = req.PropertyType
	}
	if req.Status != "" {
		property.Status = req.Status
	}
	property.Notes = req.Notes

	if err := h.db.Save(property).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to update property")
		return
	}
	respondOK(c, http.StatusOK, property)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	property, err := h.getOwned(ownerID, id)
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Property not found.")
		return
	}

	now := time.Now().UTC()
	if err := h.db.Model(property).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to delete property")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Property has been deleted."})
}

type UnitRequest struct {
	UnitNumber string          `json:"unit_number" binding:"required"`
	Bedrooms   int             `json:"bedrooms"`
	Bathrooms  float64         `json:"bathrooms"`
	MarketRent decimal.Decimal `json:"market_rent"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes"`
}

// CreateUnit adds a unit to one of the owner's properties.
func (h *PropertyHandler) CreateUnit(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	propertyID, ok := idParam(c)
	if !ok {
		return
	}

	if _, err := h.getOwned(ownerID, propertyID); err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Property not found.")
		return
	}

	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	unit := models.Unit{
		PropertyID: propertyID,
		UnitNumber: req.UnitNumber,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		MarketRent: req.MarketRent,
		Status:     req.Status,
		Notes:      req.Notes,
	}
	if unit.Status == "" {
		unit.Status = models.UnitStatusVacant
	}

	if err := h.db.Create(&unit).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to create unit")
		return
	}
	respondOK(c, http.StatusCreated, unit)
}

// ListUnits lists the units of one of the owner's properties.
func (h *PropertyHandler) ListUnits(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	propertyID, ok := idParam(c)
	if !ok {
		return
	}

	if _, err := h.getOwned(ownerID, propertyID); err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Property not found.")
		return
	}

	var units []models.Unit
	if err := h.db.Scopes(models.NotDeleted).
		Where("property_id = ?", propertyID).
		Order("unit_number").Find(&units).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to fetch units")
		return
	}
	respondOK(c, http.StatusOK, units)
}

// getOwnedUnit resolves a unit through its property's owner.
func (h *PropertyHandler) getOwnedUnit(ownerID, id uint) (*models.Unit, error) {
	var unit models.Unit
	err := h.db.Scopes(models.NotDeleted).
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("units.id = ? AND properties.owner_id = ? AND properties.is_deleted = ?", id, ownerID, false).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (h *PropertyHandler) UpdateUnit(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	unit, err := h.getOwnedUnit(ownerID, id)
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Unit not found.")
		return
	}

	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	unit.UnitNumber = req.UnitNumber
	unit.Bedrooms = req.Bedrooms
	unit.Bathrooms = req.Bathrooms
	unit.MarketRent = req.MarketRent
	if req.Status != "" {
		unit.Status = req.Status
	}
	unit.Notes = req.Notes

	if err := h.db.Save(unit).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to update unit")
		return
	}
	respondOK(c, http.StatusOK, unit)
}

func (h *PropertyHandler) DeleteUnit(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	unit, err := h.getOwnedUnit(ownerID, id)
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Unit not found.")
		return
	}

	now := time.Now().UTC()
	if err := h.db.Model(unit).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to delete unit")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Unit has been deleted."})
}
