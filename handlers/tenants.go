package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/models"
)

type TenantHandler struct {
	db *gorm.DB
}

func NewTenantHandler(db *gorm.DB) *TenantHandler {
	return &TenantHandler{db: db}
}

type TenantRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

func (h *TenantHandler) Create(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	var req TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tenant := models.Tenant{
		OwnerID:   ownerID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Status:    req.Status,
		Notes:     req.Notes,
	}
	if tenant.Status == "" {
		tenant.Status = models.TenantStatusApplicant
	}

	if err := h.db.Create(&tenant).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to create tenant")
		return
	}
	respondOK(c, http.StatusCreated, tenant)
}

func (h *TenantHandler) List(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	page, pageSize := pageParams(c)
	q := h.db.Model(&models.Tenant{}).Scopes(models.NotDeleted, models.OwnedBy(ownerID))
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to fetch tenants")
		return
	}

	var tenants []models.Tenant
	if err := q.Offset((page - 1) * pageSize).Limit(pageSize).
		Order("last_name, first_name").Find(&tenants).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to fetch tenants")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"results":   tenants,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *TenantHandler) Get(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var tenant models.Tenant
	err := h.db.Scopes(models.NotDeleted, models.OwnedBy(ownerID)).First(&tenant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Tenant not found.")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to fetch tenant")
		return
	}
	respondOK(c, http.StatusOK, tenant)
}

func (h *TenantHandler) Update(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var tenant models.Tenant
	err := h.db.Scopes(models.NotDeleted, models.OwnedBy(ownerID)).First(&tenant, id).Error
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Tenant not found.")
		return
	}

	var req TenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tenant.FirstName = req.FirstName
	tenant.LastName = req.LastName
	tenant.Email = req.Email
	tenant.Phone = req.Phone
	if req.Status != "" {
		tenant.Status = req.Status
	}
	tenant.Notes = req.Notes

	if err := h.db.Save(&tenant).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to update tenant")
		return
	}
	respondOK(c, http.StatusOK, tenant)
}

func (h *TenantHandler) Delete(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var tenant models.Tenant
	err := h.db.Scopes(models.NotDeleted, models.OwnedBy(ownerID)).First(&tenant, id).Error
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Tenant not found.")
		return
	}

	now := time.Now().UTC()
	if err := h.db.Model(&tenant).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL", "Failed to delete tenant")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Tenant has been deleted."})
}
