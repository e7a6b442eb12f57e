package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/models"
	"github.com/yourusername/leaselog/services"
)

type LeaseHandler struct {
	db *gorm.DB
}

func NewLeaseHandler(db *gorm.DB) *LeaseHandler {
	return &LeaseHandler{db: db}
}

type LeaseRequest struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	UnitID     *uint  `json:"unit_id"`
	TenantID   uint   `json:"tenant_id" binding:"required"`
	LeaseType  string `json:"lease_type"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`

	RentAmount decimal.Decimal `json:"rent_amount" binding:"required"`
	RentDueDay int             `json:"rent_due_day"`

	SecurityDeposit         decimal.Decimal `json:"security_deposit"`
	SecurityDepositPaid     bool            `json:"security_deposit_paid"`
	SecurityDepositPaidDate string          `json:"security_deposit_paid_date"`

	LateFeeType      string          `json:"late_fee_type"`
	LateFeeAmount    decimal.Decimal `json:"late_fee_amount"`
	LateFeeGraceDays *int            `json:"late_fee_grace_days"`

	AutoRenew         bool   `json:"auto_renew"`
	RenewalTermMonths int    `json:"renewal_term_months"`
	Notes             string `json:"notes"`
}

// toModel translates the request body into a Lease, applying the same
// defaults the schema declares so validation sees final values.
func (r *LeaseRequest) toModel() (*models.Lease, error) {
	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(r.EndDate)
	if err != nil {
		return nil, err
	}

	lease := &models.Lease{
		PropertyID:          r.PropertyID,
		UnitID:              r.UnitID,
		TenantID:            r.TenantID,
		LeaseType:           r.LeaseType,
		StartDate:           startDate,
		EndDate:             endDate,
		RentAmount:          r.RentAmount,
		RentDueDay:          r.RentDueDay,
		SecurityDeposit:     r.SecurityDeposit,
		SecurityDepositPaid: r.SecurityDepositPaid,
		LateFeeType:         r.LateFeeType,
		LateFeeAmount:       r.LateFeeAmount,
		LateFeeGraceDays:    5,
		AutoRenew:           r.AutoRenew,
		RenewalTermMonths:   r.RenewalTermMonths,
		Notes:               r.Notes,
	}

	if r.LeaseType == "" {
		lease.LeaseType = models.LeaseTypeFixed
	}
	if r.RentDueDay == 0 {
		lease.RentDueDay = 1
	}
	if r.LateFeeType == "" {
		lease.LateFeeType = models.LateFeeFixed
	}
	if r.LateFeeGraceDays != nil {
		lease.LateFeeGraceDays = *r.LateFeeGraceDays
	}
	if r.RenewalTermMonths == 0 {
		lease.RenewalTermMonths = 12
	}
	if r.SecurityDepositPaidDate != "" {
		d, err := parseDate(r.SecurityDepositPaidDate)
		if err != nil {
			return nil, err
		}
		lease.SecurityDepositPaidDate = &d
	}

	return lease, nil
}

func (h *LeaseHandler) Create(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	var req LeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	lease, err := req.toModel()
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must use YYYY-MM-DD format")
		return
	}

	if err := services.CreateLease(h.db, ownerID, lease, today()); err != nil {
		respondServiceError(c, err)
		return
	}

	detail, err := services.GetLease(h.db, ownerID, lease.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, detail)
}

func (h *LeaseHandler) List(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	page, pageSize := pageParams(c)
	filter := services.LeaseFilter{
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}
	if v, err := strconv.Atoi(c.Query("property_id")); err == nil {
		filter.PropertyID = uint(v)
	}
	if v, err := strconv.Atoi(c.Query("tenant_id")); err == nil {
		filter.TenantID = uint(v)
	}

	leases, total, err := services.ListLeases(h.db, ownerID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"results":   leases,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *LeaseHandler) Get(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	lease, err := services.GetLease(h.db, ownerID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, lease)
}

func (h *LeaseHandler) Update(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req LeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updated, err := req.toModel()
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must use YYYY-MM-DD format")
		return
	}

	lease, err := services.UpdateLease(h.db, ownerID, id, updated)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, lease)
}

func (h *LeaseHandler) Delete(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := services.DeleteLease(h.db, ownerID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Lease has been deleted."})
}

func (h *LeaseHandler) Activate(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	lease, err := services.ActivateLease(h.db, ownerID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, lease)
}

type TerminateLeaseRequest struct {
	TerminationDate string `json:"termination_date"`
	Reason          string `json:"reason"`
}

func (h *LeaseHandler) Terminate(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req TerminateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	date := today()
	if req.TerminationDate != "" {
		d, err := parseDate(req.TerminationDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must use YYYY-MM-DD format")
			return
		}
		date = d
	}

	lease, err := services.TerminateLease(h.db, ownerID, id, date, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, lease)
}

type RenewLeaseRequest struct {
	TermMonths int              `json:"term_months"`
	RentAmount *decimal.Decimal `json:"rent_amount"`
}

func (h *LeaseHandler) Renew(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RenewLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	newLease, err := services.RenewLease(h.db, ownerID, id, req.TermMonths, req.RentAmount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, newLease)
}
