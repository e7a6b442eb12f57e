package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/services"
)

type RentPaymentHandler struct {
	db *gorm.DB
}

func NewRentPaymentHandler(db *gorm.DB) *RentPaymentHandler {
	return &RentPaymentHandler{db: db}
}

func (h *RentPaymentHandler) List(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}

	page, pageSize := pageParams(c)
	filter := services.RentPaymentFilter{
		Status:      c.Query("status"),
		OverdueOnly: c.Query("overdue") == "true",
		Today:       today(),
		Page:        page,
		PageSize:    pageSize,
	}
	if v, err := strconv.Atoi(c.Query("lease_id")); err == nil {
		filter.LeaseID = uint(v)
	}
	if s := c.Query("start_date"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must use YYYY-MM-DD format")
			return
		}
		filter.StartDate = &d
	}
	if s := c.Query("end_date"); s != "" {
		d, err := parseDate(s)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must use YYYY-MM-DD format")
			return
		}
		filter.EndDate = &d
	}

	payments, total, err := services.ListRentPayments(h.db, ownerID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"results":   payments,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *RentPaymentHandler) Get(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	payment, err := services.GetRentPayment(h.db, ownerID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, payment)
}

type RecordPaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate     string          `json:"payment_date" binding:"required"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
}

// Record applies a payment against this rent payment and returns the
// re-aggregated row.
func (h *RentPaymentHandler) Record(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	paymentDate, err := parseDate(req.PaymentDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must use YYYY-MM-DD format")
		return
	}

	payment, err := services.RecordPayment(h.db, ownerID, id, services.PaymentInput{
		Amount:          req.Amount,
		PaymentDate:     paymentDate,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, payment)
}

func (h *RentPaymentHandler) ApplyLateFee(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	payment, err := services.ApplyLateFee(h.db, ownerID, id, today())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, payment)
}

type WaiveLateFeeRequest struct {
	Reason string `json:"reason"`
}

func (h *RentPaymentHandler) WaiveLateFee(c *gin.Context) {
	ownerID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req WaiveLateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	payment, err := services.WaiveLateFee(h.db, ownerID, id, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, payment)
}
