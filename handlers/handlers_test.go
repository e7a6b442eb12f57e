package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/config"
	"github.com/yourusername/leaselog/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// authAs stands in for the JWT middleware and pins the acting account.
func authAs(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func testRouter(db *gorm.DB, userID uint) *gin.Engine {
	r := gin.New()
	api := r.Group("/api/v1", authAs(userID))

	leases := NewLeaseHandler(db)
	api.POST("/leases", leases.Create)
	api.GET("/leases", leases.List)
	api.GET("/leases/:id", leases.Get)
	api.PUT("/leases/:id", leases.Update)
	api.DELETE("/leases/:id", leases.Delete)
	api.POST("/leases/:id/activate", leases.Activate)
	api.POST("/leases/:id/terminate", leases.Terminate)
	api.POST("/leases/:id/renew", leases.Renew)

	payments := NewRentPaymentHandler(db)
	api.GET("/rent-payments", payments.List)
	api.GET("/rent-payments/:id", payments.Get)
	api.POST("/rent-payments/:id/record", payments.Record)
	api.POST("/rent-payments/:id/apply_late_fee", payments.ApplyLateFee)
	api.POST("/rent-payments/:id/waive_late_fee", payments.WaiveLateFee)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("response is not valid JSON: %v\n%s", err, w.Body.String())
		}
	}
	return w, parsed
}

func errorCode(t *testing.T, body map[string]interface{}) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no error object: %v", body)
	}
	code, _ := errObj["code"].(string)
	return code
}

func dataObject(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", body)
	}
	return data
}

func seedOwner(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, FirstName: "Pat", LastName: "Landlord", PasswordHash: "x", IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	return user
}

func seedLeaseFixture(t *testing.T, db *gorm.DB, ownerID uint) *models.Lease {
	t.Helper()
	property := &models.Property{
		OwnerID:       ownerID,
		Name:          "Maple Court",
		StreetAddress: "12 Maple St",
		City:          "Springfield",
		Status:        models.PropertyStatusActive,
		PropertyType:  "multi_family",
	}
	if err := db.Create(property).Error; err != nil {
		t.Fatalf("failed to seed property: %v", err)
	}
	tenant := &models.Tenant{
		OwnerID:   ownerID,
		FirstName: "Jordan",
		LastName:  "Reyes",
		Email:     "jordan@example.com",
		Status:    models.TenantStatusActive,
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("failed to seed tenant: %v", err)
	}

	lease := &models.Lease{
		OwnerID:           ownerID,
		PropertyID:        property.ID,
		TenantID:          tenant.ID,
		LeaseType:         models.LeaseTypeFixed,
		StartDate:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		Status:            models.LeaseStatusActive,
		RentAmount:        decimal.NewFromInt(1000),
		RentDueDay:        1,
		LateFeeType:       models.LateFeeFixed,
		LateFeeAmount:     decimal.NewFromInt(50),
		LateFeeGraceDays:  5,
		RenewalTermMonths: 12,
	}
	if err := db.Create(lease).Error; err != nil {
		t.Fatalf("failed to seed lease: %v", err)
	}
	return lease
}

func seedPaymentFixture(t *testing.T, db *gorm.DB, leaseID uint, dueDate time.Time) *models.RentPayment {
	t.Helper()
	payment := &models.RentPayment{
		LeaseID:        leaseID,
		DueDate:        dueDate,
		AmountDue:      decimal.NewFromInt(1000),
		AmountPaid:     decimal.Zero,
		LateFeeApplied: decimal.Zero,
		Status:         models.RentPaymentPending,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("failed to seed rent payment: %v", err)
	}
	return payment
}
