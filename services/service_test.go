package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/config"
	"github.com/yourusername/leaselog/models"
)

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

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func seedLandlord(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, FirstName: "Pat", LastName: "Landlord", PasswordHash: "x", IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed landlord: %v", err)
	}
	return user
}

func seedProperty(t *testing.T, db *gorm.DB, ownerID uint) *models.Property {
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
	return property
}

func seedUnit(t *testing.T, db *gorm.DB, propertyID uint) *models.Unit {
	t.Helper()
	unit := &models.Unit{PropertyID: propertyID, UnitNumber: "2B", Status: models.UnitStatusOccupied}
	if err := db.Create(unit).Error; err != nil {
		t.Fatalf("failed to seed unit: %v", err)
	}
	return unit
}

func seedTenant(t *testing.T, db *gorm.DB, ownerID uint) *models.Tenant {
	t.Helper()
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
	return tenant
}

// seedLease writes a lease directly, bypassing CreateLease, so tests control
// status and schedule generation themselves.
func seedLease(t *testing.T, db *gorm.DB, ownerID uint, mutate func(*models.Lease)) *models.Lease {
	t.Helper()
	property := seedProperty(t, db, ownerID)
	tenant := seedTenant(t, db, ownerID)

	lease := &models.Lease{
		OwnerID:           ownerID,
		PropertyID:        property.ID,
		TenantID:          tenant.ID,
		LeaseType:         models.LeaseTypeFixed,
		StartDate:         date(2024, time.January, 1),
		EndDate:           date(2024, time.December, 31),
		Status:            models.LeaseStatusActive,
		RentAmount:        decimal.NewFromInt(1000),
		RentDueDay:        1,
		LateFeeType:       models.LateFeeFixed,
		LateFeeAmount:     decimal.NewFromInt(50),
		LateFeeGraceDays:  5,
		RenewalTermMonths: 12,
	}
	if mutate != nil {
		mutate(lease)
	}
	if err := db.Create(lease).Error; err != nil {
		t.Fatalf("failed to seed lease: %v", err)
	}
	return lease
}

func seedRentPayment(t *testing.T, db *gorm.DB, lease *models.Lease, dueDate time.Time, amountDue decimal.Decimal) *models.RentPayment {
	t.Helper()
	payment := &models.RentPayment{
		LeaseID:        lease.ID,
		DueDate:        dueDate,
		AmountDue:      amountDue,
		AmountPaid:     decimal.Zero,
		LateFeeApplied: decimal.Zero,
		Status:         models.RentPaymentPending,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("failed to seed rent payment: %v", err)
	}
	return payment
}
