package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/leaselog/models"
)

func dueDates(t *testing.T, payments []models.RentPayment) []string {
	t.Helper()
	dates := make([]string, len(payments))
	for i, p := range payments {
		dates[i] = p.DueDate.Format("2006-01-02")
	}
	return dates
}

func TestGenerateRentSchedule(t *testing.T) {
	t.Run("One Payment Per Month", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		lease := seedLease(t, db, owner.ID, func(l *models.Lease) {
			l.StartDate = date(2024, time.January, 1)
			l.EndDate = date(2024, time.March, 31)
		})

		assert.NoError(t, GenerateRentSchedule(db, lease))

		var payments []models.RentPayment
		db.Where("lease_id = ?", lease.ID).Order("due_date").Find(&payments)

		assert.Equal(t, []string{"2024-01-01", "2024-02-01", "2024-03-01"}, dueDates(t, payments))
		for _, p := range payments {
			assert.True(t, p.AmountDue.Equal(decimal.NewFromInt(1000)), "amount_due should be 1000, got %s", p.AmountDue)
			assert.Equal(t, models.RentPaymentPending, p.Status)
		}
	})

	t.Run("Idempotent Re-Run", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		lease := seedLease(t, db, owner.ID, func(l *models.Lease) {
			l.EndDate = date(2024, time.June, 30)
		})

		assert.NoError(t, GenerateRentSchedule(db, lease))
		assert.NoError(t, GenerateRentSchedule(db, lease))

		var count int64
		db.Model(&models.RentPayment{}).Where("lease_id = ?", lease.ID).Count(&count)
		assert.Equal(t, int64(6), count)
	})

	t.Run("Due Day Clamped To 28", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		lease := seedLease(t, db, owner.ID, func(l *models.Lease) {
			l.RentDueDay = 31 // out of range, generator clamps
			l.StartDate = date(2024, time.January, 1)
			l.EndDate = date(2024, time.March, 31)
		})

		assert.NoError(t, GenerateRentSchedule(db, lease))

		var payments []models.RentPayment
		db.Where("lease_id = ?", lease.ID).Order("due_date").Find(&payments)
		assert.Equal(t, []string{"2024-01-28", "2024-02-28", "2024-03-28"}, dueDates(t, payments))
	})

	t.Run("Skips Due Dates Outside Term", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		lease := seedLease(t, db, owner.ID, func(l *models.Lease) {
			l.StartDate = date(2024, time.January, 15)
			l.EndDate = date(2024, time.March, 31)
		})

		assert.NoError(t, GenerateRentSchedule(db, lease))

		var payments []models.RentPayment
		db.Where("lease_id = ?", lease.ID).Order("due_date").Find(&payments)
		// January's due date (the 1st) falls before the term starts.
		assert.Equal(t, []string{"2024-02-01", "2024-03-01"}, dueDates(t, payments))
	})

	t.Run("Paid History Survives Regeneration", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		lease := seedLease(t, db, owner.ID, func(l *models.Lease) {
			l.EndDate = date(2024, time.March, 31)
		})

		assert.NoError(t, GenerateRentSchedule(db, lease))

		// Mark January paid, then regenerate after a rent change.
		db.Model(&models.RentPayment{}).
			Where("lease_id = ? AND due_date = ?", lease.ID, date(2024, time.January, 1)).
			Updates(map[string]interface{}{"status": models.RentPaymentPaid, "amount_paid": decimal.NewFromInt(1000)})

		lease.RentAmount = decimal.NewFromInt(1200)
		assert.NoError(t, db.Save(lease).Error)
		assert.NoError(t, GenerateRentSchedule(db, lease))

		var payments []models.RentPayment
		db.Where("lease_id = ?", lease.ID).Order("due_date").Find(&payments)
		assert.Len(t, payments, 3)

		assert.Equal(t, models.RentPaymentPaid, payments[0].Status)
		assert.True(t, payments[0].AmountDue.Equal(decimal.NewFromInt(1000)), "paid row must keep its original amount")
		assert.True(t, payments[1].AmountDue.Equal(decimal.NewFromInt(1200)), "pending rows are regenerated at the new rent")
	})

	t.Run("No-Op For Draft Lease", func(t *testing.T) {
		db := setupTestDB(t)
		owner := seedLandlord(t, db, "a@example.com")
		lease := seedLease(t, db, owner.ID, func(l *models.Lease) {
			l.Status = models.LeaseStatusDraft
		})

		assert.NoError(t, GenerateRentSchedule(db, lease))

		var count int64
		db.Model(&models.RentPayment{}).Where("lease_id = ?", lease.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}
