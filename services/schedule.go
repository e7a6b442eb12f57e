package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/models"
)

// GenerateRentSchedule materializes one pending RentPayment per calendar
// month of the lease term. Rows that already exist for a due date are left
// alone, and only still-pending rows are cleared before regeneration, so
// paid and partial history always survives a re-run.
func GenerateRentSchedule(db *gorm.DB, lease *models.Lease) error {
	if lease.Status != models.LeaseStatusActive && lease.Status != models.LeaseStatusPending {
		return nil
	}

	if err := db.Where("lease_id = ? AND status = ?", lease.ID, models.RentPaymentPending).
		Delete(&models.RentPayment{}).Error; err != nil {
		return err
	}

	// Clamp to 28 so every month has the configured day.
	dueDay := lease.RentDueDay
	if dueDay > 28 {
		dueDay = 28
	}
	if dueDay < 1 {
		dueDay = 1
	}

	cursor := time.Date(lease.StartDate.Year(), lease.StartDate.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(lease.EndDate.Year(), lease.EndDate.Month(), 1, 0, 0, 0, 0, time.UTC)

	for !cursor.After(last) {
		dueDate := time.Date(cursor.Year(), cursor.Month(), dueDay, 0, 0, 0, 0, time.UTC)
		if dueDate.Month() != cursor.Month() {
			// Day overflowed into the next month; fall back to the 28th.
			dueDate = time.Date(cursor.Year(), cursor.Month(), 28, 0, 0, 0, 0, time.UTC)
		}

		if !dueDate.Before(lease.StartDate) && !dueDate.After(lease.EndDate) {
			payment := models.RentPayment{
				LeaseID:        lease.ID,
				DueDate:        dueDate,
				AmountDue:      lease.RentAmount,
				AmountPaid:     decimal.Zero,
				LateFeeApplied: decimal.Zero,
				Status:         models.RentPaymentPending,
			}
			if err := db.Where("lease_id = ? AND due_date = ?", lease.ID, dueDate).
				FirstOrCreate(&payment).Error; err != nil {
				return err
			}
		}

		cursor = cursor.AddDate(0, 1, 0)
	}

	return nil
}
