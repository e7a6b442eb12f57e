package services

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/leaselog/models"
	"github.com/yourusername/leaselog/utils"
)

// Periodic jobs. Each one is a plain synchronous pass over the ledger and is
// safe to re-run; a ticker in main (or an external cron) drives them.
// Notification failures are logged and never abort a pass.

// ReminderLeadDays is how far ahead of the due date rent reminders go out.
const ReminderLeadDays = 5

func duePaymentsOn(db *gorm.DB, dueDate time.Time) ([]models.RentPayment, error) {
	var payments []models.RentPayment
	err := db.Model(&models.RentPayment{}).
		Joins("JOIN leases ON leases.id = rent_payments.lease_id").
		Where("rent_payments.due_date = ? AND rent_payments.status = ?", dueDate, models.RentPaymentPending).
		Where("leases.status = ? AND leases.is_deleted = ?", models.LeaseStatusActive, false).
		Preload("Lease.Tenant").
		Preload("Lease.Property").
		Find(&payments).Error
	return payments, err
}

// SendRentReminders notifies tenants whose rent falls due in ReminderLeadDays.
func SendRentReminders(db *gorm.DB, notifier utils.NotifierInterface, today time.Time) (int, error) {
	payments, err := duePaymentsOn(db, today.AddDate(0, 0, ReminderLeadDays))
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, payment := range payments {
		tenant := payment.Lease.Tenant
		if tenant == nil || tenant.Email == "" {
			continue
		}
		err := notifier.SendRentReminder(tenant.Email, tenant.FullName(),
			payment.Lease.Property.Name, payment.AmountDue, payment.DueDate)
		if err != nil {
			log.Printf("reminders: failed to send rent reminder to %s: %v", tenant.Email, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// SendRentDueNotices notifies tenants whose rent is due today.
func SendRentDueNotices(db *gorm.DB, notifier utils.NotifierInterface, today time.Time) (int, error) {
	payments, err := duePaymentsOn(db, today)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, payment := range payments {
		tenant := payment.Lease.Tenant
		if tenant == nil || tenant.Email == "" {
			continue
		}
		err := notifier.SendRentDueNotice(tenant.Email, tenant.FullName(),
			payment.Lease.Property.Name, payment.AmountDue)
		if err != nil {
			log.Printf("reminders: failed to send due notice to %s: %v", tenant.Email, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// SendLateNotices notifies tenants whose unpaid rent is past the lease's
// grace period.
func SendLateNotices(db *gorm.DB, notifier utils.NotifierInterface, today time.Time) (int, error) {
	var payments []models.RentPayment
	err := db.Model(&models.RentPayment{}).
		Joins("JOIN leases ON leases.id = rent_payments.lease_id").
		Where("rent_payments.status IN ?", []string{models.RentPaymentPending, models.RentPaymentPartial, models.RentPaymentOverdue}).
		Where("rent_payments.due_date < ?", today).
		Where("leases.status = ? AND leases.is_deleted = ?", models.LeaseStatusActive, false).
		Preload("Lease.Tenant").
		Preload("Lease.Property").
		Find(&payments).Error
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, payment := range payments {
		daysOverdue := int(today.Sub(payment.DueDate).Hours() / 24)
		if daysOverdue <= payment.Lease.LateFeeGraceDays {
			continue
		}
		tenant := payment.Lease.Tenant
		if tenant == nil || tenant.Email == "" {
			continue
		}
		err := notifier.SendLateNotice(tenant.Email, tenant.FullName(),
			payment.Lease.Property.Name, payment.BalanceDue(), daysOverdue)
		if err != nil {
			log.Printf("reminders: failed to send late notice to %s: %v", tenant.Email, err)
			continue
		}
		sent++
	}
	return sent, nil
}

// SweepLateFees applies late fees to unpaid rent past its grace period and
// flips still-pending rows to overdue. Waived rows and rows that already
// carry a fee are skipped, so re-running the sweep is a no-op for them.
func SweepLateFees(db *gorm.DB, today time.Time) (int, error) {
	var payments []models.RentPayment
	err := db.Model(&models.RentPayment{}).
		Joins("JOIN leases ON leases.id = rent_payments.lease_id").
		Where("rent_payments.status IN ?", []string{models.RentPaymentPending, models.RentPaymentPartial}).
		Where("rent_payments.due_date < ?", today).
		Where("rent_payments.late_fee_waived = ?", false).
		Where("leases.status = ? AND leases.is_deleted = ?", models.LeaseStatusActive, false).
		Preload("Lease").
		Find(&payments).Error
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, payment := range payments {
		if payment.LateFeeApplied.IsPositive() {
			continue
		}
		daysOverdue := int(today.Sub(payment.DueDate).Hours() / 24)
		if daysOverdue <= payment.Lease.LateFeeGraceDays {
			continue
		}

		updates := map[string]interface{}{}
		fee := ComputeLateFee(payment.Lease, &payment, today)
		if fee.IsPositive() {
			updates["late_fee_applied"] = fee
		}
		if payment.Status == models.RentPaymentPending {
			updates["status"] = models.RentPaymentOverdue
		}
		if len(updates) == 0 {
			continue
		}
		if err := db.Model(&models.RentPayment{}).Where("id = ?", payment.ID).
			Updates(updates).Error; err != nil {
			return applied, err
		}
		if fee.IsPositive() {
			applied++
		}
	}
	return applied, nil
}

// MarkExpiredLeases moves active leases whose term has ended to expired.
// Expired leases stay renewable.
func MarkExpiredLeases(db *gorm.DB, today time.Time) (int, error) {
	result := db.Model(&models.Lease{}).
		Where("status = ? AND end_date < ? AND is_deleted = ?", models.LeaseStatusActive, today, false).
		Update("status", models.LeaseStatusExpired)
	return int(result.RowsAffected), result.Error
}

// SendLeaseExpiryWarnings notifies tenants whose lease ends in exactly 90,
// 60 or 30 days.
func SendLeaseExpiryWarnings(db *gorm.DB, notifier utils.NotifierInterface, today time.Time) (int, error) {
	sent := 0
	for _, days := range []int{90, 60, 30} {
		target := today.AddDate(0, 0, days)

		var leases []models.Lease
		err := db.Scopes(models.NotDeleted).
			Where("status = ? AND end_date = ?", models.LeaseStatusActive, target).
			Preload("Tenant").
			Preload("Property").
			Find(&leases).Error
		if err != nil {
			return sent, err
		}

		for _, lease := range leases {
			if lease.Tenant == nil || lease.Tenant.Email == "" {
				continue
			}
			err := notifier.SendLeaseExpiryWarning(lease.Tenant.Email, lease.Tenant.FullName(),
				lease.Property.Name, lease.EndDate, days)
			if err != nil {
				log.Printf("reminders: failed to send expiry warning to %s: %v", lease.Tenant.Email, err)
				continue
			}
			sent++
		}
	}
	return sent, nil
}
