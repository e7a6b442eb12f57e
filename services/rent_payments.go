package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/leaselog/models"
)

// RentPaymentFilter narrows ListRentPayments. Zero values mean "no filter".
type RentPaymentFilter struct {
	Status      string
	LeaseID     uint
	StartDate   *time.Time
	EndDate     *time.Time
	OverdueOnly bool
	Today       time.Time
	Page        int
	PageSize    int
}

func rentPaymentsForOwner(db *gorm.DB, ownerID uint) *gorm.DB {
	return db.Model(&models.RentPayment{}).
		Joins("JOIN leases ON leases.id = rent_payments.lease_id").
		Where("leases.owner_id = ? AND leases.is_deleted = ?", ownerID, false)
}

// GetRentPayment loads a rent payment with its lease and records. Rows whose
// lease belongs to another owner fail closed as not found.
func GetRentPayment(db *gorm.DB, ownerID, id uint) (*models.RentPayment, error) {
	var payment models.RentPayment
	err := rentPaymentsForOwner(db, ownerID).
		Preload("Lease").
		Preload("PaymentRecords").
		Where("rent_payments.id = ?", id).
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("Rent payment")
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// getRentPaymentLocked is GetRentPayment with a row lock, for use inside a
// transaction that re-aggregates the payment. SQLite serializes writers and
// rejects FOR UPDATE, so the lock is only requested on other dialects.
func getRentPaymentLocked(tx *gorm.DB, ownerID, id uint) (*models.RentPayment, error) {
	q := rentPaymentsForOwner(tx, ownerID)
	if tx.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "rent_payments"}})
	}

	var payment models.RentPayment
	err := q.Preload("Lease").Where("rent_payments.id = ?", id).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("Rent payment")
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListRentPayments returns the owner's rent payments ordered by due date,
// plus the total row count for pagination.
func ListRentPayments(db *gorm.DB, ownerID uint, filter RentPaymentFilter) ([]models.RentPayment, int64, error) {
	q := rentPaymentsForOwner(db, ownerID)

	if filter.Status != "" {
		q = q.Where("rent_payments.status = ?", filter.Status)
	}
	if filter.LeaseID != 0 {
		q = q.Where("rent_payments.lease_id = ?", filter.LeaseID)
	}
	if filter.StartDate != nil {
		q = q.Where("rent_payments.due_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("rent_payments.due_date <= ?", *filter.EndDate)
	}
	if filter.OverdueOnly {
		q = q.Where("rent_payments.status IN ?", []string{models.RentPaymentPending, models.RentPaymentPartial}).
			Where("rent_payments.due_date < ?", filter.Today)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		q = q.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var payments []models.RentPayment
	if err := q.Order("rent_payments.due_date").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
