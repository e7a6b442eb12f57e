package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yourusername/leaselog/models"
)

// LeaseFilter narrows ListLeases. Zero values mean "no filter".
type LeaseFilter struct {
	Status     string
	PropertyID uint
	TenantID   uint
	Page       int
	PageSize   int
}

var validLeaseTypes = map[string]bool{
	models.LeaseTypeFixed:        true,
	models.LeaseTypeMonthToMonth: true,
}

var validLateFeeTypes = map[string]bool{
	models.LateFeeFixed:   true,
	models.LateFeePercent: true,
	models.LateFeeDaily:   true,
}

// ValidateLease checks the cross-field invariants of a lease and returns a
// field-keyed validation error when any are broken.
func ValidateLease(lease *models.Lease) error {
	fields := map[string]string{}

	if !lease.EndDate.After(lease.StartDate) {
		fields["end_date"] = "End date must be after start date."
	}
	if lease.RentDueDay < 1 || lease.RentDueDay > 28 {
		fields["rent_due_day"] = "Rent due day must be between 1 and 28."
	}
	if !lease.RentAmount.IsPositive() {
		fields["rent_amount"] = "Rent amount must be greater than zero."
	}
	if lease.LeaseType != "" && !validLeaseTypes[lease.LeaseType] {
		fields["lease_type"] = "Unknown lease type."
	}
	if lease.LateFeeType != "" && !validLateFeeTypes[lease.LateFeeType] {
		fields["late_fee_type"] = "Unknown late fee type."
	}
	if lease.LateFeeAmount.IsNegative() {
		fields["late_fee_amount"] = "Late fee amount cannot be negative."
	}

	if len(fields) > 0 {
		return ErrValidation(fields)
	}
	return nil
}

// GetLease loads one of the owner's leases; soft-deleted rows and rows owned
// by other accounts fail closed as not found.
func GetLease(db *gorm.DB, ownerID, id uint) (*models.Lease, error) {
	var lease models.Lease
	err := db.Scopes(models.NotDeleted, models.OwnedBy(ownerID)).
		Preload("Property").
		Preload("Unit").
		Preload("Tenant").
		First(&lease, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound("Lease")
	}
	if err != nil {
		return nil, err
	}
	return &lease, nil
}

// ListLeases returns the owner's leases newest term first, plus the total
// row count for pagination.
func ListLeases(db *gorm.DB, ownerID uint, filter LeaseFilter) ([]models.Lease, int64, error) {
	q := db.Model(&models.Lease{}).Scopes(models.NotDeleted, models.OwnedBy(ownerID))

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PropertyID != 0 {
		q = q.Where("property_id = ?", filter.PropertyID)
	}
	if filter.TenantID != 0 {
		q = q.Where("tenant_id = ?", filter.TenantID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		q = q.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var leases []models.Lease
	if err := q.Preload("Property").Preload("Unit").Preload("Tenant").
		Order("start_date DESC").Find(&leases).Error; err != nil {
		return nil, 0, err
	}
	return leases, total, nil
}

// CreateLease validates and persists a new lease for the owner. A lease
// whose term has already started becomes active immediately and gets its
// rent schedule generated; a future-dated lease waits in pending with no
// schedule.
func CreateLease(db *gorm.DB, ownerID uint, lease *models.Lease, today time.Time) error {
	lease.OwnerID = ownerID
	if err := ValidateLease(lease); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if !lease.StartDate.After(today) {
			lease.Status = models.LeaseStatusActive
		} else {
			lease.Status = models.LeaseStatusPending
		}
		if err := tx.Create(lease).Error; err != nil {
			return err
		}
		if lease.Status == models.LeaseStatusActive {
			if err := GenerateRentSchedule(tx, lease); err != nil {
				return err
			}
		}
		if lease.UnitID != nil && lease.Status == models.LeaseStatusActive {
			if err := tx.Model(&models.Unit{}).Where("id = ?", *lease.UnitID).
				Update("status", models.UnitStatusOccupied).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateLease applies term, rent and policy changes to one of the owner's
// leases. Status is not updatable here; lifecycle transitions go through
// Activate/Terminate/Renew.
func UpdateLease(db *gorm.DB, ownerID, id uint, updated *models.Lease) (*models.Lease, error) {
	lease, err := GetLease(db, ownerID, id)
	if err != nil {
		return nil, err
	}

	lease.PropertyID = updated.PropertyID
	lease.UnitID = updated.UnitID
	lease.TenantID = updated.TenantID
	lease.LeaseType = updated.LeaseType
	lease.StartDate = updated.StartDate
	lease.EndDate = updated.EndDate
	lease.RentAmount = updated.RentAmount
	lease.RentDueDay = updated.RentDueDay
	lease.SecurityDeposit = updated.SecurityDeposit
	lease.SecurityDepositPaid = updated.SecurityDepositPaid
	lease.SecurityDepositPaidDate = updated.SecurityDepositPaidDate
	lease.LateFeeType = updated.LateFeeType
	lease.LateFeeAmount = updated.LateFeeAmount
	lease.LateFeeGraceDays = updated.LateFeeGraceDays
	lease.AutoRenew = updated.AutoRenew
	lease.RenewalTermMonths = updated.RenewalTermMonths
	lease.Notes = updated.Notes

	if err := ValidateLease(lease); err != nil {
		return nil, err
	}
	if err := db.Save(lease).Error; err != nil {
		return nil, err
	}
	return lease, nil
}

// DeleteLease soft-deletes a lease. Its payment history stays in place.
func DeleteLease(db *gorm.DB, ownerID, id uint) error {
	lease, err := GetLease(db, ownerID, id)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return db.Model(lease).Updates(map[string]interface{}{
		"is_deleted": true,
		"deleted_at": now,
	}).Error
}

// ActivateLease moves a draft or pending lease to active and generates its
// rent schedule.
func ActivateLease(db *gorm.DB, ownerID, id uint) (*models.Lease, error) {
	lease, err := GetLease(db, ownerID, id)
	if err != nil {
		return nil, err
	}
	if lease.Status != models.LeaseStatusDraft && lease.Status != models.LeaseStatusPending {
		return nil, ErrInvalidStatus("Only draft or pending leases can be activated.")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		lease.Status = models.LeaseStatusActive
		if err := tx.Model(lease).Update("status", models.LeaseStatusActive).Error; err != nil {
			return err
		}
		if err := GenerateRentSchedule(tx, lease); err != nil {
			return err
		}
		if lease.UnitID != nil {
			if err := tx.Model(&models.Unit{}).Where("id = ?", *lease.UnitID).
				Update("status", models.UnitStatusOccupied).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lease, nil
}

// TerminateLease ends an active lease early. In the same transaction the
// tenant is moved to past status when this was their only active lease, and
// the unit (if any) is marked vacant.
func TerminateLease(db *gorm.DB, ownerID, id uint, date time.Time, reason string) (*models.Lease, error) {
	lease, err := GetLease(db, ownerID, id)
	if err != nil {
		return nil, err
	}
	if lease.Status != models.LeaseStatusActive {
		return nil, ErrInvalidStatus("Only active leases can be terminated.")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		lease.Status = models.LeaseStatusTerminated
		lease.TerminatedDate = &date
		lease.TerminationReason = reason
		if err := tx.Model(lease).Updates(map[string]interface{}{
			"status":             models.LeaseStatusTerminated,
			"terminated_date":    date,
			"termination_reason": reason,
		}).Error; err != nil {
			return err
		}

		var otherActive int64
		if err := tx.Model(&models.Lease{}).
			Where("tenant_id = ? AND status = ? AND id <> ?", lease.TenantID, models.LeaseStatusActive, lease.ID).
			Count(&otherActive).Error; err != nil {
			return err
		}
		if otherActive == 0 {
			if err := tx.Model(&models.Tenant{}).Where("id = ?", lease.TenantID).
				Update("status", models.TenantStatusPast).Error; err != nil {
				return err
			}
		}

		if lease.UnitID != nil {
			if err := tx.Model(&models.Unit{}).Where("id = ?", *lease.UnitID).
				Update("status", models.UnitStatusVacant).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lease, nil
}

// RenewLease closes out an active or expired lease and spawns its successor.
// The old lease keeps its dates and only changes status; the new lease
// starts the day after the old term ends, copies the financial and fee
// policy fields, and gets a fresh rent schedule. termMonths and rent
// override the old lease's renewal term and rent when provided.
func RenewLease(db *gorm.DB, ownerID, id uint, termMonths int, rent *decimal.Decimal) (*models.Lease, error) {
	oldLease, err := GetLease(db, ownerID, id)
	if err != nil {
		return nil, err
	}
	if oldLease.Status != models.LeaseStatusActive && oldLease.Status != models.LeaseStatusExpired {
		return nil, ErrInvalidStatus("Only active or expired leases can be renewed.")
	}

	if termMonths <= 0 {
		termMonths = oldLease.RenewalTermMonths
	}
	newRent := oldLease.RentAmount
	if rent != nil {
		newRent = *rent
	}

	newStart := oldLease.EndDate.AddDate(0, 0, 1)
	newEnd := newStart.AddDate(0, termMonths, 0).AddDate(0, 0, -1)

	var newLease *models.Lease
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(oldLease).Update("status", models.LeaseStatusRenewed).Error; err != nil {
			return err
		}

		newLease = &models.Lease{
			OwnerID:             oldLease.OwnerID,
			PropertyID:          oldLease.PropertyID,
			UnitID:              oldLease.UnitID,
			TenantID:            oldLease.TenantID,
			LeaseType:           oldLease.LeaseType,
			StartDate:           newStart,
			EndDate:             newEnd,
			Status:              models.LeaseStatusActive,
			RentAmount:          newRent,
			RentDueDay:          oldLease.RentDueDay,
			SecurityDeposit:     oldLease.SecurityDeposit,
			SecurityDepositPaid: oldLease.SecurityDepositPaid,
			LateFeeType:         oldLease.LateFeeType,
			LateFeeAmount:       oldLease.LateFeeAmount,
			LateFeeGraceDays:    oldLease.LateFeeGraceDays,
			AutoRenew:           oldLease.AutoRenew,
			RenewalTermMonths:   oldLease.RenewalTermMonths,
		}
		if err := tx.Create(newLease).Error; err != nil {
			return err
		}
		return GenerateRentSchedule(tx, newLease)
	})
	if err != nil {
		return nil, err
	}

	oldLease.Status = models.LeaseStatusRenewed
	return newLease, nil
}
