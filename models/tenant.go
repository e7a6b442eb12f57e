package models

import (
	"strings"
	"time"
)

// Tenant statuses.
const (
	TenantStatusApplicant = "applicant"
	TenantStatusActive    = "active"
	TenantStatusPast      = "past"
	TenantStatusRejected  = "rejected"
)

type Tenant struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	IsDeleted bool       `gorm:"default:false;index" json:"-"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	OwnerID   uint   `gorm:"not null;index:idx_tenants_owner_status" json:"owner_id"`
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"size:255" json:"email"`
	Phone     string `gorm:"size:30" json:"phone"`
	Status    string `gorm:"size:20;default:'applicant';index:idx_tenants_owner_status" json:"status"` // applicant, active, past, rejected
	Notes     string `gorm:"type:text" json:"notes"`
}

// TableName overrides the table name
func (Tenant) TableName() string {
	return "tenants"
}

func (t *Tenant) FullName() string {
	return strings.TrimSpace(t.FirstName + " " + t.LastName)
}
