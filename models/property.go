package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property statuses.
const (
	PropertyStatusActive   = "active"
	PropertyStatusInactive = "inactive"
)

// Unit statuses.
const (
	UnitStatusVacant      = "vacant"
	UnitStatusOccupied    = "occupied"
	UnitStatusMaintenance = "maintenance"
)

type Property struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	IsDeleted bool       `gorm:"default:false;index" json:"-"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	OwnerID       uint   `gorm:"not null;index:idx_properties_owner_status" json:"owner_id"`
	Name          string `gorm:"size:255;not null" json:"name"`
	StreetAddress string `gorm:"size:255;not null" json:"street_address"`
	City          string `gorm:"size:100" json:"city"`
	State         string `gorm:"size:50" json:"state"`
	ZipCode       string `gorm:"size:20" json:"zip_code"`
	PropertyType  string `gorm:"size:50;default:'single_family'" json:"property_type"` // single_family, multi_family, condo, commercial
	Status        string `gorm:"size:20;default:'active';index:idx_properties_owner_status" json:"status"`
	Notes         string `gorm:"type:text" json:"notes"`

	Units []Unit `gorm:"foreignKey:PropertyID" json:"units,omitempty"`
}

// TableName overrides the table name
func (Property) TableName() string {
	return "properties"
}

type Unit struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	IsDeleted bool       `gorm:"default:false;index" json:"-"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	PropertyID uint            `gorm:"not null;index" json:"property_id"`
	UnitNumber string          `gorm:"size:50;not null" json:"unit_number"`
	Bedrooms   int             `gorm:"default:0" json:"bedrooms"`
	Bathrooms  float64         `gorm:"default:0" json:"bathrooms"`
	MarketRent decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"market_rent"`
	Status     string          `gorm:"size:20;default:'vacant'" json:"status"` // vacant, occupied, maintenance
	Notes      string          `gorm:"type:text" json:"notes"`
}

// TableName overrides the table name
func (Unit) TableName() string {
	return "units"
}
