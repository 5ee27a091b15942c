package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine is owned by exactly one Hospital and never created on its own.
type Medicine struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:255;not null" json:"name"`
	Form           string          `gorm:"size:100" json:"form"`
	Manufacturer   string          `gorm:"size:255" json:"manufacturer"`
	ProductionDate time.Time       `gorm:"precision:6" json:"production_date"`
	Expiration     time.Time       `gorm:"precision:6" json:"expiration"`
	Price          decimal.Decimal `gorm:"type:decimal(19,4);not null" json:"price"`
	IsPrescription bool            `gorm:"not null;default:false" json:"is_prescription"`

	// HospitalID points back at the owner for lookups only. It is a plain
	// column, not a relation, so nothing cascades from here to the hospital.
	HospitalID *uint `gorm:"index" json:"hospital_id"`
}

// TableName specifies the table name for Medicine model
func (Medicine) TableName() string {
	return "medicines"
}

// Equivalent reports whether two medicines share name and expiration.
func (m Medicine) Equivalent(other Medicine) bool {
	return m.Name == other.Name && m.Expiration.Equal(other.Expiration)
}
