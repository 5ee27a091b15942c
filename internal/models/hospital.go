package models

import "time"

// Hospital represents a hospital record. Every hospital owns exactly one Medicine.
type Hospital struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Address     string    `gorm:"type:text" json:"address"`
	Profile     string    `gorm:"size:255" json:"profile"`
	OpenDate    time.Time `gorm:"precision:6" json:"open_date"`
	Departments int       `gorm:"not null;default:0" json:"departments"`
	Beds        int       `gorm:"not null;default:0" json:"beds"`
	IsChildDept bool      `gorm:"not null;default:false" json:"is_child_dept"`
	MedicineID  uint      `gorm:"not null;uniqueIndex" json:"medicine_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Medicine Medicine `gorm:"foreignKey:MedicineID" json:"medicine"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospitals"
}

// Equivalent reports whether two hospitals share name and open date.
// It is an equality predicate only and must not be used for sorting.
func (h Hospital) Equivalent(other Hospital) bool {
	return h.Name == other.Name && h.OpenDate.Equal(other.OpenDate)
}
