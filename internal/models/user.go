package models

import (
	"strings"
	"time"
)

// User represents the users table, the credential store behind /auth/token
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:50" json:"username"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"`
	Roles        string    `gorm:"size:255;not null;default:'USER'" json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// Authorities returns the granted authorities ("ROLE_<name>") in stored order.
func (u User) Authorities() []string {
	authorities := []string{}
	for _, role := range strings.Split(u.Roles, ",") {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		authorities = append(authorities, "ROLE_"+strings.ToUpper(role))
	}
	return authorities
}
