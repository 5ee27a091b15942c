package repository

import (
	"context"

	"hospital-medicine-api/internal/models"

	"gorm.io/gorm"
)

const (
	anonymousActor = "anonymous"
	maxActorLen    = 50
)

// AuditRepository appends rows to audit_logs. Rows are never updated.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog records that actor performed action. A blank actor is
// stored as "anonymous"; long actors are cut to fit the column.
func (r *AuditRepository) CreateAuditLog(ctx context.Context, actor, action, details string) error {
	if actor == "" {
		actor = anonymousActor
	}
	if runes := []rune(actor); len(runes) > maxActorLen {
		actor = string(runes[:maxActorLen])
	}

	return r.db.WithContext(ctx).Create(&models.AuditLog{
		Actor:   actor,
		Action:  action,
		Details: details,
	}).Error
}
