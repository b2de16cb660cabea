package repositories

import (
	"database/sql"
	"log"

	"partnerleads/internal/models"
)

// AuditRepository writes the compliance trail. Entries are never read back
// by this service, so there is no query side.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(e *models.AuditLogEntry) error {
	const query = `
		INSERT INTO audit_log (user_id, user_type, action, resource_type, resource_id,
			new_values, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	_, err := r.db.Exec(query, e.UserID, e.UserType, e.Action, e.ResourceType,
		e.ResourceID, e.NewValues, e.CreatedAt)
	return err
}
