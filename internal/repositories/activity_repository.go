package repositories

import (
	"database/sql"
	"log"

	"partnerleads/internal/models"
)

// ActivityRepository is append-only: timeline entries are never updated or
// deleted once written.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(a *models.LeadActivity) error {
	const query = `
		INSERT INTO lead_activities (lead_id, type, notes, recorded_by, created_at)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`
	return r.db.QueryRow(query, a.LeadID, a.Type, a.Notes, a.RecordedBy, a.CreatedAt).Scan(&a.ID)
}

func (r *ActivityRepository) ListByLead(leadID int) ([]models.LeadActivity, error) {
	const query = `
		SELECT a.id, a.lead_id, a.type, a.notes, a.recorded_by, a.created_at,
			COALESCE(u.name, '')
		FROM lead_activities a
		LEFT JOIN users u ON u.id = a.recorded_by
		WHERE a.lead_id = $1
		ORDER BY a.created_at DESC
	`
	rows, err := r.db.Query(query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.LeadActivity{}
	for rows.Next() {
		var a models.LeadActivity
		if err := rows.Scan(&a.ID, &a.LeadID, &a.Type, &a.Notes, &a.RecordedBy,
			&a.CreatedAt, &a.RecorderName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
