package repositories

import (
	"database/sql"
	"log"

	"partnerleads/internal/models"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	const query = `
		INSERT INTO payments (lead_id, amount, method, notes, recorded_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`
	return r.db.QueryRow(query, p.LeadID, p.Amount, p.Method, p.Notes, p.RecordedBy,
		p.CreatedAt).Scan(&p.ID)
}

func (r *PaymentRepository) ListByLead(leadID int) ([]models.Payment, error) {
	const query = `
		SELECT id, lead_id, amount, method, notes, recorded_by, created_at
		FROM payments
		WHERE lead_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.LeadID, &p.Amount, &p.Method, &p.Notes,
			&p.RecordedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
