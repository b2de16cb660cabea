package repositories

import (
	"database/sql"
	"log"

	"partnerleads/internal/models"
)

type PartnerRepository struct {
	db *sql.DB
}

func NewPartnerRepository(db *sql.DB) *PartnerRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) GetByID(id int) (*models.Partner, error) {
	const query = `SELECT id, name, company_name, email, created_at FROM partners WHERE id=$1`
	p := &models.Partner{}
	err := r.db.QueryRow(query, id).Scan(&p.ID, &p.Name, &p.CompanyName, &p.Email, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PartnerRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM partners`).Scan(&count)
	return count, err
}
