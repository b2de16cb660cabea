package repositories

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"partnerleads/internal/models"
)

type ReferralRepository struct {
	db *sql.DB
}

func NewReferralRepository(db *sql.DB) *ReferralRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &ReferralRepository{db: db}
}

const referralSelect = `
	SELECT r.id, r.referral_code, r.partner_id, r.prospect_company, r.prospect_contact,
		r.prospect_email, r.status, r.created_at, r.updated_at, COALESCE(p.name, '')
	FROM referrals r
	LEFT JOIN partners p ON p.id = r.partner_id
`

func scanReferral(row interface{ Scan(...any) error }, ref *models.Referral) error {
	return row.Scan(&ref.ID, &ref.ReferralCode, &ref.PartnerID, &ref.ProspectCompany,
		&ref.ProspectContact, &ref.ProspectEmail, &ref.Status, &ref.CreatedAt,
		&ref.UpdatedAt, &ref.PartnerName)
}

// GetByCode matches the referral code case-insensitively.
func (r *ReferralRepository) GetByCode(code string) (*models.Referral, error) {
	ref := &models.Referral{}
	row := r.db.QueryRow(referralSelect+` WHERE UPPER(r.referral_code) = UPPER($1)`, code)
	if err := scanReferral(row, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

func (r *ReferralRepository) GetByID(id int) (*models.Referral, error) {
	ref := &models.Referral{}
	row := r.db.QueryRow(referralSelect+` WHERE r.id = $1`, id)
	if err := scanReferral(row, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

func (r *ReferralRepository) Create(ref *models.Referral) error {
	const query = `
		INSERT INTO referrals (referral_code, partner_id, prospect_company,
			prospect_contact, prospect_email, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`
	return r.db.QueryRow(query, ref.ReferralCode, ref.PartnerID, ref.ProspectCompany,
		ref.ProspectContact, ref.ProspectEmail, ref.Status, ref.CreatedAt,
		ref.UpdatedAt).Scan(&ref.ID)
}

func (r *ReferralRepository) UpdateStatus(id int, status models.ReferralStatus) error {
	_, err := r.db.Exec(`UPDATE referrals SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

// ConsumeContacted flips a referral to contacted only on first consumption;
// a referral already past submitted is left alone.
func (r *ReferralRepository) ConsumeContacted(id int) error {
	_, err := r.db.Exec(`
		UPDATE referrals SET status=$1, updated_at=$2
		WHERE id=$3 AND status=$4
	`, models.ReferralStatusContacted, time.Now(), id, models.ReferralStatusSubmitted)
	return err
}

func (r *ReferralRepository) List(status string, partnerID int) ([]models.Referral, error) {
	query := referralSelect + " WHERE 1=1"
	args := []interface{}{}
	i := 1
	if status != "" && status != "all" {
		query += fmt.Sprintf(" AND r.status = $%d", i)
		args = append(args, status)
		i++
	}
	if partnerID > 0 {
		query += fmt.Sprintf(" AND r.partner_id = $%d", i)
		args = append(args, partnerID)
		i++
	}
	query += " ORDER BY r.created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Referral{}
	for rows.Next() {
		var ref models.Referral
		if err := scanReferral(rows, &ref); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}
