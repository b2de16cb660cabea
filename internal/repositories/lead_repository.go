package repositories

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"partnerleads/internal/models"
)

type LeadRepository struct {
	db *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &LeadRepository{db: db}
}

const leadColumns = `id, company_name, contact_name, email, phone, industry, erp_system,
	implementation_timeline, estimated_value, status, source, referral_id, referral_code,
	assigned_to, last_contact, created_at, updated_at`

func scanLead(row interface{ Scan(...any) error }, l *models.Lead) error {
	return row.Scan(&l.ID, &l.CompanyName, &l.ContactName, &l.Email, &l.Phone,
		&l.Industry, &l.ERPSystem, &l.Timeline, &l.EstimatedValue, &l.Status,
		&l.Source, &l.ReferralID, &l.ReferralCode, &l.AssignedTo, &l.LastContact,
		&l.CreatedAt, &l.UpdatedAt)
}

func (r *LeadRepository) Create(lead *models.Lead) error {
	const query = `
		INSERT INTO leads (company_name, contact_name, email, phone, industry, erp_system,
			implementation_timeline, estimated_value, status, source, referral_id,
			referral_code, assigned_to, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id
	`
	return r.db.QueryRow(query, lead.CompanyName, lead.ContactName, lead.Email,
		lead.Phone, lead.Industry, lead.ERPSystem, lead.Timeline, lead.EstimatedValue,
		lead.Status, lead.Source, lead.ReferralID, lead.ReferralCode, lead.AssignedTo,
		lead.CreatedAt, lead.UpdatedAt).Scan(&lead.ID)
}

// CreateFromReferral inserts the lead and marks its referral contacted in a
// single transaction, so a failed insert cannot strand a consumed referral.
// The status flip is conditional: only the first consumption moves a referral
// out of submitted.
func (r *LeadRepository) CreateFromReferral(lead *models.Lead, referralID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE referrals SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4
	`, models.ReferralStatusContacted, time.Now(), referralID, models.ReferralStatusSubmitted)
	if err != nil {
		return err
	}

	const insert = `
		INSERT INTO leads (company_name, contact_name, email, phone, industry, erp_system,
			implementation_timeline, estimated_value, status, source, referral_id,
			referral_code, assigned_to, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id
	`
	err = tx.QueryRow(insert, lead.CompanyName, lead.ContactName, lead.Email,
		lead.Phone, lead.Industry, lead.ERPSystem, lead.Timeline, lead.EstimatedValue,
		lead.Status, lead.Source, lead.ReferralID, lead.ReferralCode, lead.AssignedTo,
		lead.CreatedAt, lead.UpdatedAt).Scan(&lead.ID)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *LeadRepository) GetByID(id int) (*models.Lead, error) {
	const query = `
		SELECT l.id, l.company_name, l.contact_name, l.email, l.phone, l.industry,
			l.erp_system, l.implementation_timeline, l.estimated_value, l.status,
			l.source, l.referral_id, l.referral_code, l.assigned_to, l.last_contact,
			l.created_at, l.updated_at,
			COALESCE(u.name, ''), COALESCE(p.name, '')
		FROM leads l
		LEFT JOIN users u ON u.id = l.assigned_to
		LEFT JOIN referrals ref ON ref.id = l.referral_id
		LEFT JOIN partners p ON p.id = ref.partner_id
		WHERE l.id = $1
	`
	lead := &models.Lead{}
	err := r.db.QueryRow(query, id).Scan(&lead.ID, &lead.CompanyName, &lead.ContactName,
		&lead.Email, &lead.Phone, &lead.Industry, &lead.ERPSystem, &lead.Timeline,
		&lead.EstimatedValue, &lead.Status, &lead.Source, &lead.ReferralID,
		&lead.ReferralCode, &lead.AssignedTo, &lead.LastContact, &lead.CreatedAt,
		&lead.UpdatedAt, &lead.AssigneeName, &lead.PartnerName)
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// filterClause builds the shared WHERE clause for Filter and CountFiltered.
// "all" and "" both mean no filter; search is a case-insensitive substring
// match across company, contact and email.
func filterClause(f models.LeadFilters) (string, []interface{}) {
	clause := " WHERE 1=1"
	args := []interface{}{}
	i := 1

	if f.Status != "" && f.Status != "all" {
		clause += fmt.Sprintf(" AND status = $%d", i)
		args = append(args, f.Status)
		i++
	}
	if f.Source != "" && f.Source != "all" {
		clause += fmt.Sprintf(" AND source = $%d", i)
		args = append(args, f.Source)
		i++
	}
	if f.AssignedTo != "" && f.AssignedTo != "all" {
		clause += fmt.Sprintf(" AND assigned_to = $%d", i)
		args = append(args, f.AssignedTo)
		i++
	}
	if f.Search != "" {
		clause += fmt.Sprintf(" AND (company_name ILIKE $%d OR contact_name ILIKE $%d OR email ILIKE $%d)", i, i, i)
		args = append(args, "%"+f.Search+"%")
		i++
	}
	return clause, args
}

func (r *LeadRepository) Filter(f models.LeadFilters, limit, offset int) ([]models.Lead, error) {
	clause, args := filterClause(f)
	query := "SELECT " + leadColumns + " FROM leads" + clause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Lead{}
	for rows.Next() {
		var l models.Lead
		if err := scanLead(rows, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LeadRepository) CountFiltered(f models.LeadFilters) (int, error) {
	clause, args := filterClause(f)
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM leads"+clause, args...).Scan(&count)
	return count, err
}

// Statistics aggregates over the whole table regardless of any list filter.
// Buckets are zero-filled so every status and source always appears.
func (r *LeadRepository) Statistics() (*models.LeadStatistics, error) {
	stats := &models.LeadStatistics{
		ByStatus: make(map[models.LeadStatus]int, len(models.LeadStatuses)),
		BySource: make(map[models.LeadSource]int, len(models.LeadSources)),
	}
	for _, s := range models.LeadStatuses {
		stats.ByStatus[s] = 0
	}
	for _, s := range models.LeadSources {
		stats.BySource[s] = 0
	}

	rows, err := r.db.Query(`SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status models.LeadStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	srcRows, err := r.db.Query(`SELECT source, COUNT(*) FROM leads GROUP BY source`)
	if err != nil {
		return nil, err
	}
	defer srcRows.Close()
	for srcRows.Next() {
		var source models.LeadSource
		var n int
		if err := srcRows.Scan(&source, &n); err != nil {
			return nil, err
		}
		stats.BySource[source] = n
	}
	return stats, srcRows.Err()
}

// PipelineValue sums estimated value across leads still in play.
func (r *LeadRepository) PipelineValue() (float64, error) {
	var total float64
	err := r.db.QueryRow(`
		SELECT COALESCE(SUM(estimated_value), 0) FROM leads
		WHERE status NOT IN ($1, $2)
	`, models.LeadStatusConverted, models.LeadStatusLost).Scan(&total)
	return total, err
}

func (r *LeadRepository) Update(lead *models.Lead) error {
	const query = `
		UPDATE leads
		SET company_name=$1, contact_name=$2, email=$3, phone=$4, industry=$5,
			erp_system=$6, implementation_timeline=$7, estimated_value=$8,
			source=$9, referral_code=$10, assigned_to=$11, last_contact=$12, updated_at=$13
		WHERE id=$14
	`
	_, err := r.db.Exec(query, lead.CompanyName, lead.ContactName, lead.Email,
		lead.Phone, lead.Industry, lead.ERPSystem, lead.Timeline, lead.EstimatedValue,
		lead.Source, lead.ReferralCode, lead.AssignedTo, lead.LastContact,
		lead.UpdatedAt, lead.ID)
	return err
}

func (r *LeadRepository) UpdateStatus(id int, status models.LeadStatus, at time.Time) error {
	const query = `
		UPDATE leads SET status=$1, last_contact=$2, updated_at=$2 WHERE id=$3
	`
	_, err := r.db.Exec(query, status, at, id)
	return err
}

// TouchContact stamps last_contact/updated_at after a manual activity.
func (r *LeadRepository) TouchContact(id int, at time.Time) error {
	_, err := r.db.Exec(`UPDATE leads SET last_contact=$1, updated_at=$1 WHERE id=$2`, at, id)
	return err
}

func (r *LeadRepository) AttachReferral(id, referralID int, code string, at time.Time) error {
	const query = `
		UPDATE leads SET referral_id=$1, referral_code=$2, source=$3, updated_at=$4
		WHERE id=$5
	`
	_, err := r.db.Exec(query, referralID, code, models.LeadSourcePartner, at, id)
	return err
}
