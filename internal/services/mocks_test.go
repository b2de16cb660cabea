package services

import (
	"database/sql"
	"strings"
	"time"

	"partnerleads/internal/models"
)

// In-memory stores mirroring the Postgres repositories, including the
// sql.ErrNoRows contract on misses.

type mockLeadStore struct {
	leads     map[int]*models.Lead
	nextID    int
	referrals *mockReferralStore // CreateFromReferral flips the referral like the real tx does

	createErr error
	updateErr error
}

func newMockLeadStore(refs *mockReferralStore) *mockLeadStore {
	return &mockLeadStore{leads: map[int]*models.Lead{}, nextID: 1, referrals: refs}
}

func (m *mockLeadStore) Create(lead *models.Lead) error {
	if m.createErr != nil {
		return m.createErr
	}
	lead.ID = m.nextID
	m.nextID++
	cp := *lead
	m.leads[lead.ID] = &cp
	return nil
}

func (m *mockLeadStore) CreateFromReferral(lead *models.Lead, referralID int) error {
	if m.createErr != nil {
		return m.createErr
	}
	if ref, ok := m.referrals.refs[referralID]; ok && ref.Status == models.ReferralStatusSubmitted {
		ref.Status = models.ReferralStatusContacted
	}
	return m.Create(lead)
}

func (m *mockLeadStore) GetByID(id int) (*models.Lead, error) {
	lead, ok := m.leads[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *lead
	return &cp, nil
}

func (m *mockLeadStore) Filter(f models.LeadFilters, limit, offset int) ([]models.Lead, error) {
	out := []models.Lead{}
	for _, l := range m.leads {
		if f.Status != "" && f.Status != "all" && string(l.Status) != f.Status {
			continue
		}
		if f.Source != "" && f.Source != "all" && string(l.Source) != f.Source {
			continue
		}
		out = append(out, *l)
	}
	return out, nil
}

func (m *mockLeadStore) CountFiltered(f models.LeadFilters) (int, error) {
	leads, _ := m.Filter(f, 0, 0)
	return len(leads), nil
}

// Statistics returns sparse maps on purpose: the service owns zero-filling.
func (m *mockLeadStore) Statistics() (*models.LeadStatistics, error) {
	stats := &models.LeadStatistics{
		ByStatus: map[models.LeadStatus]int{},
		BySource: map[models.LeadSource]int{},
	}
	for _, l := range m.leads {
		stats.Total++
		stats.ByStatus[l.Status]++
		stats.BySource[l.Source]++
	}
	return stats, nil
}

func (m *mockLeadStore) PipelineValue() (float64, error) {
	var total float64
	for _, l := range m.leads {
		if l.Status != models.LeadStatusConverted && l.Status != models.LeadStatusLost {
			total += l.EstimatedValue
		}
	}
	return total, nil
}

func (m *mockLeadStore) Update(lead *models.Lead) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	cp := *lead
	m.leads[lead.ID] = &cp
	return nil
}

func (m *mockLeadStore) UpdateStatus(id int, status models.LeadStatus, at time.Time) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	lead, ok := m.leads[id]
	if !ok {
		return sql.ErrNoRows
	}
	lead.Status = status
	lead.LastContact = &at
	lead.UpdatedAt = at
	return nil
}

func (m *mockLeadStore) TouchContact(id int, at time.Time) error {
	if lead, ok := m.leads[id]; ok {
		lead.LastContact = &at
		lead.UpdatedAt = at
	}
	return nil
}

func (m *mockLeadStore) AttachReferral(id, referralID int, code string, at time.Time) error {
	lead, ok := m.leads[id]
	if !ok {
		return sql.ErrNoRows
	}
	lead.ReferralID = &referralID
	lead.ReferralCode = code
	lead.Source = models.LeadSourcePartner
	lead.UpdatedAt = at
	return nil
}

type mockReferralStore struct {
	refs   map[int]*models.Referral
	nextID int

	updateStatusErr error
	statusUpdates   []models.ReferralStatus
}

func newMockReferralStore() *mockReferralStore {
	return &mockReferralStore{refs: map[int]*models.Referral{}, nextID: 1}
}

func (m *mockReferralStore) add(code string, partnerID int, status models.ReferralStatus) *models.Referral {
	ref := &models.Referral{
		ID:           m.nextID,
		ReferralCode: code,
		PartnerID:    partnerID,
		Status:       status,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.refs[ref.ID] = ref
	m.nextID++
	return ref
}

func (m *mockReferralStore) GetByCode(code string) (*models.Referral, error) {
	for _, ref := range m.refs {
		if strings.EqualFold(ref.ReferralCode, code) {
			cp := *ref
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockReferralStore) GetByID(id int) (*models.Referral, error) {
	ref, ok := m.refs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *ref
	return &cp, nil
}

func (m *mockReferralStore) Create(ref *models.Referral) error {
	ref.ID = m.nextID
	m.nextID++
	cp := *ref
	m.refs[ref.ID] = &cp
	return nil
}

func (m *mockReferralStore) UpdateStatus(id int, status models.ReferralStatus) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	ref, ok := m.refs[id]
	if !ok {
		return sql.ErrNoRows
	}
	ref.Status = status
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockReferralStore) ConsumeContacted(id int) error {
	if ref, ok := m.refs[id]; ok && ref.Status == models.ReferralStatusSubmitted {
		ref.Status = models.ReferralStatusContacted
	}
	return nil
}

func (m *mockReferralStore) List(status string, partnerID int) ([]models.Referral, error) {
	out := []models.Referral{}
	for _, ref := range m.refs {
		if status != "" && status != "all" && string(ref.Status) != status {
			continue
		}
		if partnerID > 0 && ref.PartnerID != partnerID {
			continue
		}
		out = append(out, *ref)
	}
	return out, nil
}

type mockActivityStore struct {
	activities []*models.LeadActivity
	createErr  error
}

func (m *mockActivityStore) Create(a *models.LeadActivity) error {
	if m.createErr != nil {
		return m.createErr
	}
	a.ID = len(m.activities) + 1
	cp := *a
	m.activities = append(m.activities, &cp)
	return nil
}

func (m *mockActivityStore) ListByLead(leadID int) ([]models.LeadActivity, error) {
	out := []models.LeadActivity{}
	for _, a := range m.activities {
		if a.LeadID == leadID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type mockAuditStore struct {
	entries   []*models.AuditLogEntry
	createErr error
}

func (m *mockAuditStore) Create(e *models.AuditLogEntry) error {
	if m.createErr != nil {
		return m.createErr
	}
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

type mockPaymentStore struct {
	payments []*models.Payment
}

func (m *mockPaymentStore) Create(p *models.Payment) error {
	p.ID = len(m.payments) + 1
	cp := *p
	m.payments = append(m.payments, &cp)
	return nil
}

func (m *mockPaymentStore) ListByLead(leadID int) ([]models.Payment, error) {
	out := []models.Payment{}
	for _, p := range m.payments {
		if p.LeadID == leadID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type mockUserStore struct {
	users map[int]*models.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: map[int]*models.User{
		1: {ID: 1, Name: "Alice Admin", Email: "alice@example.com", RoleID: 50},
		2: {ID: 2, Name: "Bob Staff", Email: "bob@example.com", RoleID: 10},
	}}
}

func (m *mockUserStore) Create(u *models.User) error {
	u.ID = len(m.users) + 1
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) GetByID(id int) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *mockUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

type mockPartnerStore struct {
	partners map[int]*models.Partner
}

func newMockPartnerStore() *mockPartnerStore {
	return &mockPartnerStore{partners: map[int]*models.Partner{
		7: {ID: 7, Name: "Acme Partners", CompanyName: "Acme Partners LLC"},
	}}
}

func (m *mockPartnerStore) GetByID(id int) (*models.Partner, error) {
	p, ok := m.partners[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}
