package services

import (
	"time"

	"partnerleads/internal/models"
)

// Store interfaces are what services depend on; the concrete repositories in
// internal/repositories satisfy them. Handles are injected at construction,
// lifecycle owned by the app wiring.

type LeadStore interface {
	Create(lead *models.Lead) error
	CreateFromReferral(lead *models.Lead, referralID int) error
	GetByID(id int) (*models.Lead, error)
	Filter(f models.LeadFilters, limit, offset int) ([]models.Lead, error)
	CountFiltered(f models.LeadFilters) (int, error)
	Statistics() (*models.LeadStatistics, error)
	PipelineValue() (float64, error)
	Update(lead *models.Lead) error
	UpdateStatus(id int, status models.LeadStatus, at time.Time) error
	TouchContact(id int, at time.Time) error
	AttachReferral(id, referralID int, code string, at time.Time) error
}

type ReferralStore interface {
	GetByCode(code string) (*models.Referral, error)
	GetByID(id int) (*models.Referral, error)
	Create(ref *models.Referral) error
	UpdateStatus(id int, status models.ReferralStatus) error
	ConsumeContacted(id int) error
	List(status string, partnerID int) ([]models.Referral, error)
}

type ActivityStore interface {
	Create(a *models.LeadActivity) error
	ListByLead(leadID int) ([]models.LeadActivity, error)
}

type AuditStore interface {
	Create(e *models.AuditLogEntry) error
}

type PaymentStore interface {
	Create(p *models.Payment) error
	ListByLead(leadID int) ([]models.Payment, error)
}

type UserStore interface {
	Create(u *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

type PartnerStore interface {
	GetByID(id int) (*models.Partner, error)
}
