package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"partnerleads/internal/apperrors"
	"partnerleads/internal/models"
)

// ConversionNotifier is pinged when a lead reaches converted. Best-effort.
type ConversionNotifier interface {
	LeadConverted(lead *models.Lead) error
}

type LeadService struct {
	leads      LeadStore
	referrals  ReferralStore
	activities ActivityStore
	audit      AuditStore
	payments   PaymentStore
	users      UserStore
	email      EmailService       // may be nil
	notifier   ConversionNotifier // may be nil
	logger     *zap.Logger
}

func NewLeadService(leads LeadStore, referrals ReferralStore, activities ActivityStore,
	audit AuditStore, payments PaymentStore, users UserStore, email EmailService,
	notifier ConversionNotifier, logger *zap.Logger) *LeadService {
	return &LeadService{
		leads:      leads,
		referrals:  referrals,
		activities: activities,
		audit:      audit,
		payments:   payments,
		users:      users,
		email:      email,
		notifier:   notifier,
		logger:     logger,
	}
}

type CreateLeadInput struct {
	CompanyName    string  `json:"company_name"`
	ContactName    string  `json:"contact_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Industry       string  `json:"industry"`
	ERPSystem      string  `json:"erp_system"`
	Timeline       string  `json:"implementation_timeline"`
	EstimatedValue float64 `json:"estimated_value"`
	ReferralCode   string  `json:"referral_code"`
	AssignedTo     int     `json:"assigned_to"`
}

// Create validates required fields, resolves an optional referral code and
// persists the lead. A lead is never created pointing at a nonexistent
// referral: an unmatched code fails the whole operation before any write.
func (s *LeadService) Create(in CreateLeadInput, actorID int) (*models.Lead, bool, error) {
	for field, v := range map[string]string{
		"company_name": in.CompanyName,
		"contact_name": in.ContactName,
		"email":        in.Email,
		"phone":        in.Phone,
	} {
		if strings.TrimSpace(v) == "" {
			return nil, false, apperrors.Validationf("%s is required", field)
		}
	}

	now := time.Now()
	lead := &models.Lead{
		CompanyName:    strings.TrimSpace(in.CompanyName),
		ContactName:    strings.TrimSpace(in.ContactName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Industry:       in.Industry,
		ERPSystem:      in.ERPSystem,
		Timeline:       in.Timeline,
		EstimatedValue: in.EstimatedValue,
		Status:         models.LeadStatusNew,
		Source:         models.LeadSourceInternal,
		AssignedTo:     in.AssignedTo,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if lead.AssignedTo == 0 {
		lead.AssignedTo = actorID
	}

	linked := false
	if code := strings.TrimSpace(in.ReferralCode); code != "" {
		ref, err := s.referrals.GetByCode(code)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, false, fmt.Errorf("invalid referral code: %w", apperrors.ErrNotFound)
			}
			return nil, false, apperrors.Persistencef("lookup referral", err)
		}
		refID := ref.ID
		lead.ReferralID = &refID
		lead.ReferralCode = strings.ToUpper(ref.ReferralCode)
		lead.Source = models.LeadSourcePartner
		if err := s.leads.CreateFromReferral(lead, ref.ID); err != nil {
			return nil, false, apperrors.Persistencef("create lead from referral", err)
		}
		linked = true
	} else {
		if err := s.leads.Create(lead); err != nil {
			return nil, false, apperrors.Persistencef("create lead", err)
		}
	}

	s.appendActivity(lead.ID, models.ActivityLeadCreated,
		fmt.Sprintf("Lead created for %s", lead.CompanyName), actorID)
	s.appendAudit(actorID, models.AuditActionCreate, "lead", lead.ID, lead)

	if s.email != nil && lead.AssignedTo != actorID {
		if assignee, err := s.users.GetByID(lead.AssignedTo); err == nil {
			if err := s.email.SendLeadAssigned(assignee.Email, assignee.Name, lead.CompanyName); err != nil {
				s.logger.Warn("lead assignment email failed", zap.Int("lead_id", lead.ID), zap.Error(err))
			}
		}
	}

	full, err := s.GetByID(lead.ID)
	if err != nil {
		// lead is committed; fall back to what we have
		return lead, linked, nil
	}
	return full, linked, nil
}

type ListLeadsResult struct {
	Leads      []models.Lead          `json:"leads"`
	Pagination models.Pagination      `json:"pagination"`
	Statistics *models.LeadStatistics `json:"statistics"`
}

// List returns one page of leads newest-first plus a total count. Statistics
// are always computed over the full lead set, not the filtered page.
func (s *LeadService) List(f models.LeadFilters, page, limit int) (*ListLeadsResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	leads, err := s.leads.Filter(f, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.Persistencef("list leads", err)
	}
	total, err := s.leads.CountFiltered(f)
	if err != nil {
		return nil, apperrors.Persistencef("count leads", err)
	}
	stats, err := s.leads.Statistics()
	if err != nil {
		return nil, apperrors.Persistencef("lead statistics", err)
	}
	normalizeStatistics(stats)

	return &ListLeadsResult{
		Leads:      leads,
		Pagination: models.Pagination{Page: page, Limit: limit, Total: total},
		Statistics: stats,
	}, nil
}

// normalizeStatistics guarantees every status and source bucket is present,
// zero-filled, no matter what the store returned.
func normalizeStatistics(stats *models.LeadStatistics) {
	if stats.ByStatus == nil {
		stats.ByStatus = make(map[models.LeadStatus]int, len(models.LeadStatuses))
	}
	if stats.BySource == nil {
		stats.BySource = make(map[models.LeadSource]int, len(models.LeadSources))
	}
	for _, s := range models.LeadStatuses {
		if _, ok := stats.ByStatus[s]; !ok {
			stats.ByStatus[s] = 0
		}
	}
	for _, s := range models.LeadSources {
		if _, ok := stats.BySource[s]; !ok {
			stats.BySource[s] = 0
		}
	}
}

// GetByID returns the lead joined with assignee and partner display data,
// the full activity timeline and payment records.
func (s *LeadService) GetByID(id int) (*models.Lead, error) {
	lead, err := s.leads.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, apperrors.Persistencef("get lead", err)
	}

	if lead.Activities, err = s.activities.ListByLead(id); err != nil {
		return nil, apperrors.Persistencef("list activities", err)
	}
	if lead.Payments, err = s.payments.ListByLead(id); err != nil {
		return nil, apperrors.Persistencef("list payments", err)
	}
	return lead, nil
}

type UpdateLeadInput struct {
	CompanyName    *string  `json:"company_name"`
	ContactName    *string  `json:"contact_name"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone"`
	Industry       *string  `json:"industry"`
	ERPSystem      *string  `json:"erp_system"`
	Timeline       *string  `json:"implementation_timeline"`
	EstimatedValue *float64 `json:"estimated_value"`
	AssignedTo     *int     `json:"assigned_to"`
}

// Update applies free-form field changes. id, created_at and referral_id are
// immutable through this path; referral linkage is only set at creation or
// through the referral-code attach operation.
func (s *LeadService) Update(id int, in UpdateLeadInput, actorID int) (*models.Lead, error) {
	lead, err := s.leads.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, apperrors.Persistencef("get lead", err)
	}

	if in.CompanyName != nil {
		lead.CompanyName = *in.CompanyName
	}
	if in.ContactName != nil {
		lead.ContactName = *in.ContactName
	}
	if in.Email != nil {
		lead.Email = *in.Email
	}
	if in.Phone != nil {
		lead.Phone = *in.Phone
	}
	if in.Industry != nil {
		lead.Industry = *in.Industry
	}
	if in.ERPSystem != nil {
		lead.ERPSystem = *in.ERPSystem
	}
	if in.Timeline != nil {
		lead.Timeline = *in.Timeline
	}
	if in.EstimatedValue != nil {
		lead.EstimatedValue = *in.EstimatedValue
	}
	if in.AssignedTo != nil {
		lead.AssignedTo = *in.AssignedTo
	}
	lead.UpdatedAt = time.Now()

	if err := s.leads.Update(lead); err != nil {
		return nil, apperrors.Persistencef("update lead", err)
	}

	s.appendActivity(id, models.ActivityInfoUpdated, "Lead information updated", actorID)
	s.appendAudit(actorID, models.AuditActionUpdate, "lead", id, lead)

	return s.GetByID(id)
}

// UpdateStatus moves the lead through its lifecycle and, when the lead came
// from a referral, pushes the mapped status onto that referral.
func (s *LeadService) UpdateStatus(id int, status models.LeadStatus, notes string, actorID int) (*models.Lead, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid status %q", status)
	}

	lead, err := s.leads.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, apperrors.Persistencef("get lead", err)
	}

	now := time.Now()
	if err := s.leads.UpdateStatus(id, status, now); err != nil {
		return nil, apperrors.Persistencef("update lead status", err)
	}

	if notes == "" {
		notes = fmt.Sprintf("Status changed from %s to %s", lead.Status, status)
	}
	s.appendActivity(id, models.ActivityStatusChange, notes, actorID)

	if lead.ReferralID != nil {
		refStatus := CascadeReferralStatus(status)
		if err := s.referrals.UpdateStatus(*lead.ReferralID, refStatus); err != nil {
			return nil, apperrors.Persistencef("cascade referral status", err)
		}
	}

	lead.Status = status
	s.appendAudit(actorID, models.AuditActionUpdate, "lead", id, lead)

	if status == models.LeadStatusConverted && s.notifier != nil {
		if err := s.notifier.LeadConverted(lead); err != nil {
			s.logger.Warn("conversion notification failed", zap.Int("lead_id", id), zap.Error(err))
		}
	}

	return s.GetByID(id)
}

// LogActivity appends a manual timeline entry and stamps the lead's
// last-contact time. Both type and notes are required.
func (s *LeadService) LogActivity(id int, actType models.ActivityType, notes string, actorID int) (*models.LeadActivity, error) {
	if !actType.ValidManual() {
		return nil, apperrors.Validationf("invalid activity type %q", actType)
	}
	if strings.TrimSpace(notes) == "" {
		return nil, apperrors.Validationf("notes are required")
	}

	if _, err := s.leads.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, apperrors.Persistencef("get lead", err)
	}

	activity := &models.LeadActivity{
		LeadID:     id,
		Type:       actType,
		Notes:      notes,
		RecordedBy: actorID,
		CreatedAt:  time.Now(),
	}
	if err := s.activities.Create(activity); err != nil {
		return nil, apperrors.Persistencef("create activity", err)
	}
	if recorder, err := s.users.GetByID(actorID); err == nil {
		activity.RecorderName = recorder.Name
	}

	if err := s.leads.TouchContact(id, activity.CreatedAt); err != nil {
		s.logger.Warn("touch last_contact failed", zap.Int("lead_id", id), zap.Error(err))
	}
	return activity, nil
}

// RecordPayment stores a payment against the lead.
func (s *LeadService) RecordPayment(id int, amount float64, method, notes string, actorID int) (*models.Payment, error) {
	if amount <= 0 {
		return nil, apperrors.Validationf("amount must be positive")
	}
	if _, err := s.leads.GetByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, apperrors.Persistencef("get lead", err)
	}

	payment := &models.Payment{
		LeadID:     id,
		Amount:     amount,
		Method:     method,
		Notes:      notes,
		RecordedBy: actorID,
		CreatedAt:  time.Now(),
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, apperrors.Persistencef("create payment", err)
	}
	s.appendAudit(actorID, models.AuditActionCreate, "payment", payment.ID, payment)
	return payment, nil
}

// AttachReferralCode links an existing lead to a referral after creation.
// The free-form update path keeps referral_id closed, so this is the only
// post-create way to set the linkage.
func (s *LeadService) AttachReferralCode(id int, code string, actorID int) (*models.Lead, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperrors.Validationf("referral_code is required")
	}

	lead, err := s.leads.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lead %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, apperrors.Persistencef("get lead", err)
	}
	if lead.ReferralID != nil {
		return nil, apperrors.Validationf("lead already linked to a referral")
	}

	ref, err := s.referrals.GetByCode(code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invalid referral code: %w", apperrors.ErrNotFound)
		}
		return nil, apperrors.Persistencef("lookup referral", err)
	}

	if err := s.referrals.ConsumeContacted(ref.ID); err != nil {
		return nil, apperrors.Persistencef("consume referral", err)
	}
	if err := s.leads.AttachReferral(id, ref.ID, strings.ToUpper(ref.ReferralCode), time.Now()); err != nil {
		return nil, apperrors.Persistencef("attach referral", err)
	}

	s.appendActivity(id, models.ActivityInfoUpdated,
		fmt.Sprintf("Referral code %s attached", strings.ToUpper(ref.ReferralCode)), actorID)
	s.appendAudit(actorID, models.AuditActionUpdate, "lead", id, lead)

	return s.GetByID(id)
}

// appendActivity and appendAudit are best-effort: a failed side write is
// logged and never fails the primary operation.
func (s *LeadService) appendActivity(leadID int, actType models.ActivityType, notes string, actorID int) {
	a := &models.LeadActivity{
		LeadID:     leadID,
		Type:       actType,
		Notes:      notes,
		RecordedBy: actorID,
		CreatedAt:  time.Now(),
	}
	if err := s.activities.Create(a); err != nil {
		s.logger.Warn("activity append failed",
			zap.Int("lead_id", leadID), zap.String("type", string(actType)), zap.Error(err))
	}
}

func (s *LeadService) appendAudit(actorID int, action, resourceType string, resourceID int, snapshot any) {
	values, err := json.Marshal(snapshot)
	if err != nil {
		values = []byte("{}")
	}
	entry := &models.AuditLogEntry{
		UserID:       actorID,
		UserType:     "internal",
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		NewValues:    string(values),
		CreatedAt:    time.Now(),
	}
	if err := s.audit.Create(entry); err != nil {
		s.logger.Warn("audit append failed",
			zap.String("resource", resourceType), zap.Int("resource_id", resourceID), zap.Error(err))
	}
}
