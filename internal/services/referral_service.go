package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"partnerleads/internal/apperrors"
	"partnerleads/internal/models"
)

type ReferralService struct {
	referrals ReferralStore
	partners  PartnerStore
}

func NewReferralService(referrals ReferralStore, partners PartnerStore) *ReferralService {
	return &ReferralService{referrals: referrals, partners: partners}
}

// ResolvedReferral is what the linker hands back to lead creation.
type ResolvedReferral struct {
	ReferralID int `json:"referral_id"`
	PartnerID  int `json:"partner_id"`
}

// Resolve looks up a referral by code, case-insensitively, and consumes it:
// the first consumption flips the referral to contacted. An unmatched code is
// a client error, not a server fault.
func (s *ReferralService) Resolve(code string) (*ResolvedReferral, error) {
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
	return &ResolvedReferral{ReferralID: ref.ID, PartnerID: ref.PartnerID}, nil
}

type CreateReferralInput struct {
	PartnerID       int    `json:"partner_id"`
	ProspectCompany string `json:"prospect_company"`
	ProspectContact string `json:"prospect_contact"`
	ProspectEmail   string `json:"prospect_email"`
}

// Create registers a partner submission with a generated, unique, uppercase
// referral code.
func (s *ReferralService) Create(in CreateReferralInput) (*models.Referral, error) {
	if in.PartnerID <= 0 {
		return nil, apperrors.Validationf("partner_id is required")
	}
	if strings.TrimSpace(in.ProspectCompany) == "" {
		return nil, apperrors.Validationf("prospect_company is required")
	}

	if _, err := s.partners.GetByID(in.PartnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("partner %d: %w", in.PartnerID, apperrors.ErrNotFound)
		}
		return nil, apperrors.Persistencef("lookup partner", err)
	}

	now := time.Now()
	ref := &models.Referral{
		ReferralCode:    GenerateReferralCode(),
		PartnerID:       in.PartnerID,
		ProspectCompany: strings.TrimSpace(in.ProspectCompany),
		ProspectContact: in.ProspectContact,
		ProspectEmail:   in.ProspectEmail,
		Status:          models.ReferralStatusSubmitted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.referrals.Create(ref); err != nil {
		return nil, apperrors.Persistencef("create referral", err)
	}
	return ref, nil
}

func (s *ReferralService) List(status string, partnerID int) ([]models.Referral, error) {
	refs, err := s.referrals.List(status, partnerID)
	if err != nil {
		return nil, apperrors.Persistencef("list referrals", err)
	}
	return refs, nil
}

// GenerateReferralCode yields an 8-character uppercase code from a random
// UUID. Codes are immutable after creation.
func GenerateReferralCode() string {
	return strings.ToUpper(strings.SplitN(uuid.New().String(), "-", 2)[0])
}
