package models

import "time"

// ReferralStatus is the partner-side pipeline, distinct from LeadStatus.
type ReferralStatus string

const (
	ReferralStatusSubmitted        ReferralStatus = "submitted"
	ReferralStatusContacted        ReferralStatus = "contacted"
	ReferralStatusMeetingScheduled ReferralStatus = "meeting_scheduled"
	ReferralStatusProposalSent     ReferralStatus = "proposal_sent"
	ReferralStatusNegotiation      ReferralStatus = "negotiation"
	ReferralStatusWon              ReferralStatus = "won"
	ReferralStatusLost             ReferralStatus = "lost"
)

var ReferralStatuses = []ReferralStatus{
	ReferralStatusSubmitted,
	ReferralStatusContacted,
	ReferralStatusMeetingScheduled,
	ReferralStatusProposalSent,
	ReferralStatusNegotiation,
	ReferralStatusWon,
	ReferralStatusLost,
}

func (s ReferralStatus) Valid() bool {
	for _, v := range ReferralStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Referral struct {
	ID              int            `json:"id"`
	ReferralCode    string         `json:"referral_code"` // unique, immutable, stored uppercase
	PartnerID       int            `json:"partner_id"`
	ProspectCompany string         `json:"prospect_company"`
	ProspectContact string         `json:"prospect_contact"`
	ProspectEmail   string         `json:"prospect_email"`
	Status          ReferralStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	PartnerName string `json:"partner_name,omitempty"`
}

type Partner struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}
