package models

import "time"

// LeadStatus is the closed set of lifecycle states for a lead.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusProposal    LeadStatus = "proposal"
	LeadStatusNegotiation LeadStatus = "negotiation"
	LeadStatusConverted   LeadStatus = "converted"
	LeadStatusLost        LeadStatus = "lost"
)

// LeadStatuses lists every valid status, in lifecycle order. Statistics
// buckets and validation both iterate this slice.
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusProposal,
	LeadStatusNegotiation,
	LeadStatusConverted,
	LeadStatusLost,
}

func (s LeadStatus) Valid() bool {
	for _, v := range LeadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// LeadSource says where a lead came from.
type LeadSource string

const (
	LeadSourcePartner  LeadSource = "partner"
	LeadSourceInternal LeadSource = "internal"
)

var LeadSources = []LeadSource{LeadSourcePartner, LeadSourceInternal}

type Lead struct {
	ID             int        `json:"id"`
	CompanyName    string     `json:"company_name"`
	ContactName    string     `json:"contact_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Industry       string     `json:"industry"`
	ERPSystem      string     `json:"erp_system"`
	Timeline       string     `json:"implementation_timeline"`
	EstimatedValue float64    `json:"estimated_value"`
	Status         LeadStatus `json:"status"`
	Source         LeadSource `json:"source"`
	ReferralID     *int       `json:"referral_id"`
	ReferralCode   string     `json:"referral_code"` // denormalized, always uppercase
	AssignedTo     int        `json:"assigned_to"`
	LastContact    *time.Time `json:"last_contact"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Joined display data, populated on reads.
	AssigneeName string         `json:"assignee_name,omitempty"`
	PartnerName  string         `json:"partner_name,omitempty"`
	Activities   []LeadActivity `json:"activities,omitempty"`
	Payments     []Payment      `json:"payments,omitempty"`
}

// LeadStatistics is computed over the full lead set, never the filtered page.
// All status and source buckets are always present, zero-filled.
type LeadStatistics struct {
	Total    int                `json:"total"`
	ByStatus map[LeadStatus]int `json:"by_status"`
	BySource map[LeadSource]int `json:"by_source"`
}

type LeadFilters struct {
	Status     string
	Source     string
	AssignedTo string
	Search     string
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}
