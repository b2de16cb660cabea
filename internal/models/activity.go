package models

import "time"

// ActivityType is the closed set of timeline entry kinds.
type ActivityType string

const (
	ActivityLeadCreated  ActivityType = "lead_created"
	ActivityInfoUpdated  ActivityType = "information_updated"
	ActivityStatusChange ActivityType = "status_changed"
	ActivityCall         ActivityType = "call"
	ActivityEmail        ActivityType = "email"
	ActivityMeeting      ActivityType = "meeting"
	ActivityNote         ActivityType = "note"
	ActivityDemo         ActivityType = "demo"
	ActivityProposalSent ActivityType = "proposal_sent"
	ActivityFollowUp     ActivityType = "follow_up"
)

// ManualActivityTypes are the kinds staff may log by hand. lead_created is
// written only by the create path.
var ManualActivityTypes = []ActivityType{
	ActivityInfoUpdated,
	ActivityStatusChange,
	ActivityCall,
	ActivityEmail,
	ActivityMeeting,
	ActivityNote,
	ActivityDemo,
	ActivityProposalSent,
	ActivityFollowUp,
}

func (t ActivityType) ValidManual() bool {
	for _, v := range ManualActivityTypes {
		if t == v {
			return true
		}
	}
	return false
}

// LeadActivity is an immutable timeline entry. Append-only, never updated.
type LeadActivity struct {
	ID         int          `json:"id"`
	LeadID     int          `json:"lead_id"`
	Type       ActivityType `json:"type"`
	Notes      string       `json:"notes"`
	RecordedBy int          `json:"recorded_by"`
	CreatedAt  time.Time    `json:"created_at"`

	RecorderName string `json:"recorder_name,omitempty"`
}
