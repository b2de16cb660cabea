package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadStatusValid(t *testing.T) {
	for _, s := range LeadStatuses {
		assert.True(t, s.Valid(), "%s must be valid", s)
	}
	assert.False(t, LeadStatus("").Valid())
	assert.False(t, LeadStatus("won").Valid(), "won is a referral status, not a lead status")
	assert.False(t, LeadStatus("New").Valid(), "statuses are case-sensitive")
	assert.Len(t, LeadStatuses, 7)
}

func TestReferralStatusValid(t *testing.T) {
	for _, s := range ReferralStatuses {
		assert.True(t, s.Valid(), "%s must be valid", s)
	}
	assert.False(t, ReferralStatus("converted").Valid(), "converted is a lead status, not a referral status")
	assert.Len(t, ReferralStatuses, 7)
}

func TestActivityTypeValidManual(t *testing.T) {
	for _, a := range ManualActivityTypes {
		assert.True(t, a.ValidManual())
	}
	assert.False(t, ActivityLeadCreated.ValidManual(), "lead_created is written only by the system")
	assert.False(t, ActivityType("lunch").ValidManual())
	assert.Len(t, ManualActivityTypes, 9)
}
