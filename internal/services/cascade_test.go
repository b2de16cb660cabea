package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"partnerleads/internal/models"
)

func TestCascadeReferralStatus(t *testing.T) {
	cases := []struct {
		lead models.LeadStatus
		want models.ReferralStatus
	}{
		{models.LeadStatusConverted, models.ReferralStatusWon},
		{models.LeadStatusLost, models.ReferralStatusLost},
		{models.LeadStatusQualified, models.ReferralStatusMeetingScheduled},
		{models.LeadStatusProposal, models.ReferralStatusProposalSent},
		{models.LeadStatusNegotiation, models.ReferralStatusNegotiation},
		// unmapped statuses fall back to contacted
		{models.LeadStatusNew, models.ReferralStatusContacted},
		{models.LeadStatusContacted, models.ReferralStatusContacted},
	}
	for _, tc := range cases {
		t.Run(string(tc.lead), func(t *testing.T) {
			assert.Equal(t, tc.want, CascadeReferralStatus(tc.lead))
		})
	}
}

func TestCascadeCoversEveryLeadStatus(t *testing.T) {
	for _, status := range models.LeadStatuses {
		assert.True(t, CascadeReferralStatus(status).Valid(),
			"cascade of %s must be a valid referral status", status)
	}
}
