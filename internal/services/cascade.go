package services

import "partnerleads/internal/models"

// referralCascade maps a lead status to the referral status pushed onto a
// linked referral. One-way: referral changes never flow back to the lead.
var referralCascade = map[models.LeadStatus]models.ReferralStatus{
	models.LeadStatusConverted:   models.ReferralStatusWon,
	models.LeadStatusLost:        models.ReferralStatusLost,
	models.LeadStatusQualified:   models.ReferralStatusMeetingScheduled,
	models.LeadStatusProposal:    models.ReferralStatusProposalSent,
	models.LeadStatusNegotiation: models.ReferralStatusNegotiation,
}

// CascadeReferralStatus yields the referral status for a lead status.
// Statuses without an explicit mapping (new, contacted) fall back to
// contacted.
func CascadeReferralStatus(status models.LeadStatus) models.ReferralStatus {
	if ref, ok := referralCascade[status]; ok {
		return ref
	}
	return models.ReferralStatusContacted
}
