package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partnerleads/internal/apperrors"
	"partnerleads/internal/models"
)

func TestResolve_UnknownCodeIsNotFound(t *testing.T) {
	svc := NewReferralService(newMockReferralStore(), newMockPartnerStore())

	_, err := svc.Resolve("GHOST")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResolve_ConsumesOnFirstUseOnly(t *testing.T) {
	refs := newMockReferralStore()
	ref := refs.add("WELCOME1", 7, models.ReferralStatusSubmitted)
	svc := NewReferralService(refs, newMockPartnerStore())

	resolved, err := svc.Resolve("welcome1")
	require.NoError(t, err)
	assert.Equal(t, ref.ID, resolved.ReferralID)
	assert.Equal(t, 7, resolved.PartnerID)
	assert.Equal(t, models.ReferralStatusContacted, refs.refs[ref.ID].Status)

	// a referral already past submitted keeps its status
	refs.refs[ref.ID].Status = models.ReferralStatusWon
	_, err = svc.Resolve("WELCOME1")
	require.NoError(t, err)
	assert.Equal(t, models.ReferralStatusWon, refs.refs[ref.ID].Status)
}

func TestCreateReferral(t *testing.T) {
	refs := newMockReferralStore()
	svc := NewReferralService(refs, newMockPartnerStore())

	_, err := svc.Create(CreateReferralInput{ProspectCompany: "Globex"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(CreateReferralInput{PartnerID: 7})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(CreateReferralInput{PartnerID: 99, ProspectCompany: "Globex"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	ref, err := svc.Create(CreateReferralInput{PartnerID: 7, ProspectCompany: "Globex"})
	require.NoError(t, err)
	assert.Equal(t, models.ReferralStatusSubmitted, ref.Status)
	assert.NotEmpty(t, ref.ReferralCode)
	assert.NotZero(t, ref.ID)
}

func TestGenerateReferralCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code := GenerateReferralCode()
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.True(t, (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
				"unexpected rune %q in %s", r, code)
		}
		assert.False(t, seen[code], "codes should not repeat in a small sample")
		seen[code] = true
	}
}
