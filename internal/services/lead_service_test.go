package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"partnerleads/internal/apperrors"
	"partnerleads/internal/models"
)

type leadServiceFixture struct {
	svc        *LeadService
	leads      *mockLeadStore
	referrals  *mockReferralStore
	activities *mockActivityStore
	audit      *mockAuditStore
	payments   *mockPaymentStore
	users      *mockUserStore
}

func newLeadServiceFixture() *leadServiceFixture {
	refs := newMockReferralStore()
	leads := newMockLeadStore(refs)
	activities := &mockActivityStore{}
	audit := &mockAuditStore{}
	payments := &mockPaymentStore{}
	users := newMockUserStore()
	svc := NewLeadService(leads, refs, activities, audit, payments, users, nil, nil, zap.NewNop())
	return &leadServiceFixture{
		svc: svc, leads: leads, referrals: refs,
		activities: activities, audit: audit, payments: payments, users: users,
	}
}

func validCreateInput() CreateLeadInput {
	return CreateLeadInput{
		CompanyName: "Acme",
		ContactName: "Jo",
		Email:       "jo@acme.com",
		Phone:       "555",
	}
}

func TestCreateLead_MissingRequiredFields(t *testing.T) {
	f := newLeadServiceFixture()

	for _, mutate := range []func(*CreateLeadInput){
		func(in *CreateLeadInput) { in.CompanyName = "" },
		func(in *CreateLeadInput) { in.ContactName = " " },
		func(in *CreateLeadInput) { in.Email = "" },
		func(in *CreateLeadInput) { in.Phone = "" },
	} {
		in := validCreateInput()
		mutate(&in)
		_, _, err := f.svc.Create(in, 1)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	}
	assert.Empty(t, f.leads.leads, "no lead may be persisted on validation failure")
}

func TestCreateLead_Internal(t *testing.T) {
	f := newLeadServiceFixture()

	lead, linked, err := f.svc.Create(validCreateInput(), 2)
	require.NoError(t, err)
	assert.False(t, linked)
	assert.Equal(t, models.LeadStatusNew, lead.Status)
	assert.Equal(t, models.LeadSourceInternal, lead.Source)
	assert.Nil(t, lead.ReferralID)
	assert.Equal(t, 2, lead.AssignedTo, "assignee defaults to the creating actor")

	// lead_created activity + audit entry
	require.Len(t, f.activities.activities, 1)
	assert.Equal(t, models.ActivityLeadCreated, f.activities.activities[0].Type)
	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditActionCreate, f.audit.entries[0].Action)
}

func TestCreateLead_WithReferral(t *testing.T) {
	f := newLeadServiceFixture()
	ref := f.referrals.add("ABC123", 7, models.ReferralStatusSubmitted)

	in := validCreateInput()
	in.ReferralCode = "abc123" // case-insensitive match

	lead, linked, err := f.svc.Create(in, 1)
	require.NoError(t, err)
	assert.True(t, linked)
	assert.Equal(t, models.LeadSourcePartner, lead.Source)
	require.NotNil(t, lead.ReferralID)
	assert.Equal(t, ref.ID, *lead.ReferralID)
	assert.Equal(t, "ABC123", lead.ReferralCode)

	// consuming the referral moved it to contacted
	assert.Equal(t, models.ReferralStatusContacted, f.referrals.refs[ref.ID].Status)
}

func TestCreateLead_UnknownReferralCodeFailsWholeOperation(t *testing.T) {
	f := newLeadServiceFixture()

	in := validCreateInput()
	in.ReferralCode = "NOPE"

	_, _, err := f.svc.Create(in, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, f.leads.leads, "no lead may be persisted when the code is unknown")
}

func TestCreateLead_SourceInvariant(t *testing.T) {
	f := newLeadServiceFixture()
	f.referrals.add("REF001", 7, models.ReferralStatusSubmitted)

	withRef := validCreateInput()
	withRef.ReferralCode = "REF001"
	lead1, _, err := f.svc.Create(withRef, 1)
	require.NoError(t, err)
	lead2, _, err := f.svc.Create(validCreateInput(), 1)
	require.NoError(t, err)

	assert.True(t, (lead1.Source == models.LeadSourcePartner) == (lead1.ReferralID != nil))
	assert.True(t, (lead2.Source == models.LeadSourcePartner) == (lead2.ReferralID != nil))
}

func TestCreateLead_RoundTrip(t *testing.T) {
	f := newLeadServiceFixture()

	in := validCreateInput()
	in.Industry = "Manufacturing"
	in.EstimatedValue = 120000

	created, _, err := f.svc.Create(in, 1)
	require.NoError(t, err)

	got, err := f.svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, in.CompanyName, got.CompanyName)
	assert.Equal(t, in.ContactName, got.ContactName)
	assert.Equal(t, in.Email, got.Email)
	assert.Equal(t, in.Phone, got.Phone)
	assert.Equal(t, in.Industry, got.Industry)
	assert.Equal(t, in.EstimatedValue, got.EstimatedValue)
	assert.NotZero(t, got.ID)
	assert.Equal(t, models.LeadStatusNew, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestUpdateStatus_InvalidStatusLeavesLeadUnchanged(t *testing.T) {
	f := newLeadServiceFixture()
	lead, _, err := f.svc.Create(validCreateInput(), 1)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(lead.ID, "bogus", "", 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	got, err := f.svc.GetByID(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusNew, got.Status)
}

func TestUpdateStatus_PersistsAndReadsBack(t *testing.T) {
	f := newLeadServiceFixture()

	for _, status := range models.LeadStatuses {
		lead, _, err := f.svc.Create(validCreateInput(), 1)
		require.NoError(t, err)

		updated, err := f.svc.UpdateStatus(lead.ID, status, "", 1)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)

		got, err := f.svc.GetByID(lead.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
		assert.NotNil(t, got.LastContact)
	}
}

func TestUpdateStatus_CascadesToReferral(t *testing.T) {
	cases := []struct {
		lead models.LeadStatus
		want models.ReferralStatus
	}{
		{models.LeadStatusConverted, models.ReferralStatusWon},
		{models.LeadStatusLost, models.ReferralStatusLost},
		{models.LeadStatusQualified, models.ReferralStatusMeetingScheduled},
		{models.LeadStatusProposal, models.ReferralStatusProposalSent},
		{models.LeadStatusNegotiation, models.ReferralStatusNegotiation},
		{models.LeadStatusContacted, models.ReferralStatusContacted},
	}
	for _, tc := range cases {
		t.Run(string(tc.lead), func(t *testing.T) {
			f := newLeadServiceFixture()
			ref := f.referrals.add("XYZ789", 7, models.ReferralStatusSubmitted)

			in := validCreateInput()
			in.ReferralCode = "XYZ789"
			lead, _, err := f.svc.Create(in, 1)
			require.NoError(t, err)

			_, err = f.svc.UpdateStatus(lead.ID, tc.lead, "", 1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.referrals.refs[ref.ID].Status)
		})
	}
}

func TestUpdateStatus_NoReferralNoCascade(t *testing.T) {
	f := newLeadServiceFixture()
	lead, _, err := f.svc.Create(validCreateInput(), 1)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(lead.ID, models.LeadStatusConverted, "", 1)
	require.NoError(t, err)
	assert.Empty(t, f.referrals.statusUpdates)
}

func TestUpdateStatus_StatusChangeActivityWithDefaultNotes(t *testing.T) {
	f := newLeadServiceFixture()
	lead, _, err := f.svc.Create(validCreateInput(), 1)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(lead.ID, models.LeadStatusQualified, "", 1)
	require.NoError(t, err)

	var statusActivities []*models.LeadActivity
	for _, a := range f.activities.activities {
		if a.Type == models.ActivityStatusChange {
			statusActivities = append(statusActivities, a)
		}
	}
	require.Len(t, statusActivities, 1)
	assert.Contains(t, statusActivities[0].Notes, "qualified")
}

func TestUpdateStatus_NotFound(t *testing.T) {
	f := newLeadServiceFixture()
	_, err := f.svc.UpdateStatus(99, models.LeadStatusQualified, "", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdate_AppliesFieldsAndLogsActivity(t *testing.T) {
	f := newLeadServiceFixture()
	lead, _, err := f.svc.Create(validCreateInput(), 1)
	require.NoError(t, err)

	newName := "Acme Industries"
	newValue := 250000.0
	updated, err := f.svc.Update(lead.ID, UpdateLeadInput{
		CompanyName:    &newName,
		EstimatedValue: &newValue,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, newName, updated.CompanyName)
	assert.Equal(t, newValue, updated.EstimatedValue)
	assert.Equal(t, lead.CreatedAt, updated.CreatedAt, "created_at is immutable")

	found := false
	for _, a := range f.activities.activities {
		if a.Type == models.ActivityInfoUpdated {
			found = true
		}
	}
	assert.True(t, found, "information_updated activity must be appended")
}

func TestList_StatisticsCoverAllBucketsAndSumToTotal(t *testing.T) {
	f := newLeadServiceFixture()
	f.referrals.add("P1", 7, models.ReferralStatusSubmitted)

	withRef := validCreateInput()
	withRef.ReferralCode = "P1"
	_, _, err := f.svc.Create(withRef, 1)
	require.NoError(t, err)
	lead2, _, err := f.svc.Create(validCreateInput(), 1)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(lead2.ID, models.LeadStatusQualified, "", 1)
	require.NoError(t, err)

	result, err := f.svc.List(models.LeadFilters{Status: "qualified"}, 1, 20)
	require.NoError(t, err)

	stats := result.Statistics
	assert.Len(t, stats.ByStatus, len(models.LeadStatuses), "all seven status buckets present")
	assert.Len(t, stats.BySource, len(models.LeadSources), "both source buckets present")

	sum := 0
	for _, n := range stats.ByStatus {
		sum += n
	}
	assert.Equal(t, stats.Total, sum)
	// statistics cover the unfiltered set even though the page is filtered
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[models.LeadStatusQualified])
	assert.Equal(t, 1, stats.BySource[models.LeadSourcePartner])
}

func TestLogActivity_Validation(t *testing.T) {
	f := newLeadServiceFixture()
	lead, _, err := f.svc.Create(validCreateInput(), 1)
	require.NoError(t, err)

	_, err = f.svc.LogActivity(lead.ID, "unboxing", "notes", 1)
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.svc.LogActivity(lead.ID, models.ActivityCall, "  ", 1)
	assert.True(t, apperrors.IsValidation(err))

	// lead_created is system-only
	_, err = f.svc.LogActivity(lead.ID, models.ActivityLeadCreated, "notes", 1)
	assert.True(t, apperrors.IsValidation(err))
}

func TestLogActivity_AppendsAndStampsLastContact(t *testing.T) {
	f := newLeadServiceFixture()
	lead, _, err := f.svc.Create(validCreateInput(), 1)
	require.NoError(t, err)

	activity, err := f.svc.LogActivity(lead.ID, models.ActivityCall, "intro call", 2)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityCall, activity.Type)
	assert.Equal(t, "Bob Staff", activity.RecorderName)

	got, err := f.svc.GetByID(lead.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.LastContact)
}

func TestRecordPayment(t *testing.T) {
	f := newLeadServiceFixture()
	lead, _, err := f.svc.Create(validCreateInput(), 1)
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(lead.ID, 0, "", "", 1)
	assert.True(t, apperrors.IsValidation(err))

	payment, err := f.svc.RecordPayment(lead.ID, 500, "wire", "deposit", 1)
	require.NoError(t, err)
	assert.Equal(t, 500.0, payment.Amount)

	got, err := f.svc.GetByID(lead.ID)
	require.NoError(t, err)
	require.Len(t, got.Payments, 1)
}

func TestAttachReferralCode(t *testing.T) {
	f := newLeadServiceFixture()
	ref := f.referrals.add("LATE01", 7, models.ReferralStatusSubmitted)

	lead, _, err := f.svc.Create(validCreateInput(), 1)
	require.NoError(t, err)

	_, err = f.svc.AttachReferralCode(lead.ID, "missing", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	linked, err := f.svc.AttachReferralCode(lead.ID, "late01", 1)
	require.NoError(t, err)
	require.NotNil(t, linked.ReferralID)
	assert.Equal(t, ref.ID, *linked.ReferralID)
	assert.Equal(t, "LATE01", linked.ReferralCode)
	assert.Equal(t, models.LeadSourcePartner, linked.Source)
	assert.Equal(t, models.ReferralStatusContacted, f.referrals.refs[ref.ID].Status)

	// a second attach is rejected
	_, err = f.svc.AttachReferralCode(lead.ID, "LATE01", 1)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSideWriteFailuresAreSwallowed(t *testing.T) {
	f := newLeadServiceFixture()
	f.activities.createErr = errors.New("activity sink down")
	f.audit.createErr = errors.New("audit sink down")

	lead, _, err := f.svc.Create(validCreateInput(), 1)
	require.NoError(t, err, "best-effort side writes must not fail the create")
	assert.NotZero(t, lead.ID)
}
