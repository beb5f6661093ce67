package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	// 10 digits: assume US/PR, prefix country code
	assert.Equal(t, "17871234567", NormalizePhone("7871234567"))
	assert.Equal(t, "17871234567", NormalizePhone("(787) 123-4567"))

	// 11 digits with leading 1: keep
	assert.Equal(t, "17871234567", NormalizePhone("1-787-123-4567"))

	// Anything else passes through for the sanity check to reject
	assert.Equal(t, "1787123456", NormalizePhone("1787123456"))
	assert.Equal(t, "5215512345678", NormalizePhone("+52 155 1234 5678"))
}

func TestBuildLeadAccountVariantSuccess(t *testing.T) {
	lead, verr := BuildLead(IntakeInput{
		Email:       "  Maria@Example.COM ",
		FullName:    "María Rivera",
		Phone:       "(787) 123-4567",
		Company:     "Rivera LLC",
		AccountType: "PRIVATE_CORP",
	}, IntakeModeAccount)

	require.Nil(t, verr)
	assert.Equal(t, "maria@example.com", lead.Email)
	assert.Equal(t, "María Rivera", lead.FullName)
	assert.Equal(t, "17871234567", lead.Phone)
	assert.Equal(t, "Rivera LLC", lead.Company)
	assert.Equal(t, "private_corp", lead.AccountType)
	assert.Equal(t, "modal", lead.Source)
	assert.NotEmpty(t, lead.ID)
	assert.Empty(t, lead.LeadType)
}

func TestBuildLeadAccountVariantUnknownAccountTypeDefaultsToIndividual(t *testing.T) {
	lead, verr := BuildLead(IntakeInput{
		Email:       "a@b.co",
		FullName:    "A B",
		Phone:       "7871234567",
		AccountType: "alien",
	}, IntakeModeAccount)

	require.Nil(t, verr)
	assert.Equal(t, "individual", lead.AccountType)
}

func TestBuildLeadAccountVariantRejectsBadPhone(t *testing.T) {
	// 10 digits starting with 1: normalization leaves it alone and the
	// US/PR sanity check must reject it.
	_, verr := BuildLead(IntakeInput{
		Email:    "a@b.co",
		FullName: "A B",
		Phone:    "1787123456",
	}, IntakeModeAccount)

	require.NotNil(t, verr)
	assert.Equal(t, 400, verr.Status)
	assert.Equal(t, "Please enter a valid phone number (PR/US).", verr.Message)
}

func TestBuildLeadAccountVariantRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		in   IntakeInput
		want string
	}{
		{"missing email", IntakeInput{FullName: "A", Phone: "7871234567"}, "Email is required."},
		{"bad email", IntakeInput{Email: "not-an-email", FullName: "A", Phone: "7871234567"}, "Please enter a valid email."},
		{"missing name", IntakeInput{Email: "a@b.co", Phone: "7871234567"}, "Full name is required."},
		{"missing phone", IntakeInput{Email: "a@b.co", FullName: "A"}, "Phone is required."},
		{"blank name after trim", IntakeInput{Email: "a@b.co", FullName: "   ", Phone: "7871234567"}, "Full name is required."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, verr := BuildLead(tc.in, IntakeModeAccount)
			require.NotNil(t, verr)
			assert.Equal(t, tc.want, verr.Message)
		})
	}
}

func TestBuildLeadSegmentedVariantSuccess(t *testing.T) {
	lead, verr := BuildLead(IntakeInput{
		Email:      "founder@startup.io",
		Name:       "Sam Founder",
		Company:    "Startup Inc",
		LeadType:   "customer",
		Vertical:   "fintech",
		Volume:     "10k/mo",
		TicketSize: "ignored-for-customers",
	}, IntakeModeSegmented)

	require.Nil(t, verr)
	assert.Equal(t, "customer", lead.LeadType)
	assert.Equal(t, "Sam Founder", lead.FullName)
	assert.Equal(t, "fintech", lead.Vertical)
	assert.Equal(t, "10k/mo", lead.Volume)
	assert.Empty(t, lead.AccountType)
}

func TestBuildLeadSegmentedVariantRules(t *testing.T) {
	// customer requires an organization
	_, verr := BuildLead(IntakeInput{
		Email:    "c@d.io",
		Name:     "C",
		LeadType: "customer",
	}, IntakeModeSegmented)
	require.NotNil(t, verr)
	assert.Equal(t, "Organization is required for customers.", verr.Message)

	// investor does not
	lead, verr := BuildLead(IntakeInput{
		Email:      "i@d.io",
		Name:       "I",
		LeadType:   "investor",
		Stage:      "seed",
		TicketSize: "250k",
	}, IntakeModeSegmented)
	require.Nil(t, verr)
	assert.Equal(t, "seed", lead.Stage)

	// unknown lead type rejected
	_, verr = BuildLead(IntakeInput{
		Email:    "x@d.io",
		Name:     "X",
		LeadType: "partner",
	}, IntakeModeSegmented)
	require.NotNil(t, verr)
	assert.Equal(t, "Invalid lead type.", verr.Message)

	// name required
	_, verr = BuildLead(IntakeInput{
		Email:    "x@d.io",
		LeadType: "career",
	}, IntakeModeSegmented)
	require.NotNil(t, verr)
	assert.Equal(t, "Name is required.", verr.Message)
}

func TestBuildLeadSourceOverride(t *testing.T) {
	lead, verr := BuildLead(IntakeInput{
		Email:    "a@b.co",
		FullName: "A",
		Phone:    "7871234567",
		Source:   "landing-hero",
	}, IntakeModeAccount)

	require.Nil(t, verr)
	assert.Equal(t, "landing-hero", lead.Source)
}
