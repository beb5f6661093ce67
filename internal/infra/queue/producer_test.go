package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/vault-leads/internal/entity"
)

func TestLeadCapturedPayloadMarshalling(t *testing.T) {
	payload := LeadCapturedPayload{
		LeadID:      "lead-123",
		Email:       "jane@example.com",
		FullName:    "Jane Doe",
		Phone:       "17871234567",
		Company:     "Acme",
		AccountType: "individual",
		Source:      "modal",
		CapturedAt:  "2026-01-08T23:57:55Z",
	}

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NotEmpty(t, body)

	var received LeadCapturedPayload
	require.NoError(t, json.Unmarshal(body, &received))

	assert.Equal(t, "lead-123", received.LeadID)
	assert.Equal(t, "jane@example.com", received.Email)
	assert.Equal(t, "Jane Doe", received.FullName)
	assert.Equal(t, "17871234567", received.Phone)
	assert.Equal(t, "individual", received.AccountType)
	assert.Equal(t, "modal", received.Source)
	assert.Equal(t, "2026-01-08T23:57:55Z", received.CapturedAt)
}

func TestPayloadLeadRoundTrip(t *testing.T) {
	created := time.Date(2026, 1, 8, 23, 57, 55, 0, time.UTC)
	lead := &entity.Lead{
		ID:         "lead-123",
		Email:      "jane@example.com",
		FullName:   "Jane Doe",
		LeadType:   "investor",
		Stage:      "seed",
		TicketSize: "250k",
		Source:     "modal",
		CreatedAt:  created,
	}

	payload := payloadFromLead(lead)
	assert.Equal(t, "2026-01-08T23:57:55Z", payload.CapturedAt)

	back := payload.toLead()
	assert.Equal(t, lead.ID, back.ID)
	assert.Equal(t, lead.Email, back.Email)
	assert.Equal(t, lead.LeadType, back.LeadType)
	assert.Equal(t, lead.Stage, back.Stage)
	assert.True(t, created.Equal(back.CreatedAt))
}

func TestOmittedOptionalFieldsStayOffTheWire(t *testing.T) {
	payload := LeadCapturedPayload{
		LeadID:     "lead-1",
		Email:      "a@b.co",
		CapturedAt: "2026-01-08T23:57:55Z",
	}

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.NotContains(t, string(body), "company")
	assert.NotContains(t, string(body), "ticket_size")
}
