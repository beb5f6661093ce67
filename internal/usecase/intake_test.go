package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/vault-leads/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Find(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) SetApproval(ctx context.Context, email string, approve bool) (*entity.Lead, error) {
	args := m.Called(ctx, email, approve)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type recordingNotifier struct {
	captured chan *entity.Lead
}

func (n *recordingNotifier) NotifyLeadCaptured(ctx context.Context, lead *entity.Lead) error {
	n.captured <- lead
	return nil
}

func TestCaptureLeadSuccess(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	notifier := &recordingNotifier{captured: make(chan *entity.Lead, 1)}
	uc := NewCaptureLeadUseCase(repo, notifier, IntakeModeAccount)

	lead, err := uc.Execute(context.Background(), IntakeInput{
		Email:    "jane@example.com",
		FullName: "Jane Doe",
		Phone:    "787-123-4567",
	})

	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "jane@example.com", lead.Email)
	repo.AssertCalled(t, "Upsert", mock.Anything, mock.Anything)

	select {
	case notified := <-notifier.captured:
		assert.Equal(t, "jane@example.com", notified.Email)
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never called")
	}
}

func TestCaptureLeadHoneypotSilentSuccess(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewCaptureLeadUseCase(repo, nil, IntakeModeAccount)

	lead, err := uc.Execute(context.Background(), IntakeInput{
		Email:    "bot@spam.net",
		FullName: "Bot",
		Phone:    "7871234567",
		Honeypot: "gotcha",
	})

	require.NoError(t, err)
	assert.Nil(t, lead)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCaptureLeadValidationFailureSkipsStore(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewCaptureLeadUseCase(repo, nil, IntakeModeAccount)

	_, err := uc.Execute(context.Background(), IntakeInput{
		Email: "not-an-email",
	})

	require.Error(t, err)
	de, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, 400, de.Status)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCaptureLeadMapsConflict(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(entity.ErrEmailAlreadyExists)

	uc := NewCaptureLeadUseCase(repo, nil, IntakeModeAccount)

	_, err := uc.Execute(context.Background(), IntakeInput{
		Email:    "dup@example.com",
		FullName: "Dup",
		Phone:    "7871234567",
	})

	require.Error(t, err)
	de, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, 409, de.Status)
	assert.Equal(t, "That email is already on the waitlist.", de.Message)
}

func TestCaptureLeadMapsNotNullViolation(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(entity.ErrMissingField)

	uc := NewCaptureLeadUseCase(repo, nil, IntakeModeAccount)

	_, err := uc.Execute(context.Background(), IntakeInput{
		Email:    "x@example.com",
		FullName: "X",
		Phone:    "7871234567",
	})

	de, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, 400, de.Status)
}
