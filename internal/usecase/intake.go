package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/xavierca1/vault-leads/internal/entity"
)

type CaptureLeadUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Notifier LeadNotifier
	Mode     string
}

func NewCaptureLeadUseCase(repo entity.LeadRepositoryInterface, notifier LeadNotifier, mode string) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{
		Repo:     repo,
		Notifier: notifier,
		Mode:     mode,
	}
}

// Execute runs validation, upserts the lead and fires the notifier.
// A filled honeypot short-circuits to silent success: same response
// shape, no write, nothing that tips off the bot.
func (uc *CaptureLeadUseCase) Execute(ctx context.Context, in IntakeInput) (*entity.Lead, error) {
	if strings.TrimSpace(in.Honeypot) != "" {
		return nil, nil
	}

	lead, verr := BuildLead(in, uc.Mode)
	if verr != nil {
		return nil, verr
	}

	if err := uc.Repo.Upsert(ctx, lead); err != nil {
		return nil, uc.mapStoreError(err)
	}

	uc.notify(lead)

	return lead, nil
}

// notify is fire-and-forget. The request context may die with the
// response, so the goroutine gets its own.
func (uc *CaptureLeadUseCase) notify(lead *entity.Lead) {
	if uc.Notifier == nil {
		return
	}

	snapshot := *lead
	go func() {
		if err := uc.Notifier.NotifyLeadCaptured(context.Background(), &snapshot); err != nil {
			log.Printf("⚠️ notifier failed for %s: %v", snapshot.Email, err)
		}
	}()
}

func (uc *CaptureLeadUseCase) mapStoreError(err error) error {
	switch {
	case errors.Is(err, entity.ErrEmailAlreadyExists):
		return NewConflictError("That email is already on the waitlist.")
	case errors.Is(err, entity.ErrMissingField):
		return NewValidationError("Missing required fields. Please complete the form and try again.")
	default:
		return err
	}
}
