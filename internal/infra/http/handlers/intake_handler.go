package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/vault-leads/internal/infra/http/middleware"
	"github.com/xavierca1/vault-leads/internal/usecase"
)

type IntakeHandler struct {
	UseCase     *usecase.CaptureLeadUseCase
	RateLimiter Limiter
}

func NewIntakeHandler(uc *usecase.CaptureLeadUseCase, limiter Limiter) *IntakeHandler {
	return &IntakeHandler{
		UseCase:     uc,
		RateLimiter: limiter,
	}
}

func (h *IntakeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.RateLimiter.Allow(clientIP) {
		middleware.RecordRateLimited()
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please wait a few minutes and try again.")
		return
	}

	var input usecase.IntakeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := h.UseCase.Execute(r.Context(), input)
	if err != nil {
		writeFailure(w, err)
		return
	}

	// lead is nil on honeypot hits: same success shape, nothing stored.
	if lead != nil {
		category := lead.LeadType
		if category == "" {
			category = lead.AccountType
		}
		middleware.RecordLeadCaptured(category)
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
