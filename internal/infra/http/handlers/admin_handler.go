package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/xavierca1/vault-leads/internal/infra/auth"
	"github.com/xavierca1/vault-leads/internal/infra/http/middleware"
	"github.com/xavierca1/vault-leads/internal/usecase"
)

// AdminCredentials are the configured expected values for the single
// administrator identity.
type AdminCredentials struct {
	Username     string
	Password     string
	SessionToken string
}

func (c AdminCredentials) configured() bool {
	return c.Username != "" && c.Password != "" && c.SessionToken != ""
}

type AdminHandler struct {
	Leads    *usecase.LeadAdminUseCase
	Exporter *usecase.ExportLeadsUseCase
	Verifier auth.SessionVerifier
	Creds    AdminCredentials

	// IntakeMode decides which classification column the generic
	// "category" filter targets.
	IntakeMode string

	// SecureCookies should be true in production.
	SecureCookies bool
}

func NewAdminHandler(
	leads *usecase.LeadAdminUseCase,
	exporter *usecase.ExportLeadsUseCase,
	verifier auth.SessionVerifier,
	creds AdminCredentials,
	intakeMode string,
	secureCookies bool,
) *AdminHandler {
	return &AdminHandler{
		Leads:         leads,
		Exporter:      exporter,
		Verifier:      verifier,
		Creds:         creds,
		IntakeMode:    intakeMode,
		SecureCookies: secureCookies,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// Legacy field names, still sent by an older admin page build.
	User string `json:"user"`
	Pass string `json:"pass"`
}

func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = strings.TrimSpace(req.User)
	}
	password := strings.TrimSpace(req.Password)
	if password == "" {
		password = strings.TrimSpace(req.Pass)
	}

	if !h.Creds.configured() {
		writeFailure(w, usecase.NewConfigError("Missing ADMIN_USER/ADMIN_PASS/ADMIN_SESSION_TOKEN env vars"))
		return
	}

	if username != h.Creds.Username || password != h.Creds.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	http.SetCookie(w, auth.NewSessionCookie(h.Creds.SessionToken, h.SecureCookies))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ClearSessionCookie(h.SecureCookies))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *AdminHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"authed": auth.IsAuthed(r, h.Verifier),
	})
}

func (h *AdminHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuth(w, r) {
		return
	}

	rows, err := h.Leads.List(r.Context(), h.listInput(r))
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "data": rows})
}

type approveRequest struct {
	Email   string `json:"email"`
	Approve bool   `json:"approve"`
}

func (h *AdminHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuth(w, r) {
		return
	}

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	row, err := h.Leads.SetApproval(r.Context(), req.Email, req.Approve)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "row": row})
}

func (h *AdminHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if !h.requireAuth(w, r) {
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = usecase.FormatCSV
	}

	file, err := h.Exporter.Execute(r.Context(), h.listInput(r), format)
	if err != nil {
		writeFailure(w, err)
		return
	}

	middleware.RecordExport(format)

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

// requireAuth is the per-operation server-side check; the gate
// middleware alone is never trusted.
func (h *AdminHandler) requireAuth(w http.ResponseWriter, r *http.Request) bool {
	if auth.IsAuthed(r, h.Verifier) {
		return true
	}
	writeError(w, http.StatusUnauthorized, "Unauthorized")
	return false
}

// listInput maps query params onto the filter. "category" targets the
// active variant's classification column; the variant-specific params
// (accountType, leadType) are always honored for older admin builds.
func (h *AdminHandler) listInput(r *http.Request) usecase.ListInput {
	q := r.URL.Query()

	in := usecase.ListInput{
		Search:      q.Get("q"),
		AccountType: q.Get("accountType"),
		LeadType:    q.Get("leadType"),
	}

	if category := strings.TrimSpace(q.Get("category")); category != "" {
		if h.IntakeMode == usecase.IntakeModeSegmented {
			in.LeadType = category
		} else {
			in.AccountType = category
		}
	}

	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			in.Limit = n
		}
	}
	return in
}
