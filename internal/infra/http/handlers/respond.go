package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/xavierca1/vault-leads/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": message})
}

// writeFailure maps taxonomy errors to their status; anything else is an
// unexpected failure: generic body out, full detail in the server log.
func writeFailure(w http.ResponseWriter, err error) {
	if de, ok := usecase.AsDomainError(err); ok {
		writeError(w, de.Status, de.Message)
		return
	}

	log.Printf("❌ unexpected error: %v", err)
	writeError(w, http.StatusInternalServerError, "Server error. Please try again.")
}
