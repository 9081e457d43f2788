package handlers

import (
	"encoding/json"
	"net/http"

	"activity-hub/internal/models"
	"activity-hub/internal/roster"
)

// RosterHandler serves the roster document to activity pages
type RosterHandler struct {
	source string
}

// NewRosterHandler creates a handler reading the roster from source
func NewRosterHandler(source string) *RosterHandler {
	return &RosterHandler{
		source: source,
	}
}

// GetRoster returns the roster document; a missing or malformed roster
// degrades to an empty student list, never an error status.
// GET /api/roster
func (rh *RosterHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	loaded := roster.Load(r.Context(), rh.source)

	students := loaded.Students
	if students == nil {
		students = []models.Student{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.RosterFile{Students: students})
}
