package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"activity-hub/internal/storage"
)

// ActivityDataHandler handles per-activity scratch data
type ActivityDataHandler struct {
	store *storage.Store
}

// NewActivityDataHandler creates a new activity data handler
func NewActivityDataHandler(store *storage.Store) *ActivityDataHandler {
	return &ActivityDataHandler{
		store: store,
	}
}

// GetData returns one stored value
// GET /api/activity/{name}/data/{key}
func (dh *ActivityDataHandler) GetData(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]
	key := vars["key"]

	data, ok, err := dh.store.Get(storage.ActivityKey(name, key))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// PutData stores one JSON value
// PUT /api/activity/{name}/data/{key}
func (dh *ActivityDataHandler) PutData(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]
	key := vars["key"]

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if !json.Valid(body) {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := dh.store.Put(storage.ActivityKey(name, key), body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteData removes one stored value
// DELETE /api/activity/{name}/data/{key}
func (dh *ActivityDataHandler) DeleteData(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]
	key := vars["key"]

	if err := dh.store.Delete(storage.ActivityKey(name, key)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListKeys returns the keys stored for an activity
// GET /api/activity/{name}/data
func (dh *ActivityDataHandler) ListKeys(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	keys, err := dh.store.ListActivity(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Always return an array, even if empty
	if keys == nil {
		keys = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(keys)
}
