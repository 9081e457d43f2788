package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"activity-hub/internal/events"
	"activity-hub/internal/models"
	"activity-hub/internal/storage"
)

// SettingsHandler handles the global settings API
type SettingsHandler struct {
	store *storage.Store
	bus   *events.Bus
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(store *storage.Store, bus *events.Bus) *SettingsHandler {
	return &SettingsHandler{
		store: store,
		bus:   bus,
	}
}

// UpdateSettingsRequest represents a settings update
type UpdateSettingsRequest struct {
	SoundEnabled      *bool    `json:"soundEnabled,omitempty"`
	Volume            *float64 `json:"volume,omitempty"`
	AnimationsEnabled *bool    `json:"animationsEnabled,omitempty"`
}

func (sh *SettingsHandler) currentSettings() models.Settings {
	defaults := models.DefaultAppConfig()
	settings := models.Settings{Sounds: defaults.Sounds, Animations: defaults.Animations}

	data, ok, err := sh.store.Get(storage.SettingsKey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read settings")
		return settings
	}
	if !ok {
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Warn().Err(err).Msg("ignoring corrupt persisted settings")
		return models.Settings{Sounds: defaults.Sounds, Animations: defaults.Animations}
	}
	return settings
}

// GetSettings returns the persisted settings, or the defaults when nothing
// usable is stored.
// GET /api/settings
func (sh *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings := sh.currentSettings()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

// UpdateSettings applies a partial settings update, persists the result and
// notifies the attached page through the event bus.
// PUT /api/settings
func (sh *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Volume != nil && (*req.Volume < 0 || *req.Volume > 1) {
		http.Error(w, "volume must be within [0,1]", http.StatusBadRequest)
		return
	}

	// Persist the merged result so the update sticks even when no page is
	// attached yet; an attached page applies it live via the bus.
	settings := sh.currentSettings()
	if req.SoundEnabled != nil {
		settings.Sounds.Enabled = *req.SoundEnabled
	}
	if req.Volume != nil {
		settings.Sounds.Volume = *req.Volume
	}
	if req.AnimationsEnabled != nil {
		settings.Animations.Enabled = *req.AnimationsEnabled
	}

	data, err := json.Marshal(settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := sh.store.Put(storage.SettingsKey, data); err != nil {
		log.Warn().Err(err).Msg("failed to persist settings")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	sh.bus.Dispatch(events.Event{
		Kind:              events.KindSettingsSaved,
		SoundEnabled:      req.SoundEnabled,
		Volume:            req.Volume,
		AnimationsEnabled: req.AnimationsEnabled,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}
