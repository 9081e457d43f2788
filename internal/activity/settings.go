package activity

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"activity-hub/internal/events"
	"activity-hub/internal/models"
	"activity-hub/internal/storage"
)

// ShowSettings renders the settings modal bound to the current values. The
// page reports a settings_saved event on save, which applies and persists.
func (c *Controller) ShowSettings() {
	c.mu.Lock()
	soundEnabled := c.cfg.Sounds.Enabled
	volume := c.cfg.Sounds.Volume
	animationsEnabled := c.cfg.Animations.Enabled
	c.mu.Unlock()

	c.view.ShowSettingsDialog(soundEnabled, volume, animationsEnabled)
}

func (c *Controller) handleSettingsSaved(ev events.Event) {
	c.mu.Lock()
	if ev.SoundEnabled != nil {
		c.cfg.Sounds.Enabled = *ev.SoundEnabled
	}
	if ev.Volume != nil {
		c.cfg.Sounds.Volume = models.ClampVolume(*ev.Volume)
	}
	if ev.AnimationsEnabled != nil {
		c.cfg.Animations.Enabled = *ev.AnimationsEnabled
	}
	c.mu.Unlock()

	c.SaveSettings()
}

// SaveSettings persists the sound and animation settings under the
// "activitySettings" key. Storage failure is logged, never escalated.
func (c *Controller) SaveSettings() {
	settings := c.Config()

	data, err := json.Marshal(settings)
	if err != nil {
		log.Warn().Err(err).Msg("failed to serialize settings")
		return
	}

	if err := c.store.Put(storage.SettingsKey, data); err != nil {
		log.Warn().Err(err).Msg("failed to persist settings")
	}
}

// LoadSettings merges persisted settings back into the configuration.
// Absent or corrupt data is ignored and the defaults stand.
func (c *Controller) LoadSettings() {
	data, ok, err := c.store.Get(storage.SettingsKey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read persisted settings")
		return
	}
	if !ok {
		return
	}

	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Warn().Err(err).Msg("ignoring corrupt persisted settings")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Sounds.Enabled = settings.Sounds.Enabled
	c.cfg.Sounds.Volume = models.ClampVolume(settings.Sounds.Volume)
	if len(settings.Sounds.Files) > 0 {
		c.cfg.Sounds.Files = settings.Sounds.Files
	}
	c.cfg.Animations.Enabled = settings.Animations.Enabled
	if settings.Animations.Duration > 0 {
		c.cfg.Animations.Duration = settings.Animations.Duration
	}
	if settings.Animations.Easing != "" {
		c.cfg.Animations.Easing = settings.Animations.Easing
	}
}
