package models

import "time"

// Student is one opaque roster record. Activity pages decide which fields
// matter; the hub only hands records out for random selection.
type Student map[string]any

// RosterFile represents the root structure of the roster document
type RosterFile struct {
	Students []Student `json:"students"`
}

// SoundSettings holds the global sound preferences and the named sound files
type SoundSettings struct {
	Enabled bool              `json:"enabled"`
	Volume  float64           `json:"volume"` // 0.0 - 1.0
	Files   map[string]string `json:"files,omitempty"`
}

// AnimationSettings holds the global animation preferences
type AnimationSettings struct {
	Enabled  bool          `json:"enabled"`
	Duration time.Duration `json:"duration"`
	Easing   string        `json:"easing"`
}

// Settings is the persisted slice of AppConfig (storage key "activitySettings")
type Settings struct {
	Sounds     SoundSettings     `json:"sounds"`
	Animations AnimationSettings `json:"animations"`
}

// ActivityInfo describes the activity currently attached to the hub
type ActivityInfo struct {
	Name         string    `json:"name"`
	StartedAt    time.Time `json:"startedAt"`
	EndedAt      time.Time `json:"endedAt,omitempty"`
	Participants []Student `json:"participants,omitempty"`
}

// AppConfig is the page-lifetime mutable configuration. It is owned by the
// activity controller; nothing else mutates it.
type AppConfig struct {
	Sounds     SoundSettings
	Animations AnimationSettings
	Roster     []Student
	Current    ActivityInfo
}

// DefaultSoundFiles maps the six named sounds to their asset paths
func DefaultSoundFiles() map[string]string {
	return map[string]string{
		"click":        "sounds/click.mp3",
		"success":      "sounds/success.mp3",
		"error":        "sounds/error.mp3",
		"notification": "sounds/notification.mp3",
		"celebration":  "sounds/celebration.mp3",
		"tick":         "sounds/tick.mp3",
	}
}

// DefaultAppConfig returns the configuration every page starts from
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Sounds: SoundSettings{
			Enabled: true,
			Volume:  0.7,
			Files:   DefaultSoundFiles(),
		},
		Animations: AnimationSettings{
			Enabled:  true,
			Duration: 300 * time.Millisecond,
			Easing:   "ease-in-out",
		},
	}
}

// ClampVolume keeps a volume inside [0,1]
func ClampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
