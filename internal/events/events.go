// Package events models the user actions an attached activity page reports
// back to the hub: key presses, dialog interactions, visibility changes and
// animation completions. The controller consumes them through a Bus instead
// of ambient DOM listeners so the logic is testable headlessly.
package events

// Kind identifies one class of user action.
type Kind string

const (
	KindKeyPress      Kind = "key_press"
	KindVisibility    Kind = "visibility"
	KindDialogAction  Kind = "dialog_action"
	KindSettingsSaved Kind = "settings_saved"
	KindAnimationEnd  Kind = "animation_end"
	KindControl       Kind = "control"
)

// Dialog actions reported by the page.
const (
	DialogConfirm = "confirm"
	DialogCancel  = "cancel"
	DialogOverlay = "overlay"
)

// Control button identifiers.
const (
	ControlHome     = "home"
	ControlBack     = "back"
	ControlSettings = "settings"
)

// Event is one user action. Only the fields for its Kind are set.
type Event struct {
	Kind Kind `json:"kind"`

	// KindKeyPress
	Key  string `json:"key,omitempty"`
	Ctrl bool   `json:"ctrl,omitempty"`
	Alt  bool   `json:"alt,omitempty"`

	// KindVisibility
	Hidden bool `json:"hidden,omitempty"`

	// KindDialogAction
	DialogID string `json:"dialogId,omitempty"`
	Action   string `json:"action,omitempty"`

	// KindSettingsSaved
	SoundEnabled      *bool    `json:"soundEnabled,omitempty"`
	Volume            *float64 `json:"volume,omitempty"`
	AnimationsEnabled *bool    `json:"animationsEnabled,omitempty"`

	// KindAnimationEnd
	Element   string `json:"element,omitempty"`
	Animation string `json:"animation,omitempty"`

	// KindControl
	Control string `json:"control,omitempty"`
}
