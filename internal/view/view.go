// Package view is the rendering capability the activity controller talks to.
// The controller never touches a document directly; it emits directives and
// the attached page (or a test double) carries them out.
package view

import "time"

// View is everything the controller can ask a page to render or change.
type View interface {
	// ShowConfirmDialog renders a modal overlay with confirm/cancel
	// actions; the page reports the outcome as a dialog_action event
	// carrying id.
	ShowConfirmDialog(id, message string)
	// DismissDialog removes the overlay for id.
	DismissDialog(id string)
	// ShowNotification renders a transient banner that fades out after
	// duration.
	ShowNotification(id, message, notifType string, duration time.Duration)
	// ShowSettingsDialog renders the settings modal pre-filled with the
	// current values; the page reports a settings_saved event on save.
	ShowSettingsDialog(soundEnabled bool, volume float64, animationsEnabled bool)
	// RenderControlButtons injects the three floating controls
	// (home, back, settings).
	RenderControlButtons()
	// InsertSkipLink inserts the skip-navigation link as the first
	// document child, pointing at target.
	InsertSkipLink(target string)
	// SetFontSize sets the root font size in pixels.
	SetFontSize(px int)
	// SetHighContrast toggles the document-level high-contrast class.
	SetHighContrast(on bool)
	// ToggleFullscreen requests entering/leaving fullscreen, best effort.
	ToggleFullscreen() error
	// PlaySound starts one playback of a preloaded sound at the given
	// volume. Each call is an independent source, so plays may overlap.
	PlaySound(name string, volume float64)
	// Animate applies the named CSS animation to an element; the page
	// reports an animation_end event when it finishes.
	Animate(element, animation string, duration time.Duration, easing string)
	// ShowConfetti triggers the celebration effect; pages without a
	// confetti library fall back to an emoji burst removed after
	// fallbackDuration.
	ShowConfetti(fallbackDuration time.Duration)
	// SetProgress sets the width of progress-fill elements, in percent.
	SetProgress(percent float64)
	// Navigate sends the page home or back through history.
	Navigate(target string)
}

// Directive is one serialized rendering instruction for the page.
type Directive struct {
	Kind    string         `json:"kind"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Directive kinds understood by the page-side runtime.
const (
	KindConfirmDialog  = "confirm_dialog"
	KindDismissDialog  = "dismiss_dialog"
	KindNotification   = "notification"
	KindSettingsDialog = "settings_dialog"
	KindControls       = "controls"
	KindSkipLink       = "skip_link"
	KindFontSize       = "font_size"
	KindHighContrast   = "high_contrast"
	KindFullscreen     = "fullscreen"
	KindPlaySound      = "play_sound"
	KindAnimate        = "animate"
	KindConfetti       = "confetti"
	KindProgress       = "progress"
	KindNavigate       = "navigate"
)
