package view

import (
	"sync"
	"time"
)

// Recorder is a headless View that records every directive. Tests assert on
// the recorded sequence instead of a live document.
type Recorder struct {
	mu         sync.Mutex
	directives []Directive

	// FullscreenErr, when set, is returned by ToggleFullscreen.
	FullscreenErr error
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(kind string, payload map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directives = append(r.directives, Directive{Kind: kind, Payload: payload})
}

// Directives returns a copy of everything recorded so far
func (r *Recorder) Directives() []Directive {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Directive, len(r.directives))
	copy(out, r.directives)
	return out
}

// ByKind returns the recorded directives of one kind, in order
func (r *Recorder) ByKind(kind string) []Directive {
	var out []Directive
	for _, d := range r.Directives() {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Last returns the most recent directive of kind, or false
func (r *Recorder) Last(kind string) (Directive, bool) {
	ds := r.ByKind(kind)
	if len(ds) == 0 {
		return Directive{}, false
	}
	return ds[len(ds)-1], true
}

func (r *Recorder) ShowConfirmDialog(id, message string) {
	r.record(KindConfirmDialog, map[string]any{"id": id, "message": message})
}

func (r *Recorder) DismissDialog(id string) {
	r.record(KindDismissDialog, map[string]any{"id": id})
}

func (r *Recorder) ShowNotification(id, message, notifType string, duration time.Duration) {
	r.record(KindNotification, map[string]any{
		"id": id, "message": message, "type": notifType, "durationMs": duration.Milliseconds(),
	})
}

func (r *Recorder) ShowSettingsDialog(soundEnabled bool, volume float64, animationsEnabled bool) {
	r.record(KindSettingsDialog, map[string]any{
		"soundEnabled": soundEnabled, "volume": volume, "animationsEnabled": animationsEnabled,
	})
}

func (r *Recorder) RenderControlButtons() {
	r.record(KindControls, nil)
}

func (r *Recorder) InsertSkipLink(target string) {
	r.record(KindSkipLink, map[string]any{"target": target})
}

func (r *Recorder) SetFontSize(px int) {
	r.record(KindFontSize, map[string]any{"px": px})
}

func (r *Recorder) SetHighContrast(on bool) {
	r.record(KindHighContrast, map[string]any{"on": on})
}

func (r *Recorder) ToggleFullscreen() error {
	r.record(KindFullscreen, nil)
	return r.FullscreenErr
}

func (r *Recorder) PlaySound(name string, volume float64) {
	r.record(KindPlaySound, map[string]any{"name": name, "volume": volume})
}

func (r *Recorder) Animate(element, animation string, duration time.Duration, easing string) {
	r.record(KindAnimate, map[string]any{
		"element": element, "animation": animation, "durationMs": duration.Milliseconds(), "easing": easing,
	})
}

func (r *Recorder) ShowConfetti(fallbackDuration time.Duration) {
	r.record(KindConfetti, map[string]any{"fallbackMs": fallbackDuration.Milliseconds()})
}

func (r *Recorder) SetProgress(percent float64) {
	r.record(KindProgress, map[string]any{"percent": percent})
}

func (r *Recorder) Navigate(target string) {
	r.record(KindNavigate, map[string]any{"target": target})
}
