package view

import "time"

// Broadcaster delivers directives to every connection of the attached page.
type Broadcaster interface {
	Broadcast(Directive)
}

// PageView renders by broadcasting directives to the attached page.
type PageView struct {
	broadcaster Broadcaster
}

// NewPageView creates a view on top of a broadcaster (the websocket hub)
func NewPageView(b Broadcaster) *PageView {
	return &PageView{broadcaster: b}
}

func (p *PageView) send(kind string, payload map[string]any) {
	p.broadcaster.Broadcast(Directive{Kind: kind, Payload: payload})
}

func (p *PageView) ShowConfirmDialog(id, message string) {
	p.send(KindConfirmDialog, map[string]any{
		"id":      id,
		"message": message,
	})
}

func (p *PageView) DismissDialog(id string) {
	p.send(KindDismissDialog, map[string]any{"id": id})
}

func (p *PageView) ShowNotification(id, message, notifType string, duration time.Duration) {
	p.send(KindNotification, map[string]any{
		"id":         id,
		"message":    message,
		"type":       notifType,
		"durationMs": duration.Milliseconds(),
	})
}

func (p *PageView) ShowSettingsDialog(soundEnabled bool, volume float64, animationsEnabled bool) {
	p.send(KindSettingsDialog, map[string]any{
		"soundEnabled":      soundEnabled,
		"volume":            volume,
		"animationsEnabled": animationsEnabled,
	})
}

func (p *PageView) RenderControlButtons() {
	p.send(KindControls, nil)
}

func (p *PageView) InsertSkipLink(target string) {
	p.send(KindSkipLink, map[string]any{"target": target})
}

func (p *PageView) SetFontSize(px int) {
	p.send(KindFontSize, map[string]any{"px": px})
}

func (p *PageView) SetHighContrast(on bool) {
	p.send(KindHighContrast, map[string]any{"on": on})
}

// ToggleFullscreen is best effort: the request is handed to the page and any
// rejection is the page's to log.
func (p *PageView) ToggleFullscreen() error {
	p.send(KindFullscreen, nil)
	return nil
}

func (p *PageView) PlaySound(name string, volume float64) {
	p.send(KindPlaySound, map[string]any{
		"name":   name,
		"volume": volume,
	})
}

func (p *PageView) Animate(element, animation string, duration time.Duration, easing string) {
	p.send(KindAnimate, map[string]any{
		"element":    element,
		"animation":  animation,
		"durationMs": duration.Milliseconds(),
		"easing":     easing,
	})
}

func (p *PageView) ShowConfetti(fallbackDuration time.Duration) {
	p.send(KindConfetti, map[string]any{
		"fallbackMs": fallbackDuration.Milliseconds(),
	})
}

func (p *PageView) SetProgress(percent float64) {
	p.send(KindProgress, map[string]any{"percent": percent})
}

func (p *PageView) Navigate(target string) {
	p.send(KindNavigate, map[string]any{"target": target})
}
