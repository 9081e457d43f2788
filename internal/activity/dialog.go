package activity

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"activity-hub/internal/events"
)

const defaultNotificationDuration = 3 * time.Second

// ShowConfirmDialog renders a modal with confirm/cancel actions and returns
// its id. Exactly one of onConfirm/onCancel fires exactly once, whichever of
// the four dismissal paths happens first: confirm click, cancel click,
// overlay click, or Escape. The Escape listener is one-shot and removes
// itself on resolution.
func (c *Controller) ShowConfirmDialog(message string, onConfirm, onCancel func()) string {
	id := uuid.NewString()

	var mu sync.Mutex
	resolved := false
	var cancelAction, cancelKey func()

	// The handlers can fire from the hub goroutine as soon as they are
	// subscribed, so the cancel funcs are assigned and read under mu: a
	// resolution racing the wiring below blocks until both are set.
	resolve := func(action string) {
		mu.Lock()
		if resolved {
			mu.Unlock()
			return
		}
		resolved = true
		unsubAction, unsubKey := cancelAction, cancelKey
		mu.Unlock()

		unsubAction()
		unsubKey()
		c.view.DismissDialog(id)

		if action == events.DialogConfirm {
			if onConfirm != nil {
				onConfirm()
			}
			return
		}
		if onCancel != nil {
			onCancel()
		}
	}

	mu.Lock()
	cancelAction = c.bus.Subscribe(events.KindDialogAction, func(ev events.Event) {
		if ev.DialogID != id {
			return
		}
		switch ev.Action {
		case events.DialogConfirm, events.DialogCancel, events.DialogOverlay:
			resolve(ev.Action)
		}
	})
	cancelKey = c.bus.Subscribe(events.KindKeyPress, func(ev events.Event) {
		if ev.Key == "Escape" {
			resolve(events.DialogCancel)
		}
	})
	mu.Unlock()

	c.view.ShowConfirmDialog(id, message)
	return id
}

// ShowNotification renders a transient banner that auto-dismisses after
// duration (3s when zero) and plays the sound matching the severity.
func (c *Controller) ShowNotification(message, notifType string, duration time.Duration) string {
	if duration <= 0 {
		duration = defaultNotificationDuration
	}

	id := uuid.NewString()
	c.view.ShowNotification(id, message, notifType, duration)

	switch notifType {
	case "success":
		c.PlaySound("success")
	case "error":
		c.PlaySound("error")
	default:
		c.PlaySound("notification")
	}
	return id
}
