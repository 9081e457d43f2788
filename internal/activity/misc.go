package activity

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"activity-hub/internal/events"
	"activity-hub/internal/storage"
)

// Extra slack past the configured duration before an animation wait gives
// up on the animation_end event.
const animationEndGrace = 500 * time.Millisecond

// FormatTime renders a second count as zero-padded MM:SS
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// AnimateElement applies the named animation to an element and returns a
// channel closed when the page reports animation_end, or immediately when
// animations are globally disabled. A lost event closes the channel after
// the configured duration plus grace instead of leaking the wait.
func (c *Controller) AnimateElement(element, animation string) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	enabled := c.cfg.Animations.Enabled
	duration := c.cfg.Animations.Duration
	easing := c.cfg.Animations.Easing
	c.mu.Unlock()

	if !enabled {
		close(done)
		return done
	}

	var once sync.Once
	var cancel func()
	finish := func() {
		once.Do(func() {
			cancel()
			close(done)
		})
	}

	cancel = c.bus.Subscribe(events.KindAnimationEnd, func(ev events.Event) {
		if ev.Element == element && ev.Animation == animation {
			finish()
		}
	})

	c.view.Animate(element, animation, duration, easing)
	time.AfterFunc(duration+animationEndGrace, finish)

	return done
}

// Celebrate plays the celebration sound and triggers the confetti effect;
// pages without a confetti library show an emoji burst removed after 1s.
func (c *Controller) Celebrate() {
	c.PlaySound("celebration")
	c.view.ShowConfetti(time.Second)
}

// ToggleFullscreen asks the page to enter or leave fullscreen, best effort
func (c *Controller) ToggleFullscreen() {
	if err := c.view.ToggleFullscreen(); err != nil {
		log.Warn().Err(err).Msg("fullscreen toggle failed")
	}
}

// SetPauseHooks installs the callbacks fired on visibility changes. Both
// default to no-ops; activity pages override them as needed.
func (c *Controller) SetPauseHooks(onPause, onResume func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onPause = onPause
	c.onResume = onResume
}

func (c *Controller) handleVisibility(ev events.Event) {
	c.mu.Lock()
	onPause := c.onPause
	onResume := c.onResume
	c.mu.Unlock()

	if ev.Hidden {
		if onPause != nil {
			onPause()
		}
		return
	}
	if onResume != nil {
		onResume()
	}
}

// UpdateProgress sets the progress-fill width, clamped to [0,100] percent
func (c *Controller) UpdateProgress(percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	c.view.SetProgress(percent)
}

// SaveActivityData persists a JSON value under a key scoped by the current
// activity name. Failures are logged and dropped.
func (c *Controller) SaveActivityData(key string, value any) {
	c.mu.Lock()
	name := c.cfg.Current.Name
	c.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to serialize activity data")
		return
	}

	if err := c.store.Put(storage.ActivityKey(name, key), data); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to persist activity data")
	}
}

// LoadActivityData reads a persisted value into out, reporting whether a
// usable value existed.
func (c *Controller) LoadActivityData(key string, out any) bool {
	c.mu.Lock()
	name := c.cfg.Current.Name
	c.mu.Unlock()

	data, ok, err := c.store.Get(storage.ActivityKey(name, key))
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read activity data")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("ignoring corrupt activity data")
		return false
	}
	return true
}
