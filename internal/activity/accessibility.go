package activity

import (
	"activity-hub/internal/events"
)

// Key bindings: Ctrl+= / Ctrl+- step the root font size by 2px inside
// [12,24], Ctrl+0 resets it, Alt+H toggles the high-contrast class.
func (c *Controller) handleKey(ev events.Event) {
	switch {
	case ev.Ctrl && (ev.Key == "=" || ev.Key == "+"):
		c.adjustFontSize(fontSizeStep)
	case ev.Ctrl && ev.Key == "-":
		c.adjustFontSize(-fontSizeStep)
	case ev.Ctrl && ev.Key == "0":
		c.resetFontSize()
	case ev.Alt && (ev.Key == "h" || ev.Key == "H"):
		c.toggleHighContrast()
	}
}

// FontSize returns the current root font size in pixels
func (c *Controller) FontSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fontSize
}

// HighContrast reports whether the high-contrast class is active
func (c *Controller) HighContrast() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.highContrast
}

func (c *Controller) adjustFontSize(delta int) {
	c.mu.Lock()
	next := c.fontSize + delta
	if next < minFontSize {
		next = minFontSize
	}
	if next > maxFontSize {
		next = maxFontSize
	}
	changed := next != c.fontSize
	c.fontSize = next
	c.mu.Unlock()

	// already at the floor/ceiling: no-op, no directive
	if changed {
		c.view.SetFontSize(next)
	}
}

func (c *Controller) resetFontSize() {
	c.mu.Lock()
	changed := c.fontSize != defaultFontSize
	c.fontSize = defaultFontSize
	c.mu.Unlock()

	if changed {
		c.view.SetFontSize(defaultFontSize)
	}
}

func (c *Controller) toggleHighContrast() {
	c.mu.Lock()
	c.highContrast = !c.highContrast
	on := c.highContrast
	c.mu.Unlock()

	c.view.SetHighContrast(on)
}
