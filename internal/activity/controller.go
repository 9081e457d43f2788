// Package activity implements the shared utility layer every activity page
// attaches to: lifecycle, sounds, dialogs, notifications, settings,
// accessibility bindings and the random selection helpers.
package activity

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"activity-hub/internal/events"
	"activity-hub/internal/models"
	"activity-hub/internal/roster"
	"activity-hub/internal/sound"
	"activity-hub/internal/view"
)

const (
	defaultFontSize = 16
	minFontSize     = 12
	maxFontSize     = 24
	fontSizeStep    = 2
)

// Storage is the durable key-value storage the controller persists into.
type Storage interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
}

// Controller owns the AppConfig for one attached page and carries out every
// operation against it. All mutation goes through the controller, never
// through shared globals.
type Controller struct {
	mu     sync.Mutex
	cfg    *models.AppConfig
	roster *roster.Roster
	rng    *rand.Rand

	view   view.View
	bus    *events.Bus
	sounds *sound.Manager
	store  Storage

	rosterSource string
	fontSize     int
	highContrast bool
	onPause      func()
	onResume     func()

	initCancels []func()
}

// NewController wires a controller from its capabilities. The configuration
// starts from defaults; Init and LoadSettings mutate it from there.
func NewController(v view.View, bus *events.Bus, store Storage, sounds *sound.Manager) *Controller {
	return &Controller{
		cfg:      models.DefaultAppConfig(),
		roster:   &roster.Roster{},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		view:     v,
		bus:      bus,
		sounds:   sounds,
		store:    store,
		fontSize: defaultFontSize,
	}
}

// SetRosterSource sets the roster document location read by Init
func (c *Controller) SetRosterSource(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rosterSource = source
}

// SetRandom replaces the random source. Tests inject a seeded source for
// deterministic draws.
func (c *Controller) SetRandom(rng *rand.Rand) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rng = rng
}

// Init stamps the activity name and start time, loads persisted settings and
// the roster, starts the sound preload and injects the page affordances.
// Every sub-step degrades on failure; Init never aborts.
func (c *Controller) Init(ctx context.Context, name string) {
	c.mu.Lock()
	c.cfg.Current = models.ActivityInfo{
		Name:      name,
		StartedAt: time.Now(),
	}
	source := c.rosterSource
	c.mu.Unlock()

	c.LoadSettings()

	// read after LoadSettings so persisted file overrides reach the preload
	c.mu.Lock()
	files := c.cfg.Sounds.Files
	c.mu.Unlock()

	var r *roster.Roster
	if source != "" {
		r = roster.Load(ctx, source)
	} else {
		r = &roster.Roster{}
	}
	c.mu.Lock()
	c.roster = r
	c.cfg.Roster = r.Students
	c.mu.Unlock()

	go c.sounds.Preload(ctx, files)

	// Re-Init replaces the previous listeners instead of stacking them.
	c.mu.Lock()
	for _, cancel := range c.initCancels {
		cancel()
	}
	c.initCancels = []func(){
		c.bus.Subscribe(events.KindKeyPress, c.handleKey),
		c.bus.Subscribe(events.KindVisibility, c.handleVisibility),
		c.bus.Subscribe(events.KindControl, c.handleControl),
		c.bus.Subscribe(events.KindSettingsSaved, c.handleSettingsSaved),
	}
	c.mu.Unlock()

	c.view.RenderControlButtons()
	c.view.InsertSkipLink("#main-content")

	log.Info().Str("activity", name).Int("students", r.Len()).Msg("activity initialized")
}

// Activity returns a snapshot of the current activity descriptor
func (c *Controller) Activity() models.ActivityInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Current
}

// Config returns a snapshot of the current settings
func (c *Controller) Config() models.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.Settings{Sounds: c.cfg.Sounds, Animations: c.cfg.Animations}
}

// PlaySound emits one playback of a preloaded sound at the configured
// volume. Silent no-op when sound is globally disabled or the buffer never
// loaded; each play is an independent source, so plays can overlap.
func (c *Controller) PlaySound(name string) {
	c.mu.Lock()
	enabled := c.cfg.Sounds.Enabled
	volume := c.cfg.Sounds.Volume
	c.mu.Unlock()

	if !enabled {
		return
	}
	if _, ok := c.sounds.Buffer(name); !ok {
		return
	}
	c.view.PlaySound(name, volume)
}

func (c *Controller) handleControl(ev events.Event) {
	switch ev.Control {
	case events.ControlHome, events.ControlBack:
		c.view.Navigate(ev.Control)
	case events.ControlSettings:
		c.ShowSettings()
	}
}

// RandomStudent picks a uniformly random student from the roster
func (c *Controller) RandomStudent() (models.Student, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.RandomStudent(c.rng)
}

// RandomStudents samples count distinct students without replacement
func (c *Controller) RandomStudents(count int) []models.Student {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.RandomStudents(c.rng, count)
}

// ShuffleStudents returns a shuffled copy of the whole roster
func (c *Controller) ShuffleStudents() []models.Student {
	c.mu.Lock()
	defer c.mu.Unlock()
	return roster.Shuffle(c.rng, c.roster.Students)
}
