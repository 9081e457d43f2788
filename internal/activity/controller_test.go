package activity_test

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-hub/internal/activity"
	"activity-hub/internal/events"
	"activity-hub/internal/models"
	"activity-hub/internal/sound"
	"activity-hub/internal/storage"
	"activity-hub/internal/view"
)

// memStore is an in-memory Storage for headless controller tests.
type memStore struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string][]byte)}
}

func (s *memStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), value...)
	return nil
}

type fixture struct {
	controller *activity.Controller
	rec        *view.Recorder
	bus        *events.Bus
	store      *memStore
	sounds     *sound.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rec := view.NewRecorder()
	bus := events.NewBus()
	store := newMemStore()
	sounds := sound.NewManager(t.TempDir())

	c := activity.NewController(rec, bus, store, sounds)
	c.SetRandom(rand.New(rand.NewSource(1)))
	return &fixture{controller: c, rec: rec, bus: bus, store: store, sounds: sounds}
}

func (f *fixture) initActivity(t *testing.T, name string) {
	t.Helper()
	f.controller.Init(context.Background(), name)
}

// loadSound puts a real file behind name and preloads it into the cache.
func (f *fixture) loadSound(t *testing.T, name string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".mp3")
	require.NoError(t, os.WriteFile(path, []byte("not-really-audio"), 0644))
	f.sounds.Preload(context.Background(), map[string]string{name: path})
	_, ok := f.sounds.Buffer(name)
	require.True(t, ok)
}

// persistSettings writes settings into the store as LoadSettings expects them.
func persistSettings(t *testing.T, f *fixture, s models.Settings) {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.NoError(t, f.store.Put(storage.SettingsKey, data))
}

func TestInit_StampsActivity(t *testing.T) {
	f := newFixture(t)

	before := time.Now()
	f.initActivity(t, "fractions")

	info := f.controller.Activity()
	assert.Equal(t, "fractions", info.Name)
	assert.False(t, info.StartedAt.Before(before))

	// control buttons and skip link injected
	assert.Len(t, f.rec.ByKind(view.KindControls), 1)
	link, ok := f.rec.Last(view.KindSkipLink)
	require.True(t, ok)
	assert.Equal(t, "#main-content", link.Payload["target"])
}

func TestInit_MissingRosterDegradesToEmpty(t *testing.T) {
	f := newFixture(t)
	f.controller.SetRosterSource(filepath.Join(t.TempDir(), "absent.json"))

	f.initActivity(t, "fractions")

	_, ok := f.controller.RandomStudent()
	assert.False(t, ok)
}

func TestInit_LoadsRoster(t *testing.T) {
	f := newFixture(t)

	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"students": [{"name": "Ada"}, {"name": "Grace"}]}`), 0644))
	f.controller.SetRosterSource(path)

	f.initActivity(t, "fractions")

	picked := f.controller.RandomStudents(5)
	assert.Len(t, picked, 2)
}

func TestPlaySound_MissingBufferIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.initActivity(t, "fractions")

	f.controller.PlaySound("never-loaded")

	assert.Empty(t, f.rec.ByKind(view.KindPlaySound))
}

func TestPlaySound_LoadedBufferEmitsPlay(t *testing.T) {
	f := newFixture(t)
	f.loadSound(t, "click")

	f.controller.PlaySound("click")

	d, ok := f.rec.Last(view.KindPlaySound)
	require.True(t, ok)
	assert.Equal(t, "click", d.Payload["name"])
	assert.Equal(t, 0.7, d.Payload["volume"])
}

func TestPlaySound_DisabledIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.loadSound(t, "click")
	f.initActivity(t, "fractions")

	enabled := false
	f.bus.Dispatch(events.Event{Kind: events.KindSettingsSaved, SoundEnabled: &enabled})

	f.controller.PlaySound("click")

	assert.Empty(t, f.rec.ByKind(view.KindPlaySound))
}

func TestShowNotification_SeveritySounds(t *testing.T) {
	cases := []struct {
		notifType string
		sound     string
	}{
		{"success", "success"},
		{"error", "error"},
		{"info", "notification"},
		{"", "notification"},
	}

	for _, tc := range cases {
		t.Run("type="+tc.notifType, func(t *testing.T) {
			f := newFixture(t)
			f.loadSound(t, tc.sound)

			f.controller.ShowNotification("hello", tc.notifType, 0)

			n, ok := f.rec.Last(view.KindNotification)
			require.True(t, ok)
			assert.Equal(t, "hello", n.Payload["message"])
			// zero duration falls back to the 3s default
			assert.Equal(t, int64(3000), n.Payload["durationMs"])

			p, ok := f.rec.Last(view.KindPlaySound)
			require.True(t, ok)
			assert.Equal(t, tc.sound, p.Payload["name"])
		})
	}
}

func TestUpdateProgress_Clamps(t *testing.T) {
	f := newFixture(t)

	f.controller.UpdateProgress(-5)
	d, _ := f.rec.Last(view.KindProgress)
	assert.Equal(t, float64(0), d.Payload["percent"])

	f.controller.UpdateProgress(150)
	d, _ = f.rec.Last(view.KindProgress)
	assert.Equal(t, float64(100), d.Payload["percent"])

	f.controller.UpdateProgress(42.5)
	d, _ = f.rec.Last(view.KindProgress)
	assert.Equal(t, 42.5, d.Payload["percent"])
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "01:05", activity.FormatTime(65))
	assert.Equal(t, "00:05", activity.FormatTime(5))
	assert.Equal(t, "00:00", activity.FormatTime(0))
	assert.Equal(t, "10:00", activity.FormatTime(600))
	assert.Equal(t, "00:00", activity.FormatTime(-3))
}

func TestSaveLoadActivityData_ScopedByActivity(t *testing.T) {
	f := newFixture(t)
	f.initActivity(t, "fractions")

	f.controller.SaveActivityData("score", 42)

	_, ok := f.store.m["activity_fractions_score"]
	assert.True(t, ok)

	var score int
	require.True(t, f.controller.LoadActivityData("score", &score))
	assert.Equal(t, 42, score)

	// other activities see nothing under the same key
	f.initActivity(t, "spelling")
	var other int
	assert.False(t, f.controller.LoadActivityData("score", &other))
}

func TestLoadActivityData_CorruptIsIgnored(t *testing.T) {
	f := newFixture(t)
	f.initActivity(t, "fractions")

	require.NoError(t, f.store.Put("activity_fractions_score", []byte("{broken")))

	var score int
	assert.False(t, f.controller.LoadActivityData("score", &score))
}

func TestVisibility_PauseResumeHooks(t *testing.T) {
	f := newFixture(t)
	f.initActivity(t, "fractions")

	// without hooks the events are a no-op
	f.bus.Dispatch(events.Event{Kind: events.KindVisibility, Hidden: true})

	paused, resumed := 0, 0
	f.controller.SetPauseHooks(
		func() { paused++ },
		func() { resumed++ },
	)

	f.bus.Dispatch(events.Event{Kind: events.KindVisibility, Hidden: true})
	f.bus.Dispatch(events.Event{Kind: events.KindVisibility, Hidden: false})

	assert.Equal(t, 1, paused)
	assert.Equal(t, 1, resumed)
}

func TestCelebrate(t *testing.T) {
	f := newFixture(t)
	f.loadSound(t, "celebration")

	f.controller.Celebrate()

	p, ok := f.rec.Last(view.KindPlaySound)
	require.True(t, ok)
	assert.Equal(t, "celebration", p.Payload["name"])

	c, ok := f.rec.Last(view.KindConfetti)
	require.True(t, ok)
	assert.Equal(t, int64(1000), c.Payload["fallbackMs"])
}

func TestControlButtons(t *testing.T) {
	f := newFixture(t)
	f.initActivity(t, "fractions")

	f.bus.Dispatch(events.Event{Kind: events.KindControl, Control: events.ControlHome})
	d, ok := f.rec.Last(view.KindNavigate)
	require.True(t, ok)
	assert.Equal(t, "home", d.Payload["target"])

	f.bus.Dispatch(events.Event{Kind: events.KindControl, Control: events.ControlSettings})
	s, ok := f.rec.Last(view.KindSettingsDialog)
	require.True(t, ok)
	assert.Equal(t, true, s.Payload["soundEnabled"])
}

func TestInit_PreloadUsesPersistedSoundFiles(t *testing.T) {
	f := newFixture(t)

	path := filepath.Join(t.TempDir(), "ding.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ding-bytes"), 0644))
	persistSettings(t, f, models.Settings{
		Sounds: models.SoundSettings{
			Enabled: true,
			Volume:  0.5,
			Files:   map[string]string{"ding": path},
		},
		Animations: models.AnimationSettings{Enabled: true, Duration: 300 * time.Millisecond, Easing: "ease-in-out"},
	})

	f.initActivity(t, "fractions")

	// the async preload must see the persisted file override, not the defaults
	assert.Eventually(t, func() bool {
		_, ok := f.sounds.Buffer("ding")
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAnimateElement_DisabledResolvesImmediately(t *testing.T) {
	f := newFixture(t)
	f.initActivity(t, "fractions")

	enabled := false
	f.bus.Dispatch(events.Event{Kind: events.KindSettingsSaved, AnimationsEnabled: &enabled})

	done := f.controller.AnimateElement("card-1", "bounce")
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("disabled animation should resolve immediately")
	}

	assert.Empty(t, f.rec.ByKind(view.KindAnimate))
}

func TestAnimateElement_ResolvesOnAnimationEnd(t *testing.T) {
	f := newFixture(t)
	f.initActivity(t, "fractions")

	done := f.controller.AnimateElement("card-1", "bounce")

	d, ok := f.rec.Last(view.KindAnimate)
	require.True(t, ok)
	assert.Equal(t, "card-1", d.Payload["element"])
	assert.Equal(t, "bounce", d.Payload["animation"])

	// an end event for a different element does not resolve the wait
	f.bus.Dispatch(events.Event{Kind: events.KindAnimationEnd, Element: "card-2", Animation: "bounce"})
	select {
	case <-done:
		t.Fatal("resolved on the wrong element")
	case <-time.After(20 * time.Millisecond):
	}

	f.bus.Dispatch(events.Event{Kind: events.KindAnimationEnd, Element: "card-1", Animation: "bounce"})
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("animation_end should resolve the wait")
	}
}

func TestAnimateElement_LostEndEventResolvesAfterDeadline(t *testing.T) {
	f := newFixture(t)
	persistSettings(t, f, models.Settings{
		Sounds:     models.SoundSettings{Enabled: true, Volume: 0.7},
		Animations: models.AnimationSettings{Enabled: true, Duration: 20 * time.Millisecond, Easing: "linear"},
	})
	f.controller.LoadSettings()

	done := f.controller.AnimateElement("card-1", "bounce")

	// no animation_end ever arrives; the deadline fallback must close done
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("wait leaked after the end event was lost")
	}
}
