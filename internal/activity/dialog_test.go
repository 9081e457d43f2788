package activity_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-hub/internal/events"
	"activity-hub/internal/view"
)

func TestShowConfirmDialog_ExactlyOneCallbackPerPath(t *testing.T) {
	paths := []struct {
		name        string
		dismiss     func(f *fixture, id string)
		wantConfirm bool
	}{
		{
			name: "confirm click",
			dismiss: func(f *fixture, id string) {
				f.bus.Dispatch(events.Event{Kind: events.KindDialogAction, DialogID: id, Action: events.DialogConfirm})
			},
			wantConfirm: true,
		},
		{
			name: "cancel click",
			dismiss: func(f *fixture, id string) {
				f.bus.Dispatch(events.Event{Kind: events.KindDialogAction, DialogID: id, Action: events.DialogCancel})
			},
		},
		{
			name: "overlay click",
			dismiss: func(f *fixture, id string) {
				f.bus.Dispatch(events.Event{Kind: events.KindDialogAction, DialogID: id, Action: events.DialogOverlay})
			},
		},
		{
			name: "escape key",
			dismiss: func(f *fixture, id string) {
				f.bus.Dispatch(events.Event{Kind: events.KindKeyPress, Key: "Escape"})
			},
		},
	}

	for _, tc := range paths {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			confirmed, cancelled := 0, 0
			id := f.controller.ShowConfirmDialog("sure?",
				func() { confirmed++ },
				func() { cancelled++ },
			)

			d, ok := f.rec.Last(view.KindConfirmDialog)
			require.True(t, ok)
			assert.Equal(t, id, d.Payload["id"])
			assert.Equal(t, "sure?", d.Payload["message"])

			tc.dismiss(f, id)

			// every dismissal path after the first is ignored
			f.bus.Dispatch(events.Event{Kind: events.KindDialogAction, DialogID: id, Action: events.DialogConfirm})
			f.bus.Dispatch(events.Event{Kind: events.KindDialogAction, DialogID: id, Action: events.DialogCancel})
			f.bus.Dispatch(events.Event{Kind: events.KindKeyPress, Key: "Escape"})

			if tc.wantConfirm {
				assert.Equal(t, 1, confirmed)
				assert.Equal(t, 0, cancelled)
			} else {
				assert.Equal(t, 0, confirmed)
				assert.Equal(t, 1, cancelled)
			}

			dismissed, ok := f.rec.Last(view.KindDismissDialog)
			require.True(t, ok)
			assert.Equal(t, id, dismissed.Payload["id"])
			assert.Len(t, f.rec.ByKind(view.KindDismissDialog), 1)
		})
	}
}

func TestShowConfirmDialog_IgnoresOtherDialogs(t *testing.T) {
	f := newFixture(t)

	confirmed := 0
	f.controller.ShowConfirmDialog("sure?", func() { confirmed++ }, nil)

	f.bus.Dispatch(events.Event{Kind: events.KindDialogAction, DialogID: "someone-else", Action: events.DialogConfirm})
	assert.Equal(t, 0, confirmed)
}

func TestShowConfirmDialog_NilCallbacks(t *testing.T) {
	f := newFixture(t)

	id := f.controller.ShowConfirmDialog("sure?", nil, nil)

	// must not panic
	f.bus.Dispatch(events.Event{Kind: events.KindDialogAction, DialogID: id, Action: events.DialogConfirm})
	assert.Len(t, f.rec.ByKind(view.KindDismissDialog), 1)
}

func TestShowConfirmDialog_EscapeRacingSetup(t *testing.T) {
	f := newFixture(t)

	// Hammer Escape from another goroutine while dialogs are being wired
	// up, the way the hub delivers key events concurrently with page code.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				f.bus.Dispatch(events.Event{Kind: events.KindKeyPress, Key: "Escape"})
			}
		}
	}()

	var confirmed, cancelled atomic.Int32
	const dialogs = 50
	for i := 0; i < dialogs; i++ {
		id := f.controller.ShowConfirmDialog("sure?",
			func() { confirmed.Add(1) },
			func() { cancelled.Add(1) },
		)
		// resolve explicitly in case no Escape landed for this dialog
		f.bus.Dispatch(events.Event{Kind: events.KindDialogAction, DialogID: id, Action: events.DialogCancel})
	}

	close(stop)
	wg.Wait()

	// every dialog resolved exactly once, always as cancel
	assert.Equal(t, int32(0), confirmed.Load())
	assert.Equal(t, int32(dialogs), cancelled.Load())
}

func TestShowConfirmDialog_EscapeListenerRemovesItself(t *testing.T) {
	f := newFixture(t)

	cancelled := 0
	id := f.controller.ShowConfirmDialog("sure?", nil, func() { cancelled++ })
	f.bus.Dispatch(events.Event{Kind: events.KindDialogAction, DialogID: id, Action: events.DialogCancel})
	require.Equal(t, 1, cancelled)

	// Escape after resolution is inert: no second dismissal, no callback
	f.bus.Dispatch(events.Event{Kind: events.KindKeyPress, Key: "Escape"})
	assert.Equal(t, 1, cancelled)
	assert.Len(t, f.rec.ByKind(view.KindDismissDialog), 1)
}
