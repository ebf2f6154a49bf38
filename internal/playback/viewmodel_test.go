package playback

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/playcard/internal/player"
	"github.com/llehouerou/playcard/internal/track"
)

var testTrack = track.Track{
	Title:        "t",
	Subtitle:     "s",
	StreamURL:    "https://a.com",
	DurationHint: 100 * time.Second,
}

// recorder collects published snapshots.
type recorder struct {
	snaps []Snapshot
}

func (r *recorder) observe(s Snapshot) { r.snaps = append(r.snaps, s) }

func (r *recorder) last(t *testing.T) Snapshot {
	t.Helper()
	require.NotEmpty(t, r.snaps, "no snapshot published")
	return r.snaps[len(r.snaps)-1]
}

func newTestViewModel(t *testing.T) (*ViewModel, *player.Mock, *recorder) {
	t.Helper()
	mock := player.NewMock()
	vm := New(mock)
	rec := &recorder{}
	vm.SetObserver(rec.observe)
	t.Cleanup(vm.Close)
	return vm, mock, rec
}

// pump delivers buffered engine events the way the host's UI loop does.
func pump(vm *ViewModel) {
	for {
		select {
		case ev := <-vm.Subscription().Events:
			vm.HandleEvent(ev)
		default:
			return
		}
	}
}

func TestViewModel_Seek_InvalidRatiosAreIgnored(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
	}{
		{"nan", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
		{"below zero", -0.01},
		{"above one", 1.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, mock, rec := newTestViewModel(t)
			mock.SetDuration(100 * time.Second)
			vm.Load(testTrack)
			rec.snaps = nil

			vm.Seek(tt.ratio)
			pump(vm)

			assert.Empty(t, mock.SeekCalls())
			assert.Empty(t, rec.snaps)
		})
	}
}

func TestViewModel_Seek_ScalesByDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		ratio    float64
		want     time.Duration
	}{
		{"half of 100s", 100 * time.Second, 0.5, 50 * time.Second},
		{"start", 100 * time.Second, 0, 0},
		{"end", 100 * time.Second, 1, 100 * time.Second},
		{"unknown duration", 0, 0.7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm, mock, _ := newTestViewModel(t)
			mock.SetDuration(tt.duration)
			vm.Load(testTrack)

			vm.Seek(tt.ratio)
			assert.Equal(t, []time.Duration{tt.want}, mock.SeekCalls())
		})
	}
}

func TestViewModel_Seek_DoesNotPublishSynchronously(t *testing.T) {
	vm, mock, rec := newTestViewModel(t)
	mock.SetDuration(100 * time.Second)
	vm.Load(testTrack)
	rec.snaps = nil

	vm.Seek(0.25)
	assert.Empty(t, rec.snaps)

	pump(vm)
	require.Len(t, rec.snaps, 1)
	assert.Equal(t, 25*time.Second, rec.snaps[0].Position)
}

func TestViewModel_Load_PublishesOneSnapshot(t *testing.T) {
	vm, mock, rec := newTestViewModel(t)
	mock.SetDuration(42 * time.Second)

	vm.Load(testTrack)

	require.Len(t, rec.snaps, 1)
	assert.Equal(t, Snapshot{
		Title:    "t",
		Subtitle: "s",
		Playing:  false,
		Position: 0,
		Duration: 42 * time.Second,
	}, rec.snaps[0])
	assert.Equal(t, []track.Track{testTrack}, mock.Loads())
}

func TestViewModel_PlayPause_Toggles(t *testing.T) {
	vm, mock, _ := newTestViewModel(t)
	vm.Load(testTrack)

	vm.PlayPause()
	assert.True(t, mock.IsPlaying())
	vm.PlayPause()
	assert.False(t, mock.IsPlaying())
	assert.Equal(t, 1, mock.PlayCalls())
	assert.Equal(t, 1, mock.PauseCalls())
}

func TestViewModel_PlayPause_FromPausedPublishesPlaying(t *testing.T) {
	vm, mock, rec := newTestViewModel(t)
	mock.SetDuration(100 * time.Second)
	vm.Load(testTrack)
	mock.SetPosition(12 * time.Second)

	vm.PlayPause()
	pump(vm)

	assert.True(t, mock.IsPlaying())
	s := rec.last(t)
	assert.True(t, s.Playing)
	assert.Equal(t, 12*time.Second, s.Position)
	assert.Equal(t, 100*time.Second, s.Duration)
}

func TestViewModel_PlaybackEnded_PinsToEnd(t *testing.T) {
	vm, mock, rec := newTestViewModel(t)
	mock.SetDuration(100 * time.Second)
	vm.Load(testTrack)
	vm.PlayPause()
	pump(vm)

	mock.EmitEnded()
	pump(vm)

	s := rec.last(t)
	assert.False(t, s.Playing)
	assert.Equal(t, s.Duration, s.Position)
	assert.Equal(t, 100*time.Second, s.Position)
}

func TestViewModel_HintUsedWhenStreamDurationUnknown(t *testing.T) {
	vm, mock, rec := newTestViewModel(t)
	vm.Load(testTrack)
	assert.Zero(t, rec.last(t).Duration)

	// The engine resolves the duration asynchronously, then notifies.
	mock.SetDuration(player.ResolveDuration(math.Inf(1), testTrack.DurationHint))
	mock.EmitStateChanged(mock.Generation())
	pump(vm)

	assert.Equal(t, 100*time.Second, rec.last(t).Duration)
}

func TestViewModel_SecondLoadSupersedesFirst(t *testing.T) {
	vm, mock, rec := newTestViewModel(t)
	first := track.Track{Title: "first", StreamURL: "https://a.com/1.mp3"}
	second := track.Track{Title: "second", StreamURL: "https://a.com/2.mp3"}

	vm.Load(first)
	staleGen := mock.Generation()
	vm.Load(second)
	rec.snaps = nil

	mock.EmitStateChanged(staleGen)
	mock.EmitTimeUpdate(3*time.Second, 10*time.Second)
	pump(vm)

	require.Len(t, rec.snaps, 1, "stale event must be dropped")
	for _, s := range rec.snaps {
		assert.Equal(t, "second", s.Title)
	}
	assert.Equal(t, "second", vm.Track().Title)
}

func TestViewModel_TimeUpdated_ClampsNegatives(t *testing.T) {
	vm, _, rec := newTestViewModel(t)
	vm.Load(testTrack)

	vm.TimeUpdated(-time.Second, -5*time.Second)

	s := rec.last(t)
	assert.Zero(t, s.Position)
	assert.Zero(t, s.Duration)
}

func TestViewModel_PublishWithoutTrackIsDropped(t *testing.T) {
	vm, mock, rec := newTestViewModel(t)

	vm.TimeUpdated(time.Second, 2*time.Second)
	vm.PlaybackChanged(true)
	vm.PlaybackEnded()
	mock.Play()
	pump(vm)

	assert.Empty(t, rec.snaps)
	assert.Nil(t, vm.Track())
}

func TestViewModel_WithoutObserver(t *testing.T) {
	mock := player.NewMock()
	vm := New(mock)
	defer vm.Close()

	assert.NotPanics(t, func() {
		vm.Load(testTrack)
		vm.PlayPause()
		pump(vm)
	})
}

func TestViewModel_SetObserver_ReplacesAndClears(t *testing.T) {
	vm, _, first := newTestViewModel(t)
	second := &recorder{}
	vm.SetObserver(second.observe)

	vm.Load(testTrack)
	assert.Empty(t, first.snaps)
	assert.Len(t, second.snaps, 1)

	vm.SetObserver(nil)
	vm.TimeUpdated(time.Second, 2*time.Second)
	assert.Len(t, second.snaps, 1)
}

func TestViewModel_Close(t *testing.T) {
	mock := player.NewMock()
	vm := New(mock)
	rec := &recorder{}
	vm.SetObserver(rec.observe)
	vm.Load(testTrack)
	sub := vm.Subscription()

	vm.Close()
	<-sub.Done
	vm.Close()

	mock.Play()
	pump(vm)
	vm.HandleEvent(player.Event{Kind: player.EventTimeUpdate, Generation: mock.Generation()})
	vm.TimeUpdated(time.Second, time.Second)
	assert.Len(t, rec.snaps, 1, "nothing reaches the observer after Close")
}

func TestViewModel_Track_ReturnsCopy(t *testing.T) {
	vm, _, _ := newTestViewModel(t)
	vm.Load(testTrack)

	got := vm.Track()
	got.Title = "changed"
	assert.Equal(t, "t", vm.Track().Title)
}
