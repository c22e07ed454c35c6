package playback

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// newTestCoordinator returns a coordinator whose resources report into a
// slice; tests deliver those events with Handle when they choose to.
func newTestCoordinator() (*Coordinator, *fakeBackend) {
	b := newFakeBackend()
	return NewCoordinator(b, func(Event) {}), b
}

func TestToggle_SameIDTwiceStops(t *testing.T) {
	c, b := newTestCoordinator()

	c.Toggle("a", "a.mp3")
	assert.True(t, c.IsPlaying("a"))
	assert.Equal(t, []string{"a"}, b.playingIDs())

	c.Toggle("a", "a.mp3")
	assert.False(t, c.IsPlaying("a"))
	assert.Empty(t, c.Snapshot().PlayingID)
	assert.Empty(t, b.playingIDs())

	res := b.get("a")
	assert.Equal(t, 0, res.position, "stopped resource is rewound")
}

func TestToggle_SwitchStopsAndRewindsPrevious(t *testing.T) {
	c, b := newTestCoordinator()

	c.Toggle("a", "a.mp3")
	c.Toggle("b", "b.mp3")

	a := b.get("a")
	require.NotNil(t, a)
	assert.False(t, a.isPlaying())
	assert.Equal(t, 0, a.position)
	_, aStops, _ := a.counts()
	assert.Equal(t, 1, aStops)

	assert.True(t, c.IsPlaying("b"))
	assert.False(t, c.IsPlaying("a"))
	assert.Equal(t, []string{"b"}, b.playingIDs())
}

func TestToggle_ReusesResource(t *testing.T) {
	c, b := newTestCoordinator()

	c.Toggle("a", "a.mp3")
	first := b.get("a")
	c.Toggle("a", "a.mp3") // stop
	c.Toggle("a", "a.mp3") // play again

	assert.Equal(t, 1, b.openCount())
	assert.Same(t, first, b.get("a"))

	plays, stops, rewinds := first.counts()
	assert.Equal(t, 2, plays)
	assert.Equal(t, 1, stops)
	assert.Equal(t, 3, rewinds, "rewound before each play and after the stop")
	assert.True(t, c.IsPlaying("a"))
}

func TestToggle_ResourceBoundToFirstSource(t *testing.T) {
	c, b := newTestCoordinator()

	c.Toggle("a", "first.mp3")
	c.Toggle("b", "b.mp3")
	c.Toggle("a", "second.mp3")

	assert.Equal(t, "first.mp3", b.get("a").source)
	assert.Equal(t, 2, b.openCount())
}

func TestToggle_CommandCounts(t *testing.T) {
	c, b := newTestCoordinator()

	c.Toggle("a", "a.mp3")
	c.Toggle("b", "b.mp3")

	aPlays, aStops, _ := b.get("a").counts()
	bPlays, bStops, _ := b.get("b").counts()
	assert.Equal(t, 1, aPlays)
	assert.Equal(t, 1, aStops)
	assert.Equal(t, 1, bPlays)
	assert.Equal(t, 0, bStops)
}

func TestHandle_NaturalEndClearsState(t *testing.T) {
	c, b := newTestCoordinator()

	c.Toggle("a", "a.mp3")
	changed := c.Handle(b.get("a").end())

	assert.True(t, changed)
	assert.Empty(t, c.Snapshot().PlayingID)
}

func TestHandle_StaleEndFromOtherSound(t *testing.T) {
	c, b := newTestCoordinator()

	c.Toggle("a", "a.mp3")
	staleEnd := Event{Kind: Ended, ID: "a", Session: b.get("a").session}
	c.Toggle("b", "b.mp3")

	changed := c.Handle(staleEnd)
	assert.False(t, changed)
	assert.Equal(t, "b", c.Snapshot().PlayingID)
}

func TestHandle_StaleEndFromEarlierPlayOfSameSound(t *testing.T) {
	c, b := newTestCoordinator()

	c.Toggle("a", "a.mp3")
	oldEnd := Event{Kind: Ended, ID: "a", Session: b.get("a").session}
	c.Toggle("a", "a.mp3") // stop
	c.Toggle("a", "a.mp3") // play again

	assert.False(t, c.Handle(oldEnd))
	assert.True(t, c.IsPlaying("a"))
}

func TestHandle_EndWhileNothingPlays(t *testing.T) {
	c, _ := newTestCoordinator()
	assert.False(t, c.Handle(Event{Kind: Ended, ID: "", Session: 0}))
	assert.False(t, c.Handle(Event{Kind: Ended, ID: "a", Session: 1}))
}

func TestHandle_FailureResetsAndRecords(t *testing.T) {
	c, b := newTestCoordinator()
	at := c.now()
	c.now = func() time.Time { return at }

	c.Toggle("a", "http://bad/a.mp3")
	changed := c.Handle(b.get("a").fail(errors.New("fetch: 404 Not Found")))

	require.True(t, changed)
	snap := c.Snapshot()
	assert.Empty(t, snap.PlayingID)
	require.NotNil(t, snap.LastError)
	assert.Equal(t, "a", snap.LastError.ID)
	assert.Equal(t, "fetch: 404 Not Found", snap.LastError.Message)
	assert.Equal(t, at, snap.LastError.At)

	// The next start clears the error slot.
	c.Toggle("b", "b.mp3")
	assert.Nil(t, c.Snapshot().LastError)
}

func TestHandle_StaleFailureIgnored(t *testing.T) {
	c, b := newTestCoordinator()

	c.Toggle("a", "a.mp3")
	late := Event{Kind: Failed, ID: "a", Session: b.get("a").session, Err: errors.New("late")}
	c.Toggle("b", "b.mp3")

	assert.False(t, c.Handle(late))
	assert.Equal(t, "b", c.Snapshot().PlayingID)
	assert.Nil(t, c.Snapshot().LastError)
}

func TestStopAll(t *testing.T) {
	c, b := newTestCoordinator()

	assert.False(t, c.StopAll())

	c.Toggle("a", "a.mp3")
	assert.True(t, c.StopAll())
	assert.Empty(t, c.Snapshot().PlayingID)
	assert.Empty(t, b.playingIDs())
}

func TestSnapshot_CopiesError(t *testing.T) {
	c, b := newTestCoordinator()
	c.Toggle("a", "a.mp3")
	c.Handle(b.get("a").fail(errors.New("boom")))

	snap := c.Snapshot()
	snap.LastError.Message = "changed"
	assert.Equal(t, "boom", c.Snapshot().LastError.Message)
}

// TestProperty_AtMostOnePlaying drives the coordinator with random toggles,
// natural ends, failures and stale events, and checks after every step that
// at most one resource plays and that it is the one the coordinator tracks.
func TestProperty_AtMostOnePlaying(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c, b := newTestCoordinator()
		ids := []string{"1", "2", "3", "4"}
		var history []Event

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.SampledFrom(ids).Draw(t, fmt.Sprintf("id-%d", i))

			switch rapid.IntRange(0, 4).Draw(t, fmt.Sprintf("op-%d", i)) {
			case 0, 1:
				c.Toggle(id, id+".mp3")
			case 2:
				if res := b.get(id); res != nil && res.isPlaying() {
					ev := res.end()
					history = append(history, ev)
					c.Handle(ev)
				}
			case 3:
				if res := b.get(id); res != nil && res.isPlaying() {
					ev := res.fail(errors.New("decode"))
					history = append(history, ev)
					c.Handle(ev)
				}
			case 4:
				if len(history) > 0 {
					ev := rapid.SampledFrom(history).Draw(t, fmt.Sprintf("replay-%d", i))
					if c.Handle(ev) {
						t.Fatalf("replayed event %+v changed state", ev)
					}
				}
			}

			playing := b.playingIDs()
			if len(playing) > 1 {
				t.Fatalf("step %d: %d resources playing: %v", i, len(playing), playing)
			}
			current := c.Snapshot().PlayingID
			if current == "" && len(playing) != 0 {
				t.Fatalf("step %d: coordinator idle but %v playing", i, playing)
			}
			if current != "" && (len(playing) != 1 || playing[0] != current) {
				t.Fatalf("step %d: coordinator says %q, resources playing %v", i, current, playing)
			}
		}

		if b.openCount() > len(ids) {
			t.Fatalf("opened %d resources for %d ids", b.openCount(), len(ids))
		}
	})
}
