package audio

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"Sampler/core/playback"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/require"
)

var testFormat = beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}

// writeWAV writes a silent clip of n samples and returns its path.
func writeWAV(t *testing.T, dir, name string, n int) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, wav.Encode(f, beep.Silence(n), testFormat))
	return p
}

// fakeOutput collects streams instead of sending them to a sound card.
// drain plays everything to completion under the output lock, the way the
// speaker goroutine does.
type fakeOutput struct {
	mu      sync.Mutex // the "speaker" lock
	listMu  sync.Mutex
	streams []beep.Streamer
}

func (o *fakeOutput) Play(s beep.Streamer) {
	o.listMu.Lock()
	defer o.listMu.Unlock()
	o.streams = append(o.streams, s)
}

func (o *fakeOutput) Lock()                       { o.mu.Lock() }
func (o *fakeOutput) Unlock()                     { o.mu.Unlock() }
func (o *fakeOutput) SampleRate() beep.SampleRate { return testFormat.SampleRate }

func (o *fakeOutput) count() int {
	o.listMu.Lock()
	defer o.listMu.Unlock()
	return len(o.streams)
}

func (o *fakeOutput) drain() {
	o.listMu.Lock()
	streams := o.streams
	o.streams = nil
	o.listMu.Unlock()

	o.mu.Lock()
	defer o.mu.Unlock()
	samples := make([][2]float64, 512)
	for _, s := range streams {
		for {
			if _, ok := s.Stream(samples); !ok {
				break
			}
		}
	}
}

type eventSink struct {
	ch chan playback.Event
}

func newEventSink() *eventSink {
	return &eventSink{ch: make(chan playback.Event, 16)}
}

func (s *eventSink) report(ev playback.Event) {
	s.ch <- ev
}
