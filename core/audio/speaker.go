// Package audio implements the playback backends: the host sound card via
// beep, and a silent backend for headless runs.
package audio

import (
	"context"
	"fmt"
	"time"

	"Sampler/core/playback"
	"Sampler/logger"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// Output is where clip streams are mixed. The beep speaker satisfies it
// through speakerOutput.
type Output interface {
	Play(s beep.Streamer)
	Lock()
	Unlock()
	SampleRate() beep.SampleRate
}

type speakerOutput struct {
	rate beep.SampleRate
}

func (o speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (o speakerOutput) Lock() { speaker.Lock() }
func (o speakerOutput) Unlock() { speaker.Unlock() }
func (o speakerOutput) SampleRate() beep.SampleRate { return o.rate }

// InitSpeaker opens the default sound card at sampleRate.
func InitSpeaker(sampleRate int) (Output, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	logger.Info("speaker initialized", logger.Int("sampleRate", sampleRate))
	return speakerOutput{rate: sr}, nil
}

// Speaker is a playback.Backend that decodes clips into memory on first
// play and mixes them into out.
type Speaker struct {
	out          Output
	opener       *Opener
	fetchTimeout time.Duration
}

// NewSpeaker creates a speaker backend.
func NewSpeaker(out Output, opener *Opener, fetchTimeout time.Duration) *Speaker {
	return &Speaker{out: out, opener: opener, fetchTimeout: fetchTimeout}
}

// Open implements playback.Backend. Nothing is fetched until the first Play.
func (s *Speaker) Open(id, source string, report func(playback.Event)) playback.Resource {
	return &clip{
		speaker: s,
		id:      id,
		source:  source,
		report:  report,
	}
}

func (s *Speaker) load(source string) (*beep.Buffer, error) {
	ctx := context.Background()
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	rc, hint, err := s.opener.Open(ctx, source)
	if err != nil {
		return nil, err
	}
	return decodeAll(rc, hint)
}
