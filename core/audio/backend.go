package audio

import (
	"fmt"
	"time"

	"Sampler/core/playback"
)

// Backend names accepted by NewBackend.
const (
	BackendSpeaker = "speaker"
	BackendSilent  = "silent"
)

// NewBackend builds the backend selected by name.
func NewBackend(name string, sampleRate int, opener *Opener, fetchTimeout time.Duration) (playback.Backend, error) {
	switch name {
	case BackendSpeaker, "":
		out, err := InitSpeaker(sampleRate)
		if err != nil {
			return nil, err
		}
		return NewSpeaker(out, opener, fetchTimeout), nil
	case BackendSilent:
		return Silent{}, nil
	default:
		return nil, fmt.Errorf("unknown audio backend %q (want %s or %s)", name, BackendSpeaker, BackendSilent)
	}
}
