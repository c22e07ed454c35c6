package audio

import (
	"sync"

	"Sampler/core/playback"
	"Sampler/logger"
)

// Silent is a playback.Backend for hosts without a sound card. Its
// resources accept every command and never finish on their own.
type Silent struct{}

// Open implements playback.Backend.
func (Silent) Open(id, source string, _ func(playback.Event)) playback.Resource {
	return &silentClip{id: id, source: source}
}

type silentClip struct {
	id      string
	source  string
	mu      sync.Mutex
	playing bool
}

func (c *silentClip) Play(session uint64) {
	c.mu.Lock()
	c.playing = true
	c.mu.Unlock()
	logger.Debug("silent play", logger.String("id", c.id), logger.Uint64("session", session))
}

func (c *silentClip) Stop() {
	c.mu.Lock()
	c.playing = false
	c.mu.Unlock()
	logger.Debug("silent stop", logger.String("id", c.id))
}

func (c *silentClip) Rewind() {}
