// Package playback coordinates single-flight clip playback.
package playback

import (
	"time"

	"Sampler/logger"
)

// Failure records the most recent playback-start failure.
type Failure struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Snapshot is the observable coordinator state.
type Snapshot struct {
	PlayingID string   `json:"playingId,omitempty"`
	LastError *Failure `json:"lastError,omitempty"`
}

// Playing reports whether id is the sound currently playing.
func (s Snapshot) Playing(id string) bool {
	return s.PlayingID != "" && s.PlayingID == id
}

// Coordinator enforces that at most one sound plays at a time and owns one
// lazily created Resource per sound id.
//
// It is not safe for concurrent use; Loop drives it from one goroutine.
type Coordinator struct {
	backend   Backend
	report    func(Event)
	resources map[string]Resource

	playingID string
	session   uint64 // token of the current play, valid while playingID != ""
	nextSess  uint64
	lastErr   *Failure

	now func() time.Time
}

// NewCoordinator creates a coordinator. report is handed to every resource
// the backend opens and must deliver events back to Handle.
func NewCoordinator(backend Backend, report func(Event)) *Coordinator {
	return &Coordinator{
		backend:   backend,
		report:    report,
		resources: make(map[string]Resource),
		now:       time.Now,
	}
}

// Toggle plays the sound with the given id, or stops it if it is the one
// already playing. Starting a sound first stops and rewinds whatever else
// was playing.
func (c *Coordinator) Toggle(id, source string) {
	if c.playingID == id {
		c.stopCurrent()
		logger.Info("playback stopped", logger.String("id", id))
		return
	}

	if c.playingID != "" {
		logger.Debug("switching sound", logger.String("from", c.playingID), logger.String("to", id))
		c.stopCurrent()
	}

	res, ok := c.resources[id]
	if !ok {
		res = c.backend.Open(id, source, c.report)
		c.resources[id] = res
		logger.Debug("audio resource created", logger.String("id", id), logger.String("source", source))
	}

	c.nextSess++
	c.session = c.nextSess
	c.playingID = id
	c.lastErr = nil

	res.Rewind()
	res.Play(c.session)
	logger.Info("playback started", logger.String("id", id), logger.Uint64("session", c.session))
}

// Handle applies an event reported by a resource. Events for anything other
// than the current play are stale and ignored. It returns whether the state
// changed.
func (c *Coordinator) Handle(ev Event) bool {
	if ev.ID != c.playingID || ev.Session != c.session || c.playingID == "" {
		logger.Debug("stale playback event ignored",
			logger.String("kind", ev.Kind.String()),
			logger.String("id", ev.ID),
			logger.Uint64("session", ev.Session))
		return false
	}

	switch ev.Kind {
	case Ended:
		c.playingID = ""
		logger.Info("playback finished", logger.String("id", ev.ID))
	case Failed:
		c.stopCurrent()
		msg := "playback failed"
		if ev.Err != nil {
			msg = ev.Err.Error()
		}
		c.lastErr = &Failure{ID: ev.ID, Message: msg, At: c.now()}
		logger.Warn("playback failed", logger.String("id", ev.ID), logger.ErrorField(ev.Err))
	default:
		return false
	}
	return true
}

// StopAll stops the current sound, if any. It returns whether anything was
// playing.
func (c *Coordinator) StopAll() bool {
	if c.playingID == "" {
		return false
	}
	c.stopCurrent()
	return true
}

func (c *Coordinator) stopCurrent() {
	if res, ok := c.resources[c.playingID]; ok {
		res.Stop()
		res.Rewind()
	}
	c.playingID = ""
}

// IsPlaying reports whether id is the sound currently playing.
func (c *Coordinator) IsPlaying(id string) bool {
	return c.playingID != "" && c.playingID == id
}

// Snapshot returns the current state.
func (c *Coordinator) Snapshot() Snapshot {
	s := Snapshot{PlayingID: c.playingID}
	if c.lastErr != nil {
		f := *c.lastErr
		s.LastError = &f
	}
	return s
}
