package audio

import (
	"sync"
	"time"

	"Sampler/core/playback"
	"Sampler/logger"

	"github.com/faiface/beep"
)

// voice is one start of a clip on the output.
type voice struct {
	session uint64
	seeker  beep.StreamSeeker
	ctrl    *beep.Ctrl
	stopped bool // guarded by the output lock
}

// clip is the speaker backend's Resource. The decoded buffer is kept after
// the first successful load and reused by every later play.
type clip struct {
	speaker *Speaker
	id      string
	source  string
	report  func(playback.Event)

	mu      sync.Mutex
	buf     *beep.Buffer
	loading bool
	pending uint64 // session waiting for the load to finish, 0 for none
	active  *voice
	pos     int
}

func (c *clip) Play(session uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buf == nil {
		c.pending = session
		if !c.loading {
			c.loading = true
			go c.load()
		}
		return
	}
	c.startLocked(session)
}

func (c *clip) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = 0
	c.stopLocked()
}

func (c *clip) stopLocked() {
	if c.active == nil {
		return
	}

	out := c.speaker.out
	out.Lock()
	c.active.stopped = true
	c.pos = c.active.seeker.Position()
	c.active.ctrl.Streamer = nil
	out.Unlock()
	c.active = nil
}

func (c *clip) Rewind() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pos = 0
	if c.active != nil {
		out := c.speaker.out
		out.Lock()
		if err := c.active.seeker.Seek(0); err != nil {
			logger.Warn("rewind failed", logger.String("id", c.id), logger.ErrorField(err))
		}
		out.Unlock()
	}
}

func (c *clip) load() {
	start := time.Now()
	buf, err := c.speaker.load(c.source)

	c.mu.Lock()
	c.loading = false
	session := c.pending
	c.pending = 0
	if err != nil {
		c.mu.Unlock()
		logger.Warn("clip load failed",
			logger.String("id", c.id),
			logger.String("source", c.source),
			logger.ErrorField(err))
		if session != 0 {
			c.report(playback.Event{Kind: playback.Failed, ID: c.id, Session: session, Err: err})
		}
		return
	}

	c.buf = buf
	logger.Debug("clip loaded",
		logger.String("id", c.id),
		logger.Int("samples", buf.Len()),
		logger.Duration("took", time.Since(start)))
	if session != 0 {
		c.startLocked(session)
	}
	c.mu.Unlock()
}

func (c *clip) startLocked(session uint64) {
	if c.active != nil {
		// Play without a Stop in between restarts the clip.
		c.stopLocked()
	}

	pos := c.pos
	if pos >= c.buf.Len() {
		pos = 0
	}
	seeker := c.buf.Streamer(pos, c.buf.Len())

	var stream beep.Streamer = seeker
	outRate := c.speaker.out.SampleRate()
	if rate := c.buf.Format().SampleRate; rate != outRate {
		stream = beep.Resample(4, rate, outRate, seeker)
	}

	v := &voice{session: session, seeker: seeker}
	v.ctrl = &beep.Ctrl{Streamer: stream}
	c.active = v

	c.speaker.out.Play(beep.Seq(v.ctrl, beep.Callback(func() {
		// Runs on the output goroutine with the output lock held.
		if v.stopped {
			return
		}
		go c.finished(v)
	})))
}

func (c *clip) finished(v *voice) {
	c.mu.Lock()
	if c.active != v {
		// Stopped or restarted before this goroutine ran.
		c.mu.Unlock()
		return
	}
	c.active = nil
	c.pos = c.buf.Len()
	c.mu.Unlock()

	c.report(playback.Event{Kind: playback.Ended, ID: c.id, Session: v.session})
}
