package playback

import (
	"context"
	"errors"

	"Sampler/logger"
)

// ErrLoopStopped is returned by Loop methods once Run has returned.
var ErrLoopStopped = errors.New("playback loop stopped")

type request struct {
	apply func(*Coordinator) bool
	reply chan Snapshot
}

// Loop serializes every coordinator operation on a single goroutine: toggle
// requests from callers and events reported by resources. Rapid repeated
// toggles are simply applied in order.
type Loop struct {
	coord     *Coordinator
	requests  chan request
	events    chan Event
	listeners []func(Snapshot)
	done      chan struct{}
}

// NewLoop creates a loop around a new coordinator using backend.
func NewLoop(backend Backend) *Loop {
	l := &Loop{
		requests: make(chan request),
		events:   make(chan Event, 64),
		done:     make(chan struct{}),
	}
	l.coord = NewCoordinator(backend, l.report)
	return l
}

// OnChange registers fn to receive the new snapshot after every state
// change. It must be called before Run. fn runs on the loop goroutine and
// must not block or call back into the loop.
func (l *Loop) OnChange(fn func(Snapshot)) {
	l.listeners = append(l.listeners, fn)
}

// Run processes requests and events until ctx is cancelled, then stops any
// playing sound.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	for {
		select {
		case req := <-l.requests:
			changed := req.apply(l.coord)
			snap := l.coord.Snapshot()
			if changed {
				l.notify(snap)
			}
			req.reply <- snap

		case ev := <-l.events:
			if l.coord.Handle(ev) {
				l.notify(l.coord.Snapshot())
			}

		case <-ctx.Done():
			if l.coord.StopAll() {
				l.notify(l.coord.Snapshot())
			}
			logger.Info("playback loop stopped")
			return
		}
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Toggle plays or stops the sound with the given id and returns the
// resulting state.
func (l *Loop) Toggle(ctx context.Context, id, source string) (Snapshot, error) {
	return l.do(ctx, func(c *Coordinator) bool {
		c.Toggle(id, source)
		return true
	})
}

// Stop stops whatever is playing.
func (l *Loop) Stop(ctx context.Context) (Snapshot, error) {
	return l.do(ctx, func(c *Coordinator) bool {
		return c.StopAll()
	})
}

// Snapshot returns the current state.
func (l *Loop) Snapshot(ctx context.Context) (Snapshot, error) {
	return l.do(ctx, func(*Coordinator) bool { return false })
}

func (l *Loop) do(ctx context.Context, apply func(*Coordinator) bool) (Snapshot, error) {
	req := request{apply: apply, reply: make(chan Snapshot, 1)}

	select {
	case l.requests <- req:
	case <-l.done:
		return Snapshot{}, ErrLoopStopped
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	// Run always replies once it has taken the request.
	return <-req.reply, nil
}

// report is handed to resources. It may be called from any goroutine.
func (l *Loop) report(ev Event) {
	select {
	case l.events <- ev:
	case <-l.done:
	}
}

func (l *Loop) notify(snap Snapshot) {
	for _, fn := range l.listeners {
		fn(snap)
	}
}
