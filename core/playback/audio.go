package playback

import "fmt"

// EventKind tells why a resource reported back.
type EventKind int

const (
	// Ended means the clip reached its natural end.
	Ended EventKind = iota + 1
	// Failed means the clip could not be fetched, decoded or started.
	Failed
)

func (k EventKind) String() string {
	switch k {
	case Ended:
		return "ended"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is sent by a resource back to the coordinator. Session is the token
// passed to the Play call that the event belongs to.
type Event struct {
	Kind    EventKind
	ID      string
	Session uint64
	Err     error
}

// Resource is a playable audio handle bound to one sound's source.
// Commands are fire-and-forget; outcomes come back as Events.
type Resource interface {
	// Play starts from the current position. session identifies this start
	// in the Ended or Failed event it eventually produces.
	Play(session uint64)
	// Stop halts playback. A stopped play never reports Ended.
	Stop()
	// Rewind moves the position back to the start of the clip.
	Rewind()
}

// Backend is the audio subsystem. Open must not block on I/O; loading
// happens lazily and failures are reported through report.
type Backend interface {
	Open(id, source string, report func(Event)) Resource
}
