package playback

import "sync"

// fakeBackend records every resource it opens.
type fakeBackend struct {
	mu        sync.Mutex
	resources map[string]*fakeResource
	opens     int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{resources: make(map[string]*fakeResource)}
}

func (b *fakeBackend) Open(id, source string, report func(Event)) Resource {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.opens++
	r := &fakeResource{id: id, source: source, report: report}
	b.resources[id] = r
	return r
}

func (b *fakeBackend) get(id string) *fakeResource {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resources[id]
}

func (b *fakeBackend) openCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opens
}

// playingIDs lists the resources currently in the playing condition.
func (b *fakeBackend) playingIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var ids []string
	for id, r := range b.resources {
		if r.isPlaying() {
			ids = append(ids, id)
		}
	}
	return ids
}

type fakeResource struct {
	mu       sync.Mutex
	id       string
	source   string
	report   func(Event)
	playing  bool
	position int // 0 means rewound
	session  uint64
	plays    int
	stops    int
	rewinds  int
}

func (r *fakeResource) Play(session uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playing = true
	r.position = 1
	r.session = session
	r.plays++
}

func (r *fakeResource) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playing = false
	r.stops++
}

func (r *fakeResource) Rewind() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.position = 0
	r.rewinds++
}

func (r *fakeResource) isPlaying() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playing
}

// end simulates the clip reaching its natural end.
func (r *fakeResource) end() Event {
	r.mu.Lock()
	r.playing = false
	ev := Event{Kind: Ended, ID: r.id, Session: r.session}
	r.mu.Unlock()

	if r.report != nil {
		r.report(ev)
	}
	return ev
}

// fail simulates a fetch or decode error for the current play.
func (r *fakeResource) fail(err error) Event {
	r.mu.Lock()
	r.playing = false
	ev := Event{Kind: Failed, ID: r.id, Session: r.session, Err: err}
	r.mu.Unlock()

	if r.report != nil {
		r.report(ev)
	}
	return ev
}

func (r *fakeResource) counts() (plays, stops, rewinds int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.plays, r.stops, r.rewinds
}
