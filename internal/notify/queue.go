// Package notify implements the transient notice stream and its outbound
// mirrors.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notice.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// TTL is how long a notice stays up before expiring on its own.
const TTL = 4 * time.Second

// Notice is a transient user-facing status message.
type Notice struct {
	ID        string
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Queue holds the active notices and owns their expiry timers. Each notice
// expires independently TTL after creation unless dismissed first; dismissal
// and expiry share one removal path, so the race between the two is a no-op.
type Queue struct {
	mu      sync.Mutex
	ttl     time.Duration
	notices []Notice
	timers  map[string]*time.Timer
	changed chan struct{}
	mirror  *Dispatcher
	closed  bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		ttl:     TTL,
		timers:  make(map[string]*time.Timer),
		changed: make(chan struct{}, 1),
	}
}

// SetMirror attaches a desktop/webhook mirror that sees every pushed notice.
func (q *Queue) SetMirror(d *Dispatcher) {
	q.mu.Lock()
	q.mirror = d
	q.mu.Unlock()
}

// Push appends a notice and schedules its expiry. Returns the notice id.
func (q *Queue) Push(kind Kind, message string) string {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ""
	}
	n := Notice{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		CreatedAt: time.Now(),
	}
	q.notices = append(q.notices, n)
	q.timers[n.ID] = time.AfterFunc(q.ttl, func() {
		q.Dismiss(n.ID)
	})
	mirror := q.mirror
	q.mu.Unlock()

	q.signal()
	if mirror != nil {
		mirror.Dispatch(n)
	}
	return n.ID
}

// Dismiss removes a notice and stops its timer. Unknown ids are ignored.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	t, ok := q.timers[id]
	if !ok {
		q.mu.Unlock()
		return
	}
	t.Stop()
	delete(q.timers, id)
	for i := range q.notices {
		if q.notices[i].ID == id {
			q.notices = append(q.notices[:i], q.notices[i+1:]...)
			break
		}
	}
	q.mu.Unlock()
	q.signal()
}

// Active returns the current notices, oldest first.
func (q *Queue) Active() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notice, len(q.notices))
	copy(out, q.notices)
	return out
}

// Oldest returns the id of the oldest active notice, or "".
func (q *Queue) Oldest() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.notices) == 0 {
		return ""
	}
	return q.notices[0].ID
}

// Changed signals whenever the notice set changes. The channel is coalescing:
// consumers re-read Active after each receive.
func (q *Queue) Changed() <-chan struct{} {
	return q.changed
}

// Close stops all pending expiry timers and drops the remaining notices.
// Pushes after Close are ignored.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.notices = nil
}

func (q *Queue) signal() {
	select {
	case q.changed <- struct{}{}:
	default:
	}
}
