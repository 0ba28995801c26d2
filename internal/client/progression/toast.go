package progression

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/farag11/daheeh/internal/client/models"
)

// DefaultToastTTL is how long a toast stays live unless dismissed.
const DefaultToastTTL = 3 * time.Second

// ToastQueue holds live toasts in insertion order. Every toast expires on
// its own timer; Dismiss removes it early and stops the timer.
type ToastQueue struct {
	ttl   time.Duration
	clock Clock

	mu       sync.Mutex
	items    []models.Toast
	timers   map[string]toastTimer
	gen      uint64
	closed   bool
	onChange func([]models.Toast)
}

type toastTimer struct {
	gen   uint64
	timer *time.Timer
}

// NewToastQueue creates a queue whose toasts expire after ttl. A ttl <= 0
// keeps toasts until dismissed.
func NewToastQueue(ttl time.Duration, clock Clock) *ToastQueue {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ToastQueue{
		ttl:    ttl,
		clock:  clock,
		timers: make(map[string]toastTimer),
	}
}

// OnChange registers fn to receive a snapshot after every change. fn runs
// outside the queue lock, possibly on a timer goroutine.
func (q *ToastQueue) OnChange(fn func([]models.Toast)) {
	q.mu.Lock()
	q.onChange = fn
	q.mu.Unlock()
}

// Push appends a new toast and starts its expiry timer.
func (q *ToastQueue) Push(amount int, reason models.Reason) models.Toast {
	t := models.Toast{
		ID:        uuid.NewString(),
		Amount:    amount,
		Reason:    reason,
		Timestamp: q.clock.Now(),
	}
	q.push(t)
	return t
}

func (q *ToastQueue) push(t models.Toast) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.stopLocked(t.ID)
	q.removeLocked(t.ID)
	q.items = append(q.items, t)
	if q.ttl > 0 {
		q.gen++
		gen, id := q.gen, t.ID
		q.timers[id] = toastTimer{
			gen:   gen,
			timer: time.AfterFunc(q.ttl, func() { q.expire(id, gen) }),
		}
	}
	q.notifyUnlock()
}

func (q *ToastQueue) expire(id string, gen uint64) {
	q.mu.Lock()
	tt, ok := q.timers[id]
	if !ok || tt.gen != gen {
		q.mu.Unlock()
		return
	}
	delete(q.timers, id)
	q.removeLocked(id)
	q.notifyUnlock()
}

// Dismiss removes the toast with id. It reports whether anything was
// removed; dismissing an unknown or already expired id is a no-op.
func (q *ToastQueue) Dismiss(id string) bool {
	q.mu.Lock()
	q.stopLocked(id)
	if !q.removeLocked(id) {
		q.mu.Unlock()
		return false
	}
	q.notifyUnlock()
	return true
}

// List returns a copy of all live toasts, oldest first.
func (q *ToastQueue) List() []models.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.items)
}

// Latest returns at most n of the most recent toasts, oldest first.
func (q *ToastQueue) Latest(n int) []models.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	if n <= 0 {
		return nil
	}
	start := max(len(q.items)-n, 0)
	return slices.Clone(q.items[start:])
}

func (q *ToastQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear drops every toast and stops all pending timers.
func (q *ToastQueue) Clear() {
	q.mu.Lock()
	had := len(q.items) > 0
	q.clearLocked()
	if !had {
		q.mu.Unlock()
		return
	}
	q.notifyUnlock()
}

// Close clears the queue and makes later pushes no-ops.
func (q *ToastQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.clearLocked()
	q.onChange = nil
	q.mu.Unlock()
}

func (q *ToastQueue) clearLocked() {
	for id := range q.timers {
		q.stopLocked(id)
	}
	q.items = nil
}

func (q *ToastQueue) stopLocked(id string) {
	if tt, ok := q.timers[id]; ok {
		tt.timer.Stop()
		delete(q.timers, id)
	}
}

func (q *ToastQueue) removeLocked(id string) bool {
	i := slices.IndexFunc(q.items, func(t models.Toast) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	q.items = slices.Delete(q.items, i, i+1)
	return true
}

// notifyUnlock releases q.mu and then calls the change hook.
func (q *ToastQueue) notifyUnlock() {
	fn := q.onChange
	snapshot := slices.Clone(q.items)
	q.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}
