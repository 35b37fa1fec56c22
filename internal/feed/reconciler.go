package feed

import (
	"sync"

	"github.com/BrotchMrToast/NoAI/internal/post"
)

// Reconciler merges the live remote stream with the seed set into one
// ordered view. It holds at most one store subscription; resubscribing
// releases the previous one first. On stream failure the last good list
// stays visible and the error is surfaced for optional display.
type Reconciler struct {
	store post.Store
	seeds []post.Record

	mu        sync.RWMutex
	current   []post.Record
	lastErr   error
	sub       *post.Subscription
	listeners map[int]func([]post.Record)
	nextID    int
}

func NewReconciler(store post.Store, seeds []post.Record) *Reconciler {
	return &Reconciler{
		store:     store,
		seeds:     seeds,
		current:   Merge(nil, seeds),
		listeners: map[int]func([]post.Record){},
	}
}

// Subscribe attaches to the remote stream. Any previous subscription is
// cancelled first so events are never delivered twice.
func (r *Reconciler) Subscribe() {
	r.mu.Lock()
	if r.sub != nil {
		r.sub.Cancel()
	}
	sub := r.store.Subscribe()
	r.sub = sub
	r.mu.Unlock()

	go r.consume(sub)
}

// Release cancels the active subscription. Idempotent.
func (r *Reconciler) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sub != nil {
		r.sub.Cancel()
		r.sub = nil
	}
}

// Current returns a copy of the merged ordered view.
func (r *Reconciler) Current() []post.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]post.Record(nil), r.current...)
}

// Find looks a post up by id in the merged view, seeds included.
func (r *Reconciler) Find(id string) (post.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.current {
		if p.ID == id {
			return p, true
		}
	}
	return post.Record{}, false
}

// Err reports the most recent stream failure, or nil after a good snapshot.
func (r *Reconciler) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastErr
}

// AddListener registers a callback invoked with every recomputed view. The
// returned function removes it.
func (r *Reconciler) AddListener(fn func([]post.Record)) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

func (r *Reconciler) consume(sub *post.Subscription) {
	for {
		select {
		case recs := <-sub.Snapshots():
			r.apply(sub, recs)
		case err := <-sub.Errs():
			r.mu.Lock()
			if r.sub == sub {
				r.lastErr = err
			}
			r.mu.Unlock()
		case <-sub.Done():
			return
		}
	}
}

// apply recomputes the display order from scratch on every delivery. The
// recompute is idempotent given identical inputs, which keeps duplicate
// change notifications harmless.
func (r *Reconciler) apply(sub *post.Subscription, recs []post.Record) {
	r.mu.Lock()
	if r.sub != sub {
		// a stale subscription delivered after resubscribe; drop it
		r.mu.Unlock()
		return
	}
	merged := Merge(recs, r.seeds)
	r.current = merged
	r.lastErr = nil
	fns := make([]func([]post.Record), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(merged)
	}
}
