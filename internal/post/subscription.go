package post

import "sync"

// Subscription is a cancellable handle on the ordered post stream. Every
// change delivers the full current collection; slow consumers drop stale
// snapshots instead of blocking the store.
type Subscription struct {
	snapshots  chan []Record
	errs       chan error
	done       chan struct{}
	once       sync.Once
	unregister func()
}

func newSubscription() *Subscription {
	return &Subscription{
		snapshots: make(chan []Record, 8),
		errs:      make(chan error, 1),
		done:      make(chan struct{}),
	}
}

func (s *Subscription) Snapshots() <-chan []Record { return s.snapshots }

func (s *Subscription) Errs() <-chan error { return s.errs }

// Done closes once the subscription is cancelled.
func (s *Subscription) Done() <-chan struct{} { return s.done }

// Cancel releases the subscription. Safe to call more than once; deliveries
// after the first call are dropped.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		if s.unregister != nil {
			s.unregister()
		}
		close(s.done)
	})
}

func (s *Subscription) push(recs []Record) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.snapshots <- recs:
	default:
		// full buffer: evict the oldest pending snapshot, only the newest
		// state matters
		select {
		case <-s.snapshots:
		default:
		}
		select {
		case s.snapshots <- recs:
		default:
		}
	}
}

func (s *Subscription) fail(err error) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.errs <- err:
	default:
	}
}
