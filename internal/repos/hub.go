package repos

import (
	"sync"

	applog "suraah/internal/log"
)

// hub fans collection-change signals out to live subscriptions. Signals are
// coalesced: a subscriber busy delivering one snapshot picks up at most one
// pending wakeup, then re-queries, so it always ends on the latest state.
type hub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]*Subscription
}

func newHub() *hub {
	return &hub{subs: map[string]map[int]*Subscription{}}
}

// Subscription is a live listener on one collection. Cancel is idempotent and
// stops further deliveries.
type Subscription struct {
	cancel func()
	once   sync.Once
	done   chan struct{}
	wake   chan struct{}
}

func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

func (h *hub) subscribe(collection string, deliver func()) *Subscription {
	sub := &Subscription{
		done: make(chan struct{}),
		wake: make(chan struct{}, 1),
	}

	h.mu.Lock()
	id := h.next
	h.next++
	if h.subs[collection] == nil {
		h.subs[collection] = map[int]*Subscription{}
	}
	h.subs[collection][id] = sub
	h.mu.Unlock()

	sub.cancel = func() {
		h.mu.Lock()
		delete(h.subs[collection], id)
		h.mu.Unlock()
		close(sub.done)
	}

	go func() {
		deliver() // initial snapshot
		for {
			select {
			case <-sub.done:
				return
			case <-sub.wake:
				select {
				case <-sub.done:
					return
				default:
				}
				deliver()
			}
		}
	}()

	return sub
}

func (h *hub) notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs[collection] {
		select {
		case sub.wake <- struct{}{}:
		default: // a wakeup is already pending
		}
	}
}

func applogError(action, collection string, err error) {
	applog.Error(nil, action, err, map[string]any{"collection": collection})
}
