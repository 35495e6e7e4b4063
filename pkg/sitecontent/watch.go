package sitecontent

import (
	"context"
	"sync"
)

// Watcher keeps a local copy of one collection's item sequence in sync with
// the store: an initial read plus a standing keyed subscription on the change
// feed. The initial read and the first notification may race; whichever
// resolves last wins. No sequence numbers are compared, which is an accepted
// tradeoff for low-write configuration data.
//
// A Watcher never retries. If the initial read fails, Err reports it until a
// new Watcher is made for the key.
type Watcher struct {
	svc Service
	key string

	mu      sync.Mutex
	items   []ContentItem
	loading bool
	err     error
	closed  bool

	cancel func()
	ready  chan struct{}
}

// NewWatcher activates a watcher for key. The subscription is established
// before the initial read is issued, so no update published after NewWatcher
// returns can be missed. ctx bounds the initial read only; the subscription
// lives until Close.
func NewWatcher(ctx context.Context, svc Service, feed EventFeed, key string) *Watcher {
	w := &Watcher{
		svc:     svc,
		key:     key,
		items:   []ContentItem{},
		loading: true,
		ready:   make(chan struct{}),
	}
	events, cancel := feed.Subscribe(TableSiteSettings, key)
	w.cancel = cancel
	go w.pump(events)
	go w.load(ctx)
	return w
}

// load performs the initial read and applies the result unless the watcher
// was closed while the read was in flight.
func (w *Watcher) load(ctx context.Context) {
	col, err := w.svc.GetCollection(ctx, w.key)

	w.mu.Lock()
	defer w.mu.Unlock()
	defer close(w.ready)
	if w.closed {
		// Resolved after teardown: drop the result.
		return
	}
	w.loading = false
	if err != nil {
		w.err = err
		w.items = []ContentItem{}
		return
	}
	w.err = nil
	w.items = col.Items
}

// pump applies change notifications until the subscription channel closes.
func (w *Watcher) pump(events <-chan Event) {
	for evt := range events {
		items := CoerceItems(evt.Value)
		w.mu.Lock()
		if !w.closed {
			w.items = items
		}
		w.mu.Unlock()
	}
}

// Snapshot returns the current items, loading flag and error. The slice is a
// copy; callers may hold it across further updates.
func (w *Watcher) Snapshot() ([]ContentItem, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	items := make([]ContentItem, len(w.items))
	copy(items, w.items)
	return items, w.loading, w.err
}

// Items returns a copy of the current item sequence.
func (w *Watcher) Items() []ContentItem {
	items, _, _ := w.Snapshot()
	return items
}

// Loading reports whether the initial read is still in flight.
func (w *Watcher) Loading() bool {
	_, loading, _ := w.Snapshot()
	return loading
}

// Err returns the initial read's failure, if any.
func (w *Watcher) Err() error {
	_, _, err := w.Snapshot()
	return err
}

// Ready is closed once the initial read has settled (applied or dropped).
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Close tears down the subscription. Call it before activating a watcher for
// a different key, otherwise stale-key updates can interleave. A pending
// initial read that resolves after Close is discarded.
func (w *Watcher) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()
	w.cancel()
}
