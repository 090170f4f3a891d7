package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/five82/bookgrid/internal/books"
)

// Phase is the rendered branch derived from a ViewState.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ViewState is the component state that drives rendering.
type ViewState struct {
	Items   []books.Item
	Loading bool
	Err     error
}

// Initial returns the state every mount starts in.
func Initial() ViewState {
	return ViewState{Loading: true}
}

// Phase resolves the branch to render. Loading wins over error, and error
// wins over items.
func (v ViewState) Phase() Phase {
	switch {
	case v.Loading:
		return PhaseLoading
	case v.Err != nil:
		return PhaseError
	default:
		return PhaseReady
	}
}

// Settled returns the state after the fetch completes.
func (v ViewState) Settled(items []books.Item, err error) ViewState {
	if err != nil {
		return ViewState{Err: err}
	}
	return ViewState{Items: cloneItems(items)}
}

// Store holds the ViewState of one mount. It starts loading and is settled
// at most once.
type Store struct {
	mu       sync.RWMutex
	view     ViewState
	settled  bool
	done     chan struct{}
	initOnce sync.Once
	subs     []func(ViewState)
}

// NewStore returns a Store in the loading state.
func NewStore() *Store {
	s := &Store{}
	s.init()
	return s
}

func (s *Store) init() {
	s.initOnce.Do(func() {
		s.view = Initial()
		s.done = make(chan struct{})
	})
}

// Settle records the fetch outcome. It returns false when the store was
// already settled, in which case nothing changes. Subscribers are notified
// before Settle returns.
func (s *Store) Settle(items []books.Item, err error) bool {
	s.init()

	s.mu.Lock()
	if s.settled {
		s.mu.Unlock()
		return false
	}
	s.view = s.view.Settled(items, err)
	s.settled = true
	subs := make([]func(ViewState), len(s.subs))
	copy(subs, s.subs)
	snap := s.snapshotLocked()
	close(s.done)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
	return true
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() ViewState {
	s.init()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Settled reports whether the fetch outcome has been recorded.
func (s *Store) Settled() bool {
	s.init()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settled
}

// Done is closed once the store settles.
func (s *Store) Done() <-chan struct{} {
	s.init()
	return s.done
}

// Wait blocks until the store settles or ctx ends.
func (s *Store) Wait(ctx context.Context) (ViewState, error) {
	select {
	case <-s.Done():
		return s.Snapshot(), nil
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}
}

// Subscribe registers fn to receive the settled state. If the store has
// already settled fn is called immediately.
func (s *Store) Subscribe(fn func(ViewState)) {
	if fn == nil {
		return
	}
	s.init()

	s.mu.Lock()
	if !s.settled {
		s.subs = append(s.subs, fn)
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	fn(snap)
}

func (s *Store) snapshotLocked() ViewState {
	snap := s.view
	snap.Items = cloneItems(s.view.Items)
	if s.view.Err != nil {
		snap.Err = fmt.Errorf("%w", s.view.Err)
	}
	return snap
}

func cloneItems(items []books.Item) []books.Item {
	if items == nil {
		return nil
	}
	dup := make([]books.Item, len(items))
	copy(dup, items)
	return dup
}
