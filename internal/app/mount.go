package app

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/bookgrid/internal/books"
	"github.com/five82/bookgrid/internal/state"
)

// Mount is one lifetime of the book view: one store, one fetch. The fetch
// is issued by the first Start call and never again.
type Mount struct {
	id      string
	store   *state.Store
	fetcher books.Fetcher
	log     *zap.Logger

	once   sync.Once
	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMount returns an unstarted mount in the loading state.
func NewMount(fetcher books.Fetcher, logger *zap.Logger) *Mount {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Mount{
		id:      id,
		store:   state.NewStore(),
		fetcher: fetcher,
		log:     logger.With(zap.String("mount", id)),
	}
}

// ID identifies the mount in logs.
func (m *Mount) ID() string {
	return m.id
}

// Store returns the mount's view state container.
func (m *Mount) Store() *state.Store {
	return m.store
}

// Start launches the fetch in the background. It returns immediately and
// is a no-op after the first call. The fetch is bound to ctx and to
// Unmount, whichever ends first.
func (m *Mount) Start(ctx context.Context) {
	m.once.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		fetchCtx, cancel := context.WithCancel(ctx)
		m.cancel = cancel
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			defer cancel()
			m.load(fetchCtx)
		}()
	})
}

// Unmount cancels an in-flight fetch and waits for it to return. A result
// that arrives after Unmount is discarded.
func (m *Mount) Unmount() {
	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	m.wg.Wait()
}

func (m *Mount) load(ctx context.Context) {
	if m.fetcher == nil {
		m.store.Settle(nil, errNoFetcher)
		m.log.Error("fetch books failed", zap.Error(errNoFetcher))
		return
	}

	m.log.Debug("fetching books")
	items, err := m.fetcher.FetchBooks(ctx)
	if ctx.Err() != nil {
		m.log.Debug("mount torn down before fetch settled, discarding result", zap.NamedError("cause", ctx.Err()))
		return
	}
	if err != nil {
		m.log.Error("fetch books failed", zap.Error(err))
		m.store.Settle(nil, err)
		return
	}
	m.log.Info("fetched books", zap.Int("count", len(items)))
	m.store.Settle(items, nil)
}
