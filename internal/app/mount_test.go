package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/bookgrid/internal/books"
	"github.com/five82/bookgrid/internal/state"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeFetcher struct {
	calls atomic.Int32
	items []books.Item
	err   error
	block chan struct{}
}

func (f *fakeFetcher) FetchBooks(ctx context.Context) ([]books.Item, error) {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.items, f.err
}

func waitSettled(t *testing.T, s *state.Store) state.ViewState {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	snap, err := s.Wait(ctx)
	if err != nil {
		t.Fatalf("store did not settle: %v", err)
	}
	return snap
}

func TestMount_FetchesOnceAndSettlesReady(t *testing.T) {
	f := &fakeFetcher{items: []books.Item{{ID: "1", Title: "A", Author: "X"}}}
	m := NewMount(f, nil)
	defer m.Unmount()

	if m.Store().Snapshot().Phase() != state.PhaseLoading {
		t.Fatal("new mount should be loading")
	}

	for i := 0; i < 5; i++ {
		m.Start(context.Background())
	}
	snap := waitSettled(t, m.Store())
	if snap.Phase() != state.PhaseReady || len(snap.Items) != 1 {
		t.Fatalf("snapshot = %#v, want ready with 1 item", snap)
	}

	m.Start(context.Background())
	m.Unmount()
	if got := f.calls.Load(); got != 1 {
		t.Fatalf("fetch calls = %d, want 1", got)
	}
}

func TestMount_FailureSettlesErrorAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	boom := &books.FetchError{Stage: books.StageRequest, URL: "http://x/data/", Err: errors.New("connection refused")}
	f := &fakeFetcher{err: boom}

	m := NewMount(f, zap.New(core))
	m.Start(context.Background())
	snap := waitSettled(t, m.Store())
	m.Unmount()

	if snap.Phase() != state.PhaseError || !errors.Is(snap.Err, books.ErrFetch) {
		t.Fatalf("snapshot = %#v, want error phase wrapping ErrFetch", snap)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("Items = %#v, want none", snap.Items)
	}

	entries := logs.FilterMessage("fetch books failed").All()
	if len(entries) != 1 {
		t.Fatalf("failure log entries = %d, want 1", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("failure log level = %v, want error", entries[0].Level)
	}
	if entries[0].ContextMap()["mount"] != m.ID() {
		t.Fatalf("failure log mount = %v, want %q", entries[0].ContextMap()["mount"], m.ID())
	}
}

func TestMount_UnmountBeforeSettleDiscardsResult(t *testing.T) {
	f := &fakeFetcher{block: make(chan struct{}), items: []books.Item{{ID: "1"}}}
	m := NewMount(f, nil)
	m.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for f.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	m.Unmount()

	if m.Store().Settled() {
		t.Fatalf("store settled after unmount: %#v", m.Store().Snapshot())
	}
	if m.Store().Snapshot().Phase() != state.PhaseLoading {
		t.Fatal("store should stay loading after unmount")
	}
}

func TestMount_ParentCancelDiscardsResult(t *testing.T) {
	f := &fakeFetcher{block: make(chan struct{})}
	m := NewMount(f, nil)

	ctx, cancel := context.WithCancel(context.Background())
	m.Start(ctx)
	cancel()
	m.Unmount()

	if m.Store().Settled() {
		t.Fatal("store settled after parent context cancelled")
	}
}

func TestMount_NilFetcherSettlesError(t *testing.T) {
	m := NewMount(nil, nil)
	m.Start(context.Background())
	snap := waitSettled(t, m.Store())
	m.Unmount()
	if snap.Phase() != state.PhaseError {
		t.Fatalf("Phase = %v, want error", snap.Phase())
	}
}

func TestMount_UnmountWithoutStart(t *testing.T) {
	m := NewMount(&fakeFetcher{}, nil)
	m.Unmount()
	if m.Store().Settled() {
		t.Fatal("unstarted mount should not settle")
	}
}
