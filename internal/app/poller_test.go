package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/five82/pick/internal/state"
	"github.com/five82/pick/internal/window"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 30 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 30 * time.Second},
		{"negative failures", -1, 30 * time.Second},
		{"one failure", 1, time.Minute},
		{"two failures", 2, 2 * time.Minute},
		{"three failures", 3, 4 * time.Minute},
		{"four failures capped", 4, 5 * time.Minute}, // Would be 8m, capped to 5m
		{"many failures capped", 100, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff || got < baseInterval {
			t.Errorf("calculateBackoff(%d, %v) = %v, outside [%v, %v]", failures, baseInterval, got, baseInterval, maxBackoff)
		}
	}
}

func TestCalculateBackoff_BaseAboveCap(t *testing.T) {
	base := 10 * time.Minute
	if got := calculateBackoff(3, base); got != base {
		t.Fatalf("calculateBackoff(3, %v) = %v, want %v", base, got, base)
	}
}

// fakeLoader returns queued results in order, repeating the last one.
type fakeLoader struct {
	mu      sync.Mutex
	results []fakeResult
	calls   int
}

type fakeResult struct {
	items []window.Item[string]
	err   error
}

func (f *fakeLoader) Load(ctx context.Context) ([]window.Item[string], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := min(f.calls, len(f.results)-1)
	f.calls++
	return f.results[i].items, f.results[i].err
}

func (f *fakeLoader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func items(labels ...string) []window.Item[string] {
	out := make([]window.Item[string], len(labels))
	for i, l := range labels {
		out[i] = window.Item[string]{Label: l, Value: l}
	}
	return out
}

func TestRefresh(t *testing.T) {
	store := &state.Store{}
	loader := &fakeLoader{results: []fakeResult{
		{items: items("a", "b")},
		{err: errors.New("connection refused")},
		{items: items("a", "b")},
	}}
	ctx := context.Background()

	if err := refresh(ctx, store, "l", loader, testLogger()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if snap := store.Snapshot("l"); snap.Version != 1 || len(snap.Items) != 2 {
		t.Fatalf("snapshot = %+v, want version 1 with 2 items", snap)
	}

	if err := refresh(ctx, store, "l", loader, testLogger()); err == nil {
		t.Fatalf("refresh returned nil error for failing loader")
	}
	snap := store.Snapshot("l")
	if len(snap.Items) != 2 || snap.ConsecutiveFailures != 1 || snap.LastError == nil {
		t.Fatalf("snapshot after failure = %+v, want items kept and one failure", snap)
	}

	if err := refresh(ctx, store, "l", loader, testLogger()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	snap = store.Snapshot("l")
	if snap.Version != 1 || snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("snapshot after recovery = %+v, want version 1 and no error", snap)
	}
}

func TestRefresh_CancelledIsNotAFailure(t *testing.T) {
	store := &state.Store{}
	loader := &fakeLoader{results: []fakeResult{{items: items("a")}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := refresh(ctx, store, "l", loader, testLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("refresh error = %v, want context.Canceled", err)
	}
	if snap := store.Status("l"); snap.ConsecutiveFailures != 0 || snap.Loaded() {
		t.Fatalf("status = %+v, want untouched", snap)
	}
}

func TestStartPoller(t *testing.T) {
	store := &state.Store{}
	loader := &fakeLoader{results: []fakeResult{
		{items: items("a")},
		{items: items("a", "b")},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartPoller(ctx, store, "l", loader, 5*time.Millisecond, testLogger())

	deadline := time.Now().Add(5 * time.Second)
	for store.Version("l") < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("poller did not load twice; version = %d", store.Version("l"))
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	time.Sleep(20 * time.Millisecond)
	calls := loader.Calls()
	time.Sleep(50 * time.Millisecond)
	if got := loader.Calls(); got != calls {
		t.Fatalf("poller kept loading after cancel: %d -> %d calls", calls, got)
	}
}
