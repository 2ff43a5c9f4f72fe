package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"chestnut/internal/model"
	"chestnut/internal/storage"
)

// ErrNotLoaded is returned by Dispatch before the initial load resolves.
// Mutating an unloaded store would clobber persisted data with defaults.
var ErrNotLoaded = errors.New("state: store not loaded")

// ErrClosed is returned by Dispatch after Close.
var ErrClosed = errors.New("state: store closed")

// Store owns the canonical AppData value. Each Dispatch applies one action
// atomically and hands the resulting snapshot to a background flusher;
// the mutation path never waits on persistence. Saves are latest-wins: a
// newer snapshot supersedes any older one still waiting to be written.
type Store struct {
	backend storage.Store
	policy  BudgetPolicy
	errLog  io.Writer

	mu     sync.Mutex
	data   model.AppData
	loaded bool
	closed bool

	saves   chan model.AppData
	flushed chan struct{}
}

// New constructs a store over the given persistence collaborator. The
// store is unusable for mutation until Load completes.
func New(backend storage.Store, policy BudgetPolicy) *Store {
	s := &Store{
		backend: backend,
		policy:  policy,
		errLog:  os.Stderr,
		data:    model.DefaultAppData(),
		saves:   make(chan model.AppData, 1),
		flushed: make(chan struct{}),
	}
	go s.flushLoop()
	return s
}

// SetErrorLog redirects save-failure reporting. Nil discards it.
func (s *Store) SetErrorLog(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	s.mu.Lock()
	s.errLog = w
	s.mu.Unlock()
}

// Load runs the initial load from the backend. A load error degrades to
// the default empty AppData and is returned so the caller can report it;
// the store is usable either way afterwards.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.backend.Load(ctx)
	if err != nil {
		data = model.DefaultAppData()
	}

	s.mu.Lock()
	s.data = Reduce(s.data, LoadData(data), s.policy)
	s.loaded = true
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("loading app data: %w", err)
	}
	return nil
}

// Loading reports whether the initial load is still outstanding.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.loaded
}

// Data returns a deep-copied snapshot of the current state.
func (s *Store) Data() model.AppData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Policy returns the budget policy the store reduces with.
func (s *Store) Policy() BudgetPolicy {
	return s.policy
}

// Dispatch applies one action and schedules a save of the new snapshot.
// The state transition is synchronous; persistence is fire-and-forget.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	s.data = Reduce(s.data, a, s.policy)
	s.enqueueSave(s.data.Clone())
	s.mu.Unlock()
	return nil
}

// enqueueSave offers a snapshot to the flusher, displacing any snapshot
// that has not started writing yet. Called with mu held, which also
// orders it before Close closing the channel. It never blocks on the
// flusher: the channel has capacity one and stale entries are dropped.
func (s *Store) enqueueSave(snap model.AppData) {
	for {
		select {
		case s.saves <- snap:
			return
		default:
		}
		select {
		case <-s.saves: // drop the superseded snapshot
		default:
		}
	}
}

func (s *Store) flushLoop() {
	defer close(s.flushed)
	for snap := range s.saves {
		if err := s.backend.Save(context.Background(), snap); err != nil {
			s.mu.Lock()
			w := s.errLog
			s.mu.Unlock()
			fmt.Fprintf(w, "chestnut: save failed: %v\n", err)
		}
	}
}

// Close stops the flusher and writes the final snapshot synchronously, so
// the last in-memory state is what ends up persisted.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	loaded := s.loaded
	snap := s.data.Clone()
	s.mu.Unlock()

	close(s.saves)
	<-s.flushed

	if !loaded {
		return nil
	}
	if err := s.backend.Save(context.Background(), snap); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	return nil
}
