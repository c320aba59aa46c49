// Package criteria holds the session's sort and filter selections. Both
// stores persist every mutation to a Storage and rehydrate from it on load.
package criteria

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Storage keys for the two stores.
const (
	SortStorageKey   = "client-sort-storage"
	FilterStorageKey = "client-filter-storage"
)

// Storage is durable key-value storage.
type Storage interface {
	// Get returns ok=false when key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryStorage is an in-process Storage for tests and ephemeral sessions.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

func (s *MemoryStorage) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// envelope is the persisted shape: {"state": ..., "version": 0}.
type envelope[T any] struct {
	State   T   `json:"state"`
	Version int `json:"version"`
}

func encodeState[T any](state T) ([]byte, error) {
	return json.Marshal(envelope[T]{State: state})
}

func decodeState[T any](data []byte) (T, error) {
	var env envelope[T]
	err := json.Unmarshal(data, &env)
	return env.State, err
}

// loadState reads key from storage into a T. Missing, unreadable or
// malformed data yields the zero T.
func loadState[T any](ctx context.Context, storage Storage, key string, logger *slog.Logger) T {
	var zero T
	if storage == nil {
		return zero
	}
	data, ok, err := storage.Get(ctx, key)
	if err != nil {
		logger.Warn("read persisted criteria", slog.String("key", key), slog.String("error", err.Error()))
		return zero
	}
	if !ok {
		return zero
	}
	state, err := decodeState[T](data)
	if err != nil {
		logger.Warn("discard malformed persisted criteria", slog.String("key", key), slog.String("error", err.Error()))
		return zero
	}
	return state
}

func saveState[T any](ctx context.Context, storage Storage, key string, state T, logger *slog.Logger) {
	if storage == nil {
		return
	}
	data, err := encodeState(state)
	if err == nil {
		err = storage.Set(ctx, key, data)
	}
	if err != nil {
		logger.Warn("persist criteria", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// observers is a set of change callbacks.
type observers struct {
	next int
	fns  map[int]func()
}

func (o *observers) add(fn func()) func() {
	if o.fns == nil {
		o.fns = make(map[int]func())
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	return func() { delete(o.fns, id) }
}

func (o *observers) notify() {
	for id := 0; id < o.next; id++ {
		if fn, ok := o.fns[id]; ok {
			fn()
		}
	}
}
