package history

import (
	"io"
	"log/slog"
	"strings"
	"sync"
)

// DefaultLimit is the number of entries kept when no limit is configured.
const DefaultLimit = 100

// Store holds the request history for the lifetime of the process. Entries
// are ordered oldest first, both in memory and in the backend. Appends only
// touch memory and schedule a background flush so that request completion
// never waits on disk.
type Store struct {
	backend Backend
	limit   int
	logger  *slog.Logger

	mu      sync.RWMutex
	entries []Entry
	loaded  bool
	dirty   bool
	closed  bool

	// writeMu makes the flusher and Persist the only writer at a time.
	writeMu sync.Mutex
	flushCh chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithLimit bounds the number of kept entries; the oldest are evicted
// first. Values <= 0 mean DefaultLimit.
func WithLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLogger sets the logger used for load and flush failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a store on top of backend and starts its flusher.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		limit:   DefaultLimit,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		flushCh: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.wg.Add(1)
	go s.flushLoop()
	return s
}

// Load reads the backend once and returns the entries. An unreadable or
// corrupt store is logged and treated as empty.
func (s *Store) Load() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked()
	return s.snapshotLocked()
}

func (s *Store) ensureLoadedLocked() {
	if s.loaded {
		return
	}
	s.loaded = true

	entries, skipped, err := s.backend.Load()
	if err != nil {
		s.logger.Warn("history unreadable, starting empty", "path", s.backend.Path(), "err", err)
		return
	}
	if skipped > 0 {
		s.logger.Warn("skipped malformed history records", "path", s.backend.Path(), "count", skipped)
	}
	s.entries = entries
	s.trimLocked()
}

// Append adds e and schedules a flush. It fails only after Close.
func (s *Store) Append(e Entry) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return &StorageError{Op: "append", Path: s.backend.Path(), Err: ErrClosed}
	}
	s.ensureLoadedLocked()
	s.entries = append(s.entries, e)
	s.trimLocked()
	s.dirty = true
	s.mu.Unlock()

	select {
	case s.flushCh <- struct{}{}:
	default:
	}
	return nil
}

// Persist synchronously writes the current sequence if it changed since
// the last successful write.
func (s *Store) Persist() error {
	return s.flush()
}

// Entries returns a copy of all entries, oldest first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.entries[i])
	}
	return out
}

// Search returns entries whose URL or method contains query,
// case-insensitively, oldest first.
func (s *Store) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	s.mu.RLock()
	defer s.mu.RUnlock()
	if q == "" {
		return s.snapshotLocked()
	}
	var out []Entry
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e.URL), q) || strings.Contains(strings.ToLower(e.Method), q) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries in memory.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes every entry and persists the empty sequence.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.loaded = true
	s.entries = nil
	s.dirty = true
	s.mu.Unlock()
	return s.flush()
}

// Close stops the flusher, writes pending entries and closes the backend.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()

	err := s.flush()
	if cerr := s.backend.Close(); err == nil && cerr != nil {
		err = &StorageError{Op: "close", Path: s.backend.Path(), Err: cerr}
	}
	return err
}

func (s *Store) flushLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.flushCh:
			// Failures are logged inside flush and retried on the next signal.
			_ = s.flush()
		case <-s.done:
			return
		}
	}
}

func (s *Store) flush() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.snapshotLocked()
	s.dirty = false
	s.mu.Unlock()

	if err := s.backend.Save(snapshot); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		s.logger.Error("writing history failed", "path", s.backend.Path(), "err", err)
		return &StorageError{Op: "write", Path: s.backend.Path(), Err: err}
	}
	return nil
}

func (s *Store) trimLocked() {
	if over := len(s.entries) - s.limit; over > 0 {
		s.entries = append([]Entry(nil), s.entries[over:]...)
	}
}

func (s *Store) snapshotLocked() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
