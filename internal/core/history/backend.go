package history

// Backend persists the full history sequence. Implementations are only
// called by Store, which serializes writes.
type Backend interface {
	// Load returns the valid entries in stored order and how many malformed
	// records were skipped. A missing store is not an error.
	Load() (entries []Entry, skipped int, err error)
	// Save replaces the stored sequence with entries.
	Save(entries []Entry) error
	Path() string
	Close() error
}
