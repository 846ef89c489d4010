package history

import "errors"

// ErrClosed is returned by Append after Close.
var ErrClosed = errors.New("history store closed")

// StorageError wraps a failure to read or write the history backend.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return "history " + e.Op + ": " + e.Err.Error()
	}
	return "history " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }
