package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileBackend stores history as a JSON document:
//
//	{"history": [{"timestamp": ..., "method": ..., "url": ..., "status_code": ..., "elapsed_ms": ...}]}
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend writing to path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

type fileDocument struct {
	History []json.RawMessage `json:"history"`
}

type savedDocument struct {
	History []Entry `json:"history"`
}

// record mirrors Entry with pointers so missing fields can be told apart
// from zero values.
type record struct {
	Timestamp  *time.Time `json:"timestamp"`
	Method     *string    `json:"method"`
	URL        *string    `json:"url"`
	StatusCode *int       `json:"status_code"`
	ElapsedMS  *float64   `json:"elapsed_ms"`
}

func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) Close() error { return nil }

func (b *FileBackend) Load() ([]Entry, int, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading history file: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, 0, nil
	}

	var raws []json.RawMessage
	if data[0] == '[' {
		err = json.Unmarshal(data, &raws)
	} else {
		var doc fileDocument
		err = json.Unmarshal(data, &doc)
		raws = doc.History
	}
	if err != nil {
		return nil, 0, fmt.Errorf("decoding history file: %w", err)
	}

	entries := make([]Entry, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		e, ok := decodeRecord(raw)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}

func decodeRecord(raw json.RawMessage) (Entry, bool) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Entry{}, false
	}
	if r.Timestamp == nil || r.Method == nil || r.URL == nil || r.ElapsedMS == nil {
		return Entry{}, false
	}
	e := Entry{
		Timestamp:  r.Timestamp.UTC(),
		Method:     *r.Method,
		URL:        *r.URL,
		StatusCode: r.StatusCode,
		ElapsedMS:  *r.ElapsedMS,
	}
	return e, e.valid()
}

// Save writes entries atomically via a temp file and rename. The file is
// readable by the owner only.
func (b *FileBackend) Save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(savedDocument{History: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting history permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("replacing history file: %w", err)
	}
	return nil
}
