// Package store holds ingested documents for the lifetime of the process.
//
// Entries are immutable after insertion; an insert becomes visible to
// readers only once complete, and "most recent" is a total order over a
// monotonic sequence number rather than wall-clock time.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/clausecheck/clausecheck/internal/model"
)

// ErrNoDocument is returned when a query arrives before any document has
// been ingested. Callers surface it verbatim; it is never substituted with
// sample data.
var ErrNoDocument = errors.New("no document available: ingest a policy document first")

const excerptLen = 500

// Entry is one ingested document. Never mutated after insertion.
type Entry struct {
	ID          string
	Clauses     *model.ClauseSet
	Source      string
	TextExcerpt string
	TextSize    int
	IngestedAt  time.Time

	// seq orders entries for most-recent selection.
	seq uint64
}

// DocumentStore is the process-lifetime keyed collection of clause sets.
// Concurrent reads do not block each other; inserts take a short exclusive
// section.
type DocumentStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	nextSeq uint64
}

// New creates an empty document store.
func New() *DocumentStore {
	return &DocumentStore{entries: make(map[string]*Entry)}
}

// Put inserts a fully-built entry under the given id, replacing any previous
// entry wholesale. The sequence number is assigned under the lock, so
// insertion order is total.
func (s *DocumentStore) Put(id, source, rawText string, clauses *model.ClauseSet) *Entry {
	excerpt := rawText
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen] + "..."
	}

	entry := &Entry{
		ID:          id,
		Clauses:     clauses,
		Source:      source,
		TextExcerpt: excerpt,
		TextSize:    len(rawText),
		IngestedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	s.nextSeq++
	entry.seq = s.nextSeq
	s.entries[id] = entry
	s.mu.Unlock()

	return entry
}

// Get returns the entry for id, or ErrNoDocument when absent.
func (s *DocumentStore) Get(id string) (*Entry, error) {
	s.mu.RLock()
	entry := s.entries[id]
	s.mu.RUnlock()

	if entry == nil {
		return nil, fmt.Errorf("document %q: %w", id, ErrNoDocument)
	}
	return entry, nil
}

// Latest returns the most recently ingested entry, or ErrNoDocument when
// the store is empty.
func (s *DocumentStore) Latest() (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *Entry
	for _, entry := range s.entries {
		if latest == nil || entry.seq > latest.seq {
			latest = entry
		}
	}
	if latest == nil {
		return nil, ErrNoDocument
	}
	return latest, nil
}

// Resolve returns the entry for id when given and known, and falls back to
// the most recent entry otherwise.
func (s *DocumentStore) Resolve(id string) (*Entry, error) {
	if id != "" {
		if entry, err := s.Get(id); err == nil {
			return entry, nil
		}
	}
	return s.Latest()
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// List returns all entries, most recent first.
func (s *DocumentStore) List() []*Entry {
	s.mu.RLock()
	entries := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })
	return entries
}
