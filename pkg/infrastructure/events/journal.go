package events

import (
	"sync"
	"time"
)

// Journal is an append-only in-memory record of ledger mutations
type Journal struct {
	mu      sync.RWMutex
	streams map[string][]Entry
	all     []Entry
}

// NewJournal creates an empty journal
func NewJournal() *Journal {
	return &Journal{
		streams: make(map[string][]Entry),
	}
}

// Append records an entry on the given stream. The entry's version is the
// next version of that stream, counting from 1.
func (j *Journal) Append(eventType, stream string, data interface{}) Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := Entry{
		Type:      eventType,
		Stream:    stream,
		Data:      data,
		Timestamp: time.Now(),
		Version:   len(j.streams[stream]) + 1,
	}
	j.streams[stream] = append(j.streams[stream], entry)
	j.all = append(j.all, entry)
	return entry
}

// Read returns the entries of a stream starting at fromVersion. An unknown
// stream or an out-of-range version yields an empty slice.
func (j *Journal) Read(stream string, fromVersion int) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	entries := j.streams[stream]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(entries) {
		return []Entry{}
	}

	out := make([]Entry, len(entries)-(fromVersion-1))
	copy(out, entries[fromVersion-1:])
	return out
}

// ReadAll returns every journaled entry in append order
func (j *Journal) ReadAll() []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]Entry, len(j.all))
	copy(out, j.all)
	return out
}

// Len returns the number of journaled entries
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.all)
}
