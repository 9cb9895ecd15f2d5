// Package evolve flies a population of network-piloted drakes through the
// drake world and evolves their genomes between generations.
package evolve

import (
	"github.com/vovakirdan/drake-arcade/internal/games/drake"
	"github.com/vovakirdan/drake-arcade/internal/neuro"
)

// Entry ties one genome to the network built from it and the drake it
// flies. Entries are only ever removed whole.
type Entry struct {
	ID     int
	Member *neuro.Member
	Brain  *neuro.Brain
	Drake  *drake.Drake
}

// Flock is the ordered set of drakes still flying in a generation.
type Flock struct {
	entries []*Entry
}

// Add appends an entry. Its ID must be unique within the flock.
func (f *Flock) Add(e *Entry) {
	f.entries = append(f.entries, e)
}

// Remove deletes the entry with the given ID, keeping the order of the
// rest. Returns false if no such entry exists.
func (f *Flock) Remove(id int) bool {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the entry with the given ID.
func (f *Flock) Get(id int) (*Entry, bool) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Len returns the number of entries.
func (f *Flock) Len() int {
	return len(f.entries)
}

// Entries returns a snapshot that stays valid while entries are removed.
func (f *Flock) Entries() []*Entry {
	out := make([]*Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Lead returns the first entry, or nil when the flock is empty.
func (f *Flock) Lead() *Entry {
	if len(f.entries) == 0 {
		return nil
	}
	return f.entries[0]
}
