package session

import "github.com/tlsext/engine/catalog"

const bitsPerWord = 64

// AdvertSet is a per-session bitset over internal ids, recording which
// extensions have been sent (client) or received (server).
type AdvertSet struct {
	words []uint64
}

// NewAdvertSet allocates a bitset wide enough for catalog.MaxInternalID bits.
func NewAdvertSet() *AdvertSet {
	n := (int(catalog.MaxInternalID) + bitsPerWord - 1) / bitsPerWord
	return &AdvertSet{words: make([]uint64, n)}
}

func (a *AdvertSet) Set(id catalog.InternalID) {
	a.words[id/bitsPerWord] |= 1 << (id % bitsPerWord)
}

func (a *AdvertSet) Clear(id catalog.InternalID) {
	a.words[id/bitsPerWord] &^= 1 << (id % bitsPerWord)
}

func (a *AdvertSet) IsSet(id catalog.InternalID) bool {
	return a.words[id/bitsPerWord]&(1<<(id%bitsPerWord)) != 0
}

// Each calls fn for every internal id currently set, in ascending
// order; Pack uses this to walk the advertised set deterministically.
func (a *AdvertSet) Each(fn func(id catalog.InternalID)) {
	for id := catalog.InternalID(0); id < catalog.MaxInternalID; id++ {
		if a.IsSet(id) {
			fn(id)
		}
	}
}
