package tsort

import "github.com/zeebo/xxh3"

// keySet counts distinct sort keys by their xxHash3-128 fingerprint.
// Keys are folded first when comparison is case-insensitive, so the count
// matches what the comparator considers equal.
type keySet struct {
	fold    bool
	seen    map[xxh3.Uint128]struct{}
	scratch []byte
}

func newKeySet(fold bool) *keySet {
	return &keySet{
		fold: fold,
		seen: make(map[xxh3.Uint128]struct{}),
	}
}

func (ks *keySet) add(key []byte) {
	if ks.fold {
		ks.scratch = foldUpper(ks.scratch[:0], key)
		key = ks.scratch
	}
	ks.seen[xxh3.Hash128(key)] = struct{}{}
}

func (ks *keySet) len() int {
	return len(ks.seen)
}
