package client

import (
	"maps"
	"net/http"
	"slices"
	"strings"
)

// mergeHeaders folds layers into a fresh http.Header, lowest precedence
// first. A later layer replaces a key wholesale, and within a layer only
// the last value of a key survives. No layer is modified.
//
// Spellings of one key that collide within a layer are resolved in a
// fixed order: the canonical spelling wins, otherwise the spelling that
// sorts last.
func mergeHeaders(layers ...http.Header) http.Header {
	merged := make(http.Header)
	for _, layer := range layers {
		for _, k := range slices.SortedFunc(maps.Keys(layer), compareSpelling) {
			vs := layer[k]
			if len(vs) == 0 {
				continue
			}
			merged[http.CanonicalHeaderKey(k)] = []string{vs[len(vs)-1]}
		}
	}
	return merged
}

// compareSpelling orders canonical keys after non-canonical ones, then
// lexically, so the last key applied for a collision is deterministic.
func compareSpelling(a, b string) int {
	ca, cb := a == http.CanonicalHeaderKey(a), b == http.CanonicalHeaderKey(b)
	switch {
	case ca == cb:
		return strings.Compare(a, b)
	case ca:
		return 1
	default:
		return -1
	}
}
