package testhelp

import (
	"github.com/zeebo/mwc"

	"github.com/keyheap/keyheap"
)

var (
	keyRng  = mwc.Rand()
	valRng  = mwc.Rand()
	permRng = mwc.Rand()
)

// Key returns a random non-zero key.
func Key() keyheap.Key {
	for {
		if k := keyheap.Key(keyRng.Uint32()); !k.Zero() {
			return k
		}
	}
}

func Value() keyheap.Value { return keyheap.Value(valRng.Uint64()) }

// Keys returns the keys 1..n in a shuffled order.
func Keys(n int) []keyheap.Key {
	out := make([]keyheap.Key, n)
	for i := range out {
		out[i] = keyheap.Key(i + 1)
	}
	for i := len(out) - 1; i > 0; i-- {
		j := int(permRng.Uint64n(uint64(i + 1)))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
