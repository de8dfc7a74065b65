package keyheap

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"
)

// Key is a caller-chosen stable identifier for a heap entry. The heap never
// generates keys and a key never changes for the lifetime of its entry. Keys
// are non-zero: Empty marks the absence of a neighbor.
type Key uint32

const Empty Key = 0

func (k Key) Zero() bool { return k == Empty }

func (k Key) String() string { return fmt.Sprintf("(key %08x)", uint32(k)) }

func (k Key) Digest() uint64 {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(k))
	return xxh3.Hash(b[:])
}

// Value is the orderable payload. Order is ascending: smaller values are
// closer to the root.
type Value uint64
