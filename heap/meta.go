package heap

import (
	"fmt"

	"github.com/keyheap/keyheap"
)

// pointer names an attachment slot: the child slot on one side of the node
// currently holding key.
type pointer struct {
	key   keyheap.Key
	right bool
}

func (p pointer) String() string {
	side := "left"
	if p.right {
		side = "right"
	}
	return fmt.Sprintf("(slot %08x %s)", uint32(p.key), side)
}

// meta is the per-heap record tracking everything the operations need to
// avoid full tree walks. Every field is a key into the store, not a
// reference: relinking a node never invalidates it. All fields are kept
// consistent with a complete tree of size nodes in level order after every
// operation.
type meta struct {
	root     keyheap.Key // minimum node, Empty iff size == 0
	size     uint32      // live nodes
	leftmost keyheap.Key // head of the deepest layer in level order
	last     keyheap.Key // tail of the deepest layer in level order
	insert   pointer     // where the next insert attaches
}

// rename records that the nodes at keys a and b exchanged tree positions.
// A metadata field names a position through the key of its occupant, so any
// field holding one of the two keys flips to the other. The slot side never
// changes: the swap moves occupants, not slots.
func (m *meta) rename(a, b keyheap.Key) {
	swp := func(k keyheap.Key) keyheap.Key {
		switch k {
		case a:
			return b
		case b:
			return a
		default:
			return k
		}
	}

	m.root = swp(m.root)
	m.leftmost = swp(m.leftmost)
	m.last = swp(m.last)
	m.insert.key = swp(m.insert.key)
}

// allLayersFilled reports whether a complete tree of n nodes has every
// layer full, meaning the next insert starts a new layer.
func allLayersFilled(n uint32) bool { return (n+1)&n == 0 }
