package heap

import (
	"github.com/negrel/assert"

	"github.com/keyheap/keyheap"
)

// The navigator moves between level order neighbors without level order
// indexes. Nodes are addressed by caller keys, so "the next slot" is not
// index arithmetic: it is a climb out of the current subtree and a mirrored
// descent into the next one. Every routine here assumes the complete tree
// shape; a failed climb means the shape bookkeeping is broken, which is a
// programming error and not a recoverable condition.

// rightmost walks right edges from k to the end of the spine.
func (t *T) rightmost(k keyheap.Key) keyheap.Key {
	for {
		n := t.store.Read(k)
		if n.Right.Zero() {
			return k
		}
		k = n.Right
	}
}

// leftmost walks left edges from k to the head of the deepest layer below it.
func (t *T) leftmost(k keyheap.Key) keyheap.Key {
	for {
		n := t.store.Read(k)
		if n.Left.Zero() {
			return k
		}
		k = n.Left
	}
}

// nextSlot returns the level order successor of an attachment slot. The
// caller excludes the last slot of a layer; that successor starts a new
// layer and is derived from the leftmost key instead.
func (t *T) nextSlot(p pointer) pointer {
	if !p.right {
		return pointer{key: p.key, right: true}
	}

	// the successor of a right slot hangs under the next node on p's
	// layer. climb while the current node sits on a right edge, cross to
	// its ancestor's right sibling, and descend the mirrored left path.
	k := p.key
	climbs := 0
	for {
		n := t.store.Read(k)
		assert.False(n.Parent.Zero(), "slot successor crossed the root")
		par := t.store.Read(n.Parent)
		if par.Right != k {
			k = par.Right
			break
		}
		k = n.Parent
		climbs++
	}
	for ; climbs > 0; climbs-- {
		k = t.store.Read(k).Left
	}
	return pointer{key: k}
}

// prevSibling returns the level order predecessor of the node at k: the
// mirror of nextSlot, climbing left edges and descending right ones. k must
// not be the head of its layer.
func (t *T) prevSibling(k keyheap.Key) keyheap.Key {
	climbs := 0
	for {
		n := t.store.Read(k)
		assert.False(n.Parent.Zero(), "predecessor of a layer head")
		par := t.store.Read(n.Parent)
		if par.Left != k {
			k = par.Left
			break
		}
		k = n.Parent
		climbs++
	}
	for ; climbs > 0; climbs-- {
		k = t.store.Read(k).Right
	}
	return k
}
