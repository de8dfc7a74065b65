package heap

import (
	"math/bits"
	"testing"

	"github.com/zeebo/assert"

	"github.com/keyheap/keyheap"
)

// levelOrder returns every live key from the root in level order, checking
// parent back links along the way.
func levelOrder(t testing.TB, h *T) []keyheap.Key {
	if h.meta.size == 0 {
		assert.Equal(t, h.meta, meta{})
		return nil
	}

	var order []keyheap.Key
	layer := []keyheap.Key{h.meta.root}
	for len(layer) > 0 {
		var next []keyheap.Key
		for _, k := range layer {
			order = append(order, k)
			n := h.store.Read(k)
			for _, c := range []keyheap.Key{n.Left, n.Right} {
				if c.Zero() {
					continue
				}
				assert.Equal(t, h.store.Read(c).Parent, k)
				next = append(next, c)
			}
		}
		layer = next
	}
	return order
}

// heapCheck verifies heap order, the complete tree shape, and every
// metadata field against a full walk of the node graph.
func heapCheck(t testing.TB, h *T) {
	order := levelOrder(t, h)
	size := len(order)
	assert.Equal(t, size, h.Len())

	if size == 0 {
		return
	}

	// a complete tree in level order has node i's children at exactly
	// 2i+1 and 2i+2, and every parent ordered before its children
	at := func(j int) keyheap.Key {
		if j < size {
			return order[j]
		}
		return keyheap.Empty
	}
	for i, k := range order {
		n := h.store.Read(k)
		assert.Equal(t, n.Left, at(2*i+1))
		assert.Equal(t, n.Right, at(2*i+2))
		if !n.Left.Zero() {
			assert.That(t, n.Value <= h.store.Read(n.Left).Value)
		}
		if !n.Right.Zero() {
			assert.That(t, n.Value <= h.store.Read(n.Right).Value)
		}
	}

	assert.Equal(t, h.meta.root, order[0])
	assert.Equal(t, h.meta.last, order[size-1])

	// the deepest layer starts at 1-based position 2^floor(log2 size)
	head := 1<<(bits.Len(uint(size))-1) - 1
	assert.Equal(t, h.meta.leftmost, order[head])
	assert.Equal(t, h.leftmost(h.meta.root), order[head])

	// the next node lands at 1-based position size+1, under (size+1)/2,
	// on the right iff that position is odd
	assert.Equal(t, h.meta.insert, pointer{
		key:   order[(size+1)/2-1],
		right: (size+1)%2 == 1,
	})

	assert.Equal(t, int(h.live.GetCardinality()), size)
	for _, k := range order {
		assert.That(t, h.Has(k))
	}
}
