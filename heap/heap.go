// Package heap implements a min-heap addressed by stable caller keys.
//
// The heap is a complete binary tree of nodes linked by keys rather than an
// array, which is what makes an arbitrary-key Update possible: a node keeps
// its key wherever the tree moves it. Alongside the node graph it maintains
// a single metadata record (root, size, the head and tail of the deepest
// layer, and the next attachment slot) incrementally on every mutation, so
// no operation ever walks more than one root-to-leaf path.
//
// The structure is single owner: callers serialize access themselves.
package heap

import (
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/negrel/assert"
	"github.com/zeebo/errs/v2"

	"github.com/keyheap/keyheap"
	"github.com/keyheap/keyheap/node"
)

var (
	ErrEmpty    = errs.Tag("heap empty")
	ErrExists   = errs.Tag("key exists")
	ErrNotFound = errs.Tag("key not found")
)

// T is a keyed min-heap. The zero value is an empty heap backed by the
// default store.
type T struct {
	store Store
	live  *roaring.Bitmap
	meta  meta
}

// New returns a heap backed by the given store, which must be empty. A nil
// store selects the default table-backed one.
func New(store Store) *T {
	t := &T{store: store}
	t.setup()
	return t
}

func (t *T) setup() {
	if t.store == nil {
		t.store = new(tblStore)
	}
	if t.live == nil {
		t.live = roaring.New()
	}
}

// Len returns the number of live nodes.
func (t *T) Len() int { return int(t.meta.size) }

// Has reports whether the key currently holds a live node.
func (t *T) Has(k keyheap.Key) bool {
	return t.live != nil && t.live.Contains(uint32(k))
}

// Keys returns the live keys in ascending key order.
func (t *T) Keys() []keyheap.Key {
	if t.live == nil || t.live.IsEmpty() {
		return nil
	}
	out := make([]keyheap.Key, 0, t.live.GetCardinality())
	it := t.live.Iterator()
	for it.HasNext() {
		out = append(out, keyheap.Key(it.Next()))
	}
	return out
}

func (t *T) Size() uint64 {
	n := uint64(unsafe.Sizeof(t.meta)) + 16
	if s, ok := t.store.(interface{ Size() uint64 }); ok {
		n += s.Size()
	}
	if t.live != nil {
		n += t.live.GetSizeInBytes()
	}
	return n
}

// Reset clears the heap back to an empty state, vacating every live record
// in the store.
func (t *T) Reset() {
	if t.live != nil {
		it := t.live.Iterator()
		for it.HasNext() {
			t.store.Write(keyheap.Key(it.Next()), node.T{})
		}
		t.live.Clear()
	}
	t.meta = meta{}
}

// Peek returns the minimum value without removing it.
func (t *T) Peek() (keyheap.Value, error) {
	if t.meta.size == 0 {
		return 0, ErrEmpty.Errorf("peek on empty heap")
	}
	return t.store.Read(t.meta.root).Value, nil
}

// Insert adds a node under the key. The key must be non-zero and not
// currently live.
func (t *T) Insert(k keyheap.Key, v keyheap.Value) error {
	assert.False(k.Zero(), "zero key is the empty sentinel")
	t.setup()

	if t.live.Contains(uint32(k)) {
		return ErrExists.Errorf("insert key %08x", uint32(k))
	}

	if t.meta.size == 0 {
		t.store.Write(k, node.T{Value: v})
		t.live.Add(uint32(k))
		t.meta = meta{root: k, size: 1, leftmost: k, last: k, insert: pointer{key: k}}
		return nil
	}

	ptr := t.meta.insert
	par := t.store.Read(ptr.key)
	par.SetChild(ptr.right, k)
	t.store.Write(ptr.key, par)
	t.store.Write(k, node.T{Value: v, Parent: ptr.key})
	t.live.Add(uint32(k))

	t.meta.size++
	if ptr.key == t.meta.leftmost {
		// the slot hung under the deepest layer: k starts a new one
		t.meta.leftmost = k
	}
	if allLayersFilled(t.meta.size) {
		t.meta.insert = pointer{key: t.meta.leftmost}
	} else {
		t.meta.insert = t.nextSlot(ptr)
	}
	t.meta.last = k

	t.percUp(k)
	return nil
}

// Pop removes and returns the minimum value.
func (t *T) Pop() (keyheap.Value, error) {
	t.setup()
	if t.meta.size == 0 {
		return 0, ErrEmpty.Errorf("pop on empty heap")
	}

	rk := t.meta.root
	root := t.store.Read(rk)
	out := root.Value

	lk := t.meta.last
	if rk == lk {
		t.store.Write(rk, node.T{})
		t.live.Remove(uint32(rk))
		t.meta = meta{}
		return out, nil
	}

	// the new metadata is derived from the intact graph before any
	// relinking, because the climbs need the old links.
	m := t.prePop(rk, lk, root)

	last := t.store.Read(lk)
	if last.Parent != rk {
		par := t.store.Read(last.Parent)
		par.SetChild(par.Side(lk), keyheap.Empty)
		t.store.Write(last.Parent, par)
	}

	// the last node takes over the root position: the root's links minus
	// its own vacated slot, keeping its value.
	moved := node.T{Value: last.Value}
	if root.Left != lk {
		moved.Left = root.Left
		l := t.store.Read(root.Left)
		l.Parent = lk
		t.store.Write(root.Left, l)
	}
	if root.Right != lk && !root.Right.Zero() {
		moved.Right = root.Right
		r := t.store.Read(root.Right)
		r.Parent = lk
		t.store.Write(root.Right, r)
	}
	t.store.Write(lk, moved)

	t.store.Write(rk, node.T{})
	t.live.Remove(uint32(rk))

	t.meta = m
	t.percDown(lk)
	return out, nil
}

// prePop computes the post-pop metadata while the graph still has its
// pre-pop links. rk is the outgoing root, lk the node about to relocate.
func (t *T) prePop(rk, lk keyheap.Key, root node.T) meta {
	m := meta{root: lk, size: t.meta.size - 1}

	switch {
	case root.Left == lk:
		// two nodes: lk becomes the whole heap
		m.leftmost, m.last = lk, lk
		m.insert = pointer{key: lk}

	case root.Right == lk:
		// three nodes: the left child is the only one below the root
		m.leftmost, m.last = root.Left, root.Left
		m.insert = pointer{key: lk, right: true}

	default:
		// the next insert reattaches exactly where lk came from
		par := t.store.Read(lk).Parent
		m.insert = pointer{key: par, right: t.store.Read(par).Side(lk)}

		if lk == t.meta.leftmost {
			// lk was alone on the deepest layer; the layer above is
			// full, so its tail is the right spine's end and its head
			// is lk's parent
			m.last = t.rightmost(rk)
			m.leftmost = par
		} else {
			m.last = t.prevSibling(lk)
			m.leftmost = t.meta.leftmost
		}
	}
	return m
}

// Update changes the value of the node at the key and restores heap order
// around it. A smaller value can only violate order upward and a larger one
// only downward, so exactly one percolation runs.
func (t *T) Update(k keyheap.Key, v keyheap.Value) error {
	t.setup()
	if !t.live.Contains(uint32(k)) {
		return ErrNotFound.Errorf("update key %08x", uint32(k))
	}

	n := t.store.Read(k)
	if n.Value == v {
		return nil
	}
	up := v < n.Value
	n.Value = v
	t.store.Write(k, n)

	if up {
		t.percUp(k)
	} else {
		t.percDown(k)
	}
	return nil
}
