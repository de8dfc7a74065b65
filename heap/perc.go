package heap

import (
	"github.com/keyheap/keyheap"
	"github.com/keyheap/keyheap/node"
)

// swap exchanges the node at ck with its parent at pk: the child's record
// takes over the parent's links, the parent takes the child's, and the
// grandparent, sibling, and grandchildren are relinked to match. Values
// stay with their keys; only positions move. Metadata fields naming either
// key are renamed to track the occupant change.
func (t *T) swap(pk, ck keyheap.Key) {
	p := t.store.Read(pk)
	c := t.store.Read(ck)

	right := p.Side(ck)
	sib := p.Child(!right)

	nc := node.T{Value: c.Value, Parent: p.Parent}
	nc.SetChild(right, pk)
	nc.SetChild(!right, sib)

	np := node.T{Value: p.Value, Parent: ck, Left: c.Left, Right: c.Right}

	if !p.Parent.Zero() {
		g := t.store.Read(p.Parent)
		g.SetChild(g.Side(pk), ck)
		t.store.Write(p.Parent, g)
	}
	if !sib.Zero() {
		s := t.store.Read(sib)
		s.Parent = ck
		t.store.Write(sib, s)
	}
	if !c.Left.Zero() {
		l := t.store.Read(c.Left)
		l.Parent = pk
		t.store.Write(c.Left, l)
	}
	if !c.Right.Zero() {
		r := t.store.Read(c.Right)
		r.Parent = pk
		t.store.Write(c.Right, r)
	}

	t.store.Write(pk, np)
	t.store.Write(ck, nc)

	t.meta.rename(pk, ck)
}

// percUp restores heap order on the path above k. Only that path can be in
// violation, so the loop stops at the first ordered parent.
func (t *T) percUp(k keyheap.Key) {
	n := t.store.Read(k)
	for !n.Parent.Zero() {
		pk := n.Parent
		if t.store.Read(pk).Value <= n.Value {
			break
		}
		t.swap(pk, k)
		n = t.store.Read(k)
	}
}

// percDown sinks the node at k below its smaller child until order holds.
// In a complete tree a right child implies a left one, so a missing left
// child ends the walk. Ties go left.
func (t *T) percDown(k keyheap.Key) {
	for {
		n := t.store.Read(k)
		ck := n.Left
		if ck.Zero() {
			return
		}
		cv := t.store.Read(ck).Value
		if !n.Right.Zero() {
			if rv := t.store.Read(n.Right).Value; rv < cv {
				ck, cv = n.Right, rv
			}
		}
		if n.Value <= cv {
			return
		}
		t.swap(k, ck)
	}
}
