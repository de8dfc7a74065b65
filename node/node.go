package node

import (
	"fmt"

	"github.com/keyheap/keyheap"
)

// T is one heap entry: a payload plus the keys of its tree neighbors. All
// links are keys into the store, never pointers. The zero value is a
// vacated or absent record.
type T struct {
	Value  keyheap.Value
	Parent keyheap.Key
	Left   keyheap.Key
	Right  keyheap.Key
}

func (n T) Zero() bool { return n == T{} }

func (n T) String() string {
	return fmt.Sprintf("(node v=%d p=%08x l=%08x r=%08x)",
		n.Value, uint32(n.Parent), uint32(n.Left), uint32(n.Right))
}

// Child returns the link for one side.
func (n T) Child(right bool) keyheap.Key {
	if right {
		return n.Right
	}
	return n.Left
}

func (n *T) SetChild(right bool, k keyheap.Key) {
	if right {
		n.Right = k
	} else {
		n.Left = k
	}
}

// Side reports which child slot of n the key occupies: true for right.
// The key must be one of n's children.
func (n T) Side(k keyheap.Key) bool { return n.Right == k }
