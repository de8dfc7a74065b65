package nodestore

import (
	"math"
	"math/bits"

	"github.com/keyheap/keyheap/sizeof"
)

// Key is any hashable key the store can index by.
type Key interface {
	comparable
	Digest() uint64
}

const (
	flagsEmpty    = 0b00000000
	flagsReserved = 0b01111110
	flagsHit      = 0b10000000
	flagsList     = 0b01000000

	maskHit      = 0b10000000
	maskDistance = 0b00111111

	maxLoadFactor = 0.8
)

var jumpDistances = [64]uint16{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15,
	21, 28, 36, 45, 55, 66, 78, 91, 105, 120, 136, 153, 171, 190, 210, 231,
	253, 276, 300, 325, 351, 378, 406, 435, 465, 496, 528, 561, 595, 630,
	666, 703, 741, 780, 820, 861, 903, 946, 990, 1035, 1081, 1128, 1176,
	1225, 1275, 1326, 1378, 1431,
}

func np2(x uint64) uint64  { return 1 << (uint(bits.Len64(x-1)) % 64) }
func log2(x uint64) uint64 { return uint64(bits.Len64(x)-1) % 64 }

type slot[K Key, V any] struct {
	k K
	v V
	m uint8
}

type slotIndex[K Key, V any] struct {
	s *slot[K, V]
	i uint64
}

func (si slotIndex[K, V]) slot() slot[K, V]     { return *si.s }
func (si slotIndex[K, V]) setSlot(s slot[K, V]) { *si.s = s }
func (si slotIndex[K, V]) meta() uint8          { return si.s.m }
func (si slotIndex[K, V]) setMeta(m uint8)      { si.s.m = m }
func (si slotIndex[K, V]) setJump(ji uint8)     { si.setMeta(si.meta()&^maskDistance | ji) }
func (si slotIndex[K, V]) hasJump() bool        { return si.meta()&maskDistance != 0 }
func (si slotIndex[K, V]) jump() uint8          { return si.meta() & maskDistance }

// T is an open addressing hash table from keys to records. Set overwrites,
// so repeatedly rewriting the record at a key never changes the load. The
// zero value is an empty table.
type T[K Key, V any] struct {
	slots []slot[K, V]
	mask  uint64
	shift uint64
	eles  int
	full  int
}

func (t *T[K, V]) Len() int { return t.eles }

func (t *T[K, V]) Size() uint64 {
	return 0 +
		/* slots */ sizeof.Slice(t.slots) +
		/* mask  */ 8 +
		/* shift */ 8 +
		/* eles  */ 8 +
		/* full  */ 8 +
		0
}

func (t *T[K, V]) Load() float64 {
	return float64(t.eles) / float64(t.mask+1)
}

func (t *T[K, V]) getSlotIndex(i uint64) slotIndex[K, V] {
	return slotIndex[K, V]{
		s: &t.slots[i],
		i: i,
	}
}

func (t *T[K, V]) next(si slotIndex[K, V], ji uint8) slotIndex[K, V] {
	next := (si.i + uint64(jumpDistances[ji])) & t.mask
	return t.getSlotIndex(next)
}

func (t *T[K, V]) index(k K) uint64 {
	return (11400714819323198485 * k.Digest()) >> (t.shift % 64)
}

// Get returns the record at the key, or the zero record with ok false if
// the key was never written. The table cannot tell a live record from a
// vacated one: that is the caller's bookkeeping.
func (t *T[K, V]) Get(k K) (v V, ok bool) {
	if len(t.slots) == 0 {
		return v, false
	}
	si := t.getSlotIndex(t.index(k))
	if si.meta()&maskHit != flagsHit {
		return v, false
	}
	for {
		if s := si.slot(); s.k == k {
			return s.v, true
		}
		ji := si.jump()
		if ji == 0 {
			return v, false
		}
		si = t.next(si, ji)
	}
}

// Set writes the record at the key, overwriting any previous record.
func (t *T[K, V]) Set(k K, v V) {
	if t.isFull() {
		t.grow()
	}
	si := t.getSlotIndex(t.index(k))
	if si.meta()&maskHit != flagsHit {
		t.setDirectHit(si, k, v)
		return
	}
	for {
		if si.s.k == k {
			si.s.v = v
			return
		}
		ji := si.jump()
		if ji == 0 {
			t.setNew(si, k, v)
			return
		}
		si = t.next(si, ji)
	}
}

func (t *T[K, V]) setDirectHit(si slotIndex[K, V], k K, v V) {
	if si.meta() == flagsEmpty {
		si.setSlot(slot[K, V]{k, v, flagsHit})
		t.eles++
		return
	}

	// the slot is occupied by a record that does not hash here. relocate
	// that record's chain link by link and claim the slot.
	parent := t.findParent(si)
	free, ji := t.findFree(parent)
	if ji == 0 {
		t.grow()
		t.Set(k, v)
		return
	}

	for it := si; ; {
		free.setSlot(it.slot())
		parent.setJump(ji)
		free.setMeta(flagsList)

		if !it.hasJump() {
			it.setMeta(flagsEmpty)
			break
		}

		next := t.next(it, it.jump())
		it.setMeta(flagsEmpty)
		si.setMeta(flagsReserved)
		it, parent = next, free

		free, ji = t.findFree(free)
		if ji == 0 {
			t.grow()
			t.Set(k, v)
			return
		}
	}

	si.setSlot(slot[K, V]{k, v, flagsHit})
	t.eles++
}

func (t *T[K, V]) setNew(si slotIndex[K, V], k K, v V) {
	free, ji := t.findFree(si)
	if ji == 0 {
		t.grow()
		t.Set(k, v)
		return
	}

	free.setSlot(slot[K, V]{k, v, flagsList})
	si.setJump(ji)
	t.eles++
}

func (t *T[K, V]) isFull() bool {
	return len(t.slots) == 0 || t.eles >= t.full
}

func (t *T[K, V]) findDirectHit(si slotIndex[K, V]) slotIndex[K, V] {
	return t.getSlotIndex(t.index(si.slot().k))
}

func (t *T[K, V]) findParent(si slotIndex[K, V]) slotIndex[K, V] {
	parent := t.findDirectHit(si)
	for {
		next := t.next(parent, parent.jump())
		if next == si {
			return parent
		}
		parent = next
	}
}

func (t *T[K, V]) findFree(si slotIndex[K, V]) (slotIndex[K, V], uint8) {
	for ji := uint8(1); ji < uint8(len(jumpDistances)); ji++ {
		if si := t.next(si, ji); si.meta() == flagsEmpty {
			return si, ji
		}
	}
	return slotIndex[K, V]{}, 0
}

func (t *T[K, V]) grow() {
	nslots := max(10, 2*t.mask)
	nslots = max(nslots, uint64(math.Ceil(float64(t.eles)/maxLoadFactor)))
	nslots = max(128, np2(nslots))

	slots := t.slots
	t.shift = 64 - log2(nslots)
	t.slots = make([]slot[K, V], nslots)
	t.mask = nslots - 1
	t.eles = 0
	t.full = int(float64(nslots) * maxLoadFactor)

	for i := range slots {
		s := &slots[i]
		if m := s.m; m != flagsEmpty && m != flagsReserved {
			t.Set(s.k, s.v)
		}
	}
}
