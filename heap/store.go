package heap

import (
	"github.com/keyheap/keyheap"
	"github.com/keyheap/keyheap/node"
	"github.com/keyheap/keyheap/nodestore"
)

// Store is the node storage collaborator. Read returns the zero record for
// a key that was never written or was vacated; Write overwrites. The heap
// never deletes: a removed node is written back as the zero record, and
// liveness is tracked by the heap itself.
type Store interface {
	Read(keyheap.Key) node.T
	Write(keyheap.Key, node.T)
}

type tblStore struct {
	tbl nodestore.T[keyheap.Key, node.T]
}

func (s *tblStore) Read(k keyheap.Key) node.T {
	n, _ := s.tbl.Get(k)
	return n
}

func (s *tblStore) Write(k keyheap.Key, n node.T) { s.tbl.Set(k, n) }

func (s *tblStore) Size() uint64 { return s.tbl.Size() }
