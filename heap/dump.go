package heap

import (
	"fmt"

	"github.com/keyheap/keyheap"
)

// dump prints a dot graph of the heap, one rank per layer, with the parent
// links dashed and the metadata keys highlighted.
func dump(t *T) {
	fmt.Println("digraph heap { node[shape=record]; splines=line;")

	color := func(k keyheap.Key) string {
		switch k {
		case t.meta.root:
			return `,color="#ff0000"`
		case t.meta.leftmost:
			return `,color="#0000ff"`
		case t.meta.last:
			return `,color="#00a000"`
		}
		return ""
	}

	if !t.meta.root.Zero() {
		layer := []keyheap.Key{t.meta.root}
		for len(layer) > 0 {
			var next []keyheap.Key

			fmt.Printf("{rank=same ")
			for _, k := range layer {
				fmt.Printf("node%d ", uint32(k))
			}
			fmt.Println("}")

			for _, k := range layer {
				n := t.store.Read(k)
				fmt.Printf("node%d [label=\"%08x|%d\"%s];\n", uint32(k), uint32(k), n.Value, color(k))
				for _, c := range []keyheap.Key{n.Left, n.Right} {
					if c.Zero() {
						continue
					}
					fmt.Printf("node%d -> node%d;\n", uint32(k), uint32(c))
					fmt.Printf(`node%d -> node%d [style="dashed",color="#0000ff20",constraint=false];`+"\n",
						uint32(c), uint32(k))
					next = append(next, c)
				}
			}
			layer = next
		}
	}

	fmt.Printf("label=\"size=%d insert=%v\";\n", t.meta.size, t.meta.insert)
	fmt.Println("}")
}
