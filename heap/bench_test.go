package heap

import (
	"testing"
	"time"

	"github.com/aclements/go-perfevent/perfbench"
	"github.com/zeebo/mwc"

	"github.com/keyheap/keyheap"
	"github.com/keyheap/keyheap/testhelp"
)

func BenchmarkInsertPop(b *testing.B) {
	run := func(b *testing.B, n int) {
		rng := mwc.Rand()
		keys := testhelp.Keys(n)

		perfbench.Open(b)
		b.ReportAllocs()

		now := time.Now()
		for i := 0; i < b.N; i++ {
			var h T
			for _, k := range keys {
				_ = h.Insert(k, keyheap.Value(rng.Uint64n(1<<32)))
			}
			for range keys {
				_, _ = h.Pop()
			}
		}
		b.ReportMetric(float64(time.Since(now))/float64(n)/float64(b.N), "ns/key")
		b.ReportMetric(float64(n)*float64(b.N)/time.Since(now).Seconds(), "keys/sec")
	}

	b.Run("1e2", func(b *testing.B) { run(b, 1e2) })
	b.Run("1e3", func(b *testing.B) { run(b, 1e3) })
	b.Run("1e4", func(b *testing.B) { run(b, 1e4) })
	b.Run("1e5", func(b *testing.B) { run(b, 1e5) })
}

func BenchmarkUpdate(b *testing.B) {
	run := func(b *testing.B, n int) {
		rng := mwc.Rand()

		var h T
		for _, k := range testhelp.Keys(n) {
			_ = h.Insert(k, keyheap.Value(rng.Uint64n(1<<32)))
		}

		perfbench.Open(b)
		b.ReportAllocs()

		now := time.Now()
		for i := 0; i < b.N; i++ {
			k := keyheap.Key(rng.Uint64n(uint64(n)) + 1)
			_ = h.Update(k, keyheap.Value(rng.Uint64n(1<<32)))
		}
		b.ReportMetric(float64(time.Since(now))/float64(b.N), "ns/update")
	}

	b.Run("1e3", func(b *testing.B) { run(b, 1e3) })
	b.Run("1e5", func(b *testing.B) { run(b, 1e5) })
}
