package tablesort_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/krisalay/tablesort"
	"github.com/krisalay/tablesort/column"
	"github.com/krisalay/tablesort/engine"
	"github.com/krisalay/tablesort/logger"
	"github.com/krisalay/tablesort/storage"
	"github.com/krisalay/tablesort/types"
)

func newBenchmarkStorage() *tablesort.ExpiringStorage {
	return tablesort.New(
		storage.NewMemory(),
		engine.NewStorageEngine(engine.WithLogger(logger.NewForTests())),
	)
}

//
// ================= STORAGE =================
//

func BenchmarkStorageGetHit(b *testing.B) {
	ctx := context.Background()
	s := newBenchmarkStorage()
	_ = s.Set(ctx, "sort", map[string]string{"fieldName": "firstName", "order": "asc"}, time.Hour)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Get(ctx, "sort")
	}
}

func BenchmarkStorageGetMiss(b *testing.B) {
	ctx := context.Background()
	s := newBenchmarkStorage()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Get(ctx, fmt.Sprintf("miss-%d", i))
	}
}

func BenchmarkStorageParallelGet(b *testing.B) {
	ctx := context.Background()
	s := newBenchmarkStorage()
	for i := 0; i < 1000; i++ {
		_ = s.Set(ctx, fmt.Sprintf("key-%d", i), i, time.Hour)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			s.Get(ctx, "key-42")
		}
	})
}

func BenchmarkStorageSet(b *testing.B) {
	ctx := context.Background()
	s := newBenchmarkStorage()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Set(ctx, "sort", i, time.Hour)
	}
}

//
// ================= SORTING =================
//

type benchRow map[string]any

func (r benchRow) SortableValue(field string) any { return r[field] }

func benchmarkSort(b *testing.B, dataType string, value func(i int) any) {
	cols, err := column.NewSet(column.Config{Show: "f", DataType: dataType, Sortable: true})
	if err != nil {
		b.Fatal(err)
	}
	cmp, err := cols[0].SortPredicate(types.Asc, cols)
	if err != nil {
		b.Fatal(err)
	}
	src := make([]benchRow, 10000)
	for i := range src {
		src[i] = benchRow{"f": value((i * 7919) % len(src))}
	}
	rows := make([]benchRow, len(src))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(rows, src)
		column.Sort(rows, cmp)
	}
}

func BenchmarkSortNumeric(b *testing.B) {
	benchmarkSort(b, "numeric", func(i int) any { return float64(i) })
}

func BenchmarkSortText(b *testing.B) {
	benchmarkSort(b, "text", func(i int) any { return fmt.Sprintf("name-%05d", i) })
}
