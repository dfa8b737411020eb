package snowflake

import (
	"sync"
	"testing"
)

func TestGenID(t *testing.T) {
	id := GenID()
	if id <= 0 {
		t.Fatalf("expected id > 0, got %d", id)
	}

	t.Logf("generated id: %d", id)
}

// 单线程唯一性
func TestGenID_Unique(t *testing.T) {
	const n = 10000
	ids := make(map[int64]struct{}, n)

	for i := 0; i < n; i++ {
		id := GenID()
		if _, exists := ids[id]; exists {
			t.Fatalf("duplicate id found: %d", id)
		}
		ids[id] = struct{}{}
	}
}

// 多 goroutine 并发生成
func TestGenID_Concurrent(t *testing.T) {
	const (
		goroutines = 20
		perRoutine = 5000
		total      = goroutines * perRoutine
	)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ids  = make(map[int64]struct{}, total)
		dups int
	)

	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perRoutine; i++ {
				id := GenID()

				mu.Lock()
				if _, exists := ids[id]; exists {
					dups++
				}
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	if dups > 0 {
		t.Fatalf("duplicate ids found in concurrent test: %d", dups)
	}
}

// 同一节点上 ID 单调递增
func TestGenID_Order(t *testing.T) {
	prev := GenID()

	for i := 0; i < 1000; i++ {
		curr := GenID()
		if curr <= prev {
			t.Fatalf("ids not increasing: prev=%d curr=%d", prev, curr)
		}
		prev = curr
	}
}

func TestSetNode(t *testing.T) {
	if err := SetNode(1024); err == nil {
		t.Fatal("expected error for node out of range")
	}
	if err := SetNode(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer SetNode(1)

	if id := GenID(); id <= 0 {
		t.Fatalf("expected id > 0, got %d", id)
	}
}
