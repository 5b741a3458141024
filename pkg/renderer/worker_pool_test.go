package renderer

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPool_EvaluatesEveryIndexOnce(t *testing.T) {
	const total = 1000
	counts := make([]int32, total)

	pool := NewWorkerPool(4, total/64+1, func(index int) {
		atomic.AddInt32(&counts[index], 1)
	}, nil)
	pool.Start()
	for start := 0; start < total; start += 64 {
		pool.SubmitTask(PixelTask{Start: start, End: min(start+64, total)})
	}
	pool.Stop()

	for i, c := range counts {
		if c != 1 {
			t.Fatalf("Index %d evaluated %d times", i, c)
		}
	}
	if pool.Completed() != total {
		t.Errorf("Expected %d completed, got %d", total, pool.Completed())
	}
	if pool.Failed() != 0 {
		t.Errorf("Expected no failures, got %d", pool.Failed())
	}
}

func TestWorkerPool_RecoversPanics(t *testing.T) {
	pool := NewWorkerPool(2, 1, func(index int) {
		if index%10 == 0 {
			panic("boom")
		}
	}, nil)
	pool.Start()
	pool.SubmitTask(PixelTask{Start: 0, End: 100})
	pool.Stop()

	if pool.Failed() != 10 {
		t.Errorf("Expected 10 failures, got %d", pool.Failed())
	}
	if pool.Completed() != 100 {
		t.Errorf("Expected 100 completed, got %d", pool.Completed())
	}
}

func TestWorkerPool_DefaultWorkers(t *testing.T) {
	pool := NewWorkerPool(0, 0, func(int) {}, nil)
	if pool.GetNumWorkers() <= 0 {
		t.Errorf("Expected CPU count workers, got %d", pool.GetNumWorkers())
	}
	pool.Start()
	pool.Stop()
}
