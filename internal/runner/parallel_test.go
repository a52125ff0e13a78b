package runner

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_PreservesOrder(t *testing.T) {
	const n = 20
	results := make([]int, n)

	err := NewWorkerPool(4).Run(context.Background(), n, func(ctx context.Context, i int) error {
		// Later jobs finish first
		time.Sleep(time.Duration(n-i) * time.Millisecond)
		results[i] = i * i
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for i, v := range results {
		if v != i*i {
			t.Errorf("results[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestWorkerPool_BoundedConcurrency(t *testing.T) {
	var active, peak int32

	err := NewWorkerPool(3).Run(context.Background(), 12, func(ctx context.Context, i int) error {
		cur := atomic.AddInt32(&active, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return nil
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if peak > 3 {
		t.Errorf("peak concurrency %d exceeds 3 workers", peak)
	}
}

func TestWorkerPool_ReturnsFailure(t *testing.T) {
	boom := stderrors.New("boom")

	err := NewWorkerPool(1).Run(context.Background(), 5, func(ctx context.Context, i int) error {
		if i == 2 {
			return fmt.Errorf("job %d: %w", i, boom)
		}
		return nil
	})
	if !stderrors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
}

func TestWorkerPool_MinimumOneWorker(t *testing.T) {
	if NewWorkerPool(0).Workers() != 1 {
		t.Error("worker count should be clamped to 1")
	}
	if err := NewWorkerPool(2).Run(context.Background(), 0, nil); err != nil {
		t.Errorf("Run() with no jobs error = %v", err)
	}
}
