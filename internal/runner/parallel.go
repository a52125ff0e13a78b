package runner

import (
	"context"
	"sync"
)

// Job is one unit of work identified by its position in the input
type Job func(ctx context.Context, index int) error

// WorkerPool runs indexed jobs with bounded concurrency
type WorkerPool struct {
	maxWorkers int
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(maxWorkers int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		maxWorkers: maxWorkers,
	}
}

// Workers returns the concurrency limit
func (wp *WorkerPool) Workers() int {
	return wp.maxWorkers
}

// Run calls job for every index in [0, n). Jobs store their own results by
// index, so output order never depends on scheduling. After the first failure
// no new jobs start, and the error of the lowest failed index is returned.
func (wp *WorkerPool) Run(ctx context.Context, n int, job Job) error {
	if n == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := wp.maxWorkers
	if workers > n {
		workers = n
	}

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	errs := make([]error, n)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				if ctx.Err() != nil {
					errs[index] = ctx.Err()
					continue
				}
				if err := job(ctx, index); err != nil {
					errs[index] = err
					cancel()
				}
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil && err != context.Canceled {
			return err
		}
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
