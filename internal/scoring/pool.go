package scoring

import (
	"runtime"
	"sync"
)

// WorkerPool fans independent page-scoring jobs out across a fixed set of
// goroutines. Scoring is pure and each job owns its image buffers
// exclusively, so no synchronization beyond the queue is needed.
type WorkerPool struct {
	workers  int
	jobQueue chan func()
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWorkerPool creates a pool with the given number of workers, defaulting
// to the CPU count when workers <= 0.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan func(), workers*2),
	}
}

// Start launches the workers. Safe to call more than once.
func (wp *WorkerPool) Start() {
	wp.once.Do(func() {
		for i := 0; i < wp.workers; i++ {
			go wp.worker()
		}
	})
}

func (wp *WorkerPool) worker() {
	for job := range wp.jobQueue {
		job()
		wp.wg.Done()
	}
}

// Submit queues a job. Blocks when the queue is full.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.jobQueue <- job
}

// Wait blocks until every submitted job has finished.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Close shuts the pool down. No Submit may follow.
func (wp *WorkerPool) Close() {
	close(wp.jobQueue)
}
