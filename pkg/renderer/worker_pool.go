package renderer

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/Arideno/graphics-engine/pkg/core"
)

// PixelTask is a contiguous range of flattened pixel indices [Start, End)
type PixelTask struct {
	Start int
	End   int
}

// PixelFunc evaluates one pixel and writes its own output slot
type PixelFunc func(index int)

// WorkerPool manages parallel pixel evaluation
type WorkerPool struct {
	taskQueue  chan PixelTask
	workers    []*Worker
	numWorkers int
	wg         sync.WaitGroup
	completed  atomic.Int64 // Pixels finished, including failed ones
	failed     atomic.Int64 // Pixels whose evaluation panicked
}

// Worker handles individual pixel range tasks
type Worker struct {
	ID        int
	evaluate  PixelFunc
	taskQueue chan PixelTask
	pool      *WorkerPool // Reference to parent pool for counters
	logger    core.Logger
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers, numTasks int, evaluate PixelFunc, logger core.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:  make(chan PixelTask, numTasks), // Buffer for all tasks
		numWorkers: numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:        i,
			evaluate:  evaluate,
			taskQueue: wp.taskQueue,
			pool:      wp,
			logger:    logger,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for every submitted task to finish and shuts the workers down
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
}

// SubmitTask submits a pixel range to the worker pool
func (wp *WorkerPool) SubmitTask(task PixelTask) {
	wp.taskQueue <- task
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Completed returns the number of pixels evaluated so far. Safe to call
// while the pool is running.
func (wp *WorkerPool) Completed() int64 {
	return wp.completed.Load()
}

// Failed returns the number of pixels whose evaluation panicked
func (wp *WorkerPool) Failed() int64 {
	return wp.failed.Load()
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		for i := task.Start; i < task.End; i++ {
			w.evaluatePixel(i)
			w.pool.completed.Add(1)
		}
	}
}

// evaluatePixel isolates a failing pixel so the rest of the image completes
func (w *Worker) evaluatePixel(index int) {
	defer func() {
		if r := recover(); r != nil {
			w.pool.failed.Add(1)
			if w.logger != nil {
				w.logger.Warningf("worker %d: pixel %d failed: %v", w.ID, index, r)
			}
		}
	}()
	w.evaluate(index)
}
