package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultWorkerCount = 5
	DefaultTaskTimeout = 30 * time.Second
)

// Pool runs a batch of tasks on a fixed number of workers. It keeps no
// state between batches, so one Pool may serve concurrent callers.
type Pool struct {
	workerCount int
	taskTimeout time.Duration
}

func NewPool(workerCount int, taskTimeout time.Duration) *Pool {
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}
	if taskTimeout <= 0 {
		taskTimeout = DefaultTaskTimeout
	}
	return &Pool{
		workerCount: workerCount,
		taskTimeout: taskTimeout,
	}
}

func (p *Pool) WorkerCount() int {
	return p.workerCount
}

// Run calls fn exactly once for every index in [0, n) and returns after all
// calls finished. At most WorkerCount calls run at the same time. Each call
// gets a context bounded by the task timeout and derived from ctx, so a
// cancelled ctx makes the remaining calls fail fast instead of being skipped.
func (p *Pool) Run(ctx context.Context, taskType TaskType, n int, fn func(ctx context.Context, task Task)) {
	if n <= 0 {
		return
	}

	workers := min(p.workerCount, n)
	taskQueue := make(chan Task, n)
	for i := 0; i < n; i++ {
		taskQueue <- NewTask(taskType, i)
	}
	close(taskQueue)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go p.worker(ctx, i, taskQueue, fn, &wg)
	}
	wg.Wait()
}

func (p *Pool) worker(ctx context.Context, id int, taskQueue <-chan Task, fn func(context.Context, Task), wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range taskQueue {
		p.executeTask(ctx, id, task, fn)
	}
}

func (p *Pool) executeTask(ctx context.Context, workerID int, task Task, fn func(context.Context, Task)) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(ctx, p.taskTimeout)
	defer cancel()

	fn(taskCtx, task)

	slog.Debug("Task completed",
		"worker_id", workerID,
		"type", string(task.Type),
		"id", task.ID,
		"index", task.Index,
		"duration", task.GetDuration())
}

// Map runs fn over items on the pool and returns the outputs in input order.
func Map[T, R any](ctx context.Context, p *Pool, taskType TaskType, items []T, fn func(ctx context.Context, index int, item T) R) []R {
	out := make([]R, len(items))
	p.Run(ctx, taskType, len(items), func(ctx context.Context, task Task) {
		out[task.Index] = fn(ctx, task.Index, items[task.Index])
	})
	return out
}
