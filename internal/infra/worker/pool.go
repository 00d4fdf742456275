// File: internal/infra/worker/pool.go
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

type Task func(ctx context.Context) error

var ErrPoolStopped = errors.New("worker pool stopped")

// Pool runs tasks on a fixed set of workers. Tasks submitted with the same key
// always land on the same worker, so they run one at a time in submission order.
type Pool struct {
	wg     sync.WaitGroup
	shards []chan Task
	quit   chan struct{}
	stop   sync.Once
	log    *zerolog.Logger

	// OnError is called after a task fails or panics. Optional.
	OnError func(err error)
}

func NewPool(workers int, logger *zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	shards := make([]chan Task, workers)
	for i := range shards {
		shards[i] = make(chan Task, 16)
	}
	return &Pool{shards: shards, quit: make(chan struct{}), log: logger}
}

func (p *Pool) Start(ctx context.Context) {
	for i, jobs := range p.shards {
		p.wg.Add(1)
		go func(id int, jobs <-chan Task) {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case <-p.quit:
					return
				case task := <-jobs:
					p.run(ctx, id, task)
				}
			}
		}(i+1, jobs)
	}
}

func (p *Pool) run(ctx context.Context, id int, task Task) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("task panic: %v", rec)
			p.log.Error().Int("worker", id).Str("stack", stackTrace()).Err(err).Msg("worker task panicked")
			p.reportError(err)
		}
	}()
	if err := task(ctx); err != nil {
		p.log.Error().Int("worker", id).Err(err).Msg("worker task error")
		p.reportError(err)
	}
}

func (p *Pool) reportError(err error) {
	if p.OnError != nil {
		p.OnError(err)
	}
}

// Stop signals all workers to exit and waits for in-flight tasks.
func (p *Pool) Stop() {
	p.stop.Do(func() { close(p.quit) })
	p.wg.Wait()
}

// Submit queues task on the worker owning key. It blocks while that worker's
// queue is full, until ctx is done or the pool stops.
func (p *Pool) Submit(ctx context.Context, key int64, task Task) error {
	if task == nil {
		return errors.New("nil task")
	}
	select {
	case p.shards[p.shardFor(key)] <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrPoolStopped
	}
}

func (p *Pool) shardFor(key int64) int {
	return int(uint64(key) % uint64(len(p.shards)))
}

func stackTrace() string {
	buf := make([]byte, 4096)
	return string(buf[:runtime.Stack(buf, false)])
}
