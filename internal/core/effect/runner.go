package effect

import (
	"context"
	"sync"
	"time"

	"github.com/niksmo/storefront/internal/core/intent"
)

// A Dispatcher is the part of the store the effects depend on.
type Dispatcher interface {
	Dispatch(ins ...intent.Intent)

	// Hold marks asynchronous work as in flight until release is called.
	Hold() (release func())
}

// A Task is an asynchronous unit of work. The returned intents are
// dispatched in order once the task completes.
type Task func(ctx context.Context) []intent.Intent

// A Runner schedules tasks. Submit never blocks, so it is safe to call from
// a store listener.
type Runner interface {
	Submit(Task)
	Close()
}

type runnerBase struct {
	d      Dispatcher
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (r *runnerBase) init(ctx context.Context, d Dispatcher) {
	if d == nil {
		panic("effect: nil dispatcher (develop mistake)")
	}
	r.d = d
	r.ctx, r.cancel = context.WithCancel(ctx)
}

func (r *runnerBase) run(ctx context.Context, task Task, release func()) {
	defer release()
	out := task(ctx)
	if len(out) != 0 && ctx.Err() == nil {
		r.d.Dispatch(out...)
	}
}

// Close cancels pending tasks and waits for the running ones.
func (r *runnerBase) Close() {
	r.cancel()
	r.wg.Wait()
}

// A MergeRunner runs every task in its own goroutine.
type MergeRunner struct {
	runnerBase
}

func NewMergeRunner(ctx context.Context, d Dispatcher) *MergeRunner {
	r := new(MergeRunner)
	r.init(ctx, d)
	return r
}

func (r *MergeRunner) Submit(task Task) {
	release := r.d.Hold()
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(r.ctx, task, release)
	}()
}

// A ConcatRunner runs tasks one after another in submission order.
type ConcatRunner struct {
	runnerBase

	mu      sync.Mutex
	queue   []queued
	running bool
}

type queued struct {
	task    Task
	release func()
}

func NewConcatRunner(ctx context.Context, d Dispatcher) *ConcatRunner {
	r := new(ConcatRunner)
	r.init(ctx, d)
	return r
}

func (r *ConcatRunner) Submit(task Task) {
	release := r.d.Hold()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, queued{task, release})
	if r.running {
		return
	}
	r.running = true
	r.wg.Add(1)
	go r.drain()
}

func (r *ConcatRunner) drain() {
	defer r.wg.Done()
	for {
		r.mu.Lock()
		if len(r.queue) == 0 {
			r.running = false
			r.mu.Unlock()
			return
		}
		q := r.queue[0]
		r.queue = r.queue[1:]
		r.mu.Unlock()

		r.run(r.ctx, q.task, q.release)
	}
}

// A LatestRunner runs the latest task only: submitting a task cancels the
// running one and drops its result.
type LatestRunner struct {
	runnerBase

	mu         sync.Mutex
	gen        uint64
	cancelPrev context.CancelFunc
}

func NewLatestRunner(ctx context.Context, d Dispatcher) *LatestRunner {
	r := new(LatestRunner)
	r.init(ctx, d)
	return r
}

func (r *LatestRunner) Submit(task Task) {
	release := r.d.Hold()

	r.mu.Lock()
	if r.cancelPrev != nil {
		r.cancelPrev()
	}
	ctx, cancel := context.WithCancel(r.ctx)
	r.cancelPrev = cancel
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		defer release()

		out := task(ctx)

		r.mu.Lock()
		latest := gen == r.gen
		r.mu.Unlock()
		if latest && len(out) != 0 && ctx.Err() == nil {
			r.d.Dispatch(out...)
		}
	}()
}

// A DebounceRunner passes a task on to the next runner once no other task
// has been submitted for the quiescence window. Tasks carry a key: a task
// whose key equals the key of the previously passed task is dropped, and so
// is a task with an empty key.
type DebounceRunner struct {
	d      Dispatcher
	next   Runner
	window time.Duration

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	release func()
	lastKey string
	passed  bool
}

func NewDebounceRunner(d Dispatcher, window time.Duration, next Runner) *DebounceRunner {
	if d == nil || next == nil {
		panic("effect: nil dispatcher or next runner (develop mistake)")
	}
	return &DebounceRunner{d: d, next: next, window: window}
}

// Submit is a key-less variant of SubmitKey. Every task that survives the
// window is passed on.
func (r *DebounceRunner) Submit(task Task) {
	r.submit("", false, task)
}

func (r *DebounceRunner) SubmitKey(key string, task Task) {
	r.submit(key, true, task)
}

func (r *DebounceRunner) submit(key string, keyed bool, task Task) {
	release := r.d.Hold()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil && r.timer.Stop() {
		r.release()
	}
	r.gen++
	gen := r.gen
	r.release = release
	r.timer = time.AfterFunc(r.window, func() {
		defer release()
		r.fire(gen, key, keyed, task)
	})
}

func (r *DebounceRunner) fire(gen uint64, key string, keyed bool, task Task) {
	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.timer = nil
	if keyed {
		if r.passed && key == r.lastKey {
			r.mu.Unlock()
			return
		}
		r.lastKey, r.passed = key, true
		if key == "" {
			r.mu.Unlock()
			return
		}
	}
	r.mu.Unlock()

	r.next.Submit(task)
}

// Close stops a pending timer. The next runner is closed by its owner.
func (r *DebounceRunner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if r.timer != nil && r.timer.Stop() {
		r.release()
	}
	r.timer = nil
}
