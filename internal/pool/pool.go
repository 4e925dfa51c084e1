// Package pool runs independent tasks through a bounded worker pool.
//
// Each task is one external-process invocation (one file, one agent run).
// At most limit tasks run at once; admission is FIFO in slice order and the
// caller blocks until every task reaches a terminal status. A failing task
// never aborts its siblings.
package pool

import (
	"context"
	"sync"
)

// Status is the lifecycle state of a task.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task is one unit of work: one file and one child-process invocation.
type Task struct {
	File   string
	Prompt string

	mu     sync.Mutex
	status Status
	output string
	err    error
}

// NewTask creates a pending task.
func NewTask(file, prompt string) *Task {
	return &Task{File: file, Prompt: prompt}
}

// Status returns the task's current status.
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Output returns the captured combined output of the child process.
func (t *Task) Output() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.output
}

// Err returns the task's failure cause, nil when it succeeded.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Reset returns a terminal task to pending so it can be run again.
func (t *Task) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusPending
	t.output = ""
	t.err = nil
}

func (t *Task) start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusRunning
}

func (t *Task) finish(output []byte, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.output = string(output)
	t.err = err
	if err != nil {
		t.status = StatusFailed
	} else {
		t.status = StatusSucceeded
	}
}

// Runner executes one task's child process and returns its combined output.
// A nil error means the process exited zero.
type Runner func(ctx context.Context, t *Task) ([]byte, error)

// Summary aggregates the outcome of one Run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	// FailedTasks lists failed tasks in admission order.
	FailedTasks []*Task
}

// Run executes the tasks with at most limit concurrent runner invocations
// and blocks until all have completed. onDone, if non-nil, is called exactly
// once per task after it reaches a terminal status; calls are serialized.
//
// When ctx is cancelled, tasks not yet admitted fail with ctx.Err() without
// running; in-flight children are cancelled through ctx.
func Run(ctx context.Context, tasks []*Task, limit int, run Runner, onDone func(*Task)) Summary {
	if limit < 1 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	var doneMu sync.Mutex

	report := func(t *Task) {
		if onDone == nil {
			return
		}
		doneMu.Lock()
		defer doneMu.Unlock()
		onDone(t)
	}

	for _, t := range tasks {
		// FIFO admission: block here until a slot frees.
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			t.finish(nil, ctx.Err())
			report(t)
			continue
		}

		wg.Add(1)
		go func(t *Task) {
			defer wg.Done()
			defer func() { <-sem }()

			t.start()
			output, err := run(ctx, t)
			t.finish(output, err)
			report(t)
		}(t)
	}

	wg.Wait()

	return Summarize(tasks)
}

// Summarize builds a Summary from the tasks' terminal statuses.
func Summarize(tasks []*Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status() {
		case StatusFailed:
			s.Failed++
			s.FailedTasks = append(s.FailedTasks, t)
		case StatusSucceeded:
			s.Succeeded++
		}
	}
	return s
}
