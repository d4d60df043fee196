package batch

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Task is one file's complete extract-render-persist unit of work.
type Task struct {
	ID     string
	Input  string
	Output string
}

// NewTask pairs an input file with its output location.
func NewTask(input, output string) Task {
	return Task{ID: uuid.NewString(), Input: input, Output: output}
}

// Summary aggregates a finished run.
type Summary struct {
	Total     int
	Processed int
	Failed    []string // input paths of failed tasks, in completion order
}

// failureDisplayCap bounds how many failed paths a summary line lists.
const failureDisplayCap = 10

// FailedList renders the failure list for the summary line, showing at
// most the first ten paths plus a remainder count.
func (s Summary) FailedList() string {
	if len(s.Failed) == 0 {
		return ""
	}
	if len(s.Failed) > failureDisplayCap {
		return fmt.Sprintf("%s (+%d more)",
			strings.Join(s.Failed[:failureDisplayCap], ", "),
			len(s.Failed)-failureDisplayCap)
	}
	return strings.Join(s.Failed, ", ")
}

// Func processes a single task.
type Func func(ctx context.Context, task Task) error

// Run executes every task through fn and aggregates the outcome. With
// parallel set and more than one task, a pool of workers goroutines
// consumes a shared queue and outcomes are collected over a channel;
// otherwise tasks run strictly in submission order. A failing task never
// aborts its siblings.
func Run(ctx context.Context, tasks []Task, parallel bool, workers int, fn Func) Summary {
	sum := Summary{Total: len(tasks)}
	if len(tasks) == 0 {
		return sum
	}

	if !parallel || len(tasks) < 2 {
		for _, task := range tasks {
			if err := safeRun(ctx, task, fn); err != nil {
				sum.Failed = append(sum.Failed, task.Input)
			} else {
				sum.Processed++
			}
		}
		return sum
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}

	type outcome struct {
		task Task
		err  error
	}
	queue := make(chan Task)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for task := range queue {
				outcomes <- outcome{task: task, err: safeRun(ctx, task, fn)}
			}
		}()
	}
	go func() {
		for _, task := range tasks {
			queue <- task
		}
		close(queue)
		wg.Wait()
		close(outcomes)
	}()

	for res := range outcomes {
		if res.err != nil {
			sum.Failed = append(sum.Failed, res.task.Input)
		} else {
			sum.Processed++
		}
	}
	return sum
}

// safeRun converts a panic inside fn into a per-task failure.
func safeRun(ctx context.Context, task Task, fn Func) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("task %s panicked: %v", task.ID, rec)
		}
	}()
	return fn(ctx, task)
}
