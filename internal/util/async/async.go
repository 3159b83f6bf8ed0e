package async

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes tasks with at most limit running at once (limit < 1
// means unbounded) and waits for all of them. A failing task does not cancel
// the others. The returned error joins every task failure in task order,
// each prefixed with the task name.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "cluster/c1", Func: reconcileC1},
//	    {Name: "user/app", Func: reconcileApp},
//	}
//	if err := RunParallel(ctx, 4, tasks); err != nil {
//	    return err
//	}
func RunParallel(ctx context.Context, limit int, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	errs := make([]error, len(tasks))
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = fmt.Errorf("%s: %w", task.Name, err)
				return nil
			}
			if err := task.Func(ctx); err != nil {
				errs[i] = fmt.Errorf("%s: %w", task.Name, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
