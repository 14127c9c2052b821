package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hemma/internal/model"
	"hemma/internal/tracker"
)

func newRmCmd() *cobra.Command {
	var app string

	cmd := &cobra.Command{
		Use:   "rm <task>",
		Short: "Remove a task permanently",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("task name or id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, walk, cleanup, err := openServices(ctx, stdoutNotifier())
			if err != nil {
				return err
			}
			defer cleanup()

			svc, err := serviceFor(app, board, walk)
			if err != nil {
				return err
			}
			task, err := findTask(ctx, svc, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return svc.RemoveTask(ctx, task.ID)
		},
	}

	cmd.Flags().StringVar(&app, "app", "cleaning", "Tracker (cleaning|walk)")
	return cmd
}

// findTask resolves a CLI argument to a task by exact id or
// case-insensitive name.
func findTask(ctx context.Context, svc *tracker.Service, name string) (model.RecurringTask, error) {
	tasks, err := svc.Tasks(ctx)
	if err != nil {
		return model.RecurringTask{}, err
	}
	for _, t := range tasks {
		if t.ID == name || strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return model.RecurringTask{}, fmt.Errorf("no task named %q", name)
}
