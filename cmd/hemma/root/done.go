package root

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newDoneCmd() *cobra.Command {
	var app string
	var by string

	cmd := &cobra.Command{
		Use:   "done <task>",
		Short: "Mark a task finished and reschedule it",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("task name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if by == "" {
				return errors.New("--by is required")
			}
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
			return svc.Complete(ctx, task.ID, by)
		},
	}

	cmd.Flags().StringVar(&app, "app", "cleaning", "Tracker (cleaning|walk)")
	cmd.Flags().StringVar(&by, "by", "", "Roster member who did it")
	return cmd
}
