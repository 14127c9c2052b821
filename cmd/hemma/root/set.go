package root

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newSetCmd() *cobra.Command {
	var app string
	var days int
	var assignee string

	cmd := &cobra.Command{
		Use:   "set <task>",
		Short: "Change a task's interval or assignee",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("task name or id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if days == 0 && assignee == "" {
				return errors.New("nothing to change (use --days and/or --for)")
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
			if days != 0 {
				if err := svc.UpdateInterval(ctx, task.ID, time.Duration(days)*24*time.Hour); err != nil {
					return err
				}
			}
			if assignee != "" {
				if err := svc.UpdateAssignee(ctx, task.ID, assignee); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&app, "app", "cleaning", "Tracker (cleaning|walk)")
	cmd.Flags().IntVar(&days, "days", 0, "New repeat interval in days (1-30)")
	cmd.Flags().StringVar(&assignee, "for", "", "New roster member")
	return cmd
}
