package root

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var app string
	var icon string
	var days int
	var assignee string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a recurring task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
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
			_, err = svc.AddTask(ctx, args[0], icon, time.Duration(days)*24*time.Hour, assignee)
			return err
		},
	}

	cmd.Flags().StringVar(&app, "app", "cleaning", "Tracker (cleaning|walk)")
	cmd.Flags().StringVar(&icon, "icon", "", "Task icon (emoji)")
	cmd.Flags().IntVar(&days, "days", 7, "Repeat interval in days")
	cmd.Flags().StringVar(&assignee, "for", "", "Roster member the task starts with")
	return cmd
}
