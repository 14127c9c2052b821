package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newPointsCmd() *cobra.Command {
	var app string

	cmd := &cobra.Command{
		Use:   "points <person> <+1|-1>",
		Short: "Adjust a member's leaderboard score",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("person and +1 or -1 are required")
			}
			if args[1] != "+1" && args[1] != "-1" {
				return fmt.Errorf("invalid adjustment %q (use +1 or -1)", args[1])
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
			delta := 1
			if args[1] == "-1" {
				delta = -1
			}
			return svc.AdjustPoints(ctx, args[0], delta)
		},
	}

	cmd.Flags().StringVar(&app, "app", "cleaning", "Tracker (cleaning|walk)")
	return cmd
}
