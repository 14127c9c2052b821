package root

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	var app string
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear a tracker's leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("this clears the whole leaderboard; re-run with --yes to confirm")
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
			return svc.ResetScores(ctx)
		},
	}

	cmd.Flags().StringVar(&app, "app", "cleaning", "Tracker (cleaning|walk)")
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	return cmd
}
