package root

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newScoresCmd() *cobra.Command {
	var app string

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show this week's leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			board, walk, cleanup, err := openServices(ctx, nil)
			if err != nil {
				return err
			}
			defer cleanup()

			svc, err := serviceFor(app, board, walk)
			if err != nil {
				return err
			}
			entries, err := svc.Leaderboard(ctx)
			if err != nil {
				return err
			}
			medals := []string{"🥇", "🥈", "🥉"}
			for i, entry := range entries {
				medal := "  "
				if i < len(medals) {
					medal = medals[i]
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d\n", medal, entry.Name, entry.Count)
			}

			if last, ok, err := svc.LastCompleted(ctx); err == nil && ok {
				fmt.Fprintf(cmd.OutOrStdout(), "\nlast: %s by %s, %s\n", last.Display(), last.Actor, humanize.Time(last.At))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&app, "app", "cleaning", "Tracker (cleaning|walk)")
	return cmd
}
