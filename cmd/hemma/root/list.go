package root

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"hemma/internal/model"
)

func newListCmd() *cobra.Command {
	var app string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks due this week",
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
			statuses, err := svc.Upcoming(ctx)
			if err != nil {
				return err
			}
			if len(statuses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing due this week 🎉")
				return nil
			}
			for _, st := range statuses {
				marker := " "
				switch st.Urgency {
				case model.UrgencyOverdue:
					marker = "!"
				case model.UrgencyImminent, model.UrgencyApproaching:
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s — %s (%s)  [%s]\n",
					marker, st.Icon, st.Name, humanize.Time(st.NextDue), st.Assignee, st.ID[:8])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&app, "app", "cleaning", "Tracker (cleaning|walk)")
	return cmd
}
