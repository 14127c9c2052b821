package root

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newWalkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "walk <person>",
		Short: "Log a dog walk and restart the countdown",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("person is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			_, walk, cleanup, err := openServices(ctx, stdoutNotifier())
			if err != nil {
				return err
			}
			defer cleanup()

			return walk.CompleteNext(ctx, strings.Join(args, " "))
		},
	}
	return cmd
}
