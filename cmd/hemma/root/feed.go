package root

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"hemma/internal/model"
)

func newFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed <morning|evening>",
		Short: "Toggle a feeding slot for today",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("meal slot is required (morning or evening)")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := model.ParseMealSlot(args[0])
			if err != nil {
				return err
			}

			ctx := context.Background()
			_, walk, cleanup, err := openServices(ctx, stdoutNotifier())
			if err != nil {
				return err
			}
			defer cleanup()

			_, err = walk.ToggleFeeding(ctx, slot)
			return err
		},
	}
	return cmd
}
