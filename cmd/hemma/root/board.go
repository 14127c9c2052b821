package root

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"hemma/internal/tracker"
	"hemma/internal/update"
	"hemma/internal/weather"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// Tracker notices surface in the TUI status bar instead of
			// stdout. The buffer absorbs bursts; overflow is dropped.
			notices := make(chan string, 16)
			notifier := tracker.NotifierFunc(func(message string) {
				select {
				case notices <- message:
				default:
				}
			})

			board, walk, cleanup, err := openServices(ctx, notifier)
			if err != nil {
				return err
			}
			defer cleanup()

			model := update.NewModel(update.Deps{
				Board:    board,
				Walk:     walk,
				Weather:  weather.NewClient(4 * time.Second),
				Location: locationFromEnv(),
				Notices:  notices,
			})
			program := tea.NewProgram(model)
			_, err = program.Run()
			return err
		},
	}
	return cmd
}
