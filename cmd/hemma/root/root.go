package root

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "hemma",
	Short:         "hemma — household chore board and dog tracker",
	Long:          "hemma keeps the weekly chore board, the dog-walk countdown and the feeding checklist in one place, with a shared leaderboard per tracker.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	// Local overrides only; a missing .env is the normal case.
	_ = godotenv.Load()

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newListCmd(),
		newAddCmd(),
		newDoneCmd(),
		newRmCmd(),
		newSetCmd(),
		newWalkCmd(),
		newFeedCmd(),
		newScoresCmd(),
		newPointsCmd(),
		newResetCmd(),
		newBoardCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✖ "+err.Error())
		os.Exit(1)
	}
}
