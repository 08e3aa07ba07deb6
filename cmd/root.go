package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "deckview",
	Short: "Viewer for a 52-card collection with 2D and 3D assets",
	Long: `Deckview is a command-line client for a standard 52-card collection.
Every card has a raster face image and a binary glTF 3D asset. Deckview tracks
which 3D assets are available, loads them on demand without duplicating work,
warms the popular cards proactively, and evicts stale cache state. When a 3D
asset is missing or corrupt the card falls back to its 2D face.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

var (
	assetDirFlag string
	verbose      bool
)

func init() {
	RootCmd.PersistentFlags().StringVar(&assetDirFlag, "assets", "", "Override the asset directory from the config file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
