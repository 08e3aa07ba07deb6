package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
)

// preloadCmd represents the preload command
var preloadCmd = &cobra.Command{
	Use:   "preload",
	Short: "Warm the 3D assets of the popular cards (aces and face cards)",
	Long: `Preload loads the 3D models of the 16 popular cards (the four aces and
the twelve face cards) in small batches, then reports which of them are
ready. A card whose model is missing or corrupt is reported as 2D only;
that is not an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		a.preload.PreloadPopular(cmd.Context())

		ready := 0
		ids := a.catalog.PopularIDs()
		for _, id := range ids {
			c, err := a.catalog.ByID(id)
			if err != nil {
				return err
			}
			if a.tracker.IsLoaded(id) {
				ready++
				fmt.Printf("  %-4s %-18s %s\n", id, c.DisplayName, colorize.GreenString("3D ready"))
			} else {
				fmt.Printf("  %-4s %-18s %s\n", id, c.DisplayName, colorize.RedString("2D only"))
			}
		}

		fmt.Printf("\n%d of %d popular cards have 3D models ready.\n", ready, len(ids))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(preloadCmd)
}
