package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"deckview/internal/assets"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the 52 cards with their 3D asset status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		for i, c := range a.catalog.AllCards() {
			fmt.Printf("%2d  %-4s %s %-20s %s\n",
				i, c.ID, suitGlyph(c.Suit), c.DisplayName, statusMarker(a.tracker.State(c.ID)))
		}
		return nil
	},
}

func statusMarker(s assets.Status) string {
	switch s {
	case assets.StatusLoaded:
		return colorize.GreenString("3D ready")
	case assets.StatusLoading:
		return colorize.YellowString("loading")
	case assets.StatusFailed:
		return colorize.RedString("2D only")
	default:
		return colorize.HiBlackString("not loaded")
	}
}

func init() {
	RootCmd.AddCommand(listCmd)
}
