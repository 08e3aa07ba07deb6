package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"deckview/internal/assets"
)

// browseCmd represents the browse command: the interactive viewer loop
// that the one-shot commands are a slice of.
var browseCmd = &cobra.Command{
	Use:   "browse [card_id]",
	Short: "Browse the collection interactively",
	Long: `Browse steps through the 52 cards. Viewing a card loads its 3D model on
demand and warms its neighbors in the background. The session keeps the
availability cache alive, so 'sweep' and 'clear' act on real state here.

Keys:
  n, p        next / previous card
  g <id>      jump to a card by ID
  r           retry loading the current card's 3D model
  s           list cached entries and their status
  sweep       evict entries older than the configured max age
  clear       drop all cached state
  q           quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		index := 0
		if len(args) == 1 {
			if index, err = a.catalog.IndexOf(args[0]); err != nil {
				return err
			}
		}

		showCurrent := func() {
			c, err := a.catalog.ByIndex(index)
			if err != nil {
				return
			}
			ok, _ := a.tracker.EnsureLoaded(cmd.Context(), c.ID)
			art, _ := renderCardArt(assetFilePath(a.assetDir, c.ImagePath))
			displayCard(c, index, art, ok)
			a.preload.PredictiveLoad(c.ID)
		}

		showCurrent()

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("deckview> ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			input := strings.Fields(strings.TrimSpace(scanner.Text()))
			if len(input) == 0 {
				continue
			}

			switch input[0] {
			case "n", "next":
				if index < a.catalog.Len()-1 {
					index++
				}
				showCurrent()
			case "p", "prev":
				if index > 0 {
					index--
				}
				showCurrent()
			case "g", "goto":
				if len(input) < 2 {
					fmt.Println("usage: g <card_id>")
					continue
				}
				i, err := a.catalog.IndexOf(input[1])
				if err != nil {
					fmt.Println(err)
					continue
				}
				index = i
				showCurrent()
			case "r", "retry":
				showCurrent()
			case "s", "status":
				printCacheStatus(a)
			case "sweep":
				evicted := a.tracker.Sweep(a.cfg.MaxAge())
				fmt.Printf("Evicted %d stale entries.\n", evicted)
			case "clear":
				a.tracker.Clear()
				fmt.Println("Cache cleared.")
			case "q", "quit", "exit":
				return nil
			default:
				fmt.Println("Commands: n, p, g <id>, r, s, sweep, clear, q")
			}
		}
	},
}

func printCacheStatus(a *app) {
	tracked := 0
	for _, c := range a.catalog.AllCards() {
		st := a.tracker.State(c.ID)
		if st == assets.StatusNotLoaded {
			continue
		}
		tracked++
		line := fmt.Sprintf("  %-4s %-20s %s", c.ID, c.DisplayName, statusMarker(st))
		if p := a.tracker.Progress(c.ID); p > 0 && p < 1 {
			line += colorize.HiBlackString(" (%.0f%%)", p*100)
		}
		fmt.Println(line)
	}
	if tracked == 0 {
		fmt.Println("No cached entries.")
	}
}

func init() {
	RootCmd.AddCommand(browseCmd)
}
