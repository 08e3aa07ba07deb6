package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"deckview/internal/quiz"
)

// quizCmd represents the quiz command
var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Play a name-the-card quiz",
	Long: `Quiz shows card faces and asks you to pick the right name from four
options. Answer with a, b, c or d.

Examples:
  deckview quiz
  deckview quiz -n 10
  deckview quiz --seed 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("questions")
		seed, _ := cmd.Flags().GetUint64("seed")
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}

		gen := quiz.NewGenerator(a.catalog, seed)
		session, err := gen.NewSession(count)
		if err != nil {
			return err
		}

		scanner := bufio.NewScanner(os.Stdin)
		for i, q := range session.Questions {
			fmt.Printf("\nQuestion %d of %d: which card is this?\n", i+1, len(session.Questions))

			if art, err := renderCardArt(assetFilePath(a.assetDir, q.Card.ImagePath)); err == nil {
				for _, line := range strings.Split(strings.TrimRight(art, "\n"), "\n") {
					fmt.Println("  " + line)
				}
			} else {
				// No renderable face; fall back to the card ID as the clue.
				fmt.Printf("  (card ID: %s)\n", q.Card.ID)
			}

			for j, option := range q.Options {
				fmt.Printf("  %c) %s\n", 'a'+j, option)
			}

			choice := readChoice(scanner, len(q.Options))
			if choice < 0 {
				fmt.Println("\nQuiz abandoned.")
				break
			}

			if session.Grade(i, choice) {
				fmt.Println(colorize.GreenString("Correct!"))
			} else {
				fmt.Println(colorize.RedString("Wrong, it was %s.", q.Options[q.Answer]))
			}
		}

		correct, answered := session.Score()
		fmt.Printf("\nSession %s: %d of %d correct.\n", session.ID, correct, answered)
		return nil
	},
}

// readChoice reads one of the option letters, or -1 on EOF/quit.
func readChoice(scanner *bufio.Scanner, options int) int {
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return -1
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer == "q" || answer == "quit" {
			return -1
		}
		if len(answer) == 1 {
			if c := int(answer[0] - 'a'); c >= 0 && c < options {
				return c
			}
		}
		fmt.Printf("Answer a-%c (or q to quit).\n", 'a'+options-1)
	}
}

func init() {
	RootCmd.AddCommand(quizCmd)

	quizCmd.Flags().IntP("questions", "n", 5, "Number of questions in the session")
	quizCmd.Flags().Uint64("seed", 0, "Random seed for a reproducible session (0 = time-based)")
}
