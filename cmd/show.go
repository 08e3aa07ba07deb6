package cmd

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/term"

	"deckview/internal/card"

	colorize "github.com/fatih/color" // Rename this import to avoid the conflict
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display a card with ANSI art and its 3D asset status",
	Long: `Show renders a card's face image as ANSI terminal art and reports whether
its 3D model is available. Card IDs are a suit letter (c, d, h, s) followed
by a rank code (a, 2-10, j, q, k).

Loading the 3D model also warms the neighboring cards in the background,
since those are the ones most likely to be viewed next.

Examples:
  deckview show ha
  deckview show d10
  deckview show --no-art sk`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID := args[0]

		a, err := newApp()
		if err != nil {
			return err
		}

		c, err := a.catalog.ByID(cardID)
		if err != nil {
			return err
		}

		modelOK, err := a.tracker.EnsureLoaded(cmd.Context(), c.ID)
		if err != nil {
			return err
		}

		var art string
		if noArt, _ := cmd.Flags().GetBool("no-art"); !noArt {
			// Missing or undecodable image: fall back to text-only output.
			art, _ = renderCardArt(assetFilePath(a.assetDir, c.ImagePath))
		}

		idx, _ := a.catalog.IndexOf(c.ID)
		displayCard(c, idx, art, modelOK)

		// Warm the cards most likely to be viewed next.
		a.preload.PredictiveLoad(c.ID)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("no-art", false, "Skip rendering the card face as ANSI art")
}

const (
	artWidth  = 22
	artHeight = 16
)

// renderCardArt converts the card's face image into ANSI art.
func renderCardArt(imagePath string) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}

	return imageToAnsi(img, artWidth, artHeight), nil
}

// imageToAnsi renders an image as truecolor half-block characters,
// two image rows per terminal row.
func imageToAnsi(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width; x++ {
			top := pixelAt(resized, x, y)
			bottom := pixelAt(resized, x, y+1)
			buffer.WriteString(halfBlock(top, bottom))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

// pixelAt returns the color at (x, y), black when out of bounds.
func pixelAt(img image.Image, x, y int) colorful.Color {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return colorful.Color{}
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		// Fully transparent pixel.
		return colorful.Color{}
	}
	return c
}

// halfBlock renders one terminal cell: the upper half block with the
// top pixel as foreground and the bottom pixel as background.
func halfBlock(top, bottom colorful.Color) string {
	fr, fg, fb := rgb255(top)
	br, bg, bb := rgb255(bottom)
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀\x1b[0m",
		fr, fg, fb, br, bg, bb)
}

func rgb255(c colorful.Color) (uint8, uint8, uint8) {
	clamped := c.Clamped()
	return uint8(clamped.R * 255), uint8(clamped.G * 255), uint8(clamped.B * 255)
}

// suitGlyph returns the unicode symbol for a suit.
func suitGlyph(s card.Suit) string {
	switch s {
	case card.Clubs:
		return "♣"
	case card.Diamonds:
		return colorize.RedString("♦")
	case card.Hearts:
		return colorize.RedString("♥")
	case card.Spades:
		return "♠"
	default:
		return "•"
	}
}

// displayCard prints the ANSI art on the left and card info on the right.
func displayCard(c card.Card, index int, art string, modelOK bool) {
	artLines := []string{}
	maxArtWidth := 0
	if art != "" {
		artLines = strings.Split(strings.TrimRight(art, "\n"), "\n")
		for _, line := range artLines {
			if w := visibleWidth(line); w > maxArtWidth {
				maxArtWidth = w
			}
		}
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80 // Default if we can't get terminal width
	}

	var infoLines []string
	infoLines = append(infoLines, colorize.CyanString("Card:  ")+colorize.HiWhiteString("%s %s", c.DisplayName, suitGlyph(c.Suit)))
	infoLines = append(infoLines, colorize.CyanString("ID:    ")+colorize.HiWhiteString(c.ID))
	infoLines = append(infoLines, colorize.CyanString("Suit:  ")+colorize.HiWhiteString(c.Suit.Name()))
	infoLines = append(infoLines, colorize.CyanString("Rank:  ")+colorize.HiWhiteString(c.Rank.Name()))
	infoLines = append(infoLines, colorize.CyanString("Index: ")+colorize.HiWhiteString("%d", index))
	infoLines = append(infoLines, "")
	if modelOK {
		infoLines = append(infoLines, colorize.CyanString("3D:    ")+colorize.GreenString("model ready (%s)", c.ModelPath))
	} else {
		infoLines = append(infoLines, colorize.CyanString("3D:    ")+colorize.RedString("model unavailable, showing 2D face"))
		infoLines = append(infoLines, colorize.HiBlackString("       run 'deckview show %s' again to retry", c.ID))
	}

	spacing := 4
	infoStartCol := maxArtWidth + spacing
	if infoStartCol+20 > width {
		// Terminal too narrow for side-by-side layout; stack instead.
		fmt.Println()
		for _, line := range artLines {
			fmt.Println("  " + line)
		}
		for _, line := range infoLines {
			fmt.Println("  " + line)
		}
		fmt.Println()
		return
	}

	fmt.Println()
	maxLines := max(len(artLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(artLines) {
			fmt.Print(artLines[i])
			fmt.Print(strings.Repeat(" ", infoStartCol-visibleWidth(artLines[i])))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}
		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}
		fmt.Println()
	}
	fmt.Println()
}

// visibleWidth is the on-screen width of a line, ignoring escape codes.
func visibleWidth(line string) int {
	return utf8.RuneCountInString(stripAnsi(line))
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
