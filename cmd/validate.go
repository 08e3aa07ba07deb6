package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deckview/internal/assets"
	"deckview/internal/catalog"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [asset_dir]",
	Short: "Validate a card asset directory",
	Long: `Validate checks that an asset directory holds a face image and a 3D model
for every one of the 52 cards, and that each model is a binary glTF
container. Without an argument the configured asset directory is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var assetDir string
		if len(args) == 1 {
			assetDir = args[0]
		} else {
			a, err := newApp()
			if err != nil {
				return err
			}
			assetDir = a.assetDir
		}

		if _, err := os.Stat(assetDir); os.IsNotExist(err) {
			return fmt.Errorf("asset directory not found: %s", assetDir)
		}

		results := validateAssetDir(cmd.Context(), assetDir)

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Asset directory '%s' holds a complete 52-card set.\n", assetDir)
		} else {
			fmt.Printf("❌ Asset directory '%s' has %d problems:\n", assetDir, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

type validationResults struct {
	Errors   []string
	Warnings []string
}

// validateAssetDir checks every card's face image and 3D model under
// assetDir. The model check mirrors the tracker's fetch-and-validate:
// a loadable model is exactly one the tracker would accept.
func validateAssetDir(ctx context.Context, assetDir string) validationResults {
	var results validationResults

	store := assets.NewDirStore(assetDir)
	cat := catalog.New()
	tracker := assets.NewTracker(store, cat, nil)

	for _, c := range cat.AllCards() {
		imagePath := assetFilePath(assetDir, c.ImagePath)
		if info, err := os.Stat(imagePath); os.IsNotExist(err) {
			results.Errors = append(results.Errors,
				fmt.Sprintf("missing face image for %s: %s", c.ID, c.ImagePath))
		} else if err == nil && info.Size() == 0 {
			results.Errors = append(results.Errors,
				fmt.Sprintf("empty face image for %s: %s", c.ID, c.ImagePath))
		}

		ok, err := tracker.EnsureLoaded(ctx, c.ID)
		if err != nil {
			// Catalog IDs are the closed 52-card set; this cannot happen.
			continue
		}
		if !ok {
			if _, statErr := os.Stat(assetFilePath(assetDir, c.ModelPath)); os.IsNotExist(statErr) {
				results.Warnings = append(results.Warnings,
					fmt.Sprintf("missing 3D model for %s: %s (card will show 2D only)", c.ID, c.ModelPath))
			} else {
				results.Errors = append(results.Errors,
					fmt.Sprintf("invalid 3D model for %s: %s (empty or not binary glTF)", c.ID, c.ModelPath))
			}
		}
	}

	return results
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
