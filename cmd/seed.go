package cmd

import (
	"context"
	"fmt"

	"chestnut/internal/seed"
	"chestnut/internal/storage"

	"github.com/spf13/cobra"
)

var flagSeedConfirm bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace stored data with generated demo data",
	Long:  "Overwrite the data file with six weeks of generated purchases. Useful for trying chestnut out.",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&flagSeedConfirm, "confirm", false, "Actually overwrite existing data")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	if !flagSeedConfirm {
		fmt.Printf("  This replaces everything in %s with demo data.\n", cfg.DataPath())
		fmt.Println("  Re-run with --confirm to proceed, or use --seed on any command")
		fmt.Println("  to browse demo data without touching your file.")
		return nil
	}

	backend, err := storage.Open(cfg.Data.Backend, cfg.DataPath())
	if err != nil {
		return err
	}

	data := seed.Generate()
	if err := backend.Save(context.Background(), data); err != nil {
		return err
	}

	fmt.Printf("  Wrote %d weeks of demo data to %s\n", len(data.Weeks), cfg.DataPath())
	return nil
}
