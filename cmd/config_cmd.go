package cmd

import (
	"fmt"

	"chestnut/internal/config"
	"chestnut/internal/money"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Use seed data: %v\n", cfg.General.UseSeedData)
	fmt.Println()

	fmt.Println("  [Data]")
	fmt.Printf("    Backend: %s\n", cfg.Data.Backend)
	fmt.Printf("    Path:    %s\n", cfg.DataPath())
	fmt.Println()

	fmt.Println("  [Budget]")
	fmt.Printf("    Default weekly: %s\n", money.FormatDollars(cfg.Budget.DefaultWeekly))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	return nil
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if config.Exists() {
		fmt.Printf("  Config already exists at %s\n", config.ConfigPath())
		return nil
	}
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote default config to %s\n", config.ConfigPath())
	return nil
}
