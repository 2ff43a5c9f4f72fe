// Package cmd implements the chestnut CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"chestnut/internal/config"
	"chestnut/internal/seed"
	"chestnut/internal/state"
	"chestnut/internal/storage"
	"chestnut/internal/tui"
	"chestnut/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	flagData    string
	flagBackend string
	flagSeed    bool
)

var rootCmd = &cobra.Command{
	Use:   "chestnut",
	Short: "Weekly budget tracker",
	Long:  "Track purchases against a weekly budget: add spending, set budgets, and review past weeks.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagData, "data", "d", "", "Data file path (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagBackend, "backend", "b", "", "Storage backend: json or sqlite")
	rootCmd.PersistentFlags().BoolVar(&flagSeed, "seed", false, "Run on generated demo data (nothing is saved)")
}

// loadConfig reads the config file and folds in command-line overrides.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config unreadable (%v), using defaults\n", err)
		cfg = config.DefaultConfig()
	}
	if flagBackend != "" {
		cfg.Data.Backend = flagBackend
	}
	if flagData != "" {
		cfg.Data.Path = flagData
	}
	return cfg
}

// openStore wires the state store to the configured backend. The
// returned bool reports whether seed data is in use.
func openStore(cfg config.Config) (*state.Store, bool, error) {
	if flagSeed || cfg.General.UseSeedData {
		return state.New(seed.Store{}, state.BudgetPolicySyncDefault), true, nil
	}

	backend, err := storage.Open(cfg.Data.Backend, cfg.DataPath())
	if err != nil {
		return nil, false, err
	}
	return state.New(backend, state.BudgetPolicySyncDefault), false, nil
}

// loadStore is the shared setup path for the report commands: open the
// backend, load state, surface a degraded load as a warning.
func loadStore(ctx context.Context, cfg config.Config) (*state.Store, error) {
	store, _, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: %v\n", err)
	}

	// A fresh data file picks up the configured default budget
	data := store.Data()
	if len(data.Weeks) == 0 && cfg.Budget.DefaultWeekly > 0 &&
		data.DefaultBudget != cfg.Budget.DefaultWeekly {
		data.DefaultBudget = cfg.Budget.DefaultWeekly
		_ = store.Dispatch(state.LoadData(data))
	}
	return store, nil
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor so background styling always produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	store, seeded, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	app := tui.NewApp(store, cfg, seeded)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
