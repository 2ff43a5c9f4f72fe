package tui

import (
	"errors"
	"strconv"
	"strings"

	"chestnut/internal/config"
	"chestnut/internal/storage"
	"chestnut/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues holds the first-run wizard answers until the form
// completes and they are written to config.
type setupValues struct {
	budget  string
	backend string
	theme   string
}

// newSetupForm builds the first-run setup wizard. Defaults come from
// the config the app was started with.
func newSetupForm(vals *setupValues, cfg config.Config) *huh.Form {
	vals.budget = strconv.Itoa(cfg.Budget.DefaultWeekly)
	vals.backend = cfg.Data.Backend
	vals.theme = cfg.Appearance.Theme

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Weekly budget").
				Description("Whole dollars. You can change it per week later.").
				Value(&vals.budget).
				Validate(validateBudget),
			huh.NewSelect[string]().
				Title("Where should your data live?").
				Options(
					huh.NewOption("JSON file (simple, human-readable)", storage.BackendJSON),
					huh.NewOption("SQLite database", storage.BackendSQLite),
				).
				Value(&vals.backend),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.theme),
		).Title("Welcome to chestnut"),
	)
}

func validateBudget(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a positive whole number")
	}
	return nil
}

// applySetup folds the wizard answers into the config.
func applySetup(cfg config.Config, vals setupValues) config.Config {
	if n, err := strconv.Atoi(strings.TrimSpace(vals.budget)); err == nil && n > 0 {
		cfg.Budget.DefaultWeekly = n
	}
	if vals.backend != "" {
		cfg.Data.Backend = vals.backend
	}
	if vals.theme != "" {
		cfg.Appearance.Theme = vals.theme
	}
	return cfg
}
