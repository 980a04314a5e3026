package cmd

import (
	"fmt"

	"sente/internal/tui"
	"sente/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run a budget session in the full-screen TUI",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes.
	// Without this, lipgloss may default to Ascii profile (no colors)
	if !flagPlain {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	app := tui.NewApp(cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	// Whatever was logged before quitting still gets archived.
	if final, ok := m.(tui.App); ok {
		if s := final.Session(); s != nil && s.Len() > 0 {
			archiveSession(cfg, s)
		}
	}
	return nil
}
