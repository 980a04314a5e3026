package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"sente/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to sente!")
	fmt.Println()

	// 1. Currency label
	fmt.Println("  1. Currency label")
	fmt.Println("     Shown next to every amount. Any short code works.")
	fmt.Printf("     Current: %s\n", cfg.General.Currency)
	fmt.Print("     > ")
	currency, _ := reader.ReadString('\n')
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency != "" {
		cfg.General.Currency = currency
	}
	fmt.Println()

	// 2. Session history
	fmt.Println("  2. Archive finished sessions?")
	fmt.Println("     (1) Yes, keep a history [default]")
	fmt.Println("     (2) No, sessions vanish on exit")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	cfg.History.Enabled = strings.TrimSpace(choice) != "2"
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `sente setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
