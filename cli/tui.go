// ABOUTME: TUI subcommand
// ABOUTME: Launches the full-screen terminal browser
package cli

import (
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/apexcrm/tui"
)

// TUICommand starts the interactive terminal browser.
func TUICommand(app *App, args []string) error {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	_ = fs.Parse(args)

	model := tui.NewModel(app.Contacts, app.Deals, app.Activities, app.Tasks, app.Quotes)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}
