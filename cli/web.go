// ABOUTME: Web UI subcommand
// ABOUTME: Starts the read-only dashboard server
package cli

import (
	"flag"

	"github.com/harperreed/apexcrm/web"
)

// WebCommand starts the web UI server.
func WebCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("web", flag.ExitOnError)
	port := fs.Int("port", 8090, "Port to listen on")
	_ = fs.Parse(args)

	server, err := web.NewServer(app.Contacts, app.Deals, app.Activities, app.Tasks, app.Quotes, app.Cache)
	if err != nil {
		return err
	}

	return server.Start(*port)
}
