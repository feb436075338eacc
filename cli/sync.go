// ABOUTME: Google sync CLI commands
// ABOUTME: Handles OAuth setup and contact import from Google
package cli

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os/exec"
	"runtime"

	"golang.org/x/oauth2"

	"github.com/harperreed/apexcrm/sync"
)

// SyncInitCommand handles OAuth setup via a local callback server.
func SyncInitCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	_ = fs.Parse(args)

	ctx := context.Background()

	config, err := sync.NewOAuthConfig()
	if err != nil {
		return err
	}

	callbackChan := make(chan *oauth2.Token)
	errChan := make(chan error)

	http.HandleFunc("/oauth/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- fmt.Errorf("no authorization code received")
			return
		}

		token, err := config.Exchange(ctx, code)
		if err != nil {
			errChan <- fmt.Errorf("failed to exchange code: %w", err)
			return
		}

		callbackChan <- token
		_, _ = fmt.Fprintf(w, "Authorization successful! You can close this window.")
	})

	server := &http.Server{Addr: ":8080"}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	authURL := config.AuthCodeURL("state", oauth2.AccessTypeOffline)

	fmt.Println("Opening browser for Google OAuth...")
	fmt.Printf("\nIf browser doesn't open, visit this URL:\n%s\n\n", authURL)

	_ = openBrowser(authURL)

	select {
	case token := <-callbackChan:
		_ = server.Shutdown(ctx)

		if err := sync.SaveToken(token); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		fmt.Printf("\n✓ Authenticated successfully\n")
		fmt.Printf("✓ Tokens saved to %s\n\n", sync.TokenPath())
		fmt.Println("Ready to sync! Run 'apexcrm sync contacts' to import contacts.")

		return nil

	case err := <-errChan:
		_ = server.Shutdown(ctx)
		return fmt.Errorf("OAuth flow failed: %w", err)
	}
}

// SyncContactsCommand imports Google Contacts into the remote store.
func SyncContactsCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("contacts", flag.ExitOnError)
	statePath := fs.String("state-path", sync.StatePath(), "Sync state database path")
	_ = fs.Parse(args)

	ctx := context.Background()

	token, err := sync.LoadToken()
	if err != nil {
		return fmt.Errorf("not authenticated; run 'apexcrm sync init' first: %w", err)
	}

	client, err := sync.NewPeopleClient(ctx, token)
	if err != nil {
		return err
	}

	state, err := sync.OpenState(*statePath)
	if err != nil {
		return err
	}
	defer func() { _ = state.Close() }()

	fmt.Println("Syncing Google Contacts...")
	summary, err := sync.ImportContacts(ctx, client, app.Contacts, state)
	if err != nil {
		return err
	}

	fmt.Printf("\n✓ Fetched %d contacts from Google (batch %s)\n", summary.Fetched, summary.BatchID)
	if summary.Created > 0 {
		fmt.Printf("  ✓ Created %d new contacts\n", summary.Created)
	}
	if summary.Updated > 0 {
		fmt.Printf("  ✓ Updated %d existing contacts\n", summary.Updated)
	}
	if summary.Skipped > 0 {
		fmt.Printf("  → Skipped %d (already imported or incomplete)\n", summary.Skipped)
	}
	if summary.Failed > 0 {
		fmt.Printf("  ✗ Failed to import %d contact(s)\n", summary.Failed)
	}
	if summary.Created == 0 && summary.Updated == 0 {
		fmt.Println("  ✓ No new contacts to import (all up to date)")
	}

	return nil
}

func openBrowser(url string) error {
	var cmd string
	var cmdArgs []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
	case "windows":
		cmd = "rundll32"
		cmdArgs = []string{"url.dll,FileProtocolHandler"}
	default:
		cmd = "xdg-open"
	}

	cmdArgs = append(cmdArgs, url)
	return exec.Command(cmd, cmdArgs...).Start()
}
