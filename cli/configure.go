// ABOUTME: Interactive credentials setup command
// ABOUTME: Prompts for Apper project id and public key, saving to the XDG config dir
package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/harperreed/apexcrm/store"
)

// ConfigureCommand prompts for store credentials and writes them to the
// credentials file. The public key is read without terminal echo.
func ConfigureCommand(args []string) error {
	fs := flag.NewFlagSet("configure", flag.ExitOnError)
	baseURL := fs.String("base-url", "", "Override the API base URL")
	_ = fs.Parse(args)

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Apper project ID: ")
	projectID, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read project ID: %w", err)
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return fmt.Errorf("project ID is required")
	}

	fmt.Print("Apper public key: ")
	var publicKey string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read public key: %w", err)
		}
		publicKey = strings.TrimSpace(string(keyBytes))
	} else {
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read public key: %w", err)
		}
		publicKey = strings.TrimSpace(line)
	}
	if publicKey == "" {
		return fmt.Errorf("public key is required")
	}

	cfg := &store.Config{
		BaseURL:   *baseURL,
		ProjectID: projectID,
		PublicKey: publicKey,
	}
	if err := store.SaveCredentials(cfg); err != nil {
		return err
	}

	fmt.Printf("✓ Credentials saved to %s\n", store.CredentialsPath())
	return nil
}
