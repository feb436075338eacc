// ABOUTME: Entry point for the ApexCRM CLI and MCP server
// ABOUTME: Routes to MCP server, CRM commands, web, TUI, viz, and sync based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/harperreed/apexcrm/cache"
	"github.com/harperreed/apexcrm/cli"
	"github.com/harperreed/apexcrm/store"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	cachePath := flag.String("cache-path", "", "Snapshot cache path (default: ~/.local/share/apexcrm/snapshot.db)")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("apexcrm version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	// configure runs before credentials exist.
	if command == "configure" {
		if err := cli.ConfigureCommand(commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
		return
	}

	app := buildApp(*cachePath)

	switch command {
	case "mcp":
		if err := cli.MCPCommand(app); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "crm":
		if len(commandArgs) == 0 {
			fmt.Println("Error: crm requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		runCRMCommand(app, commandArgs[0], commandArgs[1:])

	case "web":
		if err := cli.WebCommand(app, commandArgs); err != nil {
			log.Fatalf("Web server failed: %v", err)
		}

	case "tui":
		if err := cli.TUICommand(app, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "dashboard":
		if err := cli.DashboardCommand(app, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "viz":
		if len(commandArgs) == 0 || commandArgs[0] != "pipeline" {
			fmt.Println("Error: viz requires the 'pipeline' subcommand")
			printUsage()
			os.Exit(1)
		}
		if err := cli.VizGraphPipelineCommand(app, commandArgs[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "sync":
		if len(commandArgs) == 0 {
			fmt.Println("Error: sync requires a subcommand (init, contacts)")
			printUsage()
			os.Exit(1)
		}
		switch commandArgs[0] {
		case "init":
			if err := cli.SyncInitCommand(app, commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "contacts":
			if err := cli.SyncContactsCommand(app, commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown sync command: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// buildApp wires credentials, the HTTP client, and the snapshot cache.
func buildApp(cachePath string) *cli.App {
	cfg, err := store.LoadConfig()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	client := store.NewHTTPClient(cfg, &http.Client{Timeout: 30 * time.Second})

	if cachePath == "" {
		cachePath = cache.DefaultPath()
	}
	cacheDB, err := cache.Open(cachePath)
	if err != nil {
		// The cache is a display fallback; run without it rather than die.
		log.Printf("warning: snapshot cache unavailable: %v", err)
		cacheDB = nil
	}

	return cli.NewApp(client, cacheDB)
}

func runCRMCommand(app *cli.App, command string, args []string) {
	commands := map[string]func(*cli.App, []string) error{
		"add-contact":    cli.AddContactCommand,
		"list-contacts":  cli.ListContactsCommand,
		"show-contact":   cli.ShowContactCommand,
		"update-contact": cli.UpdateContactCommand,
		"delete-contact": cli.DeleteContactCommand,

		"add-deal":    cli.AddDealCommand,
		"list-deals":  cli.ListDealsCommand,
		"update-deal": cli.UpdateDealCommand,
		"delete-deal": cli.DeleteDealCommand,

		"log-activity":    cli.LogActivityCommand,
		"list-activities": cli.ListActivitiesCommand,
		"delete-activity": cli.DeleteActivityCommand,

		"add-task":      cli.AddTaskCommand,
		"list-tasks":    cli.ListTasksCommand,
		"complete-task": cli.CompleteTaskCommand,
		"update-task":   cli.UpdateTaskCommand,
		"delete-task":   cli.DeleteTaskCommand,

		"add-quote":           cli.AddQuoteCommand,
		"list-quotes":         cli.ListQuotesCommand,
		"update-quote-status": cli.UpdateQuoteStatusCommand,
		"delete-quote":        cli.DeleteQuoteCommand,
	}

	cmd, ok := commands[command]
	if !ok {
		fmt.Printf("Unknown crm command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err := cmd(app, args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printUsage() {
	fmt.Printf(`apexcrm v%s - CRM over the Apper record store

USAGE:
  apexcrm [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --cache-path <path>    Snapshot cache path (default: ~/.local/share/apexcrm/snapshot.db)

COMMANDS:
  configure              Save Apper credentials
  mcp                    Start MCP server for Claude Desktop
  crm                    CRM management commands
  web                    Start the read-only web UI
  tui                    Start the interactive terminal browser
  dashboard              Print the ASCII dashboard
  viz pipeline           Generate the deal pipeline graph (DOT)
  sync                   Google Contacts import

CRM COMMANDS:
  apexcrm crm add-contact     Add a new contact
    --first-name <name>         First name (required)
    --last-name <name>          Last name (required)
    --email <email>             Email address
    --phone <phone>             Phone number
    --company <company>         Company name
    --position <title>          Job title

  apexcrm crm list-contacts   List contacts
    --query <text>              Search by name or email

  apexcrm crm show-contact <id>           Show one contact
  apexcrm crm update-contact [flags] <id> Update a contact (flags before the ID)
  apexcrm crm delete-contact <id>         Delete a contact

  apexcrm crm add-deal        Add a new deal
    --title <title>             Deal title (required)
    --value <n>                 Deal value
    --stage <stage>             lead, qualified, proposal, negotiation, closed-won, closed-lost
    --probability <n>           Win probability percentage
    --close-date <date>         Expected close date (YYYY-MM-DD)
    --contact <id>              Associated contact ID

  apexcrm crm list-deals      List deals
    --stage <stage>             Filter by pipeline stage
    --query <text>              Search by title

  apexcrm crm log-activity    Log a call, email, meeting, or note
    --type <type>               Activity type (default: note)
    --subject <text>            Short summary (required)
    --contact <id>              Associated contact ID
    --deal <id>                 Associated deal ID

  apexcrm crm add-task        Add a task
    --title <title>             Task title (required)
    --due <date>                Due date (YYYY-MM-DD)
    --priority <p>              low, medium, high, urgent

  apexcrm crm complete-task <id>   Mark a task completed

  apexcrm crm add-quote       Create a quote
    --company <name>            Customer company
    --contact <id>              Associated contact ID
    --deal <id>                 Associated deal ID

  apexcrm crm update-quote-status --status <s> <id>   Move a quote to Draft, Sent, Accepted, or Rejected

SYNC COMMANDS:
  apexcrm sync init           Authenticate with Google
  apexcrm sync contacts       Import Google Contacts

EXAMPLES:
  # Save credentials
  apexcrm configure

  # Start MCP server for Claude Desktop
  apexcrm mcp

  # Add a contact
  apexcrm crm add-contact --first-name "John" --last-name "Smith" --email "john@acme.com"

  # List deals in negotiation stage
  apexcrm crm list-deals --stage negotiation

`, version)
}
