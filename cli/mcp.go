// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for Claude Desktop integration
package cli

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/apexcrm/handlers"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(app *App) error {
	log.Println("Starting CRM MCP Server...")

	contactHandlers := handlers.NewContactHandlers(app.Contacts)
	dealHandlers := handlers.NewDealHandlers(app.Deals, app.Contacts)
	activityHandlers := handlers.NewActivityHandlers(app.Activities, app.Contacts, app.Deals)
	taskHandlers := handlers.NewTaskHandlers(app.Tasks)
	quoteHandlers := handlers.NewQuoteHandlers(app.Quotes)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "apexcrm",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact to the CRM",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contacts",
		Description: "List contacts, optionally filtered by a name or email query",
	}, contactHandlers.ListContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Get one contact by ID",
	}, contactHandlers.GetContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update an existing contact's information",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact by ID",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_deal",
		Description: "Create a new deal, optionally linked to a contact",
	}, dealHandlers.CreateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_deals",
		Description: "List deals, optionally filtered by pipeline stage or title query",
	}, dealHandlers.ListDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_deal",
		Description: "Update an existing deal including its stage and value",
	}, dealHandlers.UpdateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_deal",
		Description: "Delete a deal by ID",
	}, dealHandlers.DeleteDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_activity",
		Description: "Log a call, email, meeting, or note against a contact or deal",
	}, activityHandlers.LogActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_activities",
		Description: "List activities, optionally filtered by type, contact, or deal",
	}, activityHandlers.ListActivities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_activity",
		Description: "Delete an activity by ID",
	}, activityHandlers.DeleteActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_task",
		Description: "Add a new task, optionally linked to a contact or deal",
	}, taskHandlers.AddTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks, optionally filtered by status, priority, or title query",
	}, taskHandlers.ListTasks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task as completed",
	}, taskHandlers.CompleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_task",
		Description: "Update an existing task",
	}, taskHandlers.UpdateTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by ID",
	}, taskHandlers.DeleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_quote",
		Description: "Create a new quote with billing and shipping addresses",
	}, quoteHandlers.CreateQuote)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_quotes",
		Description: "List quotes, optionally filtered by status",
	}, quoteHandlers.ListQuotes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_quote_status",
		Description: "Move a quote to Draft, Sent, Accepted, or Rejected",
	}, quoteHandlers.UpdateQuoteStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_quote",
		Description: "Delete a quote by ID",
	}, quoteHandlers.DeleteQuote)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
