// ABOUTME: Quote CLI commands
// ABOUTME: Commands for creating and tracking quotes
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/store"
)

// AddQuoteCommand creates a new quote.
func AddQuoteCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("add-quote", flag.ExitOnError)
	name := fs.String("name", "", "Quote name (generated when omitted)")
	company := fs.String("company", "", "Customer company")
	contactID := fs.String("contact", "", "Associated contact ID")
	dealID := fs.String("deal", "", "Associated deal ID")
	delivery := fs.String("delivery", "", "Delivery method")
	expires := fs.String("expires", "", "Expiration date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	record, err := app.Quotes.Create(context.Background(), store.Record{
		"Name":              *name,
		"company_c":         *company,
		"contact_id_c":      *contactID,
		"deal_id_c":         *dealID,
		"delivery_method_c": *delivery,
		"expires_on_c":      *expires,
	})
	if err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	if record == nil {
		return fmt.Errorf("quote was not created")
	}

	quote := models.QuoteFromRecord(record)
	fmt.Printf("✓ Quote created: %s (ID: %d)\n", quote.Name, quote.ID)
	fmt.Printf("  Status: %s\n", quote.Status)
	return nil
}

// ListQuotesCommand lists quotes, optionally filtered by status.
func ListQuotesCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("list-quotes", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status: Draft, Sent, Accepted, Rejected")
	_ = fs.Parse(args)

	ctx := context.Background()
	records, stale := app.listWithSnapshot(ctx, app.Quotes)

	quotes := []models.Quote{}
	for _, r := range records {
		q := models.QuoteFromRecord(r)
		if *status != "" && q.Status != *status {
			continue
		}
		quotes = append(quotes, q)
	}

	if len(quotes) == 0 {
		fmt.Println("No quotes found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCOMPANY\tSTATUS\tDATE\tCONTACT")
	_, _ = fmt.Fprintln(w, "--\t----\t-------\t------\t----\t-------")
	for _, q := range quotes {
		contact := models.RefLabel(q.ContactID, lookupName(ctx, app.Contacts, q.ContactID))
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			q.ID, q.Name, dash(q.Company), q.Status, dash(models.FormatDate(q.QuoteDate)), contact)
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d quote(s)\n", len(quotes))
	if stale {
		fmt.Println("(showing cached snapshot; remote returned no data)")
	}
	return nil
}

// UpdateQuoteStatusCommand moves a quote to a new status.
func UpdateQuoteStatusCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("update-quote-status", flag.ExitOnError)
	status := fs.String("status", "", "New status: Draft, Sent, Accepted, Rejected (required)")
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "quote")
	if err != nil {
		return err
	}
	switch *status {
	case models.QuoteDraft, models.QuoteSent, models.QuoteAccepted, models.QuoteRejected:
	default:
		return fmt.Errorf("invalid quote status %q", *status)
	}

	ctx := context.Background()
	existing := app.Quotes.GetByID(ctx, id)
	if existing == nil {
		return fmt.Errorf("quote not found: %d", id)
	}

	merged := existing.Clone()
	merged["status_c"] = *status

	if _, err := app.Quotes.Update(ctx, id, merged); err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}

	fmt.Printf("✓ Quote %d moved to %s\n", id, *status)
	return nil
}

// DeleteQuoteCommand deletes a quote.
func DeleteQuoteCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("delete-quote", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "quote")
	if err != nil {
		return err
	}

	if !app.Quotes.Delete(context.Background(), id) {
		return fmt.Errorf("failed to delete quote %d", id)
	}

	fmt.Printf("✓ Quote deleted: %d\n", id)
	return nil
}
