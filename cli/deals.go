// ABOUTME: Deal CLI commands
// ABOUTME: Human-friendly commands for managing the deal pipeline
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

// AddDealCommand adds a new deal.
func AddDealCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("add-deal", flag.ExitOnError)
	title := fs.String("title", "", "Deal title (required)")
	value := fs.Float64("value", 0, "Deal value")
	stage := fs.String("stage", "", "Pipeline stage (default: lead)")
	probability := fs.Float64("probability", 0, "Win probability percentage")
	closeDate := fs.String("close-date", "", "Expected close date (YYYY-MM-DD)")
	description := fs.String("description", "", "Deal description")
	contactID := fs.String("contact", "", "Associated contact ID")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}

	data := store.Record{
		"title_c":               *title,
		"stage_c":               *stage,
		"expected_close_date_c": *closeDate,
		"description_c":         *description,
		"contact_id_c":          *contactID,
	}
	if *value != 0 {
		data["value_c"] = *value
	}
	if *probability != 0 {
		data["probability_c"] = *probability
	}

	ctx := context.Background()
	record, err := app.Deals.Create(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}
	if record == nil {
		return fmt.Errorf("deal was not created")
	}

	deal := models.DealFromRecord(record)
	fmt.Printf("✓ Deal created: %s (ID: %d)\n", deal.Name, deal.ID)
	fmt.Printf("  Stage: %s\n", deal.Stage)
	fmt.Printf("  Value: %.2f (%.0f%%)\n", deal.Value, deal.Probability)
	if name := lookupName(ctx, app.Contacts, deal.ContactID); name != "" {
		fmt.Printf("  Contact: %s\n", name)
	}

	return nil
}

// ListDealsCommand lists all deals.
func ListDealsCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("list-deals", flag.ExitOnError)
	stage := fs.String("stage", "", "Filter by pipeline stage")
	query := fs.String("query", "", "Search by title")
	_ = fs.Parse(args)

	ctx := context.Background()
	records, stale := app.listWithSnapshot(ctx, app.Deals)

	deals := []models.Deal{}
	for _, r := range records {
		d := models.DealFromRecord(r)
		if *stage != "" && d.Stage != *stage {
			continue
		}
		if *query != "" && !matches(*query, d.Title, d.Name) {
			continue
		}
		deals = append(deals, d)
	}

	if len(deals) == 0 {
		fmt.Println("No deals found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tSTAGE\tVALUE\tPROB\tCONTACT\tCLOSE")
	_, _ = fmt.Fprintln(w, "--\t-----\t-----\t-----\t----\t-------\t-----")
	for _, d := range deals {
		contact := models.RefLabel(d.ContactID, lookupName(ctx, app.Contacts, d.ContactID))
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.0f%%\t%s\t%s\n",
			d.ID, d.Title, d.Stage, d.Value, d.Probability, contact,
			dash(models.FormatDate(d.ExpectedCloseDate)))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d deal(s)\n", len(deals))
	if stale {
		fmt.Println("(showing cached snapshot; remote returned no data)")
	}
	return nil
}

// UpdateDealCommand updates an existing deal.
func UpdateDealCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("update-deal", flag.ExitOnError)
	title := fs.String("title", "", "Deal title")
	value := fs.Float64("value", 0, "Deal value")
	stage := fs.String("stage", "", "Pipeline stage")
	probability := fs.Float64("probability", 0, "Win probability percentage")
	closeDate := fs.String("close-date", "", "Expected close date (YYYY-MM-DD)")
	description := fs.String("description", "", "Deal description")
	contactID := fs.String("contact", "", "Associated contact ID")
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "deal")
	if err != nil {
		return err
	}

	ctx := context.Background()
	existing := app.Deals.GetByID(ctx, id)
	if existing == nil {
		return fmt.Errorf("deal not found: %d", id)
	}

	merged := existing.Clone()
	setIfFlagged(merged, "title_c", *title)
	setIfFlagged(merged, "stage_c", *stage)
	setIfFlagged(merged, "expected_close_date_c", *closeDate)
	setIfFlagged(merged, "description_c", *description)
	setIfFlagged(merged, "contact_id_c", *contactID)
	if *value != 0 {
		merged["value_c"] = *value
	}
	if *probability != 0 {
		merged["probability_c"] = *probability
	}

	record, err := app.Deals.Update(ctx, id, merged)
	if err != nil {
		return fmt.Errorf("failed to update deal: %w", err)
	}
	if record == nil {
		record = merged
	}

	fmt.Printf("✓ Deal updated: %s (ID: %d)\n", record.String("Name"), id)
	return nil
}

// DeleteDealCommand deletes a deal.
func DeleteDealCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("delete-deal", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "deal")
	if err != nil {
		return err
	}

	if !app.Deals.Delete(context.Background(), id) {
		return fmt.Errorf("failed to delete deal %d", id)
	}

	fmt.Printf("✓ Deal deleted: %d\n", id)
	return nil
}
