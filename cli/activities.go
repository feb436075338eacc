// ABOUTME: Activity CLI commands
// ABOUTME: Commands for logging and reviewing contact and deal activity
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

// LogActivityCommand logs an activity against a contact or deal.
func LogActivityCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("log-activity", flag.ExitOnError)
	activityType := fs.String("type", models.ActivityNote, "Activity type: call, email, meeting, note")
	subject := fs.String("subject", "", "Short summary (required)")
	description := fs.String("description", "", "Longer notes")
	contactID := fs.String("contact", "", "Associated contact ID")
	dealID := fs.String("deal", "", "Associated deal ID")
	_ = fs.Parse(args)

	if *subject == "" {
		return fmt.Errorf("--subject is required")
	}
	switch *activityType {
	case models.ActivityCall, models.ActivityEmail, models.ActivityMeeting, models.ActivityNote:
	default:
		return fmt.Errorf("invalid activity type %q", *activityType)
	}

	record, err := app.Activities.Create(context.Background(), store.Record{
		"type_c":        *activityType,
		"subject_c":     *subject,
		"description_c": *description,
		"contact_id_c":  *contactID,
		"deal_id_c":     *dealID,
	})
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	if record == nil {
		return fmt.Errorf("activity was not logged")
	}

	activity := models.ActivityFromRecord(record)
	fmt.Printf("✓ Activity logged: [%s] %s (ID: %d)\n", activity.Type, activity.Subject, activity.ID)
	return nil
}

// ListActivitiesCommand lists activities, optionally filtered.
func ListActivitiesCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("list-activities", flag.ExitOnError)
	activityType := fs.String("type", "", "Filter by activity type")
	contactID := fs.Int("contact", 0, "Filter by contact ID")
	dealID := fs.Int("deal", 0, "Filter by deal ID")
	_ = fs.Parse(args)

	ctx := context.Background()
	records, stale := app.listWithSnapshot(ctx, app.Activities)

	activities := []models.Activity{}
	for _, r := range records {
		a := models.ActivityFromRecord(r)
		if *activityType != "" && a.Type != *activityType {
			continue
		}
		if *contactID != 0 && (a.ContactID == nil || *a.ContactID != *contactID) {
			continue
		}
		if *dealID != 0 && (a.DealID == nil || *a.DealID != *dealID) {
			continue
		}
		activities = append(activities, a)
	}

	if len(activities) == 0 {
		fmt.Println("No activities found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTYPE\tSUBJECT\tCONTACT\tDEAL\tWHEN")
	_, _ = fmt.Fprintln(w, "--\t----\t-------\t-------\t----\t----")
	for _, a := range activities {
		contact := models.RefLabel(a.ContactID, lookupName(ctx, app.Contacts, a.ContactID))
		deal := models.RefLabel(a.DealID, lookupName(ctx, app.Deals, a.DealID))
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Type, a.Subject, contact, deal, dash(models.FormatDate(a.CreatedAt)))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d activit(ies)\n", len(activities))
	if stale {
		fmt.Println("(showing cached snapshot; remote returned no data)")
	}
	return nil
}

// DeleteActivityCommand deletes an activity.
func DeleteActivityCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("delete-activity", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "activity")
	if err != nil {
		return err
	}

	if !app.Activities.Delete(context.Background(), id) {
		return fmt.Errorf("failed to delete activity %d", id)
	}

	fmt.Printf("✓ Activity deleted: %d\n", id)
	return nil
}
