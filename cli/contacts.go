// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for managing contacts
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/store"
)

// AddContactCommand adds a new contact.
func AddContactCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	firstName := fs.String("first-name", "", "First name (required)")
	lastName := fs.String("last-name", "", "Last name (required)")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	company := fs.String("company", "", "Company name")
	position := fs.String("position", "", "Job title")
	_ = fs.Parse(args)

	if *firstName == "" || *lastName == "" {
		return fmt.Errorf("--first-name and --last-name are required")
	}

	record, err := app.Contacts.Create(context.Background(), store.Record{
		"first_name_c": *firstName,
		"last_name_c":  *lastName,
		"email_c":      *email,
		"phone_c":      *phone,
		"company_c":    *company,
		"position_c":   *position,
	})
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	if record == nil {
		return fmt.Errorf("contact was not created")
	}

	contact := models.ContactFromRecord(record)
	fmt.Printf("✓ Contact created: %s (ID: %d)\n", contact.Name, contact.ID)
	if contact.Email != "" {
		fmt.Printf("  Email: %s\n", contact.Email)
	}
	if contact.Phone != "" {
		fmt.Printf("  Phone: %s\n", contact.Phone)
	}
	if contact.Company != "" {
		fmt.Printf("  Company: %s\n", contact.Company)
	}

	return nil
}

// ListContactsCommand lists all contacts.
func ListContactsCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search by name or email")
	_ = fs.Parse(args)

	records, stale := app.listWithSnapshot(context.Background(), app.Contacts)

	contacts := []models.Contact{}
	for _, r := range records {
		c := models.ContactFromRecord(r)
		if *query != "" && !matches(*query, c.Name, c.Email) {
			continue
		}
		contacts = append(contacts, c)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tCOMPANY\tPOSITION")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t-----\t-------\t--------")
	for _, c := range contacts {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Name, dash(c.Email), dash(c.Phone), dash(c.Company), dash(c.Position))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d contact(s)\n", len(contacts))
	if stale {
		fmt.Println("(showing cached snapshot; remote returned no data)")
	}
	return nil
}

// ShowContactCommand prints one contact in detail.
func ShowContactCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("show-contact", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "contact")
	if err != nil {
		return err
	}

	record := app.Contacts.GetByID(context.Background(), id)
	if record == nil {
		return fmt.Errorf("contact not found: %d", id)
	}

	c := models.ContactFromRecord(record)
	fmt.Printf("Contact #%d: %s\n", c.ID, c.Name)
	fmt.Printf("  Email:         %s\n", dash(c.Email))
	fmt.Printf("  Phone:         %s\n", dash(c.Phone))
	fmt.Printf("  Company:       %s\n", dash(c.Company))
	fmt.Printf("  Position:      %s\n", dash(c.Position))
	fmt.Printf("  Created:       %s\n", dash(models.FormatDate(c.CreatedAt)))
	fmt.Printf("  Last activity: %s\n", dash(models.FormatDate(c.LastActivity)))
	return nil
}

// UpdateContactCommand updates an existing contact.
func UpdateContactCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("update-contact", flag.ExitOnError)
	firstName := fs.String("first-name", "", "First name")
	lastName := fs.String("last-name", "", "Last name")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	company := fs.String("company", "", "Company name")
	position := fs.String("position", "", "Job title")
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "contact")
	if err != nil {
		return err
	}

	ctx := context.Background()
	existing := app.Contacts.GetByID(ctx, id)
	if existing == nil {
		return fmt.Errorf("contact not found: %d", id)
	}

	merged := existing.Clone()
	setIfFlagged(merged, "first_name_c", *firstName)
	setIfFlagged(merged, "last_name_c", *lastName)
	setIfFlagged(merged, "email_c", *email)
	setIfFlagged(merged, "phone_c", *phone)
	setIfFlagged(merged, "company_c", *company)
	setIfFlagged(merged, "position_c", *position)

	record, err := app.Contacts.Update(ctx, id, merged)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if record == nil {
		record = merged
	}

	fmt.Printf("✓ Contact updated: %s (ID: %d)\n", record.String("Name"), id)
	return nil
}

// DeleteContactCommand deletes a contact.
func DeleteContactCommand(app *App, args []string) error {
	fs := flag.NewFlagSet("delete-contact", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := idArg(fs.Args(), "contact")
	if err != nil {
		return err
	}

	if !app.Contacts.Delete(context.Background(), id) {
		return fmt.Errorf("failed to delete contact %d", id)
	}

	fmt.Printf("✓ Contact deleted: %d\n", id)
	return nil
}

// idArg reads the required positional record id.
func idArg(args []string, entity string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("%s ID is required", entity)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID: %q", entity, args[0])
	}
	return id, nil
}

func setIfFlagged(record store.Record, key, value string) {
	if value != "" {
		record[key] = value
	}
}
