// ABOUTME: Google Contacts importer
// ABOUTME: Fetches People API connections and imports them through the contact service
package sync

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"google.golang.org/api/people/v1"

	"github.com/harperreed/apexcrm/services"
	"github.com/harperreed/apexcrm/store"
)

// GoogleContact is the subset of a People API person the importer uses.
type GoogleContact struct {
	ResourceName string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Company      string
	JobTitle     string
}

// ImportSummary reports what one import batch did.
type ImportSummary struct {
	BatchID string
	Fetched int
	Created int
	Updated int
	Skipped int
	Failed  int
}

// ContactsImporter imports Google contacts into the remote store, matching on
// email to avoid duplicates and tracking imported resources in sync state.
type ContactsImporter struct {
	contacts *services.Service
	state    *State
	byEmail  map[string]store.Record
}

func NewContactsImporter(contacts *services.Service, state *State) *ContactsImporter {
	return &ContactsImporter{
		contacts: contacts,
		state:    state,
		byEmail:  map[string]store.Record{},
	}
}

// loadExisting indexes current contacts by lowercased email, once per batch.
func (ci *ContactsImporter) loadExisting(ctx context.Context) {
	for _, r := range ci.contacts.List(ctx) {
		if email := strings.ToLower(r.String("email_c")); email != "" {
			ci.byEmail[email] = r
		}
	}
}

// ImportContact imports a single contact. Returns (created, updated).
func (ci *ContactsImporter) ImportContact(ctx context.Context, gc *GoogleContact) (bool, bool, error) {
	existing, found := ci.byEmail[strings.ToLower(gc.Email)]
	if found {
		updated, err := ci.enrich(ctx, existing, gc)
		if err != nil {
			return false, false, err
		}
		if ci.state != nil {
			if err := ci.state.MarkImported(gc.ResourceName, existing.ID()); err != nil {
				return false, updated, fmt.Errorf("failed to record sync state: %w", err)
			}
		}
		return false, updated, nil
	}

	record, err := ci.contacts.Create(ctx, store.Record{
		"first_name_c": gc.FirstName,
		"last_name_c":  gc.LastName,
		"email_c":      gc.Email,
		"phone_c":      gc.Phone,
		"company_c":    gc.Company,
		"position_c":   gc.JobTitle,
	})
	if err != nil {
		return false, false, fmt.Errorf("failed to create contact: %w", err)
	}
	if record == nil {
		return false, false, fmt.Errorf("contact was not created")
	}

	if ci.state != nil {
		if err := ci.state.MarkImported(gc.ResourceName, record.ID()); err != nil {
			return true, false, fmt.Errorf("failed to record sync state: %w", err)
		}
	}

	// Index within the batch so duplicate Google entries collapse.
	ci.byEmail[strings.ToLower(gc.Email)] = record

	return true, false, nil
}

// enrich fills blanks on an existing contact from Google data. Google never
// overwrites a populated field.
func (ci *ContactsImporter) enrich(ctx context.Context, existing store.Record, gc *GoogleContact) (bool, error) {
	merged := existing.Clone()
	changed := false

	for key, value := range map[string]string{
		"phone_c":    gc.Phone,
		"company_c":  gc.Company,
		"position_c": gc.JobTitle,
	} {
		if value != "" && merged.String(key) == "" {
			merged[key] = value
			changed = true
		}
	}

	if !changed {
		return false, nil
	}

	record, err := ci.contacts.Update(ctx, existing.ID(), merged)
	if err != nil {
		return false, err
	}
	if record != nil {
		ci.byEmail[strings.ToLower(gc.Email)] = record
	}

	return true, nil
}

// ImportContacts fetches all Google connections and imports them, returning a
// batch summary. Per-contact failures are counted, not fatal.
func ImportContacts(ctx context.Context, client *people.Service, contacts *services.Service, state *State) (*ImportSummary, error) {
	summary := &ImportSummary{
		BatchID: ulid.MustNew(ulid.Timestamp(time.Now()), rand.New(rand.NewSource(time.Now().UnixNano()))).String(),
	}

	importer := NewContactsImporter(contacts, state)
	importer.loadExisting(ctx)

	pageToken := ""
	for {
		call := client.People.Connections.List("people/me").
			PageSize(1000).
			PersonFields("names,emailAddresses,phoneNumbers,organizations")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		response, err := call.Context(ctx).Do()
		if err != nil {
			return summary, fmt.Errorf("failed to fetch contacts: %w", err)
		}
		if response == nil || response.Connections == nil {
			break
		}

		summary.Fetched += len(response.Connections)

		for _, person := range response.Connections {
			gc := convertPerson(person)

			// Email and a name are both required for matching.
			if gc.Email == "" || (gc.FirstName == "" && gc.LastName == "") {
				summary.Skipped++
				continue
			}

			if state != nil {
				id, err := state.Imported(person.ResourceName)
				if err != nil {
					fmt.Printf("  ✗ Failed to check sync state for %q: %v\n", gc.Email, err)
					summary.Failed++
					continue
				}
				if id != 0 {
					summary.Skipped++
					continue
				}
			}

			created, updated, err := importer.ImportContact(ctx, gc)
			if err != nil {
				fmt.Printf("  ✗ Failed to import contact %q: %v\n", gc.Email, err)
				summary.Failed++
				continue
			}
			if created {
				summary.Created++
			} else if updated {
				summary.Updated++
			} else {
				summary.Skipped++
			}
		}

		pageToken = response.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return summary, nil
}

// convertPerson converts a People API person to a GoogleContact.
func convertPerson(person *people.Person) *GoogleContact {
	gc := &GoogleContact{ResourceName: person.ResourceName}

	if len(person.Names) > 0 {
		gc.FirstName = person.Names[0].GivenName
		gc.LastName = person.Names[0].FamilyName
		// Fall back to splitting the display name when structured parts
		// are missing.
		if gc.FirstName == "" && gc.LastName == "" && person.Names[0].DisplayName != "" {
			parts := strings.SplitN(person.Names[0].DisplayName, " ", 2)
			gc.FirstName = parts[0]
			if len(parts) > 1 {
				gc.LastName = parts[1]
			}
		}
	}

	for _, email := range person.EmailAddresses {
		if email.Value == "" {
			continue
		}
		if gc.Email == "" {
			gc.Email = email.Value
		}
		if email.Metadata != nil && email.Metadata.Primary {
			gc.Email = email.Value
			break
		}
	}

	for _, phone := range person.PhoneNumbers {
		if phone.Value == "" {
			continue
		}
		if gc.Phone == "" {
			gc.Phone = phone.Value
		}
		if phone.Metadata != nil && phone.Metadata.Primary {
			gc.Phone = phone.Value
			break
		}
	}

	if len(person.Organizations) > 0 {
		gc.Company = person.Organizations[0].Name
		gc.JobTitle = person.Organizations[0].Title
	}

	return gc
}
