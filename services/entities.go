// ABOUTME: Schema configuration for the five CRM entities
// ABOUTME: Table names, read projections, alias maps, and defaults
package services

import (
	"strings"
	"time"

	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/store"
)

// Table names in the remote store.
const (
	TableContact  = "contact_c"
	TableDeal     = "deal_c"
	TableActivity = "activity_c"
	TableTask     = "task_c"
	TableQuote    = "quote_c"
)

// ContactSchema describes the contact_c table.
func ContactSchema() *Schema {
	return &Schema{
		Table: TableContact,
		Projection: []string{
			"Id", "Name", "first_name_c", "last_name_c", "email_c", "phone_c",
			"company_c", "position_c", "created_at_c", "last_activity_c", "CreatedOn",
		},
		Fields: []FieldSpec{
			{Name: "first_name_c", Aliases: []string{"first_name", "firstName"}, Kind: KindText, Create: Omit(), Update: Omit()},
			{Name: "last_name_c", Aliases: []string{"last_name", "lastName"}, Kind: KindText, Create: Omit(), Update: Omit()},
			{Name: "email_c", Aliases: []string{"email"}, Kind: KindText, Create: Omit(), Update: Omit()},
			{Name: "phone_c", Aliases: []string{"phone"}, Kind: KindText, Create: Omit(), Update: Omit()},
			{Name: "company_c", Aliases: []string{"company"}, Kind: KindText, Create: Value(""), Update: Value("")},
			{Name: "position_c", Aliases: []string{"position"}, Kind: KindText, Create: Value(""), Update: Value("")},
			{Name: "created_at_c", Kind: KindDate, Fixed: true, Create: Now(), Update: Omit()},
			{Name: "last_activity_c", Kind: KindDate, Fixed: true, Create: Now(), Update: Omit()},
		},
		DeriveName: func(_, normalized store.Record) string {
			first := normalized.String("first_name_c")
			last := normalized.String("last_name_c")
			return strings.TrimSpace(first + " " + last)
		},
	}
}

// DealSchema describes the deal_c table.
func DealSchema() *Schema {
	return &Schema{
		Table: TableDeal,
		Projection: []string{
			"Id", "Name", "title_c", "value_c", "stage_c", "probability_c",
			"expected_close_date_c", "description_c", "contact_id_c", "created_at_c", "CreatedOn",
		},
		Fields: []FieldSpec{
			{Name: "title_c", Aliases: []string{"title"}, Kind: KindText, Create: Omit(), Update: Omit()},
			{Name: "value_c", Aliases: []string{"value"}, Kind: KindNumber, Create: Value(float64(0)), Update: Value(float64(0))},
			{Name: "stage_c", Aliases: []string{"stage"}, Kind: KindText, Create: Value(models.StageLead), Update: Omit()},
			{Name: "probability_c", Aliases: []string{"probability"}, Kind: KindNumber, Create: Value(float64(10)), Update: Value(float64(10))},
			{Name: "expected_close_date_c", Aliases: []string{"expected_close_date", "expectedCloseDate"}, Kind: KindDate, Create: Null(), Update: Null()},
			{Name: "description_c", Aliases: []string{"description"}, Kind: KindText, Create: Value(""), Update: Value("")},
			{Name: "contact_id_c", Aliases: []string{"contact_id", "contactId"}, Kind: KindReference, Create: Null(), Update: Null()},
			{Name: "created_at_c", Kind: KindDate, Fixed: true, Create: Now(), Update: Omit()},
		},
		DeriveName: func(_, normalized store.Record) string {
			return normalized.String("title_c")
		},
	}
}

// ActivitySchema describes the activity_c table.
func ActivitySchema() *Schema {
	return &Schema{
		Table: TableActivity,
		Projection: []string{
			"Id", "Name", "type_c", "subject_c", "description_c",
			"contact_id_c", "deal_id_c", "created_at_c", "CreatedOn",
		},
		Fields: []FieldSpec{
			{Name: "type_c", Aliases: []string{"type"}, Kind: KindText, Create: Value(models.ActivityCall), Update: Omit()},
			{Name: "subject_c", Aliases: []string{"subject"}, Kind: KindText, Create: Omit(), Update: Omit()},
			{Name: "description_c", Aliases: []string{"description"}, Kind: KindText, Create: Value(""), Update: Value("")},
			{Name: "contact_id_c", Aliases: []string{"contact_id", "contactId"}, Kind: KindReference, Create: Null(), Update: Null()},
			{Name: "deal_id_c", Aliases: []string{"deal_id", "dealId"}, Kind: KindReference, Create: Null(), Update: Null()},
			{Name: "created_at_c", Kind: KindDate, Fixed: true, Create: Now(), Update: Omit()},
		},
		DeriveName: func(_, normalized store.Record) string {
			return normalized.String("subject_c")
		},
	}
}

// TaskSchema describes the task_c table.
func TaskSchema() *Schema {
	return &Schema{
		Table: TableTask,
		Projection: []string{
			"Id", "Name", "title_c", "description_c", "due_date_c",
			"priority_c", "status_c", "contact_id_c", "deal_id_c",
		},
		Fields: []FieldSpec{
			{Name: "title_c", Aliases: []string{"title"}, Kind: KindText, Create: Omit(), Update: Omit()},
			{Name: "description_c", Aliases: []string{"description"}, Kind: KindText, Create: Value(""), Update: Value("")},
			{Name: "due_date_c", Aliases: []string{"due_date", "dueDate"}, Kind: KindDate, Create: Omit(), Update: Omit()},
			{Name: "priority_c", Aliases: []string{"priority"}, Kind: KindText, Create: Value(models.PriorityMedium), Update: Omit()},
			{Name: "status_c", Aliases: []string{"status"}, Kind: KindText, Create: Value(models.StatusPending), Update: Omit()},
			{Name: "contact_id_c", Aliases: []string{"contact_id", "contactId"}, Kind: KindReference, Create: Null(), Update: Null()},
			{Name: "deal_id_c", Aliases: []string{"deal_id", "dealId"}, Kind: KindReference, Create: Null(), Update: Null()},
		},
		DeriveName: func(_, normalized store.Record) string {
			return normalized.String("title_c")
		},
	}
}

// QuoteSchema describes the quote_c table, including the flattened billing
// and shipping address sub-objects.
func QuoteSchema() *Schema {
	fields := []FieldSpec{
		{Name: "company_c", Aliases: []string{"company"}, Kind: KindText, Create: Value(""), Update: Value("")},
		{Name: "contact_id_c", Aliases: []string{"contact_id"}, Kind: KindReference, Create: Null(), Update: Null()},
		{Name: "deal_id_c", Aliases: []string{"deal_id"}, Kind: KindReference, Create: Null(), Update: Null()},
		{Name: "quote_date_c", Aliases: []string{"quote_date"}, Kind: KindDate, Create: Now(), Update: Null()},
		{Name: "status_c", Aliases: []string{"status"}, Kind: KindText, Create: Value(models.QuoteDraft), Update: Value(models.QuoteDraft)},
		{Name: "delivery_method_c", Aliases: []string{"delivery_method"}, Kind: KindText, Create: Value(""), Update: Value("")},
		{Name: "expires_on_c", Aliases: []string{"expires_on"}, Kind: KindDate, Create: Null(), Update: Null()},
	}

	for _, addr := range []string{"billing_address", "shipping_address"} {
		parts := []string{"street", "city", "state", "country", "pincode"}
		if addr == "billing_address" {
			parts = append([]string{"bill_to_name"}, parts...)
		} else {
			parts = append([]string{"ship_to_name"}, parts...)
		}
		for _, part := range parts {
			name := addr + "_" + part + "_c"
			fields = append(fields, FieldSpec{
				Name:    name,
				Aliases: []string{addr + "_" + part},
				Kind:    KindText,
				Create:  Value(""),
				Update:  Value(""),
			})
		}
	}

	projection := []string{"Id", "Name"}
	for _, f := range fields {
		projection = append(projection, f.Name)
	}
	projection = append(projection, "CreatedOn")

	return &Schema{
		Table:      TableQuote,
		Projection: projection,
		Fields:     fields,
		DeriveName: func(data, _ store.Record) string {
			if name := data.String("Name"); name != "" {
				return name
			}
			return "Quote - " + time.Now().Format("1/2/2006")
		},
	}
}
