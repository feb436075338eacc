// ABOUTME: Tests for the MCP tool handlers
// ABOUTME: Uses an in-memory fake client behind the entity services
package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/harperreed/apexcrm/services"
	"github.com/harperreed/apexcrm/store"
)

// fakeClient is an in-memory record store keyed by table.
type fakeClient struct {
	tables map[string][]store.Record
	nextID int
	failOp string // op name whose envelope reports failure
}

func newFakeClient() *fakeClient {
	return &fakeClient{tables: map[string][]store.Record{}, nextID: 1}
}

func (f *fakeClient) add(table string, r store.Record) store.Record {
	r["Id"] = float64(f.nextID)
	f.nextID++
	f.tables[table] = append(f.tables[table], r)
	return r
}

func (f *fakeClient) FetchRecords(ctx context.Context, table string, fields []string) (*store.ListEnvelope, error) {
	return &store.ListEnvelope{Success: true, Data: f.tables[table]}, nil
}

func (f *fakeClient) GetRecordByID(ctx context.Context, table string, id int, fields []string) (*store.SingleEnvelope, error) {
	for _, r := range f.tables[table] {
		if r.ID() == id {
			return &store.SingleEnvelope{Data: r}, nil
		}
	}
	return &store.SingleEnvelope{}, nil
}

func (f *fakeClient) CreateRecords(ctx context.Context, table string, records []store.Record) (*store.WriteEnvelope, error) {
	if f.failOp == "create" {
		return &store.WriteEnvelope{Success: false, Message: "create rejected"}, nil
	}
	results := make([]store.WriteResult, len(records))
	for i, r := range records {
		results[i] = store.WriteResult{Success: true, Data: f.add(table, r)}
	}
	return &store.WriteEnvelope{Success: true, Results: results}, nil
}

func (f *fakeClient) UpdateRecords(ctx context.Context, table string, records []store.Record) (*store.WriteEnvelope, error) {
	if f.failOp == "update" {
		return &store.WriteEnvelope{Success: false, Message: "update rejected"}, nil
	}
	results := make([]store.WriteResult, len(records))
	for i, r := range records {
		var merged store.Record
		for _, existing := range f.tables[table] {
			if existing.ID() == r.ID() {
				// The store merges updates into the stored row.
				for k, v := range r {
					existing[k] = v
				}
				merged = existing
				break
			}
		}
		results[i] = store.WriteResult{Success: merged != nil, Data: merged}
	}
	return &store.WriteEnvelope{Success: true, Results: results}, nil
}

func (f *fakeClient) DeleteRecords(ctx context.Context, table string, ids []int) (*store.WriteEnvelope, error) {
	results := make([]store.WriteResult, len(ids))
	for i, id := range ids {
		kept := f.tables[table][:0]
		deleted := false
		for _, r := range f.tables[table] {
			if r.ID() == id {
				deleted = true
				continue
			}
			kept = append(kept, r)
		}
		f.tables[table] = kept
		results[i] = store.WriteResult{Success: deleted}
	}
	return &store.WriteEnvelope{Success: true, Results: results}, nil
}

func TestAddContactRequiresNames(t *testing.T) {
	h := NewContactHandlers(services.NewContactService(newFakeClient()))

	_, _, err := h.AddContact(context.Background(), nil, AddContactInput{FirstName: "Ada"})
	if err == nil {
		t.Fatal("expected error for missing last name")
	}
}

func TestAddAndListContacts(t *testing.T) {
	h := NewContactHandlers(services.NewContactService(newFakeClient()))
	ctx := context.Background()

	_, created, err := h.AddContact(ctx, nil, AddContactInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}
	if created.Name != "Ada Lovelace" {
		t.Errorf("expected derived name, got %q", created.Name)
	}
	if created.CreatedAt == "" {
		t.Error("expected creation timestamp")
	}

	_, list, err := h.ListContacts(ctx, nil, ListContactsInput{})
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	if len(list.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(list.Contacts))
	}

	_, filtered, err := h.ListContacts(ctx, nil, ListContactsInput{Query: "ADA"})
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	if len(filtered.Contacts) != 1 {
		t.Errorf("expected case-insensitive match, got %d contacts", len(filtered.Contacts))
	}

	_, filtered, err = h.ListContacts(ctx, nil, ListContactsInput{Query: "nobody"})
	if err != nil {
		t.Fatalf("ListContacts failed: %v", err)
	}
	if len(filtered.Contacts) != 0 {
		t.Errorf("expected no matches, got %d", len(filtered.Contacts))
	}
}

func TestUpdateContactMergesFields(t *testing.T) {
	h := NewContactHandlers(services.NewContactService(newFakeClient()))
	ctx := context.Background()

	_, created, err := h.AddContact(ctx, nil, AddContactInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	_, updated, err := h.UpdateContact(ctx, nil, UpdateContactInput{
		ID: "1", Phone: "555-0100",
	})
	if err != nil {
		t.Fatalf("UpdateContact failed: %v", err)
	}
	if updated.Phone != "555-0100" {
		t.Errorf("expected updated phone, got %q", updated.Phone)
	}
	if updated.Email != "ada@example.com" {
		t.Errorf("expected email preserved, got %q", updated.Email)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("expected creation timestamp preserved: %q vs %q", updated.CreatedAt, created.CreatedAt)
	}
}

func TestUpdateContactNotFound(t *testing.T) {
	h := NewContactHandlers(services.NewContactService(newFakeClient()))

	_, _, err := h.UpdateContact(context.Background(), nil, UpdateContactInput{ID: "99", Phone: "x"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestDeleteContact(t *testing.T) {
	h := NewContactHandlers(services.NewContactService(newFakeClient()))
	ctx := context.Background()

	if _, _, err := h.AddContact(ctx, nil, AddContactInput{FirstName: "Ada", LastName: "Lovelace"}); err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	_, out, err := h.DeleteContact(ctx, nil, DeleteInput{ID: "1"})
	if err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}
	if !out.Deleted {
		t.Error("expected deletion to succeed")
	}

	_, out, err = h.DeleteContact(ctx, nil, DeleteInput{ID: "1"})
	if err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}
	if out.Deleted {
		t.Error("expected second deletion to report false")
	}
}

func TestCreateDealResolvesContactName(t *testing.T) {
	fake := newFakeClient()
	contacts := services.NewContactService(fake)
	deals := services.NewDealService(fake)
	ch := NewContactHandlers(contacts)
	dh := NewDealHandlers(deals, contacts)
	ctx := context.Background()

	_, contact, err := ch.AddContact(ctx, nil, AddContactInput{FirstName: "Grace", LastName: "Hopper"})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	_, deal, err := dh.CreateDeal(ctx, nil, CreateDealInput{
		Title:     "Compiler contract",
		Value:     50000,
		ContactID: "1",
	})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if deal.ContactID == nil || *deal.ContactID != contact.ID {
		t.Errorf("expected contact reference, got %v", deal.ContactID)
	}
	if deal.ContactName != "Grace Hopper" {
		t.Errorf("expected resolved contact name, got %q", deal.ContactName)
	}
	if deal.Stage != "lead" {
		t.Errorf("expected default stage, got %q", deal.Stage)
	}
	if deal.Probability != 10 {
		t.Errorf("expected default probability, got %v", deal.Probability)
	}
}

func TestCreateDealDanglingContactDegrades(t *testing.T) {
	fake := newFakeClient()
	contacts := services.NewContactService(fake)
	dh := NewDealHandlers(services.NewDealService(fake), contacts)

	_, deal, err := dh.CreateDeal(context.Background(), nil, CreateDealInput{
		Title:     "Orphan deal",
		ContactID: "42",
	})
	if err != nil {
		t.Fatalf("CreateDeal failed: %v", err)
	}
	if deal.ContactName != "" {
		t.Errorf("expected no contact name for dangling reference, got %q", deal.ContactName)
	}
}

func TestListDealsFiltersByStage(t *testing.T) {
	fake := newFakeClient()
	contacts := services.NewContactService(fake)
	dh := NewDealHandlers(services.NewDealService(fake), contacts)
	ctx := context.Background()

	for _, in := range []CreateDealInput{
		{Title: "One", Stage: "lead"},
		{Title: "Two", Stage: "qualified"},
	} {
		if _, _, err := dh.CreateDeal(ctx, nil, in); err != nil {
			t.Fatalf("CreateDeal failed: %v", err)
		}
	}

	_, out, err := dh.ListDeals(ctx, nil, ListDealsInput{Stage: "qualified"})
	if err != nil {
		t.Fatalf("ListDeals failed: %v", err)
	}
	if len(out.Deals) != 1 || out.Deals[0].Title != "Two" {
		t.Errorf("expected only the qualified deal, got %v", out.Deals)
	}
}

func TestCreateDealRemoteFailure(t *testing.T) {
	fake := newFakeClient()
	fake.failOp = "create"
	dh := NewDealHandlers(services.NewDealService(fake), services.NewContactService(fake))

	_, _, err := dh.CreateDeal(context.Background(), nil, CreateDealInput{Title: "Doomed"})
	if err == nil || !strings.Contains(err.Error(), "create rejected") {
		t.Errorf("expected remote message in error, got %v", err)
	}
}

func TestLogActivityValidatesType(t *testing.T) {
	fake := newFakeClient()
	ah := NewActivityHandlers(
		services.NewActivityService(fake),
		services.NewContactService(fake),
		services.NewDealService(fake),
	)

	_, _, err := ah.LogActivity(context.Background(), nil, LogActivityInput{
		Type: "carrier-pigeon", Subject: "hello",
	})
	if err == nil {
		t.Fatal("expected error for invalid activity type")
	}
}

func TestLogAndListActivities(t *testing.T) {
	fake := newFakeClient()
	contacts := services.NewContactService(fake)
	ah := NewActivityHandlers(services.NewActivityService(fake), contacts, services.NewDealService(fake))
	ch := NewContactHandlers(contacts)
	ctx := context.Background()

	if _, _, err := ch.AddContact(ctx, nil, AddContactInput{FirstName: "Ada", LastName: "Lovelace"}); err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	_, logged, err := ah.LogActivity(ctx, nil, LogActivityInput{
		Type: "call", Subject: "Intro call", ContactID: "1",
	})
	if err != nil {
		t.Fatalf("LogActivity failed: %v", err)
	}
	if logged.Name != "Intro call" {
		t.Errorf("expected derived name, got %q", logged.Name)
	}
	if logged.ContactName != "Ada Lovelace" {
		t.Errorf("expected resolved contact name, got %q", logged.ContactName)
	}

	if _, _, err := ah.LogActivity(ctx, nil, LogActivityInput{Type: "email", Subject: "Followup"}); err != nil {
		t.Fatalf("LogActivity failed: %v", err)
	}

	_, out, err := ah.ListActivities(ctx, nil, ListActivitiesInput{Type: "call"})
	if err != nil {
		t.Fatalf("ListActivities failed: %v", err)
	}
	if len(out.Activities) != 1 || out.Activities[0].Subject != "Intro call" {
		t.Errorf("expected only the call, got %v", out.Activities)
	}

	_, out, err = ah.ListActivities(ctx, nil, ListActivitiesInput{ContactID: "1"})
	if err != nil {
		t.Fatalf("ListActivities failed: %v", err)
	}
	if len(out.Activities) != 1 {
		t.Errorf("expected one activity for contact 1, got %d", len(out.Activities))
	}
}

func TestAddTaskDefaults(t *testing.T) {
	th := NewTaskHandlers(services.NewTaskService(newFakeClient()))

	_, task, err := th.AddTask(context.Background(), nil, AddTaskInput{Title: "Send proposal"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if task.Priority != "medium" {
		t.Errorf("expected default priority, got %q", task.Priority)
	}
	if task.Status != "pending" {
		t.Errorf("expected default status, got %q", task.Status)
	}
	if task.Name != "Send proposal" {
		t.Errorf("expected derived name, got %q", task.Name)
	}
}

func TestCompleteTask(t *testing.T) {
	th := NewTaskHandlers(services.NewTaskService(newFakeClient()))
	ctx := context.Background()

	if _, _, err := th.AddTask(ctx, nil, AddTaskInput{Title: "Call back"}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	_, task, err := th.CompleteTask(ctx, nil, CompleteTaskInput{ID: "1"})
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if task.Status != "completed" {
		t.Errorf("expected completed status, got %q", task.Status)
	}
}

func TestListTasksFilters(t *testing.T) {
	th := NewTaskHandlers(services.NewTaskService(newFakeClient()))
	ctx := context.Background()

	for _, in := range []AddTaskInput{
		{Title: "Urgent thing", Priority: "urgent"},
		{Title: "Normal thing"},
	} {
		if _, _, err := th.AddTask(ctx, nil, in); err != nil {
			t.Fatalf("AddTask failed: %v", err)
		}
	}

	_, out, err := th.ListTasks(ctx, nil, ListTasksInput{Priority: "urgent"})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(out.Tasks) != 1 || out.Tasks[0].Title != "Urgent thing" {
		t.Errorf("expected only the urgent task, got %v", out.Tasks)
	}
}

func TestCreateQuoteDefaults(t *testing.T) {
	qh := NewQuoteHandlers(services.NewQuoteService(newFakeClient()))

	_, quote, err := qh.CreateQuote(context.Background(), nil, CreateQuoteInput{Company: "Acme"})
	if err != nil {
		t.Fatalf("CreateQuote failed: %v", err)
	}
	if quote.Status != "Draft" {
		t.Errorf("expected Draft status, got %q", quote.Status)
	}
	if quote.QuoteDate == "" {
		t.Error("expected quote date to be stamped")
	}
	if !strings.HasPrefix(quote.Name, "Quote - ") {
		t.Errorf("expected generated name, got %q", quote.Name)
	}
}

func TestUpdateQuoteStatus(t *testing.T) {
	qh := NewQuoteHandlers(services.NewQuoteService(newFakeClient()))
	ctx := context.Background()

	if _, _, err := qh.CreateQuote(ctx, nil, CreateQuoteInput{Company: "Acme"}); err != nil {
		t.Fatalf("CreateQuote failed: %v", err)
	}

	_, _, err := qh.UpdateQuoteStatus(ctx, nil, UpdateQuoteStatusInput{ID: "1", Status: "signed"})
	if err == nil {
		t.Fatal("expected error for invalid status")
	}

	_, quote, err := qh.UpdateQuoteStatus(ctx, nil, UpdateQuoteStatusInput{ID: "1", Status: "Sent"})
	if err != nil {
		t.Fatalf("UpdateQuoteStatus failed: %v", err)
	}
	if quote.Status != "Sent" {
		t.Errorf("expected Sent status, got %q", quote.Status)
	}
}

func TestParseID(t *testing.T) {
	if _, err := parseID(""); err == nil {
		t.Error("expected error for empty id")
	}
	if _, err := parseID("abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
	id, err := parseID("42")
	if err != nil || id != 42 {
		t.Errorf("expected 42, got %d (%v)", id, err)
	}
}
