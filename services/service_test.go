// ABOUTME: Tests for the generic entity service CRUD contract
// ABOUTME: Covers soft-fail reads/deletes, hard-fail writes, and reconciliation
package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/harperreed/apexcrm/store"
)

// fakeClient records the last call and replays canned envelopes.
type fakeClient struct {
	fetchEnv  *store.ListEnvelope
	getEnv    *store.SingleEnvelope
	writeEnv  *store.WriteEnvelope
	deleteEnv *store.WriteEnvelope
	err       error

	lastTable   string
	lastFields  []string
	lastRecords []store.Record
	lastIDs     []int
}

func (f *fakeClient) FetchRecords(_ context.Context, table string, fields []string) (*store.ListEnvelope, error) {
	f.lastTable, f.lastFields = table, fields
	return f.fetchEnv, f.err
}

func (f *fakeClient) GetRecordByID(_ context.Context, table string, id int, fields []string) (*store.SingleEnvelope, error) {
	f.lastTable, f.lastFields = table, fields
	return f.getEnv, f.err
}

func (f *fakeClient) CreateRecords(_ context.Context, table string, records []store.Record) (*store.WriteEnvelope, error) {
	f.lastTable, f.lastRecords = table, records
	return f.writeEnv, f.err
}

func (f *fakeClient) UpdateRecords(_ context.Context, table string, records []store.Record) (*store.WriteEnvelope, error) {
	f.lastTable, f.lastRecords = table, records
	return f.writeEnv, f.err
}

func (f *fakeClient) DeleteRecords(_ context.Context, table string, ids []int) (*store.WriteEnvelope, error) {
	f.lastTable, f.lastIDs = table, ids
	return f.deleteEnv, f.err
}

func TestListRequestsProjection(t *testing.T) {
	client := &fakeClient{fetchEnv: &store.ListEnvelope{
		Success: true,
		Data:    []store.Record{{"Id": float64(1), "Name": "Jane Doe"}},
	}}
	svc := NewContactService(client)

	records := svc.List(context.Background())

	if client.lastTable != TableContact {
		t.Errorf("expected table %s, got %s", TableContact, client.lastTable)
	}
	if len(client.lastFields) != len(ContactSchema().Projection) {
		t.Errorf("expected full projection, got %v", client.lastFields)
	}
	if len(records) != 1 || records[0].ID() != 1 {
		t.Errorf("unexpected records: %v", records)
	}
}

func TestListRemoteFailureYieldsEmpty(t *testing.T) {
	client := &fakeClient{fetchEnv: &store.ListEnvelope{Success: false, Message: "boom"}}
	svc := NewDealService(client)

	records := svc.List(context.Background())

	if records == nil {
		t.Fatal("List must return an empty slice, not nil")
	}
	if len(records) != 0 {
		t.Errorf("expected empty list, got %v", records)
	}
}

func TestListTransportFailureYieldsEmpty(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("connection refused")}
	svc := NewTaskService(client)

	if records := svc.List(context.Background()); len(records) != 0 {
		t.Errorf("expected empty list on transport failure, got %v", records)
	}
}

func TestGetByIDFound(t *testing.T) {
	client := &fakeClient{getEnv: &store.SingleEnvelope{Data: store.Record{"Id": float64(7)}}}
	svc := NewContactService(client)

	record := svc.GetByID(context.Background(), 7)

	if record == nil || record.ID() != 7 {
		t.Errorf("expected record 7, got %v", record)
	}
}

func TestGetByIDMissOrError(t *testing.T) {
	svc := NewContactService(&fakeClient{getEnv: &store.SingleEnvelope{}})
	if record := svc.GetByID(context.Background(), 99); record != nil {
		t.Errorf("expected nil on miss, got %v", record)
	}

	svc = NewContactService(&fakeClient{err: fmt.Errorf("timeout")})
	if record := svc.GetByID(context.Background(), 99); record != nil {
		t.Errorf("expected nil on error, got %v", record)
	}
}

func TestCreateSubmitsSingleNormalizedRecord(t *testing.T) {
	created := store.Record{"Id": float64(12), "Name": "Jane Doe"}
	client := &fakeClient{writeEnv: &store.WriteEnvelope{
		Success: true,
		Results: []store.WriteResult{{Success: true, Data: created}},
	}}
	svc := NewContactService(client)

	record, err := svc.Create(context.Background(), store.Record{
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "jane@x.com",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(client.lastRecords) != 1 {
		t.Fatalf("expected a single-record batch, got %d", len(client.lastRecords))
	}
	payload := client.lastRecords[0]
	if payload["Name"] != "Jane Doe" {
		t.Errorf("expected derived Name, got %v", payload["Name"])
	}
	if payload["first_name_c"] != "Jane" {
		t.Errorf("alias was not resolved: %v", payload)
	}
	if record.ID() != 12 {
		t.Errorf("expected returned record 12, got %v", record)
	}
}

func TestCreateOverallFailure(t *testing.T) {
	client := &fakeClient{writeEnv: &store.WriteEnvelope{Success: false, Message: "table locked"}}
	svc := NewContactService(client)

	_, err := svc.Create(context.Background(), store.Record{"first_name": "x"})
	if err == nil {
		t.Fatal("expected error on overall failure")
	}

	var opErr *store.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *store.OpError, got %T", err)
	}
	if opErr.Op != "create" || opErr.Message != "table locked" {
		t.Errorf("unexpected OpError: %+v", opErr)
	}
}

func TestCreateMixedResultsReturnsSuccess(t *testing.T) {
	good := store.Record{"Id": float64(5)}
	client := &fakeClient{writeEnv: &store.WriteEnvelope{
		Success: true,
		Results: []store.WriteResult{
			{Success: true, Data: good},
			{Success: false, Message: "bad shape"},
		},
	}}
	svc := NewDealService(client)

	record, err := svc.Create(context.Background(), store.Record{"title": "d"})
	if err != nil {
		t.Fatalf("mixed results must not raise: %v", err)
	}
	if record.ID() != 5 {
		t.Errorf("expected the successful element's data, got %v", record)
	}
}

func TestCreateNoSuccessfulResults(t *testing.T) {
	client := &fakeClient{writeEnv: &store.WriteEnvelope{
		Success: true,
		Results: []store.WriteResult{{Success: false, Message: "rejected"}},
	}}
	svc := NewDealService(client)

	record, err := svc.Create(context.Background(), store.Record{"title": "d"})
	if err != nil {
		t.Fatalf("per-record failure must not raise: %v", err)
	}
	if record != nil {
		t.Errorf("expected nil record, got %v", record)
	}
}

func TestCreateWithoutResultsReturnsData(t *testing.T) {
	client := &fakeClient{writeEnv: &store.WriteEnvelope{
		Success: true,
		Data:    store.Record{"Id": float64(3)},
	}}
	svc := NewQuoteService(client)

	record, err := svc.Create(context.Background(), store.Record{"Name": "Q"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if record.ID() != 3 {
		t.Errorf("expected data passthrough, got %v", record)
	}
}

func TestUpdateInjectsIDAndPreservesIdentity(t *testing.T) {
	client := &fakeClient{writeEnv: &store.WriteEnvelope{
		Success: true,
		Results: []store.WriteResult{{Success: true, Data: store.Record{"Id": float64(9)}}},
	}}
	svc := NewContactService(client)

	_, err := svc.Update(context.Background(), 9, store.Record{
		"Id":           12345,
		"first_name_c": "Jane",
		"created_at_c": "1999-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	payload := client.lastRecords[0]
	if payload["Id"] != 9 {
		t.Errorf("Id must come from the argument, got %v", payload["Id"])
	}
	if _, ok := payload["created_at_c"]; ok {
		t.Error("update must never carry the creation timestamp")
	}
}

func TestUpdateOverallFailure(t *testing.T) {
	client := &fakeClient{writeEnv: &store.WriteEnvelope{Success: false, Message: "stale"}}
	svc := NewTaskService(client)

	_, err := svc.Update(context.Background(), 1, store.Record{"title": "t"})

	var opErr *store.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected *store.OpError, got %v", err)
	}
	if opErr.Op != "update" {
		t.Errorf("expected op 'update', got %s", opErr.Op)
	}
}

func TestDeleteSubmitsSingleID(t *testing.T) {
	client := &fakeClient{deleteEnv: &store.WriteEnvelope{
		Success: true,
		Results: []store.WriteResult{{Success: true}},
	}}
	svc := NewActivityService(client)

	if !svc.Delete(context.Background(), 4) {
		t.Error("expected true on successful delete")
	}
	if len(client.lastIDs) != 1 || client.lastIDs[0] != 4 {
		t.Errorf("expected single-id batch [4], got %v", client.lastIDs)
	}
}

func TestDeleteOutcomes(t *testing.T) {
	cases := []struct {
		name string
		env  *store.WriteEnvelope
		err  error
		want bool
	}{
		{"overall failure", &store.WriteEnvelope{Success: false, Message: "nope"}, nil, false},
		{"no results, overall success", &store.WriteEnvelope{Success: true}, nil, true},
		{"mixed results", &store.WriteEnvelope{Success: true, Results: []store.WriteResult{
			{Success: false, Message: "gone"}, {Success: true},
		}}, nil, true},
		{"all results failed", &store.WriteEnvelope{Success: true, Results: []store.WriteResult{
			{Success: false, Message: "gone"},
		}}, nil, false},
		{"transport error", nil, fmt.Errorf("eof"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewQuoteService(&fakeClient{deleteEnv: tc.env, err: tc.err})
			if got := svc.Delete(context.Background(), 1); got != tc.want {
				t.Errorf("Delete = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestServiceTables(t *testing.T) {
	client := &fakeClient{}
	for svc, want := range map[*Service]string{
		NewContactService(client):  TableContact,
		NewDealService(client):     TableDeal,
		NewActivityService(client): TableActivity,
		NewTaskService(client):     TableTask,
		NewQuoteService(client):    TableQuote,
	} {
		if svc.Table() != want {
			t.Errorf("expected table %s, got %s", want, svc.Table())
		}
	}
}
