// ABOUTME: Tests for dashboard statistics generation
// ABOUTME: Uses an in-memory fake client behind the entity services
package viz

import (
	"context"
	"strings"
	"testing"

	"github.com/harperreed/apexcrm/services"
	"github.com/harperreed/apexcrm/store"
)

type fakeClient struct {
	tables map[string][]store.Record
}

func (f *fakeClient) FetchRecords(ctx context.Context, table string, fields []string) (*store.ListEnvelope, error) {
	return &store.ListEnvelope{Success: true, Data: f.tables[table]}, nil
}

func (f *fakeClient) GetRecordByID(ctx context.Context, table string, id int, fields []string) (*store.SingleEnvelope, error) {
	return &store.SingleEnvelope{}, nil
}

func (f *fakeClient) CreateRecords(ctx context.Context, table string, records []store.Record) (*store.WriteEnvelope, error) {
	return &store.WriteEnvelope{Success: true}, nil
}

func (f *fakeClient) UpdateRecords(ctx context.Context, table string, records []store.Record) (*store.WriteEnvelope, error) {
	return &store.WriteEnvelope{Success: true}, nil
}

func (f *fakeClient) DeleteRecords(ctx context.Context, table string, ids []int) (*store.WriteEnvelope, error) {
	return &store.WriteEnvelope{Success: true}, nil
}

func TestGenerateDashboardStats(t *testing.T) {
	client := &fakeClient{tables: map[string][]store.Record{
		"contact_c": {
			{"Id": float64(1), "Name": "Ada Lovelace"},
		},
		"deal_c": {
			{"Id": float64(1), "stage_c": "lead", "value_c": float64(1000)},
			{"Id": float64(2), "stage_c": "lead", "value_c": float64(2000)},
			{"Id": float64(3), "stage_c": "closed-won", "value_c": float64(5000)},
		},
		"task_c": {
			{"Id": float64(1), "status_c": "pending", "priority_c": "urgent"},
			{"Id": float64(2), "status_c": "completed"},
		},
		"quote_c": {
			{"Id": float64(1), "status_c": "Sent"},
			{"Id": float64(2), "status_c": "Accepted"},
		},
	}}

	stats := GenerateDashboardStats(context.Background(),
		services.NewContactService(client),
		services.NewDealService(client),
		services.NewActivityService(client),
		services.NewTaskService(client),
		services.NewQuoteService(client),
	)

	if stats.TotalContacts != 1 || stats.TotalDeals != 3 || stats.TotalQuotes != 2 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if lead := stats.PipelineByStage["lead"]; lead.Count != 2 || lead.Value != 3000 {
		t.Errorf("unexpected lead stage stats: %+v", lead)
	}
	if stats.OpenTasks != 1 {
		t.Errorf("expected 1 open task, got %d", stats.OpenTasks)
	}
	if stats.OverdueStats["urgent"] != 1 {
		t.Errorf("expected 1 urgent open task, got %d", stats.OverdueStats["urgent"])
	}
	if stats.PendingQuotes != 1 {
		t.Errorf("expected 1 pending quote, got %d", stats.PendingQuotes)
	}
}

func TestRenderDashboard(t *testing.T) {
	stats := &DashboardStats{
		PipelineByStage: map[string]PipelineStageStats{
			"lead": {Stage: "lead", Count: 2, Value: 3000},
		},
		TotalContacts: 5,
		TotalDeals:    2,
		OpenTasks:     1,
		OverdueStats:  map[string]int{"urgent": 1},
	}

	out := RenderDashboard(stats)
	if !strings.Contains(out, "APEXCRM DASHBOARD") {
		t.Error("expected dashboard header")
	}
	if !strings.Contains(out, "lead") {
		t.Error("expected lead stage in pipeline")
	}
	if !strings.Contains(out, "5 contacts") {
		t.Error("expected contact count")
	}
	if !strings.Contains(out, "1 open task") {
		t.Error("expected open task warning")
	}
}
