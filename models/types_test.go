// ABOUTME: Tests for record-to-view decoding and display helpers
// ABOUTME: Covers weak reference handling and graceful degradation
package models

import (
	"testing"

	"github.com/harperreed/apexcrm/store"
)

func TestContactFromRecord(t *testing.T) {
	c := ContactFromRecord(store.Record{
		"Id":           float64(3),
		"Name":         "Jane Doe",
		"first_name_c": "Jane",
		"last_name_c":  "Doe",
		"email_c":      "jane@x.com",
	})

	if c.ID != 3 || c.Name != "Jane Doe" || c.Email != "jane@x.com" {
		t.Errorf("unexpected contact: %+v", c)
	}
}

func TestDealFromRecordReferences(t *testing.T) {
	d := DealFromRecord(store.Record{
		"Id":           float64(1),
		"value_c":      float64(1000),
		"contact_id_c": float64(42),
	})
	if d.ContactID == nil || *d.ContactID != 42 {
		t.Errorf("expected contact reference 42, got %v", d.ContactID)
	}
	if d.Value != 1000 {
		t.Errorf("expected value 1000, got %v", d.Value)
	}

	// Null, empty, and missing references all mean "no reference".
	for _, rec := range []store.Record{
		{"Id": float64(1), "contact_id_c": nil},
		{"Id": float64(1), "contact_id_c": ""},
		{"Id": float64(1)},
	} {
		if d := DealFromRecord(rec); d.ContactID != nil {
			t.Errorf("expected nil reference for %v, got %v", rec, d.ContactID)
		}
	}
}

func TestTaskFromRecordStringID(t *testing.T) {
	task := TaskFromRecord(store.Record{"Id": float64(2), "deal_id_c": "17"})
	if task.DealID == nil || *task.DealID != 17 {
		t.Errorf("expected deal reference 17, got %v", task.DealID)
	}
}

func TestQuoteFromRecordAddresses(t *testing.T) {
	q := QuoteFromRecord(store.Record{
		"Id":                              float64(5),
		"billing_address_city_c":          "Chicago",
		"shipping_address_ship_to_name_c": "Warehouse B",
	})
	if q.Billing.City != "Chicago" {
		t.Errorf("expected billing city, got %+v", q.Billing)
	}
	if q.Shipping.Name != "Warehouse B" {
		t.Errorf("expected shipping name, got %+v", q.Shipping)
	}
}

func TestRefLabel(t *testing.T) {
	if got := RefLabel(nil, ""); got != "N/A" {
		t.Errorf("expected N/A, got %s", got)
	}

	id := 9
	if got := RefLabel(&id, "Jane Doe"); got != "Jane Doe" {
		t.Errorf("expected name, got %s", got)
	}
	if got := RefLabel(&id, ""); got != "Unknown (#9)" {
		t.Errorf("expected unknown marker, got %s", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2026-01-15T10:00:00Z"); got != "Jan 15, 2026" {
		t.Errorf("unexpected format: %s", got)
	}
	if got := FormatDate("2026-01-15"); got != "Jan 15, 2026" {
		t.Errorf("unexpected format: %s", got)
	}
	if got := FormatDate("soon"); got != "soon" {
		t.Errorf("unparseable values pass through, got %s", got)
	}
	if got := FormatDate(""); got != "" {
		t.Errorf("empty stays empty, got %s", got)
	}
}
