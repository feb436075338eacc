// ABOUTME: Typed display views over remote store records
// ABOUTME: Defines Contact, Deal, Activity, Task, and Quote plus enum constants
package models

import (
	"strconv"
	"time"

	"github.com/harperreed/apexcrm/store"
)

// Deal stages.
const (
	StageLead        = "lead"
	StageQualified   = "qualified"
	StageProposal    = "proposal"
	StageNegotiation = "negotiation"
	StageClosedWon   = "closed-won"
	StageClosedLost  = "closed-lost"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Task statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Activity types.
const (
	ActivityCall    = "call"
	ActivityEmail   = "email"
	ActivityMeeting = "meeting"
	ActivityNote    = "note"
)

// Quote statuses.
const (
	QuoteDraft    = "Draft"
	QuoteSent     = "Sent"
	QuoteAccepted = "Accepted"
	QuoteRejected = "Rejected"
)

// Contact is a display view of a contact_c record.
type Contact struct {
	ID           int
	Name         string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Company      string
	Position     string
	CreatedAt    string
	LastActivity string
}

// Deal is a display view of a deal_c record.
type Deal struct {
	ID                int
	Name              string
	Title             string
	Value             float64
	Stage             string
	Probability       float64
	ExpectedCloseDate string
	Description       string
	ContactID         *int
	CreatedAt         string
}

// Activity is a display view of an activity_c record.
type Activity struct {
	ID          int
	Name        string
	Type        string
	Subject     string
	Description string
	ContactID   *int
	DealID      *int
	CreatedAt   string
}

// Task is a display view of a task_c record.
type Task struct {
	ID          int
	Name        string
	Title       string
	Description string
	DueDate     string
	Priority    string
	Status      string
	ContactID   *int
	DealID      *int
}

// Address is one of a quote's flattened address sub-objects.
type Address struct {
	Name    string
	Street  string
	City    string
	State   string
	Country string
	Pincode string
}

// Quote is a display view of a quote_c record.
type Quote struct {
	ID             int
	Name           string
	Company        string
	ContactID      *int
	DealID         *int
	QuoteDate      string
	Status         string
	DeliveryMethod string
	ExpiresOn      string
	Billing        Address
	Shipping       Address
}

func ContactFromRecord(r store.Record) Contact {
	return Contact{
		ID:           r.ID(),
		Name:         r.String("Name"),
		FirstName:    r.String("first_name_c"),
		LastName:     r.String("last_name_c"),
		Email:        r.String("email_c"),
		Phone:        r.String("phone_c"),
		Company:      r.String("company_c"),
		Position:     r.String("position_c"),
		CreatedAt:    r.String("created_at_c"),
		LastActivity: r.String("last_activity_c"),
	}
}

func DealFromRecord(r store.Record) Deal {
	return Deal{
		ID:                r.ID(),
		Name:              r.String("Name"),
		Title:             r.String("title_c"),
		Value:             r.Float("value_c"),
		Stage:             r.String("stage_c"),
		Probability:       r.Float("probability_c"),
		ExpectedCloseDate: r.String("expected_close_date_c"),
		Description:       r.String("description_c"),
		ContactID:         ref(r, "contact_id_c"),
		CreatedAt:         r.String("created_at_c"),
	}
}

func ActivityFromRecord(r store.Record) Activity {
	return Activity{
		ID:          r.ID(),
		Name:        r.String("Name"),
		Type:        r.String("type_c"),
		Subject:     r.String("subject_c"),
		Description: r.String("description_c"),
		ContactID:   ref(r, "contact_id_c"),
		DealID:      ref(r, "deal_id_c"),
		CreatedAt:   r.String("created_at_c"),
	}
}

func TaskFromRecord(r store.Record) Task {
	return Task{
		ID:          r.ID(),
		Name:        r.String("Name"),
		Title:       r.String("title_c"),
		Description: r.String("description_c"),
		DueDate:     r.String("due_date_c"),
		Priority:    r.String("priority_c"),
		Status:      r.String("status_c"),
		ContactID:   ref(r, "contact_id_c"),
		DealID:      ref(r, "deal_id_c"),
	}
}

func QuoteFromRecord(r store.Record) Quote {
	return Quote{
		ID:             r.ID(),
		Name:           r.String("Name"),
		Company:        r.String("company_c"),
		ContactID:      ref(r, "contact_id_c"),
		DealID:         ref(r, "deal_id_c"),
		QuoteDate:      r.String("quote_date_c"),
		Status:         r.String("status_c"),
		DeliveryMethod: r.String("delivery_method_c"),
		ExpiresOn:      r.String("expires_on_c"),
		Billing: Address{
			Name:    r.String("billing_address_bill_to_name_c"),
			Street:  r.String("billing_address_street_c"),
			City:    r.String("billing_address_city_c"),
			State:   r.String("billing_address_state_c"),
			Country: r.String("billing_address_country_c"),
			Pincode: r.String("billing_address_pincode_c"),
		},
		Shipping: Address{
			Name:    r.String("shipping_address_ship_to_name_c"),
			Street:  r.String("shipping_address_street_c"),
			City:    r.String("shipping_address_city_c"),
			State:   r.String("shipping_address_state_c"),
			Country: r.String("shipping_address_country_c"),
			Pincode: r.String("shipping_address_pincode_c"),
		},
	}
}

// ref reads a weak foreign key. Missing, null, and empty values all mean
// "no reference".
func ref(r store.Record, key string) *int {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil
	}
	id := r.Int(key)
	return &id
}

// RefLabel renders a weak reference for display: the referenced name when the
// lookup succeeded, "N/A" otherwise. A dangling reference degrades, never errors.
func RefLabel(id *int, name string) string {
	if id == nil {
		return "N/A"
	}
	if name == "" {
		return "Unknown (#" + strconv.Itoa(*id) + ")"
	}
	return name
}

// FormatDate renders an RFC 3339 timestamp as a short date, passing through
// values it cannot parse.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}
