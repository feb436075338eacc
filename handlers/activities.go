// ABOUTME: Activity MCP tool handlers
// ABOUTME: Implements log_activity, list_activities, and delete_activity tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/services"
	"github.com/harperreed/apexcrm/store"
)

type ActivityHandlers struct {
	svc      *services.Service
	contacts *services.Service
	deals    *services.Service
}

func NewActivityHandlers(svc, contacts, deals *services.Service) *ActivityHandlers {
	return &ActivityHandlers{svc: svc, contacts: contacts, deals: deals}
}

type LogActivityInput struct {
	Type        string `json:"type" jsonschema:"Activity type: call, email, meeting, note (required)"`
	Subject     string `json:"subject" jsonschema:"Short summary of the activity (required)"`
	Description string `json:"description,omitempty" jsonschema:"Longer notes"`
	ContactID   string `json:"contact_id,omitempty" jsonschema:"Associated contact ID"`
	DealID      string `json:"deal_id,omitempty" jsonschema:"Associated deal ID"`
}

type ActivityOutput struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Description string `json:"description,omitempty"`
	ContactID   *int   `json:"contact_id,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	DealID      *int   `json:"deal_id,omitempty"`
	DealName    string `json:"deal_name,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func (h *ActivityHandlers) activityToOutput(ctx context.Context, r store.Record) ActivityOutput {
	a := models.ActivityFromRecord(r)
	out := ActivityOutput{
		ID:          a.ID,
		Name:        a.Name,
		Type:        a.Type,
		Subject:     a.Subject,
		Description: a.Description,
		ContactID:   a.ContactID,
		DealID:      a.DealID,
		CreatedAt:   a.CreatedAt,
	}

	if a.ContactID != nil {
		if contact := h.contacts.GetByID(ctx, *a.ContactID); contact != nil {
			out.ContactName = contact.String("Name")
		}
	}
	if a.DealID != nil {
		if deal := h.deals.GetByID(ctx, *a.DealID); deal != nil {
			out.DealName = deal.String("Name")
		}
	}

	return out
}

func (h *ActivityHandlers) LogActivity(ctx context.Context, request *mcp.CallToolRequest, input LogActivityInput) (*mcp.CallToolResult, ActivityOutput, error) {
	if input.Subject == "" {
		return nil, ActivityOutput{}, fmt.Errorf("subject is required")
	}
	switch input.Type {
	case models.ActivityCall, models.ActivityEmail, models.ActivityMeeting, models.ActivityNote:
	default:
		return nil, ActivityOutput{}, fmt.Errorf("invalid activity type %q", input.Type)
	}

	record, err := h.svc.Create(ctx, store.Record{
		"type_c":        input.Type,
		"subject_c":     input.Subject,
		"description_c": input.Description,
		"contact_id_c":  input.ContactID,
		"deal_id_c":     input.DealID,
	})
	if err != nil {
		return nil, ActivityOutput{}, fmt.Errorf("failed to log activity: %w", err)
	}
	if record == nil {
		return nil, ActivityOutput{}, fmt.Errorf("activity was not logged")
	}

	return nil, h.activityToOutput(ctx, record), nil
}

type ListActivitiesInput struct {
	Type      string `json:"type,omitempty" jsonschema:"Filter by activity type"`
	ContactID string `json:"contact_id,omitempty" jsonschema:"Filter by associated contact ID"`
	DealID    string `json:"deal_id,omitempty" jsonschema:"Filter by associated deal ID"`
}

type ListActivitiesOutput struct {
	Activities []ActivityOutput `json:"activities"`
}

func (h *ActivityHandlers) ListActivities(ctx context.Context, request *mcp.CallToolRequest, input ListActivitiesInput) (*mcp.CallToolResult, ListActivitiesOutput, error) {
	records := h.svc.List(ctx)

	var contactID, dealID int
	if input.ContactID != "" {
		id, err := parseID(input.ContactID)
		if err != nil {
			return nil, ListActivitiesOutput{}, err
		}
		contactID = id
	}
	if input.DealID != "" {
		id, err := parseID(input.DealID)
		if err != nil {
			return nil, ListActivitiesOutput{}, err
		}
		dealID = id
	}

	out := ListActivitiesOutput{Activities: []ActivityOutput{}}
	for _, r := range records {
		a := models.ActivityFromRecord(r)
		if input.Type != "" && a.Type != input.Type {
			continue
		}
		if contactID != 0 && (a.ContactID == nil || *a.ContactID != contactID) {
			continue
		}
		if dealID != 0 && (a.DealID == nil || *a.DealID != dealID) {
			continue
		}
		out.Activities = append(out.Activities, h.activityToOutput(ctx, r))
	}

	return nil, out, nil
}

func (h *ActivityHandlers) DeleteActivity(ctx context.Context, request *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	return nil, DeleteOutput{Deleted: h.svc.Delete(ctx, id)}, nil
}
