// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements create_deal, list_deals, update_deal, and delete_deal tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/services"
	"github.com/harperreed/apexcrm/store"
)

type DealHandlers struct {
	svc      *services.Service
	contacts *services.Service
}

func NewDealHandlers(svc, contacts *services.Service) *DealHandlers {
	return &DealHandlers{svc: svc, contacts: contacts}
}

type CreateDealInput struct {
	Title             string  `json:"title" jsonschema:"Deal title (required)"`
	Value             float64 `json:"value,omitempty" jsonschema:"Deal value"`
	Stage             string  `json:"stage,omitempty" jsonschema:"Pipeline stage: lead, qualified, proposal, negotiation, closed-won, closed-lost"`
	Probability       float64 `json:"probability,omitempty" jsonschema:"Win probability percentage"`
	ExpectedCloseDate string  `json:"expected_close_date,omitempty" jsonschema:"Expected close date (YYYY-MM-DD)"`
	Description       string  `json:"description,omitempty" jsonschema:"Deal description"`
	ContactID         string  `json:"contact_id,omitempty" jsonschema:"Associated contact ID"`
}

type DealOutput struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Title             string  `json:"title,omitempty"`
	Value             float64 `json:"value"`
	Stage             string  `json:"stage,omitempty"`
	Probability       float64 `json:"probability"`
	ExpectedCloseDate string  `json:"expected_close_date,omitempty"`
	Description       string  `json:"description,omitempty"`
	ContactID         *int    `json:"contact_id,omitempty"`
	ContactName       string  `json:"contact_name,omitempty"`
	CreatedAt         string  `json:"created_at,omitempty"`
}

func (h *DealHandlers) dealToOutput(ctx context.Context, r store.Record) DealOutput {
	d := models.DealFromRecord(r)
	out := DealOutput{
		ID:                d.ID,
		Name:              d.Name,
		Title:             d.Title,
		Value:             d.Value,
		Stage:             d.Stage,
		Probability:       d.Probability,
		ExpectedCloseDate: d.ExpectedCloseDate,
		Description:       d.Description,
		ContactID:         d.ContactID,
		CreatedAt:         d.CreatedAt,
	}

	// Weak reference: a missing contact degrades to no name, never an error.
	if d.ContactID != nil {
		if contact := h.contacts.GetByID(ctx, *d.ContactID); contact != nil {
			out.ContactName = contact.String("Name")
		}
	}

	return out
}

func (h *DealHandlers) CreateDeal(ctx context.Context, request *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.Title == "" {
		return nil, DealOutput{}, fmt.Errorf("title is required")
	}

	data := store.Record{
		"title_c":               input.Title,
		"stage_c":               input.Stage,
		"expected_close_date_c": input.ExpectedCloseDate,
		"description_c":         input.Description,
		"contact_id_c":          input.ContactID,
	}
	if input.Value != 0 {
		data["value_c"] = input.Value
	}
	if input.Probability != 0 {
		data["probability_c"] = input.Probability
	}

	record, err := h.svc.Create(ctx, data)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to create deal: %w", err)
	}
	if record == nil {
		return nil, DealOutput{}, fmt.Errorf("deal was not created")
	}

	return nil, h.dealToOutput(ctx, record), nil
}

type ListDealsInput struct {
	Stage string `json:"stage,omitempty" jsonschema:"Filter by pipeline stage"`
	Query string `json:"query,omitempty" jsonschema:"Case-insensitive substring match on title"`
}

type ListDealsOutput struct {
	Deals []DealOutput `json:"deals"`
}

func (h *DealHandlers) ListDeals(ctx context.Context, request *mcp.CallToolRequest, input ListDealsInput) (*mcp.CallToolResult, ListDealsOutput, error) {
	records := h.svc.List(ctx)

	out := ListDealsOutput{Deals: []DealOutput{}}
	for _, r := range records {
		d := models.DealFromRecord(r)
		if input.Stage != "" && d.Stage != input.Stage {
			continue
		}
		if input.Query != "" && !matchesQuery(input.Query, d.Title, d.Name) {
			continue
		}
		out.Deals = append(out.Deals, h.dealToOutput(ctx, r))
	}

	return nil, out, nil
}

type UpdateDealInput struct {
	ID                string  `json:"id" jsonschema:"Deal ID (required)"`
	Title             string  `json:"title,omitempty" jsonschema:"Updated title"`
	Value             float64 `json:"value,omitempty" jsonschema:"Updated value"`
	Stage             string  `json:"stage,omitempty" jsonschema:"Updated pipeline stage"`
	Probability       float64 `json:"probability,omitempty" jsonschema:"Updated win probability"`
	ExpectedCloseDate string  `json:"expected_close_date,omitempty" jsonschema:"Updated expected close date"`
	Description       string  `json:"description,omitempty" jsonschema:"Updated description"`
	ContactID         string  `json:"contact_id,omitempty" jsonschema:"Updated contact ID"`
}

func (h *DealHandlers) UpdateDeal(ctx context.Context, request *mcp.CallToolRequest, input UpdateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, DealOutput{}, err
	}

	existing := h.svc.GetByID(ctx, id)
	if existing == nil {
		return nil, DealOutput{}, fmt.Errorf("deal %d not found", id)
	}

	merged := existing.Clone()
	applyIfSet(merged, "title_c", input.Title)
	applyIfSet(merged, "stage_c", input.Stage)
	applyIfSet(merged, "expected_close_date_c", input.ExpectedCloseDate)
	applyIfSet(merged, "description_c", input.Description)
	applyIfSet(merged, "contact_id_c", input.ContactID)
	if input.Value != 0 {
		merged["value_c"] = input.Value
	}
	if input.Probability != 0 {
		merged["probability_c"] = input.Probability
	}

	record, err := h.svc.Update(ctx, id, merged)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to update deal: %w", err)
	}
	if record == nil {
		record = merged
	}

	return nil, h.dealToOutput(ctx, record), nil
}

func (h *DealHandlers) DeleteDeal(ctx context.Context, request *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	return nil, DeleteOutput{Deleted: h.svc.Delete(ctx, id)}, nil
}
