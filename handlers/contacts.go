// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, list_contacts, update_contact, and delete_contact tools
package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/services"
	"github.com/harperreed/apexcrm/store"
)

type ContactHandlers struct {
	svc *services.Service
}

func NewContactHandlers(svc *services.Service) *ContactHandlers {
	return &ContactHandlers{svc: svc}
}

type AddContactInput struct {
	FirstName string `json:"first_name" jsonschema:"Contact first name (required)"`
	LastName  string `json:"last_name" jsonschema:"Contact last name (required)"`
	Email     string `json:"email,omitempty" jsonschema:"Contact email address"`
	Phone     string `json:"phone,omitempty" jsonschema:"Contact phone number"`
	Company   string `json:"company,omitempty" jsonschema:"Company name"`
	Position  string `json:"position,omitempty" jsonschema:"Job title"`
}

type ContactOutput struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Company      string `json:"company,omitempty"`
	Position     string `json:"position,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	LastActivity string `json:"last_activity,omitempty"`
}

func contactToOutput(r store.Record) ContactOutput {
	c := models.ContactFromRecord(r)
	return ContactOutput{
		ID:           c.ID,
		Name:         c.Name,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        c.Email,
		Phone:        c.Phone,
		Company:      c.Company,
		Position:     c.Position,
		CreatedAt:    c.CreatedAt,
		LastActivity: c.LastActivity,
	}
}

func (h *ContactHandlers) AddContact(ctx context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, ContactOutput{}, fmt.Errorf("first_name and last_name are required")
	}

	record, err := h.svc.Create(ctx, store.Record{
		"first_name_c": input.FirstName,
		"last_name_c":  input.LastName,
		"email_c":      input.Email,
		"phone_c":      input.Phone,
		"company_c":    input.Company,
		"position_c":   input.Position,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}
	if record == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact was not created")
	}

	return nil, contactToOutput(record), nil
}

type ListContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Case-insensitive substring match on name and email"`
}

type ListContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) ListContacts(ctx context.Context, request *mcp.CallToolRequest, input ListContactsInput) (*mcp.CallToolResult, ListContactsOutput, error) {
	records := h.svc.List(ctx)

	out := ListContactsOutput{Contacts: []ContactOutput{}}
	for _, r := range records {
		c := contactToOutput(r)
		if input.Query != "" && !matchesQuery(input.Query, c.Name, c.Email) {
			continue
		}
		out.Contacts = append(out.Contacts, c)
	}

	return nil, out, nil
}

type GetContactInput struct {
	ID string `json:"id" jsonschema:"Contact ID (required)"`
}

func (h *ContactHandlers) GetContact(ctx context.Context, request *mcp.CallToolRequest, input GetContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, ContactOutput{}, err
	}

	record := h.svc.GetByID(ctx, id)
	if record == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact %d not found", id)
	}

	return nil, contactToOutput(record), nil
}

type UpdateContactInput struct {
	ID        string `json:"id" jsonschema:"Contact ID (required)"`
	FirstName string `json:"first_name,omitempty" jsonschema:"Updated first name"`
	LastName  string `json:"last_name,omitempty" jsonschema:"Updated last name"`
	Email     string `json:"email,omitempty" jsonschema:"Updated email address"`
	Phone     string `json:"phone,omitempty" jsonschema:"Updated phone number"`
	Company   string `json:"company,omitempty" jsonschema:"Updated company"`
	Position  string `json:"position,omitempty" jsonschema:"Updated job title"`
}

func (h *ContactHandlers) UpdateContact(ctx context.Context, request *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, ContactOutput{}, err
	}

	existing := h.svc.GetByID(ctx, id)
	if existing == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact %d not found", id)
	}

	// Merge provided fields over the stored record.
	merged := existing.Clone()
	applyIfSet(merged, "first_name_c", input.FirstName)
	applyIfSet(merged, "last_name_c", input.LastName)
	applyIfSet(merged, "email_c", input.Email)
	applyIfSet(merged, "phone_c", input.Phone)
	applyIfSet(merged, "company_c", input.Company)
	applyIfSet(merged, "position_c", input.Position)

	record, err := h.svc.Update(ctx, id, merged)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}
	if record == nil {
		record = merged
	}

	return nil, contactToOutput(record), nil
}

type DeleteInput struct {
	ID string `json:"id" jsonschema:"Record ID (required)"`
}

type DeleteOutput struct {
	Deleted bool `json:"deleted"`
}

func (h *ContactHandlers) DeleteContact(ctx context.Context, request *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	return nil, DeleteOutput{Deleted: h.svc.Delete(ctx, id)}, nil
}

func parseID(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("id is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func applyIfSet(record store.Record, key, value string) {
	if value != "" {
		record[key] = value
	}
}
