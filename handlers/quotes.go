// ABOUTME: Quote MCP tool handlers
// ABOUTME: Implements create_quote, list_quotes, update_quote_status, and delete_quote tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/apexcrm/models"
	"github.com/harperreed/apexcrm/services"
	"github.com/harperreed/apexcrm/store"
)

type QuoteHandlers struct {
	svc *services.Service
}

func NewQuoteHandlers(svc *services.Service) *QuoteHandlers {
	return &QuoteHandlers{svc: svc}
}

type CreateQuoteInput struct {
	Name           string `json:"name,omitempty" jsonschema:"Quote name (generated from the quote date when omitted)"`
	Company        string `json:"company,omitempty" jsonschema:"Customer company"`
	ContactID      string `json:"contact_id,omitempty" jsonschema:"Associated contact ID"`
	DealID         string `json:"deal_id,omitempty" jsonschema:"Associated deal ID"`
	Status         string `json:"status,omitempty" jsonschema:"Quote status: Draft, Sent, Accepted, Rejected (default Draft)"`
	DeliveryMethod string `json:"delivery_method,omitempty" jsonschema:"How the quote is delivered"`
	ExpiresOn      string `json:"expires_on,omitempty" jsonschema:"Expiration date (YYYY-MM-DD)"`
	BillToName     string `json:"bill_to_name,omitempty" jsonschema:"Billing address name"`
	BillingStreet  string `json:"billing_street,omitempty" jsonschema:"Billing street"`
	BillingCity    string `json:"billing_city,omitempty" jsonschema:"Billing city"`
	ShipToName     string `json:"ship_to_name,omitempty" jsonschema:"Shipping address name"`
	ShippingStreet string `json:"shipping_street,omitempty" jsonschema:"Shipping street"`
	ShippingCity   string `json:"shipping_city,omitempty" jsonschema:"Shipping city"`
}

type QuoteOutput struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Company        string `json:"company,omitempty"`
	ContactID      *int   `json:"contact_id,omitempty"`
	DealID         *int   `json:"deal_id,omitempty"`
	QuoteDate      string `json:"quote_date,omitempty"`
	Status         string `json:"status,omitempty"`
	DeliveryMethod string `json:"delivery_method,omitempty"`
	ExpiresOn      string `json:"expires_on,omitempty"`
}

func quoteToOutput(r store.Record) QuoteOutput {
	q := models.QuoteFromRecord(r)
	return QuoteOutput{
		ID:             q.ID,
		Name:           q.Name,
		Company:        q.Company,
		ContactID:      q.ContactID,
		DealID:         q.DealID,
		QuoteDate:      q.QuoteDate,
		Status:         q.Status,
		DeliveryMethod: q.DeliveryMethod,
		ExpiresOn:      q.ExpiresOn,
	}
}

func (h *QuoteHandlers) CreateQuote(ctx context.Context, request *mcp.CallToolRequest, input CreateQuoteInput) (*mcp.CallToolResult, QuoteOutput, error) {
	record, err := h.svc.Create(ctx, store.Record{
		"Name":                            input.Name,
		"company_c":                       input.Company,
		"contact_id_c":                    input.ContactID,
		"deal_id_c":                       input.DealID,
		"status_c":                        input.Status,
		"delivery_method_c":               input.DeliveryMethod,
		"expires_on_c":                    input.ExpiresOn,
		"billing_address_bill_to_name_c":  input.BillToName,
		"billing_address_street_c":        input.BillingStreet,
		"billing_address_city_c":          input.BillingCity,
		"shipping_address_ship_to_name_c": input.ShipToName,
		"shipping_address_street_c":       input.ShippingStreet,
		"shipping_address_city_c":         input.ShippingCity,
	})
	if err != nil {
		return nil, QuoteOutput{}, fmt.Errorf("failed to create quote: %w", err)
	}
	if record == nil {
		return nil, QuoteOutput{}, fmt.Errorf("quote was not created")
	}

	return nil, quoteToOutput(record), nil
}

type ListQuotesInput struct {
	Status string `json:"status,omitempty" jsonschema:"Filter by quote status"`
}

type ListQuotesOutput struct {
	Quotes []QuoteOutput `json:"quotes"`
}

func (h *QuoteHandlers) ListQuotes(ctx context.Context, request *mcp.CallToolRequest, input ListQuotesInput) (*mcp.CallToolResult, ListQuotesOutput, error) {
	records := h.svc.List(ctx)

	out := ListQuotesOutput{Quotes: []QuoteOutput{}}
	for _, r := range records {
		q := quoteToOutput(r)
		if input.Status != "" && q.Status != input.Status {
			continue
		}
		out.Quotes = append(out.Quotes, q)
	}

	return nil, out, nil
}

type UpdateQuoteStatusInput struct {
	ID     string `json:"id" jsonschema:"Quote ID (required)"`
	Status string `json:"status" jsonschema:"New status: Draft, Sent, Accepted, Rejected (required)"`
}

func (h *QuoteHandlers) UpdateQuoteStatus(ctx context.Context, request *mcp.CallToolRequest, input UpdateQuoteStatusInput) (*mcp.CallToolResult, QuoteOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, QuoteOutput{}, err
	}
	switch input.Status {
	case models.QuoteDraft, models.QuoteSent, models.QuoteAccepted, models.QuoteRejected:
	default:
		return nil, QuoteOutput{}, fmt.Errorf("invalid quote status %q", input.Status)
	}

	existing := h.svc.GetByID(ctx, id)
	if existing == nil {
		return nil, QuoteOutput{}, fmt.Errorf("quote %d not found", id)
	}

	merged := existing.Clone()
	merged["status_c"] = input.Status

	record, err := h.svc.Update(ctx, id, merged)
	if err != nil {
		return nil, QuoteOutput{}, fmt.Errorf("failed to update quote: %w", err)
	}
	if record == nil {
		record = merged
	}

	return nil, quoteToOutput(record), nil
}

func (h *QuoteHandlers) DeleteQuote(ctx context.Context, request *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, err
	}

	return nil, DeleteOutput{Deleted: h.svc.Delete(ctx, id)}, nil
}
