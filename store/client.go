// ABOUTME: Client interface and HTTP implementation for the Apper record store
// ABOUTME: Maps the five table operations onto authenticated JSON requests
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// Client is the surface the entity services consume. Implementations return
// the store's envelope verbatim; reconciliation happens above this layer.
type Client interface {
	FetchRecords(ctx context.Context, table string, fields []string) (*ListEnvelope, error)
	GetRecordByID(ctx context.Context, table string, id int, fields []string) (*SingleEnvelope, error)
	CreateRecords(ctx context.Context, table string, records []Record) (*WriteEnvelope, error)
	UpdateRecords(ctx context.Context, table string, records []Record) (*WriteEnvelope, error)
	DeleteRecords(ctx context.Context, table string, ids []int) (*WriteEnvelope, error)
}

// fieldSelector matches the store's field projection parameter shape.
type fieldSelector struct {
	Field struct {
		Name string `json:"Name"`
	} `json:"field"`
}

func fieldSelectors(fields []string) []fieldSelector {
	out := make([]fieldSelector, len(fields))
	for i, name := range fields {
		out[i].Field.Name = name
	}
	return out
}

// HTTPClient talks to the record store over HTTPS. It performs no retries and
// imposes no timeout of its own; pass an http.Client with a timeout if one is
// wanted.
type HTTPClient struct {
	baseURL   string
	projectID string
	publicKey string
	http      *http.Client
}

// NewHTTPClient builds a client from config. httpClient may be nil, in which
// case http.DefaultClient is used.
func NewHTTPClient(cfg *Config, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:   cfg.BaseURL,
		projectID: cfg.ProjectID,
		publicKey: cfg.PublicKey,
		http:      httpClient,
	}
}

func (c *HTTPClient) FetchRecords(ctx context.Context, table string, fields []string) (*ListEnvelope, error) {
	body := map[string]any{"fields": fieldSelectors(fields)}
	env := &ListEnvelope{}
	if err := c.post(ctx, table, "fetch", body, env); err != nil {
		return nil, err
	}
	return env, nil
}

func (c *HTTPClient) GetRecordByID(ctx context.Context, table string, id int, fields []string) (*SingleEnvelope, error) {
	body := map[string]any{"Id": id, "fields": fieldSelectors(fields)}
	env := &SingleEnvelope{}
	if err := c.post(ctx, table, "get", body, env); err != nil {
		return nil, err
	}
	return env, nil
}

func (c *HTTPClient) CreateRecords(ctx context.Context, table string, records []Record) (*WriteEnvelope, error) {
	body := map[string]any{"records": records}
	env := &WriteEnvelope{}
	if err := c.post(ctx, table, "create", body, env); err != nil {
		return nil, err
	}
	return env, nil
}

func (c *HTTPClient) UpdateRecords(ctx context.Context, table string, records []Record) (*WriteEnvelope, error) {
	body := map[string]any{"records": records}
	env := &WriteEnvelope{}
	if err := c.post(ctx, table, "update", body, env); err != nil {
		return nil, err
	}
	return env, nil
}

func (c *HTTPClient) DeleteRecords(ctx context.Context, table string, ids []int) (*WriteEnvelope, error) {
	body := map[string]any{"RecordIds": ids}
	env := &WriteEnvelope{}
	if err := c.post(ctx, table, "delete", body, env); err != nil {
		return nil, err
	}
	return env, nil
}

func (c *HTTPClient) post(ctx context.Context, table, op string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", op, err)
	}

	url := fmt.Sprintf("%s/api/v1/tables/%s/%s", c.baseURL, table, op)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Apper-Project-Id", c.projectID)
	req.Header.Set("X-Apper-Public-Key", c.publicKey)
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s returned status %d: %s", op, table, resp.StatusCode, truncate(respBody, 200))
	}

	// A null body means "not found" for get; leave the envelope zeroed.
	if len(bytes.TrimSpace(respBody)) == 0 || bytes.Equal(bytes.TrimSpace(respBody), []byte("null")) {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}

	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
