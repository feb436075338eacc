// ABOUTME: Tests for the HTTP record-store client
// ABOUTME: Uses httptest to verify request shapes and envelope decoding
package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewHTTPClient(&Config{
		BaseURL:   server.URL,
		ProjectID: "proj-123",
		PublicKey: "key-abc",
	}, server.Client())
}

func TestFetchRecordsRequestShape(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	var gotHeaders http.Header

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(ListEnvelope{
			Success: true,
			Data:    []Record{{"Id": float64(1), "Name": "Jane Doe"}},
		})
	})

	env, err := client.FetchRecords(context.Background(), "contact_c", []string{"Id", "Name"})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/tables/contact_c/fetch", gotPath)
	assert.Equal(t, "proj-123", gotHeaders.Get("X-Apper-Project-Id"))
	assert.Equal(t, "key-abc", gotHeaders.Get("X-Apper-Public-Key"))
	assert.NotEmpty(t, gotHeaders.Get("X-Request-Id"))

	fields, ok := gotBody["fields"].([]any)
	require.True(t, ok, "fields missing from request body")
	require.Len(t, fields, 2)
	first := fields[0].(map[string]any)["field"].(map[string]any)
	assert.Equal(t, "Id", first["Name"])

	require.True(t, env.Success)
	require.Len(t, env.Data, 1)
	assert.Equal(t, 1, env.Data[0].ID())
}

func TestGetRecordByIDNullBody(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	})

	env, err := client.GetRecordByID(context.Background(), "deal_c", 42, []string{"Id"})
	require.NoError(t, err)
	assert.Nil(t, env.Data)
}

func TestGetRecordByIDFound(t *testing.T) {
	var gotBody map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(SingleEnvelope{Data: Record{"Id": float64(42)}})
	})

	env, err := client.GetRecordByID(context.Background(), "deal_c", 42, []string{"Id"})
	require.NoError(t, err)
	assert.Equal(t, float64(42), gotBody["Id"])
	assert.Equal(t, 42, env.Data.ID())
}

func TestCreateRecordsBody(t *testing.T) {
	var gotBody map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(WriteEnvelope{
			Success: true,
			Results: []WriteResult{{Success: true, Data: Record{"Id": float64(7)}}},
		})
	})

	env, err := client.CreateRecords(context.Background(), "task_c", []Record{{"title_c": "t"}})
	require.NoError(t, err)

	records := gotBody["records"].([]any)
	require.Len(t, records, 1)
	assert.Equal(t, "t", records[0].(map[string]any)["title_c"])
	require.Len(t, env.Results, 1)
	assert.True(t, env.Results[0].Success)
}

func TestDeleteRecordsBody(t *testing.T) {
	var gotBody map[string]any
	var gotPath string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(WriteEnvelope{Success: true})
	})

	env, err := client.DeleteRecords(context.Background(), "quote_c", []int{5})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/tables/quote_c/delete", gotPath)
	ids := gotBody["RecordIds"].([]any)
	require.Len(t, ids, 1)
	assert.Equal(t, float64(5), ids[0])
	assert.True(t, env.Success)
}

func TestNonOKStatusIsError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	_, err := client.FetchRecords(context.Background(), "contact_c", []string{"Id"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestOpErrorMessage(t *testing.T) {
	err := &OpError{Op: "create", Table: "contact_c", Message: "bad field"}
	assert.Equal(t, "create on contact_c failed: bad field", err.Error())

	err = &OpError{Op: "update", Table: "deal_c"}
	assert.Equal(t, "update on deal_c failed", err.Error())
}
