package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/v1", 5*time.Second, zap.NewNop())
}

func TestClient_Generate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/content/generate", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req GenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Context, "Intent: ")

		json.NewEncoder(w).Encode(map[string]any{
			"headline":    "Big Launch",
			"body":        "We shipped.",
			"cta":         "Book now",
			"platform":    "LinkedIn",
			"campaign_id": "c-1",
		})
	})

	result, err := client.Generate(context.Background(), "Intent: launch\nTarget Audience: founders")
	require.NoError(t, err)
	assert.Equal(t, "Big Launch", result.Headline)
	assert.Equal(t, "LinkedIn", result.Platform)
	assert.Equal(t, "c-1", result.CampaignID)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	t.Run("detail is extracted", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"detail": "context is required"})
		})

		_, err := client.Generate(context.Background(), "x")
		require.Error(t, err)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
		assert.Equal(t, "context is required", apiErr.Detail)
	})

	t.Run("unparseable body yields bare status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("<html>boom</html>"))
		})

		_, err := client.Generate(context.Background(), "x")
		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Empty(t, apiErr.Detail)
	})
}

func TestClient_ExportEmail_FailureEnvelopeIsNotAnError(t *testing.T) {
	// The email endpoint reports delivery failures inside a 200 response;
	// the transport layer must pass the envelope through untouched.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/export/email", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "SMTP not configured",
		})
	})

	resp, err := client.ExportEmail(context.Background(), EmailExportRequest{Recipient: "x@y.z"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "SMTP not configured", resp.Message)
}

func TestClient_UpdateCallStatus(t *testing.T) {
	var gotMethod, gotPath, gotStatus string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotStatus = r.URL.Query().Get("status")
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.UpdateCallStatus(context.Background(), 42, "completed"))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/v1/dashboard/call-queue/42", gotPath)
	assert.Equal(t, "completed", gotStatus)
}

func TestClient_Activity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/dashboard/activity", r.URL.Path)
		assert.Equal(t, "email", r.URL.Query().Get("channel"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{
			"entries": []map[string]any{
				{"channel": "email", "status": "sent", "destination": "x@y.z", "timestamp": time.Now().Format(time.RFC3339)},
			},
			"total": 1,
		})
	})

	resp, err := client.Activity(context.Background(), "email", 20)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "email", resp.Entries[0].Channel)
}

func TestClient_CallQueue(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/dashboard/call-queue", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "lead_name": "Dana", "phone": "+44 20", "script": "hi", "priority": 3},
		})
	})

	items, err := client.CallQueue(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "Dana", items[0].LeadName)
}

func TestClient_UpdateSettings(t *testing.T) {
	host := "smtp.example.com"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/v1/settings", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "smtp.example.com", req["smtp_host"])
		assert.NotContains(t, req, "smtp_password", "omitted fields must not be sent")

		json.NewEncoder(w).Encode(map[string]any{"smtp_host": host})
	})

	resp, err := client.UpdateSettings(context.Background(), SettingsUpdate{SMTPHost: &host})
	require.NoError(t, err)
	assert.Equal(t, host, resp.SMTPHost)
}

func TestClient_BaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/dashboard/stats", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"total_campaigns": 3})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL+"/api/v1/", 5*time.Second, zap.NewNop())
	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCampaigns)
}
