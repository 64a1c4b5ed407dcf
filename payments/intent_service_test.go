package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		secretKey, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "sk_test_123", secretKey)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "5000", r.FormValue("amount"))
		assert.Equal(t, "usd", r.FormValue("currency"))
		assert.Equal(t, "c1", r.FormValue("metadata[course_id]"))
		assert.Equal(t, "u1", r.FormValue("metadata[user_id]"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":            "pi_123",
			"client_secret": "pi_123_secret_xyz",
			"status":        "requires_payment_method",
			"amount":        5000,
			"currency":      "usd",
		})
	}))
	defer srv.Close()

	ic := NewIntentClientWith(srv.URL, "sk_test_123")
	intent, err := ic.CreateIntent(5000, "usd", map[string]string{"course_id": "c1", "user_id": "u1"})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_xyz", intent.ClientSecret)
	assert.Equal(t, int64(5000), intent.Amount)
}

func TestRetrieveIntent(t *testing.T) {
	t.Run("Succeeded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"id":       "pi_123",
				"status":   "succeeded",
				"amount":   5000,
				"currency": "usd",
				"metadata": map[string]string{"course_id": "c1", "user_id": "u1"},
			})
		}))
		defer srv.Close()

		ic := NewIntentClientWith(srv.URL, "sk_test_123")
		intent, err := ic.RetrieveIntent("pi_123")
		require.NoError(t, err)
		assert.Equal(t, "succeeded", intent.Status)
		assert.Equal(t, "c1", intent.Metadata["course_id"])
	})

	t.Run("NotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":{"type":"invalid_request_error"}}`, http.StatusNotFound)
		}))
		defer srv.Close()

		ic := NewIntentClientWith(srv.URL, "sk_test_123")
		_, err := ic.RetrieveIntent("pi_missing")
		assert.Error(t, err)
	})
}
