package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func echoClient() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ClientFromContext(r.Context())))
	})
}

func TestAPIKeyAuth(t *testing.T) {
	h := APIKeyAuth(map[string]string{"studio": "k-123", "ops": "k-456"})(echoClient())

	tests := []struct {
		name   string
		path   string
		header map[string]string
		status int
		body   string
	}{
		{"bearer", "/v1/scripts/analyze", map[string]string{"Authorization": "Bearer k-123"}, http.StatusOK, "studio"},
		{"raw authorization", "/v1/scripts/analyze", map[string]string{"Authorization": "k-456"}, http.StatusOK, "ops"},
		{"x-api-key", "/v1/scripts/analyze", map[string]string{"X-API-Key": "k-456"}, http.StatusOK, "ops"},
		{"missing", "/v1/scripts/analyze", nil, http.StatusUnauthorized, ""},
		{"wrong", "/v1/scripts/analyze", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized, ""},
		{"probe skips auth", "/health", nil, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}
