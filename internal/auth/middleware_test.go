package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
)

func guardedHandler(tokens *jwt.Manager) http.Handler {
	return RequireEditor(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			w.Header().Set("X-Subject", claims.Subject)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestRequireEditorDisabled(t *testing.T) {
	rec := httptest.NewRecorder()
	guardedHandler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/questions/1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireEditor(t *testing.T) {
	tokens := jwt.NewManager(jwt.TokenConfig{Secret: []byte("secret")})
	editor, err := tokens.Issue("alice", jwt.RoleEditor, time.Hour)
	require.NoError(t, err)
	viewer, err := tokens.Issue("bob", "viewer", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + editor, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + viewer, http.StatusUnauthorized},
		{"editor", "Bearer " + editor, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/questions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			guardedHandler(tokens).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, "alice", rec.Header().Get("X-Subject"))
			} else {
				assert.Contains(t, rec.Body.String(), `"success":false`)
			}
		})
	}
}
