package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriviaAPIClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/questions", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("limit"))
		assert.Equal(t, "hard", r.URL.Query().Get("difficulty"))
		assert.Equal(t, "key-123", r.Header.Get("X-API-Key"))
		_, _ = w.Write([]byte(`[{"id":"abc","category":"Film & TV","question":"Who directed Jaws?",
			"difficulty":"hard","correctAnswer":"Steven Spielberg","incorrectAnswers":["x","y","z"]}]`))
	}))
	defer srv.Close()

	client := NewTriviaAPIClient(srv.URL+"/api/", "key-123", srv.Client())
	results, err := client.Fetch(context.Background(), 3, "hard")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, RemoteQuestion{
		Category:   "Film & TV",
		Difficulty: "hard",
		Question:   "Who directed Jaws?",
		Answer:     "Steven Spielberg",
	}, results[0])
}

func TestTriviaAPIClientFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewTriviaAPIClient(srv.URL, "", srv.Client()).Fetch(context.Background(), 1, "")
	assert.Error(t, err)
}
