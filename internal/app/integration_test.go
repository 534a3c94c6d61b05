//go:build integration

package app_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func doJSON(t *testing.T, method, url, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	out := map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, url, err)
	}
	return resp.StatusCode, out
}

func TestHealthz(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	resp, err := http.Get(fmt.Sprintf("%s/healthz", baseURL))
	if err != nil {
		t.Fatalf("health check request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
}

func TestCategoriesSeeded(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	status, body := doJSON(t, http.MethodGet, baseURL+"/categories", "", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	categories, ok := body["categories"].(map[string]interface{})
	if !ok || len(categories) == 0 {
		t.Fatalf("expected seeded categories, got %v", body["categories"])
	}
}

func TestCreateSearchDeleteFlow(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	token := os.Getenv("INTEGRATION_EDITOR_TOKEN")
	marker := fmt.Sprintf("integration-%d", time.Now().UnixNano())

	status, body := doJSON(t, http.MethodPost, baseURL+"/questions", token, map[string]interface{}{
		"question":   "What is " + marker + "?",
		"answer":     "A test",
		"category":   1,
		"difficulty": 2,
	})
	if status != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %v", status, body)
	}
	id := int(body["created"].(float64))

	status, body = doJSON(t, http.MethodPost, baseURL+"/questions/search", "", map[string]string{"search_term": marker})
	if status != http.StatusOK {
		t.Fatalf("search: expected 200, got %d: %v", status, body)
	}
	if total := body["total_questions"].(float64); total != 1 {
		t.Fatalf("search: expected 1 match, got %v", total)
	}

	status, body = doJSON(t, http.MethodPost, baseURL+"/questions/search", "", map[string]string{"search_term": "_" + marker})
	if status != http.StatusOK {
		t.Fatalf("wildcard search: expected 200, got %d: %v", status, body)
	}
	if total := body["total_questions"].(float64); total != 0 {
		t.Fatalf("wildcard search: underscore must match literally, got %v matches", total)
	}

	url := fmt.Sprintf("%s/questions/%d", baseURL, id)
	status, body = doJSON(t, http.MethodDelete, url, token, nil)
	if status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %v", status, body)
	}
	status, _ = doJSON(t, http.MethodDelete, url, token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", status)
	}
}

func TestQuizNeverRepeats(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	previous := []int{}
	seen := map[int]bool{}

	for i := 0; i < 1000; i++ {
		status, body := doJSON(t, http.MethodPost, baseURL+"/quizzes", "", map[string]interface{}{
			"previous_questions": previous,
			"quiz_category":      map[string]interface{}{"id": 0, "type": "click"},
		})
		if status != http.StatusOK {
			t.Fatalf("quiz: expected 200, got %d: %v", status, body)
		}
		q, ok := body["question"].(map[string]interface{})
		if !ok {
			return
		}
		id := int(q["id"].(float64))
		if seen[id] {
			t.Fatalf("question %d served twice", id)
		}
		seen[id] = true
		previous = append(previous, id)
	}
	t.Fatal("quiz did not exhaust the bank")
}
