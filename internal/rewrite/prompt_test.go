// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rewrite

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestRenderPrompt(t *testing.T) {
	got, err := renderPrompt("Mitochondria are the powerhouse of the cell.")
	if err != nil {
		t.Fatalf("renderPrompt() error = %v", err)
	}
	if !strings.Contains(got, "Mitochondria are the powerhouse of the cell.") {
		t.Errorf("prompt does not embed the chunk:\n%s", got)
	}
	if !strings.Contains(got, "parentheses") {
		t.Errorf("prompt lost its glossing instruction:\n%s", got)
	}
	if !strings.Contains(got, "Markdown") {
		t.Errorf("prompt lost its output-format instruction:\n%s", got)
	}
}

func TestClaudeRewrite(t *testing.T) {
	var gotReq claudeRequest
	var gotAPIKey, gotVersion string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"content":[{"type":"text","text":"plain words"}]}`)
	}))
	defer ts.Close()

	oldURL := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = oldURL }()

	c := &ClaudeRewriter{
		APIKey:      "sk-test",
		Model:       "claude-test-1",
		MaxTokens:   512,
		Temperature: 0.2,
		Client:      ts.Client(),
	}

	got, err := c.Rewrite(context.Background(), "rewrite this")
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	if got != "plain words" {
		t.Errorf("Rewrite() = %q, want %q", got, "plain words")
	}
	if gotAPIKey != "sk-test" {
		t.Errorf("x-api-key = %q, want %q", gotAPIKey, "sk-test")
	}
	if gotVersion != "2023-06-01" {
		t.Errorf("anthropic-version = %q, want %q", gotVersion, "2023-06-01")
	}
	if gotReq.Model != "claude-test-1" {
		t.Errorf("request model = %q, want %q", gotReq.Model, "claude-test-1")
	}
	if gotReq.MaxTokens != 512 {
		t.Errorf("request max_tokens = %d, want 512", gotReq.MaxTokens)
	}
	if gotReq.Temperature != 0.2 {
		t.Errorf("request temperature = %v, want 0.2", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "rewrite this" {
		t.Errorf("request messages = %+v, want one user message with the prompt", gotReq.Messages)
	}
}

func TestClaudeRewriteDefaults(t *testing.T) {
	var gotReq claudeRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		fmt.Fprint(w, `{"content":[{"type":"text","text":"ok"}]}`)
	}))
	defer ts.Close()

	oldURL := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = oldURL }()

	c := &ClaudeRewriter{APIKey: "sk-test", Client: ts.Client()}
	if _, err := c.Rewrite(context.Background(), "hello"); err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}

	if gotReq.Model != defaultClaudeModel {
		t.Errorf("request model = %q, want default %q", gotReq.Model, defaultClaudeModel)
	}
	if gotReq.MaxTokens != DefaultMaxOutputTokens {
		t.Errorf("request max_tokens = %d, want default %d", gotReq.MaxTokens, DefaultMaxOutputTokens)
	}
}

func TestClaudeRewriteDoesNotRetry(t *testing.T) {
	// A transient 429 is a plain failure: one call, no backoff loop. The
	// caller drops the chunk instead.
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer ts.Close()

	oldURL := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = oldURL }()

	c := &ClaudeRewriter{APIKey: "sk-test", Client: ts.Client()}
	_, err := c.Rewrite(context.Background(), "hello")
	if err == nil {
		t.Fatal("Rewrite() error = nil, want error on 429")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("server saw %d calls, want exactly 1", n)
	}
}

func TestClaudeRewriteHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	oldURL := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = oldURL }()

	c := &ClaudeRewriter{APIKey: "sk-test", Client: ts.Client()}
	_, err := c.Rewrite(context.Background(), "hello")
	if err == nil {
		t.Fatal("Rewrite() error = nil, want error on 503")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error %q does not mention the status code", err)
	}
}

func TestClaudeRewriteNoTextBlock(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty content", body: `{"content":[]}`},
		{name: "no text block", body: `{"content":[{"type":"tool_use","text":""}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			oldURL := claudeAPIURL
			claudeAPIURL = ts.URL
			defer func() { claudeAPIURL = oldURL }()

			c := &ClaudeRewriter{APIKey: "sk-test", Client: ts.Client()}
			if _, err := c.Rewrite(context.Background(), "hello"); err == nil {
				t.Fatal("Rewrite() error = nil, want error")
			}
		})
	}
}
