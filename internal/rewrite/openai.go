// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// openaiAPIURL is the chat completions endpoint. Package-level var so tests
// can point it at a local server. Any OpenAI-compatible provider works.
var openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// defaultOpenAIModel is used when the config names no model.
const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIRewriter rewrites chunks through an OpenAI-compatible chat
// completions API.
type OpenAIRewriter struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Client      *http.Client
}

type openaiRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	Messages    []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}

// Rewrite sends the prompt to the chat completions API and returns the
// first choice's message content. One call, no retries: a transient failure
// is the caller's to handle as a failed chunk.
func (o *OpenAIRewriter) Rewrite(ctx context.Context, prompt string) (string, error) {
	model := o.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	maxTokens := o.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxOutputTokens
	}

	reqBody := openaiRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: o.Temperature,
		Messages: []openaiMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openaiAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	client := o.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling chat completions API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat completions API returned status %d: %s", resp.StatusCode, string(body))
	}

	var oResp openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(oResp.Choices) == 0 {
		return "", fmt.Errorf("empty choices in chat completions response")
	}

	content := oResp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("no message content in chat completions response")
	}

	return content, nil
}
