// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"text/template"
)

// claudeAPIURL is the Anthropic Messages API endpoint. Package-level var so
// tests can point it at a local server.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// defaultClaudeModel is used when the config names no model.
const defaultClaudeModel = "claude-sonnet-4-5-20250929"

// rewritePromptTmpl instructs the model to translate one chunk into plain
// language while keeping the document's shape intact.
var rewritePromptTmpl = template.Must(template.New("rewrite").Parse(`You are a plain-language editor. Rewrite the following excerpt from a technical document so a general reader can follow it.

Rules:
- Replace domain terminology with everyday language.
- Keep the document structure: headings stay headings, lists stay lists, paragraph breaks stay where they are.
- When a technical term has to stay, add a brief explanation in parentheses the first time it appears.
- Leave out tables and any author names, affiliations, or attribution lines.
- Respond with only the rewritten text as Markdown. Do not add commentary before or after it.

Excerpt:
{{.Chunk}}
`))

// renderPrompt executes the rewrite prompt template with the given chunk.
func renderPrompt(chunk string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Chunk string }{Chunk: chunk}
	if err := rewritePromptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}
	return buf.String(), nil
}

// ClaudeRewriter rewrites chunks through the Anthropic Messages API.
type ClaudeRewriter struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Client      *http.Client
}

type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	Messages    []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContentBlock `json:"content"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Rewrite sends the prompt to the Claude API and returns the first text
// block of the response. One call, no retries: a transient failure is the
// caller's to handle as a failed chunk.
func (c *ClaudeRewriter) Rewrite(ctx context.Context, prompt string) (string, error) {
	model := c.Model
	if model == "" {
		model = defaultClaudeModel
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxOutputTokens
	}

	reqBody := claudeRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: c.Temperature,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Claude API returned status %d: %s", resp.StatusCode, string(body))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(cResp.Content) == 0 {
		return "", fmt.Errorf("empty content in Claude API response")
	}

	for _, block := range cResp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", fmt.Errorf("no text block in Claude API response")
}
