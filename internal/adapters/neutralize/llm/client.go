// Package llm calls an OpenAI-compatible chat endpoint to produce a neutral
// rendering of message text. Failures are returned to the caller, which
// falls back to the deterministic rules path; this adapter never blocks
// ingestion or export.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"casespine/internal/ports"
)

const Source = "ai"

const systemPrompt = "You neutralize text from a legal communication record. " +
	"Rewrite the message as a short, objective third-person summary with no " +
	"characterizations and no added facts. Return only JSON: {\"neutral\":\"...\"}."

type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	http    *resty.Client
}

func New(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		http:    resty.New().SetTimeout(timeout),
	}
}

func (c *Client) Neutralize(ctx context.Context, text, hint string) (ports.NeutralResult, error) {
	user := "message: " + text
	if hint != "" {
		user += "\ncontext: " + hint
	}
	body := map[string]any{
		"model": c.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": user},
		},
		"temperature":     0.0,
		"response_format": map[string]string{"type": "json_object"},
	}
	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	r := c.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp)
	rr, err := r.Post(strings.TrimRight(c.BaseURL, "/") + "/chat/completions")
	if err != nil {
		return ports.NeutralResult{}, fmt.Errorf("neutralize request: %w", err)
	}
	if rr.IsError() {
		return ports.NeutralResult{}, fmt.Errorf("neutralize: %s; body: %s", rr.Status(), rr.String())
	}
	if len(resp.Choices) == 0 {
		return ports.NeutralResult{}, fmt.Errorf("neutralize: no choices returned")
	}
	neutral, err := extractNeutral(resp.Choices[0].Message.Content)
	if err != nil {
		return ports.NeutralResult{}, err
	}
	return ports.NeutralResult{Neutral: neutral, Source: Source, Model: c.Model}, nil
}

func extractNeutral(content string) (string, error) {
	s := strings.TrimSpace(content)
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := strings.TrimPrefix(s[idx+3:], "json")
		if j := strings.Index(rest, "```"); j >= 0 {
			s = strings.TrimSpace(rest[:j])
		}
	}
	var obj struct {
		Neutral string `json:"neutral"`
	}
	if err := json.Unmarshal([]byte(s), &obj); err == nil && obj.Neutral != "" {
		return obj.Neutral, nil
	}
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			if err := json.Unmarshal([]byte(s[i:j+1]), &obj); err == nil && obj.Neutral != "" {
				return obj.Neutral, nil
			}
		}
	}
	// Accept a plain-text answer when JSON mode was not respected.
	if s != "" && !strings.Contains(s, "{") {
		return s, nil
	}
	return "", fmt.Errorf("failed to parse neutralization JSON; content: %s", abbreviate(s, 500))
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
