// Package ai is the HTTP adapter for the external analysis service. The
// service is treated as an opaque collaborator: requests carry a kind and a
// payload, responses carry a success flag and free text that is stored
// verbatim.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cnkcrm/crm_backend/internal/core/domain"
	portssvc "github.com/cnkcrm/crm_backend/internal/core/ports/services"
)

type analyzeRequest struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

type analyzeResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

// Client calls the external analysis service over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates an analysis client. An empty baseURL yields a client
// whose calls report failure without going to the network, so the rest of
// the application keeps working when no service is configured.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

var _ portssvc.AnalyzerSvcFacade = (*Client)(nil)

// Analyze sends one analysis request and returns the outcome. A non-2xx
// response or transport error is returned as an error; an unsuccessful
// analysis (the service answered but declined) comes back with Success=false.
func (c *Client) Analyze(ctx context.Context, kind string, payload any) (*domain.AnalysisOutcome, error) {
	if c.baseURL == "" {
		return &domain.AnalysisOutcome{Success: false, Text: "analysis service is not configured"}, nil
	}

	body, err := json.Marshal(analyzeRequest{Kind: kind, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("analyze request returned status %d", resp.StatusCode)
	}

	var out analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode analyze response: %w", err)
	}

	return &domain.AnalysisOutcome{Success: out.Success, Text: out.Text}, nil
}
