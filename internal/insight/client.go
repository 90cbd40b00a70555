// Package insight calls the generative advisory collaborator: one
// request with the parish statistics, one free-text response. Any failure
// degrades to a fixed fallback message and is never retried.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Fallback is surfaced verbatim whenever the collaborator cannot answer.
const Fallback = "L'assistant pastoral rencontre une difficulté technique de connexion. " +
	"Veuillez réessayer ultérieurement pour obtenir vos analyses."

// StatsPayload is the small statistics summary sent with each request.
type StatsPayload struct {
	Fideles    int    `json:"fideles"`
	Finances   int64  `json:"finances"`
	Intentions int    `json:"intentions"`
	CEVs       int    `json:"cevs"`
	Context    string `json:"context"`
}

// Doer abstracts the HTTP client for tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the advisory endpoint. An empty endpoint disables the
// call entirely; every request then yields the fallback.
type Client struct {
	endpoint string
	apiKey   string
	http     Doer
	logger   *slog.Logger
}

type Option func(c *Client)

func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(endpoint, apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	Prompt string       `json:"prompt"`
	Stats  StatsPayload `json:"stats"`
}

type response struct {
	Text string `json:"text"`
}

const prompt = "En tant qu'expert en administration paroissiale au Cameroun, analyse ces statistiques " +
	"et fournis 3 recommandations stratégiques concrètes pour l'engagement des jeunes dans les CEV, " +
	"la transparence financière du Denier du Culte et la gestion des demandes de sacrements."

// PastoralInsights returns the collaborator's advisory text, or Fallback
// on any failure. One attempt only; a failure surfaces directly.
func (c *Client) PastoralInsights(ctx context.Context, stats StatsPayload) string {
	if c.endpoint == "" {
		return Fallback
	}

	body, err := json.Marshal(request{Prompt: prompt, Stats: stats})
	if err != nil {
		c.logger.Warn("insight request encoding failed", "error", err)
		return Fallback
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.Warn("insight request build failed", "error", err)
		return Fallback
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("insight call failed", "error", err)
		return Fallback
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("insight call failed", "status", resp.StatusCode)
		return Fallback
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.logger.Warn("insight response read failed", "error", err)
		return Fallback
	}
	var out response
	if err := json.Unmarshal(data, &out); err != nil {
		c.logger.Warn("insight response decoding failed", "error", err)
		return Fallback
	}
	if out.Text == "" {
		c.logger.Warn("insight response was empty")
		return Fallback
	}
	return out.Text
}
