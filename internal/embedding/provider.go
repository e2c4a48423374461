// Package embedding implements the Embedding Capability: a string in,
// a fixed-dimensional vector out. The concrete provider is an HTTP call
// to an external embedding service; the core never sees the wire format.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Provider embeds text into a fixed-dimensional vector. Implementations
// must be deterministic for a given (text, model) pair and must not
// retry internally; the caller decides whether to retry a failure.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// HTTPProvider calls an external embedding service over HTTP. It
// recognizes two wire shapes: a generic batch-style service
// ({"texts": [...]} -> {"vectors": [[...]]}) and Ollama's /api/embed
// endpoint ({"model","input"} -> {"embeddings": [[...]]}), selected by
// inspecting the configured URL.
type HTTPProvider struct {
	url        string
	model      string
	httpClient *http.Client
	isOllama   bool
}

// NewHTTPProvider builds a provider against the given service URL and
// model identifier. The model identifier is only sent on the Ollama
// wire shape; the generic shape embeds whatever model the service was
// deployed with.
func NewHTTPProvider(serviceURL, model string) *HTTPProvider {
	return &HTTPProvider{
		url:        serviceURL,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		isOllama:   strings.Contains(serviceURL, "/api/embed"),
	}
}

type genericRequest struct {
	Texts []string `json:"texts"`
}

type genericResponse struct {
	Vectors [][]float32 `json:"vectors"`
}

type ollamaRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type ollamaResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

func (p *HTTPProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if p.url == "" {
		return nil, fmt.Errorf("embedding: service url not configured")
	}

	var body []byte
	var err error
	if p.isOllama {
		body, err = json.Marshal(ollamaRequest{Model: p.model, Input: text})
	} else {
		body, err = json.Marshal(genericRequest{Texts: []string{text}})
	}
	if err != nil {
		return nil, fmt.Errorf("embedding: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("embedding: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding: service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if p.isOllama {
		var out ollamaResponse
		if err := json.Unmarshal(respBody, &out); err != nil {
			return nil, fmt.Errorf("embedding: parse ollama response: %w", err)
		}
		if len(out.Embeddings) == 0 {
			return nil, fmt.Errorf("embedding: ollama returned no embeddings")
		}
		return out.Embeddings[0], nil
	}

	var out genericResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("embedding: parse response: %w", err)
	}
	if len(out.Vectors) == 0 {
		return nil, fmt.Errorf("embedding: service returned no vectors")
	}
	return out.Vectors[0], nil
}
