// internal/embedding/provider.go
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"talent-match/internal/common/config"
	apperrors "talent-match/internal/common/errors"
	"talent-match/internal/common/metrics"
)

// Provider turns text into a fixed-length vector. Implemented by the
// OpenAI-compatible HTTP client below; tests substitute fakes.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// HTTPProvider calls an OpenAI-compatible /embeddings endpoint.
type HTTPProvider struct {
	baseURL       string
	apiKey        string
	model         string
	maxInputChars int
	timeout       time.Duration
	httpClient    *http.Client
}

func NewHTTPProvider(cfg config.EmbeddingConfig) *HTTPProvider {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	return &HTTPProvider{
		baseURL:       cfg.BaseURL,
		apiKey:        cfg.APIKey,
		model:         cfg.Model,
		maxInputChars: cfg.MaxInputChars,
		timeout:       timeout,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

// Configured reports whether the provider has enough configuration to be
// called. An unconfigured provider makes the whole search run vectorless.
func (p *HTTPProvider) Configured() bool {
	return p.baseURL != "" && p.apiKey != ""
}

func (p *HTTPProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if !p.Configured() {
		return nil, apperrors.NewProviderError("embedding", fmt.Errorf("provider not configured"))
	}

	// Stay inside the provider token budget (~8000 tokens).
	if p.maxInputChars > 0 && len(text) > p.maxInputChars {
		text = text[:p.maxInputChars]
	}

	requestBody := map[string]interface{}{
		"input": text,
		"model": p.model,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, apperrors.NewProviderError("embedding", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/embeddings", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, apperrors.NewProviderError("embedding", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		metrics.EmbeddingCalls.WithLabelValues("error").Inc()
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewProviderTimeoutError("embedding", p.timeout)
		}
		return nil, apperrors.NewProviderError("embedding", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.EmbeddingCalls.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(resp.Body)
		return nil, apperrors.NewProviderError("embedding",
			fmt.Errorf("embedding API error: %d - %s", resp.StatusCode, string(body)))
	}

	var result struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.EmbeddingCalls.WithLabelValues("error").Inc()
		return nil, apperrors.NewProviderError("embedding", err)
	}

	if len(result.Data) == 0 {
		metrics.EmbeddingCalls.WithLabelValues("error").Inc()
		return nil, apperrors.NewProviderError("embedding", fmt.Errorf("no embedding returned"))
	}

	metrics.EmbeddingCalls.WithLabelValues("ok").Inc()
	return result.Data[0].Embedding, nil
}
