// Package httppolicy talks to a remotely served policy (the trained model
// runs behind its own HTTP endpoint). Every failure to obtain a prediction
// — transport error, timeout, or upstream error status — surfaces as a
// policy.UnavailableError so the request boundary can answer 503.
package httppolicy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/shemankubana/IncludEd/internal/decision/policy"
)

type Provider struct {
	baseURL     string
	apiKey      string
	predictPath string
	timeout     time.Duration

	httpClient *http.Client
}

type Config struct {
	BaseURL     string
	APIKey      string
	PredictPath string
	Timeout     time.Duration
}

func New(cfg Config) (*Provider, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("httppolicy: base_url required")
	}

	predictPath := strings.TrimSpace(cfg.PredictPath)
	if predictPath == "" {
		predictPath = "/predict"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Provider{
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		predictPath: predictPath,
		timeout:     timeout,
		httpClient:  &http.Client{Transport: tr},
	}, nil
}

// NewWithHTTPClient is intended for tests; it avoids network access by using a custom RoundTripper.
func NewWithHTTPClient(cfg Config, httpClient *http.Client) (*Provider, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if httpClient != nil {
		p.httpClient = httpClient
	}
	return p, nil
}

type predictRequest struct {
	Observation   []float64 `json:"observation"`
	Deterministic bool      `json:"deterministic"`
}

type predictResponse struct {
	Action     int      `json:"action"`
	Confidence *float64 `json:"confidence,omitempty"`
}

func (p *Provider) Predict(ctx context.Context, observation []float64) (policy.Prediction, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(predictRequest{Observation: observation, Deterministic: true}); err != nil {
		return policy.Prediction{}, err
	}

	ctx2, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx2, http.MethodPost, p.baseURL+p.predictPath, &buf)
	if err != nil {
		return policy.Prediction{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return policy.Prediction{}, &policy.UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return policy.Prediction{}, &policy.UnavailableError{
			Err: fmt.Errorf("upstream status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw))),
		}
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return policy.Prediction{}, &policy.UnavailableError{Err: fmt.Errorf("decode upstream response: %w", err)}
	}

	pred := policy.Prediction{Action: out.Action, Confidence: -1}
	if out.Confidence != nil {
		pred.Confidence = *out.Confidence
	}
	return pred, nil
}
