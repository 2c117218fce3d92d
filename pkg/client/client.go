// Package client provides the JSON transport for the report API:
// credential injection, error classification, transport-level retry,
// and an optional payload cache.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ryanwatkins/nypd-officer-profiles/pkg/cache"
)

// Prometheus metrics for report API operations.
var (
	apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oip_requests_total",
		Help: "Total report API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "oip_request_duration_seconds",
		Help:    "Report API request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	apiErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oip_errors_total",
		Help: "Total report API errors by class",
	}, []string{"class"})
)

// Config holds the client configuration.
type Config struct {
	// UserAgent sent on every request.
	UserAgent string

	// Timeout per HTTP request.
	Timeout time.Duration

	// Retry configures transport-level retry with backoff.
	Retry RetryConfig

	// Cache is the optional payload cache (nil disables caching).
	Cache *cache.Manager
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		UserAgent: "nypd-officer-profiles/1.0",
		Timeout:   30 * time.Second,
		Retry:     DefaultRetryConfig(),
	}
}

// Client fetches JSON payloads from the report API.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger

	mu         sync.RWMutex
	credential string
}

// New creates a new report API client.
func New(cfg Config) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: log.With().Str("component", "client").Logger(),
	}
}

// SetCredential installs the opaque session credential injected as a
// Cookie header on subsequent requests. Called by the orchestrator once
// per partition-processing pass, never concurrently with in-flight fetches.
func (c *Client) SetCredential(credential string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credential = credential
}

func (c *Client) currentCredential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credential
}

// GetJSON performs a GET request and returns the raw JSON payload.
func (c *Client) GetJSON(ctx context.Context, url string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, nil)
}

// PostJSON performs a POST request with a JSON body and returns the raw
// JSON payload.
func (c *Client) PostJSON(ctx context.Context, url string, body []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPost, url, body)
}

// do executes a request with retry, classification, metrics, and cache
// consult/fill. Any non-well-formed response is a recoverable failure.
func (c *Client) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	endpoint := endpointLabel(url)

	startTime := time.Now()
	defer func() {
		apiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	cacheKey := cache.Key{URL: url, Body: body}
	if c.config.Cache != nil {
		if payload, err := c.config.Cache.Get(ctx, cacheKey); err == nil {
			c.logger.Debug().Str("endpoint", endpoint).Msg("Payload cache hit")
			apiRequestsTotal.WithLabelValues(endpoint, "cached").Inc()
			return payload, nil
		} else if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	var payload []byte

	retryErr := retryWithBackoff(ctx, c.config.Retry, func() error {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return &APIError{Class: ErrorClassClient, Message: "create request", Err: err}
		}

		req.Header.Set("Accept", "application/json, text/plain, */*")
		req.Header.Set("Content-Type", "application/json;charset=UTF-8")
		req.Header.Set("Pragma", "no-cache")
		req.Header.Set("User-Agent", c.config.UserAgent)
		if cred := c.currentCredential(); cred != "" {
			req.Header.Set("Cookie", cred)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
			apiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			apiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
			return &APIError{Class: ErrorClassNetwork, Message: "http request", Err: err}
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			apiErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			return &APIError{Class: ErrorClassNetwork, Message: "read body", Err: err}
		}

		apiRequestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

		if resp.StatusCode >= 400 {
			errClass := classifyStatus(resp.StatusCode)
			apiErrorsTotal.WithLabelValues(string(errClass)).Inc()
			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("status", resp.StatusCode).
				Str("error_class", string(errClass)).
				Msg("Report API request error")
			return &APIError{
				StatusCode: resp.StatusCode,
				Class:      errClass,
				Message:    resp.Status,
			}
		}

		if !json.Valid(data) {
			apiErrorsTotal.WithLabelValues(string(ErrorClassMalformed)).Inc()
			c.logger.Warn().
				Str("endpoint", endpoint).
				Int("bytes", len(data)).
				Msg("Response body is not valid JSON")
			return &APIError{
				StatusCode: resp.StatusCode,
				Class:      ErrorClassMalformed,
				Message:    "response is not valid JSON",
				Err:        ErrMalformedPayload,
			}
		}

		payload = data
		return nil
	}, classifyError)

	if retryErr != nil {
		return nil, retryErr
	}

	if c.config.Cache != nil {
		if err := c.config.Cache.Set(ctx, cacheKey, payload); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to cache payload")
		}
	}

	return payload, nil
}

// classifyStatus categorizes an HTTP status for observability and retry.
func classifyStatus(status int) ErrorClass {
	switch {
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// classifyError extracts the class of a fetch error, defaulting to network.
func classifyError(err error) ErrorClass {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Class
	}
	return ErrorClassNetwork
}

// endpointLabel reduces a URL to its path for metric labels.
func endpointLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
