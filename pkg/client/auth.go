package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// TokenSource yields the opaque credential injected as a header value on
// every request. The orchestrator refreshes it once per partition pass.
type TokenSource interface {
	Credential(ctx context.Context) (string, error)
}

// OAuthTokenSource exchanges client credentials at the portal's token
// endpoint and formats the access token as the session cookie the report
// API expects.
type OAuthTokenSource struct {
	TokenURL   string
	ClientID   string
	httpClient *http.Client
}

// NewOAuthTokenSource creates a token source for the given endpoint and
// client id.
func NewOAuthTokenSource(tokenURL, clientID string) *OAuthTokenSource {
	return &OAuthTokenSource{
		TokenURL: tokenURL,
		ClientID: clientID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Credential performs the client-credentials exchange and returns the
// cookie value ("user=<access_token>").
func (s *OAuthTokenSource) Credential(ctx context.Context) (string, error) {
	body := "grant_type=client_credentials&scope=clientId%3D" + url.QueryEscape(s.ClientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.TokenURL, strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Class:      classifyStatus(resp.StatusCode),
			Message:    "token endpoint: " + resp.Status,
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("%w: token response: %v", ErrMalformedPayload, err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("%w: token response missing access_token", ErrMalformedPayload)
	}

	log.Debug().Str("component", "auth").Msg("Session credential refreshed")

	return "user=" + result.AccessToken, nil
}

// StaticTokenSource returns a fixed credential, useful for tests and for
// replaying a harvest with a known session.
type StaticTokenSource string

// Credential implements TokenSource.
func (s StaticTokenSource) Credential(context.Context) (string, error) {
	return string(s), nil
}
