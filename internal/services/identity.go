// Identity provider implementation of [IdentityService]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/SameerAmesara/Book-Catalogue-App/internal/models"
	"github.com/SameerAmesara/Book-Catalogue-App/internal/shared"
	"golang.org/x/oauth2"
)

// OAuthIdentityService implements [IdentityService] against an OAuth2
// provider using the resource owner password grant. Uses [oauth2] for the
// token exchange and an authenticated client for the attribute endpoints.
type OAuthIdentityService struct {
	cfg        shared.IdentityConfig
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	baseClient *http.Client
}

// NewOAuthIdentityService creates an identity client from the identity
// section of the config.
func NewOAuthIdentityService(cfg shared.IdentityConfig, client *http.Client) (*OAuthIdentityService, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}
	if client == nil {
		client = http.DefaultClient
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			TokenURL: base + cfg.TokenPath,
		},
	}

	return &OAuthIdentityService{
		cfg:        cfg,
		config:     config,
		httpClient: client,
		baseClient: client,
	}, nil
}

// Authenticate exchanges the username and password for a token. The store
// and the caller's session stay untouched when the exchange fails.
func (o *OAuthIdentityService) Authenticate(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: missing username or password", shared.ErrAuthFailed)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, o.baseClient)
	token, err := o.config.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	o.token = token
	o.httpClient = o.config.Client(ctx, token)
	return nil
}

// CurrentUser returns the provider's attributes for the signed-in user.
func (o *OAuthIdentityService) CurrentUser(ctx context.Context) (*models.UserAttributes, error) {
	if o.token == nil {
		return nil, fmt.Errorf("%w: no active token", shared.ErrNotAuthenticated)
	}

	endpoint := strings.TrimRight(o.cfg.BaseURL, "/") + o.cfg.UserInfoPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.token.AccessToken)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: token rejected", shared.ErrNotAuthenticated)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAuthFailed, resp.StatusCode)
	}

	var attrs models.UserAttributes
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		return nil, fmt.Errorf("failed to decode attributes: %w", err)
	}

	if attrs.Sub == "" || attrs.Name == "" || attrs.Email == "" {
		return nil, fmt.Errorf("%w: incomplete attribute set", shared.ErrAuthFailed)
	}

	return &attrs, nil
}

// SignOut revokes the current token with the provider. The local token is
// dropped even when revocation fails.
func (o *OAuthIdentityService) SignOut(ctx context.Context) error {
	if o.token == nil {
		return nil
	}

	token := o.token
	o.token = nil
	o.httpClient = o.baseClient

	endpoint := strings.TrimRight(o.cfg.BaseURL, "/") + o.cfg.RevokePath
	form := url.Values{"token": {token.AccessToken}, "client_id": {o.cfg.ClientID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := o.baseClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: revoke status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}

// SignUp registers a new account with the provider.
func (o *OAuthIdentityService) SignUp(ctx context.Context, signUp SignUpRequest) (string, error) {
	data, err := json.Marshal(signUp)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", shared.ErrRegistration, err)
	}

	endpoint := strings.TrimRight(o.cfg.BaseURL, "/") + o.cfg.SignUpPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.baseClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrRegistration, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", shared.ErrRegistration, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Message string `json:"message"`
		}
		reason := fmt.Sprintf("status %d", resp.StatusCode)
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			reason = payload.Message
		}
		return "", fmt.Errorf("%w: %s", shared.ErrRegistration, reason)
	}

	var result struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", shared.ErrRegistration, err)
	}

	return result.UserID, nil
}
