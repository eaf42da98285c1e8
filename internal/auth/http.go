package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"petcareapi/internal/config"
)

// HTTPProvider implements Provider against an identity-toolkit style REST API.
// The API key is passed as a query parameter on every call.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider creates a provider client from config. The base URL must not
// include a trailing slash; a zero timeout falls back to 10 seconds.
func NewHTTPProvider(cfg config.AuthConfig) (*HTTPProvider, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("auth base url is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("auth api key is required")
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

func (p *HTTPProvider) post(ctx context.Context, endpoint string, payload any, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	url := fmt.Sprintf("%s/%s?key=%s", p.baseURL, endpoint, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error.Message != "" {
			return fmt.Errorf("identity provider: %s (status %d)", apiErr.Error.Message, resp.StatusCode)
		}
		return fmt.Errorf("identity provider: unexpected status %d", resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode identity provider response: %w", err)
		}
	}
	return nil
}

// CreateUser registers a new email/password account.
func (p *HTTPProvider) CreateUser(ctx context.Context, email, password string) (User, error) {
	var out struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	}
	payload := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": false,
	}
	if err := p.post(ctx, "accounts:signUp", payload, &out); err != nil {
		return User{}, err
	}
	if out.LocalID == "" {
		return User{}, fmt.Errorf("identity provider: response missing uid")
	}
	return User{UID: out.LocalID, Email: out.Email}, nil
}

// GetUserByEmail looks up an account by email address.
func (p *HTTPProvider) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var out struct {
		Users []struct {
			LocalID string `json:"localId"`
			Email   string `json:"email"`
		} `json:"users"`
	}
	payload := map[string]any{"email": []string{email}}
	if err := p.post(ctx, "accounts:lookup", payload, &out); err != nil {
		return User{}, err
	}
	if len(out.Users) == 0 {
		return User{}, ErrUserNotFound
	}
	return User{UID: out.Users[0].LocalID, Email: out.Users[0].Email}, nil
}

// VerifyIDToken resolves a provider-issued ID token to the account it was minted for.
func (p *HTTPProvider) VerifyIDToken(ctx context.Context, idToken string) (User, error) {
	if strings.TrimSpace(idToken) == "" {
		return User{}, fmt.Errorf("id token is required")
	}
	var out struct {
		Users []struct {
			LocalID string `json:"localId"`
			Email   string `json:"email"`
		} `json:"users"`
	}
	payload := map[string]any{"idToken": idToken}
	if err := p.post(ctx, "accounts:lookup", payload, &out); err != nil {
		return User{}, err
	}
	if len(out.Users) == 0 {
		return User{}, ErrUserNotFound
	}
	return User{UID: out.Users[0].LocalID, Email: out.Users[0].Email}, nil
}

// PasswordResetLink requests a one-time password reset link for the account.
func (p *HTTPProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	var out struct {
		OOBLink string `json:"oobLink"`
	}
	payload := map[string]any{
		"requestType":   "PASSWORD_RESET",
		"email":         email,
		"returnOobLink": true,
	}
	if err := p.post(ctx, "accounts:sendOobCode", payload, &out); err != nil {
		return "", err
	}
	if out.OOBLink == "" {
		return "", fmt.Errorf("identity provider: response missing reset link")
	}
	return out.OOBLink, nil
}
