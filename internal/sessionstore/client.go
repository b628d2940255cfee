// Package sessionstore is a client for the hosted auth API (GoTrue-compatible,
// as served by Supabase). It owns credentials and session tokens; this service
// never stores passwords itself.
package sessionstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/loftchat/loft-server/internal/account"
)

type Client struct {
	authURL string
	apiKey  string
	httpc   *http.Client
}

func New(projectURL, apiKey string) *Client {
	return &Client{
		authURL: strings.TrimRight(projectURL, "/") + "/auth/v1",
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

type sessionResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
}

type userResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	UserMetadata struct {
		UserName  string `json:"user_name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user_metadata"`
}

func (u userResponse) sessionUser() account.SessionUser {
	return account.SessionUser{
		ID:        u.ID,
		Email:     u.Email,
		UserName:  u.UserMetadata.UserName,
		AvatarURL: u.UserMetadata.AvatarURL,
	}
}

// SignUp creates a new identity and returns its session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*account.Session, error) {
	return c.tokenRequest(ctx, c.authURL+"/signup", map[string]string{
		"email":    email,
		"password": password,
	})
}

// SignIn authenticates with email/password.
func (c *Client) SignIn(ctx context.Context, email, password string) (*account.Session, error) {
	return c.tokenRequest(ctx, c.authURL+"/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	})
}

// SignInWithIDToken exchanges a third-party OIDC id_token for a session. The
// auth provider creates the identity on first use.
func (c *Client) SignInWithIDToken(ctx context.Context, provider, idToken string) (*account.Session, error) {
	return c.tokenRequest(ctx, c.authURL+"/token?grant_type=id_token", map[string]string{
		"provider": provider,
		"id_token": idToken,
	})
}

// SignOut revokes the session behind the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	respBody, status, err := c.do(ctx, http.MethodPost, c.authURL+"/logout", nil, accessToken)
	if err != nil {
		return &account.AuthError{Message: err.Error()}
	}
	if status >= 400 {
		return parseAuthError(respBody, status)
	}
	return nil
}

// UserFromToken resolves the identity bound to an access token.
func (c *Client) UserFromToken(ctx context.Context, accessToken string) (*account.SessionUser, error) {
	respBody, status, err := c.do(ctx, http.MethodGet, c.authURL+"/user", nil, accessToken)
	if err != nil {
		return nil, &account.AuthError{Message: err.Error()}
	}
	if status >= 400 {
		return nil, parseAuthError(respBody, status)
	}

	var user userResponse
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	u := user.sessionUser()
	return &u, nil
}

func (c *Client) tokenRequest(ctx context.Context, url string, payload map[string]string) (*account.Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, status, err := c.do(ctx, http.MethodPost, url, body, "")
	if err != nil {
		return nil, &account.AuthError{Message: err.Error()}
	}
	if status >= 400 {
		return nil, parseAuthError(respBody, status)
	}

	var sess sessionResponse
	if err := json.Unmarshal(respBody, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &account.Session{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		User:         sess.User.sessionUser(),
	}, nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, accessToken string) ([]byte, int, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), resp.StatusCode, nil
}

// parseAuthError maps a GoTrue error body onto *account.AuthError. The
// provider is inconsistent about field names across endpoints.
func parseAuthError(body []byte, status int) *account.AuthError {
	var errResp struct {
		Code             string `json:"error_code"`
		Message          string `json:"msg"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return &account.AuthError{Message: string(body), Status: status}
	}

	msg := errResp.Message
	if msg == "" {
		msg = errResp.ErrorDescription
	}
	if msg == "" {
		msg = errResp.Error
	}
	return &account.AuthError{Code: errResp.Code, Message: msg, Status: status}
}
