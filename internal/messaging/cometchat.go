// Package messaging mirrors account identities into CometChat so the embedded
// chat widget works independently of the application's own database. The
// orchestration layer treats every call here as best-effort.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// New builds a client for one CometChat app. The v3 REST host is derived from
// the app id and region.
func New(appID, region, apiKey string) *Client {
	return &Client{
		baseURL: fmt.Sprintf("https://%s.api-%s.cometchat.io/v3", appID, region),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateIdentity registers the account in the chat directory. An identity
// that already exists is not an error; the mirror is create-once.
func (c *Client) CreateIdentity(ctx context.Context, id, displayName, avatarURL string) error {
	payload := map[string]string{
		"uid":  id,
		"name": displayName,
	}
	if avatarURL != "" {
		payload["avatar"] = avatarURL
	}

	status, _, err := c.do(ctx, http.MethodPost, c.baseURL+"/users", payload)
	if err != nil {
		return err
	}
	if status == http.StatusConflict {
		return nil
	}
	if status >= 400 {
		return fmt.Errorf("create chat identity: status %d", status)
	}
	return nil
}

// OpenSession verifies the directory will issue a session token for the id.
func (c *Client) OpenSession(ctx context.Context, id string) error {
	_, err := c.AuthToken(ctx, id)
	return err
}

// AuthToken issues a chat auth token the browser widget logs in with.
func (c *Client) AuthToken(ctx context.Context, id string) (string, error) {
	status, body, err := c.do(ctx, http.MethodPost, c.baseURL+"/users/"+id+"/auth_tokens", map[string]bool{"force": false})
	if err != nil {
		return "", err
	}
	if status >= 400 {
		return "", fmt.Errorf("create chat auth token: status %d", status)
	}

	var resp struct {
		Data struct {
			AuthToken string `json:"authToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal auth token: %w", err)
	}
	return resp.Data.AuthToken, nil
}

// CloseSession revokes every outstanding auth token for the id.
func (c *Client) CloseSession(ctx context.Context, id string) error {
	status, _, err := c.do(ctx, http.MethodDelete, c.baseURL+"/users/"+id+"/auth_tokens", nil)
	if err != nil {
		return err
	}
	if status >= 400 {
		return fmt.Errorf("revoke chat auth tokens: status %d", status)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, payload any) (int, []byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, buf.Bytes(), nil
}
