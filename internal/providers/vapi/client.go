package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Client talks to the voice-interview platform. Calls are authorized with a
// short-lived org-scoped token signed with the platform's private key.
type Client struct {
	baseURL     string
	orgID       string
	privateKey  string
	assistantID string
	http        *http.Client
}

func NewClient(baseURL, orgID, privateKey, assistantID string) *Client {
	return &Client{
		baseURL:     baseURL,
		orgID:       orgID,
		privateKey:  privateKey,
		assistantID: assistantID,
		http:        &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) SignedToken() (string, error) {
	claims := jwt.MapClaims{
		"orgId": c.orgID,
		"exp":   time.Now().UTC().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.privateKey))
}

// StartCallParams carries the per-call assistant overrides. SessionToken is
// threaded through variableValues so the end-of-call webhook can be
// reconciled against the pending session.
type StartCallParams struct {
	SessionToken string
	FirstMessage string
	SystemPrompt string
}

func (c *Client) StartCall(ctx context.Context, p StartCallParams) (json.RawMessage, error) {
	token, err := c.SignedToken()
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"assistantId": c.assistantID,
		"assistantOverrides": map[string]any{
			"firstMessage": p.FirstMessage,
			"model": map[string]any{
				"messages": []map[string]any{
					{"role": "system", "content": p.SystemPrompt},
				},
			},
			"variableValues": map[string]any{
				"sessionToken": p.SessionToken,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/call", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("vapi: start call: status %d: %s", resp.StatusCode, data)
	}
	return json.RawMessage(data), nil
}
