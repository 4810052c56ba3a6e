package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fmansouri/pocketledger/internal/common"
	"github.com/fmansouri/pocketledger/internal/model"
)

// Wire types for the auth API.

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type profileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type passwordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type userResponse struct {
	User *model.User `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// do issues one JSON request against the auth API. A transport failure
// maps to the connectivity error class; a non-2xx response maps to the
// authentication or server class, carrying the server's message when
// one can be parsed. out may be nil for bodiless successes.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.NewUserError(
			"No internet connection. Check your connection and try again.",
			fmt.Errorf("%w: %v", common.ErrConnectivity, err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return serverFailure(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// serverFailure turns a non-2xx response into a typed error. The body
// is expected to carry {message}; absence falls back to a generic one.
func serverFailure(resp *http.Response) error {
	msg := "The server could not complete the request"
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		msg = body.Message
	}

	class := common.ErrServer
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		class = common.ErrAuthentication
	}
	return common.NewUserError(msg, fmt.Errorf("%w: status %d", class, resp.StatusCode))
}
