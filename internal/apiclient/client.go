// Package apiclient is the typed HTTP client for the registration API, used
// by the form and exporter binaries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"registration-service/internal/httputil"
	"registration-service/internal/registration"
)

// defaultTimeout bounds every call; the reference behavior left requests
// unbounded, which is not acceptable for an interactive client.
const defaultTimeout = 10 * time.Second

// SubmitError is the server-decided outcome of a rejected submission. The
// Code field is the discriminant; clients must not infer meaning from the
// HTTP status number.
type SubmitError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string]string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submission rejected (%s): %s", e.Code, e.Message)
}

// IsDuplicateEmail reports whether the personal email is already registered.
func (e *SubmitError) IsDuplicateEmail() bool {
	return e.Code == httputil.CodeDuplicateEmail
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given base URL, e.g. "http://localhost:8000".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// SubmitForm posts a registration and returns the new record id. A rejection
// comes back as *SubmitError; transport failures are returned as-is.
func (c *Client) SubmitForm(ctx context.Context, input registration.Input) (int64, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return 0, fmt.Errorf("failed to encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/submit-form", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to reach registration service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		var created struct {
			ID int64 `json:"id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			return 0, fmt.Errorf("failed to decode response: %w", err)
		}
		return created.ID, nil
	}

	var errResp httputil.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		return 0, fmt.Errorf("unexpected response %d", resp.StatusCode)
	}
	return 0, &SubmitError{
		StatusCode: resp.StatusCode,
		Code:       errResp.Code,
		Message:    errResp.Error,
		Fields:     errResp.Fields,
	}
}

// ListAll fetches every registration in store order.
func (c *Client) ListAll(ctx context.Context) ([]registration.Registration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/allUsers", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach registration service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response %d", resp.StatusCode)
	}

	var regs []registration.Registration
	if err := json.NewDecoder(resp.Body).Decode(&regs); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return regs, nil
}
