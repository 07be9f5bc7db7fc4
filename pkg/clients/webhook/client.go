package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// maxErrorBodyBytes bounds how much of a rejected response is read.
const maxErrorBodyBytes = 4 << 10

// Doer is satisfied by *http.Client
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client defines the interface for posting JSON payloads to webhook endpoints
type Client interface {
	PostJSON(ctx context.Context, endpoint string, payload any) error
}

// StatusError is returned when an endpoint answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("endpoint responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("endpoint responded with status %d: %s", e.StatusCode, e.Body)
}

type clientImpl struct {
	httpClient Doer
}

// NewClient creates a webhook client. A nil httpClient uses a plain
// http.Client with the transport defaults.
func NewClient(httpClient Doer) Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &clientImpl{httpClient: httpClient}
}

// PostJSON sends one POST with payload as the JSON body. There are no retries.
func (c *clientImpl) PostJSON(ctx context.Context, endpoint string, payload any) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error creating payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("error creating request: %w", withoutURL(err))
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error posting to webhook: %w", withoutURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// withoutURL drops the endpoint from a *url.Error. Webhook URLs carry their
// credentials in the path and error text can reach callers.
func withoutURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
