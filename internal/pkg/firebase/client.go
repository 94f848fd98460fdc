package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// StatusError is returned when the database answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("firebase request failed: status=%d body=%s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// Client writes to a Firebase Realtime Database through its REST API.
type Client struct {
	BaseURL   string
	AuthToken string

	HTTPClient *http.Client
}

func NewClient(baseURL, authToken string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		AuthToken: strings.TrimSpace(authToken),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// DevicePaymentURL returns {BaseURL}/devices/{deviceID}/payment.json.
func (c *Client) DevicePaymentURL(deviceID string) (string, error) {
	if strings.TrimSpace(deviceID) == "" {
		return "", errors.New("device id is required")
	}
	u, err := url.Parse(c.BaseURL + "/devices/" + url.PathEscape(deviceID) + "/payment.json")
	if err != nil {
		return "", fmt.Errorf("invalid FIREBASE_DB_URL: %w", err)
	}
	if c.AuthToken != "" {
		q := u.Query()
		q.Set("auth", c.AuthToken)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// PutPayment overwrites the payment record of a device and returns the response body.
func (c *Client) PutPayment(ctx context.Context, deviceID string, record ForwardRecord) ([]byte, error) {
	target, err := c.DevicePaymentURL(deviceID)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
