package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TelephonyClient allocates masked phone numbers for active orders so
// customer and provider never see each other's real number.
type TelephonyClient struct {
	baseURL string
	http    *http.Client
}

func NewTelephonyClient(addr string) *TelephonyClient {
	return &TelephonyClient{
		baseURL: "http://" + addr,
		http:    &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *TelephonyClient) Assign(ctx context.Context, orderID string) error {
	return c.post(ctx, "/api/v1/numbers/assign", orderID)
}

func (c *TelephonyClient) Release(ctx context.Context, orderID string) error {
	return c.post(ctx, "/api/v1/numbers/release", orderID)
}

func (c *TelephonyClient) post(ctx context.Context, path, orderID string) error {
	payload, err := json.Marshal(map[string]string{"order_id": orderID})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telephony %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}
