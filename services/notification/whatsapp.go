package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"remindly/config"
)

// WhatsAppClient talks to a Gupshup-compatible WhatsApp message API.
type WhatsAppClient struct {
	APIURL string
	APIKey string
	Source string
	HTTP   *http.Client
}

// NewWhatsAppClient builds a client from the loaded configuration.
func NewWhatsAppClient() *WhatsAppClient {
	return &WhatsAppClient{
		APIURL: config.AppConfig.WhatsAppAPIURL,
		APIKey: config.AppConfig.WhatsAppAPIKey,
		Source: config.AppConfig.WhatsAppSource,
		HTTP:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SendMessage posts a text message to the provider API.
func (c *WhatsAppClient) SendMessage(ctx context.Context, phone, text string) error {
	payload, err := json.Marshal(map[string]string{"type": "text", "text": text})
	if err != nil {
		return fmt.Errorf("failed to encode whatsapp message: %w", err)
	}

	form := url.Values{}
	form.Set("channel", "whatsapp")
	form.Set("source", c.Source)
	form.Set("destination", phone)
	form.Set("message", string(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("apikey", c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("whatsapp provider returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
