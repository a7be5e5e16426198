// Package whatsapp forwards outbound messages to the WhatsApp gateway.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Mirieri/nikonangombeghani-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// Client posts {to, message} to <APIURL>/send with the API key as a bearer token.
type Client struct {
	http    *http.Client
	sendURL string
	apiKey  string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		sendURL: strings.TrimRight(cfg.APIURL, "/") + "/send",
		apiKey:  cfg.APIKey,
	}
}

func (c *Client) Send(ctx context.Context, msg domain.OutboundMessage) (*domain.DeliveryAck, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode whatsapp message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sendURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read whatsapp response: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("whatsapp send: status %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	ack := &domain.DeliveryAck{Status: string(domain.DeliverySent)}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, ack); err != nil {
			return nil, fmt.Errorf("decode whatsapp response: %w", err)
		}
	}
	return ack, nil
}
