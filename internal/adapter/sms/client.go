// Package sms is a client for the Twilio-shaped SMS gateway.
package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"loopedin/config"

	"go.uber.org/zap"
)

// Client sends SMS and fetches inbound media over the gateway's REST API.
type Client struct {
	log        *zap.SugaredLogger
	http       *http.Client
	baseURL    string
	accountSID string
	authToken  string
	from       string
}

// NewClient constructs a gateway client from configuration.
func NewClient(log *zap.SugaredLogger, cfg config.TwilioConfig) *Client {
	return &Client{
		log:        log.Named("adapter.sms"),
		http:       &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.APIBaseURL, "/"),
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.FromNumber,
	}
}

// SendSMS delivers a single text message to one recipient.
func (c *Client) SendSMS(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	form := url.Values{}
	form.Set("To", "+"+to)
	form.Set("From", c.from)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.Errorw("gateway rejected message", "status", resp.StatusCode, "to", to, "response", string(payload))
		return fmt.Errorf("send sms: gateway status %d", resp.StatusCode)
	}

	c.log.Infow("sms sent", "to", to)
	return nil
}

// FetchMedia downloads an inbound media attachment. The gateway requires the
// same basic auth as the messaging API for media URLs.
func (c *Client) FetchMedia(ctx context.Context, mediaURL string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build media request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch media: %w", err)
	}
	if resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, "", fmt.Errorf("fetch media: gateway status %d", resp.StatusCode)
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}
