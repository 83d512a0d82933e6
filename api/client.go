// Package api is the typed client for the bot server's REST API: the single
// point of request construction, auth injection, status classification and
// JSON decoding.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/botdeck/config"
	"github.com/rustyeddy/botdeck/id"
	"github.com/rustyeddy/botdeck/logger"
)

const requestTimeout = 10 * time.Second

// ConfigSource supplies one consistent snapshot of the connection settings
// per request. *config.Store satisfies it.
type ConfigSource interface {
	Snapshot() config.Config
}

// Client talks to the bot server. Safe for concurrent use.
type Client struct {
	source     ConfigSource
	httpClient *http.Client
	log        *logger.Logger
}

func New(source ConfigSource, log *logger.Logger) *Client {
	return &Client{
		source: source,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		log: log,
	}
}

// FetchOverview returns the status snapshot for every bot plus total P&L.
// Bot ids are copied from the response map keys into each BotStatus.
func (c *Client) FetchOverview(ctx context.Context) (Overview, error) {
	var out Overview
	if err := c.do(ctx, http.MethodGet, "/api/overview", nil, nil, &out); err != nil {
		return Overview{}, err
	}
	for key, bot := range out.Bots {
		bot.ID = key
		out.Bots[key] = bot
	}
	return out, nil
}

// FetchCapital returns the current capital allocation snapshot.
func (c *Client) FetchCapital(ctx context.Context) (CapitalSnapshot, error) {
	var out CapitalSnapshot
	if err := c.do(ctx, http.MethodGet, "/api/capital", nil, nil, &out); err != nil {
		return CapitalSnapshot{}, err
	}
	return out, nil
}

// FetchTransfers returns the most recent capital transfers, newest first.
func (c *Client) FetchTransfers(ctx context.Context, limit int) ([]Transfer, error) {
	if limit <= 0 {
		limit = 20
	}
	query := url.Values{"limit": {fmt.Sprintf("%d", limit)}}
	var out transfersResponse
	if err := c.do(ctx, http.MethodGet, "/api/capital/transfers", query, nil, &out); err != nil {
		return nil, err
	}
	for i := range out.Transfers {
		out.Transfers[i].assignRowID()
	}
	return out.Transfers, nil
}

// AllocateCapital assigns amount (in dollars) to a bot.
func (c *Client) AllocateCapital(ctx context.Context, botID, label string, amount decimal.Decimal) error {
	body := allocateRequest{BotID: botID, Label: label, Amount: dollars(amount)}
	var ack map[string]any
	return c.do(ctx, http.MethodPost, "/api/capital/allocate", nil, body, &ack)
}

// TransferCapital moves amount (in dollars) between two accounts. Either
// side may be UnallocatedPool.
func (c *Client) TransferCapital(ctx context.Context, from, to string, amount decimal.Decimal) error {
	body := transferRequest{From: from, To: to, Amount: dollars(amount)}
	var ack map[string]any
	return c.do(ctx, http.MethodPost, "/api/capital/transfer", nil, body, &ack)
}

// RemoveAllocation returns a bot's allocation to the unallocated pool.
func (c *Client) RemoveAllocation(ctx context.Context, botID string) error {
	var ack map[string]any
	return c.do(ctx, http.MethodDelete, "/api/capital/"+url.PathEscape(botID), nil, nil, &ack)
}

// FetchBotCapitalLimit returns a bot's current allocation in cents, nil if
// it has none.
func (c *Client) FetchBotCapitalLimit(ctx context.Context, botID string) (CapitalLimit, error) {
	var out CapitalLimit
	path := "/api/capital/" + url.PathEscape(botID) + "/limit"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return CapitalLimit{}, err
	}
	return out, nil
}

// do is the chokepoint every call goes through: capture one config
// snapshot, build the request, inject auth, classify the status code and
// decode the body. Classification is identical across endpoints:
// 2xx ok, 401/404/5xx and other non-2xx become StatusError, transport
// failures TransportError, body mismatches DecodeError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	cfg := c.source.Snapshot()
	base := cfg.BaseURL()
	if base == nil {
		return ErrNotConfigured
	}

	ref, err := url.Parse(path)
	if err != nil {
		return ErrInvalidURL
	}
	u := base.ResolveReference(ref)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return ErrInvalidURL
	}
	if auth := cfg.BasicAuthHeader(); auth != "" {
		req.Header.Set("Authorization", auth)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := id.New()
	c.log.WithFields(logrus.Fields{"component": "api", "request_id": reqID}).Debug(method + " " + u.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithFields(logrus.Fields{"component": "api", "request_id": reqID}).WithError(err).Debug("transport failure")
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
