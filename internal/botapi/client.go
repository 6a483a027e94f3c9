package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/Alwanly/service-feed-poller/internal/models"
	"github.com/Alwanly/service-feed-poller/pkg/logger"
	"github.com/Alwanly/service-feed-poller/pkg/poll"
	"github.com/Alwanly/service-feed-poller/pkg/wrapper"
)

// Config holds what the client needs to reach the Bot API
type Config struct {
	BaseURL string
	Token   string
	// RequestTimeout bounds each call; fetches get it on top of their long-poll timeout
	RequestTimeout time.Duration
}

// APIError is a failure reported by the Bot API itself
type APIError struct {
	Method      string
	Code        int
	Description string
	RetryAfter  int
}

func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("bot api %s failed with code %d: %s (retry after %ds)", e.Method, e.Code, e.Description, e.RetryAfter)
	}
	return fmt.Sprintf("bot api %s failed with code %d: %s", e.Method, e.Code, e.Description)
}

// Client talks to a Telegram-style Bot API over HTTP. It is safe for
// concurrent use.
type Client struct {
	baseURL        string
	token          string
	requestTimeout time.Duration
	httpClient     *http.Client
	logger         *logger.CanonicalLogger
	disconnects    chan error
}

// NewClient creates a new Bot API client
func NewClient(cfg Config, log *logger.CanonicalLogger) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		token:          cfg.Token,
		requestTimeout: cfg.RequestTimeout,
		// Per-call deadlines come from the request context; a client-wide
		// timeout would cut long polls short.
		httpClient:  &http.Client{},
		logger:      log.Component("botapi"),
		disconnects: make(chan error, 8),
	}
}

// Disconnects reports connection-level failures seen while fetching
func (c *Client) Disconnects() <-chan error {
	return c.disconnects
}

type getUpdatesParams struct {
	Offset         int64    `json:"offset"`
	Limit          int      `json:"limit,omitempty"`
	Timeout        int      `json:"timeout"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

// GetUpdates long-polls the feed starting at req.Offset
func (c *Client) GetUpdates(ctx context.Context, req poll.FetchRequest) ([]models.Update, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(req.Timeout)*time.Second+c.requestTimeout)
	defer cancel()

	c.logger.Debug("fetching updates",
		logger.Int64(logger.FieldOffset, req.Offset),
		logger.Int("limit", req.Limit),
		logger.Int("timeout_seconds", req.Timeout),
	)

	raw, err := c.do(ctx, "getUpdates", getUpdatesParams{
		Offset:         req.Offset,
		Limit:          req.Limit,
		Timeout:        req.Timeout,
		AllowedUpdates: req.AllowedUpdates,
	})
	if err != nil {
		if isDisconnect(err) {
			c.notifyDisconnect(err)
		}
		return nil, err
	}

	var updates []models.Update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("failed to decode updates: %w", err)
	}
	return updates, nil
}

// CallMethod invokes method with params and returns the decoded result
func (c *Client) CallMethod(ctx context.Context, method string, params map[string]any) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	// a nil map must not reach do as a typed value, or it is sent as "null"
	var body any
	if len(params) > 0 {
		body = params
	}

	raw, err := c.do(ctx, method, body)
	if err != nil {
		return nil, err
	}

	var result any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &result); err != nil {
			return nil, fmt.Errorf("failed to decode %s result: %w", method, err)
		}
	}
	return result, nil
}

// GetMe returns the bot account the token belongs to
func (c *Client) GetMe(ctx context.Context) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	raw, err := c.do(ctx, "getMe", nil)
	if err != nil {
		return nil, err
	}

	var me models.User
	if err := json.Unmarshal(raw, &me); err != nil {
		return nil, fmt.Errorf("failed to decode getMe result: %w", err)
	}
	return &me, nil
}

func (c *Client) do(ctx context.Context, method string, params any) (json.RawMessage, error) {
	var body io.Reader = http.NoBody
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s params: %w", method, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.methodURL(method), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", c.redact(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, c.redact(err))
	}
	defer resp.Body.Close()

	var envelope wrapper.RawResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{Method: method, Code: resp.StatusCode, Description: http.StatusText(resp.StatusCode)}
		}
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}

	if !envelope.OK {
		apiErr := &APIError{
			Method:      method,
			Code:        envelope.ErrorCode,
			Description: envelope.Description,
		}
		if apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode
		}
		if envelope.Parameters != nil {
			apiErr.RetryAfter = envelope.Parameters.RetryAfter
		}
		return nil, apiErr
	}

	return envelope.Result, nil
}

func (c *Client) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// redact strips the bot token from URLs carried in transport errors
func (c *Client) redact(err error) error {
	var urlErr *url.Error
	if c.token != "" && errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, c.token, "<redacted>")
	}
	return err
}

func (c *Client) notifyDisconnect(err error) {
	select {
	case c.disconnects <- err:
	default:
		c.logger.Debug("disconnect notification dropped, channel full", logger.Err(err))
	}
}

func isDisconnect(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "read"
}
