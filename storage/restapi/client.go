// Package restapi talks to the DTRACS backend over its JSON HTTP API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core"
	"github.com/ramuelaceron/Document-Tracking-and-Compliance-System-DTRACS-ADMIN/core/auth"
)

const (
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 4 << 10
)

// Backend resources, each guarded by its own circuit breaker.
const (
	resourceTasks       = "tasks"
	resourceAssignments = "assignments"
	resourceAccounts    = "accounts"
	resourceAuth        = "auth"
)

type Client struct {
	baseURL  string
	http     *http.Client
	logger   core.Logger
	conf     core.BreakerConfig
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker // by resource
}

// NewClient returns a client for the backend at conf.Backend.BaseURL. Calls go through one
// circuit breaker per backend resource, each opening after conf.Breaker.Failures consecutive
// transport or 5xx failures of that resource.
func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(conf.Backend.BaseURL, "/"),
		http:     &http.Client{Timeout: conf.Backend.Timeout},
		logger:   logger,
		conf:     conf.Breaker,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// breaker returns the circuit breaker of resource, created on first use.
func (c *Client) breaker(resource string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	cb, ok := c.breakers[resource]
	if !ok {
		cb = NewBreaker("dtracs-"+resource, c.conf, c.logger)
		c.breakers[resource] = cb
	}
	return cb
}

func NewBreaker(name string, conf core.BreakerConfig, logger core.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: conf.MaxRequests,
		Timeout:     conf.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= conf.Failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker "+name+" changed from "+from.String()+" to "+to.String())
		},
		// client errors are the caller's fault, not the backend's
		IsSuccessful: func(err error) bool {
			var upErr *core.UpstreamError
			if errors.As(err, &upErr) {
				return upErr.Status < http.StatusInternalServerError
			}
			return err == nil
		},
	})
}

type request struct {
	resource string
	method   string
	path     string
	query    url.Values
	body     interface{}
}

// do sends req and decodes the JSON response into out (when not nil). Non-2xx responses
// become *core.UpstreamError carrying the backend's "message" or "detail".
func (c *Client) do(ctx context.Context, cred auth.Credential, req request, out interface{}) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if h := cred.BearerHeader(); h != "" {
		httpReq.Header.Set("Authorization", h)
	}
	if id := core.RequestIDFrom(ctx); id != "" {
		httpReq.Header.Set(requestIDHeader, id)
	}

	start := time.Now()
	res, err := c.breaker(req.resource).Execute(func() (interface{}, error) {
		return c.send(httpReq)
	})
	c.logger.Debug(req.method+" "+req.path, map[string]interface{}{
		"duration":   time.Since(start).String(),
		"request_id": core.RequestIDFrom(ctx),
		"error":      err,
	})
	if err != nil {
		return errors.Wrap(err, req.method+" "+req.path)
	}
	if out == nil {
		return nil
	}

	payload, _ := res.([]byte)
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrap(err, "decoding "+req.path)
	}
	return nil
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	//goland:noinspection GoUnhandledErrorResult
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, core.NewUpstreamError(res.StatusCode, errorMessage(b))
	}
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}
	return b, nil
}

// errorMessage extracts the message of a backend error body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	var detail string
	if len(payload.Detail) > 0 {
		if err := json.Unmarshal(payload.Detail, &detail); err != nil {
			detail = string(payload.Detail) // validation details come as a list
		}
	}
	return core.FirstNonEmpty(payload.Message, detail, payload.Error)
}
