package fotolia

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrInvalidConfig indicates invalid client configuration
var ErrInvalidConfig = errors.New("invalid fotolia configuration")

// Client dispatches calls to the Fotolia REST API. A Client may be shared by
// goroutines; session state is synchronised internally.
type Client struct {
	baseURL    string
	version    string
	userAgent  string
	httpClient *http.Client
	dialer     *net.Dialer
	logger     zerolog.Logger

	connectTimeout time.Duration
	timeout        time.Duration

	session   *session
	sequence  *Sequence
	recorders []Recorder
	now       func() time.Time
}

// NewClient creates a client for apiKey. No request is made.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}
	if strings.Contains(apiKey, ":") {
		return nil, fmt.Errorf("%w: API key must not contain ':'", ErrInvalidConfig)
	}

	c := &Client{
		baseURL:        DefaultBaseURL,
		version:        DefaultVersion,
		logger:         logger,
		connectTimeout: DefaultConnectTimeout,
		timeout:        DefaultTimeout,
		sequence:       defaultSequence,
		now:            time.Now,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if c.httpClient == nil {
		c.dialer = newDialer(c.connectTimeout)
		c.httpClient = newHTTPClient(c.dialer, c.timeout)
	}
	c.session = newSession(apiKey, c.refreshToken, c.now)

	return c, nil
}

// APIKey returns the key the client authenticates with.
func (c *Client) APIKey() string {
	return c.session.apiKey
}

// SessionToken returns the current session token, or "" when anonymous.
func (c *Client) SessionToken() string {
	token, _ := c.session.snapshot()
	return token
}

// Authenticated reports whether a session token is held.
func (c *Client) Authenticated() bool {
	return c.SessionToken() != ""
}

// Logout drops the session token. It makes no request.
func (c *Client) Logout() {
	c.session.clear()
	c.logger.Debug().Msg("Fotolia session cleared")
}

// Call dispatches method with automatic token refresh.
func (c *Client) Call(ctx context.Context, method string, params Params) (*Response, error) {
	return c.Dispatch(ctx, method, params, true)
}

// Dispatch routes method, authenticates, performs the exchange and classifies
// the result. Unknown methods fail before any I/O. When autoRefresh is set a
// stale session token is refreshed first through a nested refreshToken call.
func (c *Client) Dispatch(ctx context.Context, method string, params Params, autoRefresh bool) (*Response, error) {
	meta, err := Resolve(method)
	if err != nil {
		return nil, err
	}

	credential, err := c.session.credentialFor(ctx, autoRefresh, false)
	if err != nil {
		return nil, err
	}

	req, err := c.buildRequest(ctx, method, meta, params, credential)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := c.execute(req)
	elapsed := time.Since(start)

	var resp *Response
	if err == nil {
		resp, err = classifyCall(raw)
	}

	c.record(ctx, method, elapsed, err)

	if err != nil {
		return nil, err
	}
	return resp, nil
}

// record reports a completed dispatch and advances the sequence whether or
// not the call succeeded.
func (c *Client) record(ctx context.Context, method string, elapsed time.Duration, err error) {
	d := CallDiagnostics{
		Sequence: c.sequence.Next(),
		Method:   method,
		Elapsed:  elapsed,
		Err:      err,
	}

	event := c.logger.Debug()
	if err != nil {
		event = c.logger.Warn().Err(err).Str("kind", KindOf(err).String())
	}
	event.
		Int64("call", d.Sequence).
		Str("method", method).
		Float64("elapsed", elapsed.Seconds()).
		Msg("Fotolia API call")

	for _, r := range c.recorders {
		r.RecordCall(d)
	}
	if r := recorderFrom(ctx); r != nil {
		r.RecordCall(d)
	}
}

// refreshToken obtains a new session token. It never refreshes recursively.
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	resp, err := c.Dispatch(ctx, MethodRefreshToken, nil, false)
	if err != nil {
		return "", err
	}

	token := resp.String("session_token")
	if token == "" {
		return "", &TransportError{Reason: "refreshToken response has no session_token"}
	}

	c.logger.Debug().Msg("Refreshed Fotolia session token")
	return token, nil
}

// TestConnection calls the test method, which succeeds when the API key is
// accepted.
func (c *Client) TestConnection(ctx context.Context) error {
	if _, err := c.Call(ctx, MethodTest, nil); err != nil {
		return fmt.Errorf("failed to connect to Fotolia: %w", err)
	}
	return nil
}
