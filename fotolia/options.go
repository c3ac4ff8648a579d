package fotolia

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL sets the REST root, e.g. https://api.fotolia.com/Rest.
func WithBaseURL(u string) Option {
	return func(c *Client) error {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		parsed, err := url.Parse(u)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return errors.New("invalid base URL")
		}
		c.baseURL = u
		return nil
	}
}

// WithVersion sets the API version path segment.
func WithVersion(v string) Option {
	return func(c *Client) error {
		v = strings.Trim(strings.TrimSpace(v), "/")
		if v == "" {
			return errors.New("API version cannot be empty")
		}
		c.version = v
		return nil
	}
}

// WithTimeouts sets the connect and total timeouts of the default HTTP client.
// It has no effect together with WithHTTPClient.
func WithTimeouts(connect, total time.Duration) Option {
	return func(c *Client) error {
		if connect <= 0 || total <= 0 {
			return errors.New("timeouts must be positive")
		}
		c.connectTimeout = connect
		c.timeout = total
		return nil
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = strings.TrimSpace(ua)
		return nil
	}
}

// WithSequence numbers calls from s instead of the process-wide sequence.
func WithSequence(s *Sequence) Option {
	return func(c *Client) error {
		if s == nil {
			return errors.New("sequence cannot be nil")
		}
		c.sequence = s
		return nil
	}
}

// WithRecorder adds a recorder that sees every dispatch of the client.
func WithRecorder(r Recorder) Option {
	return func(c *Client) error {
		if r == nil {
			return errors.New("recorder cannot be nil")
		}
		c.recorders = append(c.recorders, r)
		return nil
	}
}

// WithClock replaces time.Now for session token aging.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		c.now = now
		return nil
	}
}
