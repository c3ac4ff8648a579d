package fotolia

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Fotolia REST root.
	DefaultBaseURL = "https://api.fotolia.com/Rest"
	// DefaultVersion is the REST API version segment.
	DefaultVersion = "1"

	// DefaultConnectTimeout bounds connection establishment.
	DefaultConnectTimeout = 30 * time.Second
	// DefaultTimeout bounds a whole exchange, body included.
	DefaultTimeout = 120 * time.Second
)

// rawResponse is the unclassified result of one exchange.
type rawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// newHTTPClient builds the client used for every exchange. The dialer bounds
// connection establishment; the total timeout also covers reading the body,
// which is what a download needs.
func newHTTPClient(dialer *net.Dialer, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			TLSHandshakeTimeout: dialer.Timeout,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func newDialer(connectTimeout time.Duration) *net.Dialer {
	return &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}
}

// methodURL returns baseURL/version/namespace/method.
func (c *Client) methodURL(method string, meta MethodMetadata) string {
	ns := meta.Namespace
	if ns != "" {
		ns += "/"
	}
	return c.baseURL + "/" + c.version + "/" + ns + method
}

// buildRequest creates the request for method. GET carries params as a query
// string and POST as a form body, both in input order.
func (c *Client) buildRequest(ctx context.Context, method string, meta MethodMetadata, params Params, credential string) (*http.Request, error) {
	uri := c.methodURL(method, meta)
	encoded := params.Encode()

	var body io.Reader
	if meta.IsPost() {
		body = strings.NewReader(encoded)
	} else if encoded != "" {
		uri += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, meta.Verb, uri, body)
	if err != nil {
		return nil, &TransportError{Reason: "failed to create request", Err: err}
	}
	if meta.IsPost() {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req, credential)
	return req, nil
}

// authorize sets Basic credentials from an "apiKey:token" string.
func (c *Client) authorize(req *http.Request, credential string) {
	user, pass, _ := strings.Cut(credential, ":")
	req.SetBasicAuth(user, pass)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// send performs the exchange and leaves the body unread. Callers close it.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: req.URL.Redacted(), Err: err}
	}
	return resp, nil
}

// execute performs the exchange and reads the whole body.
func (c *Client) execute(req *http.Request) (*rawResponse, error) {
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: req.URL.Redacted(), Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return &rawResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
