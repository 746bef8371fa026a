package egress

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Transport returns an *http.Transport that dials exclusively through the
// guard. Proxy is left nil on purpose so HTTP_PROXY and friends in the
// environment cannot redirect traffic around the guard.
func (g *Guard) Transport() *http.Transport {
	return &http.Transport{
		Proxy:                 nil,
		DialContext:           g.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}

// guardedRoundTripper rejects requests to denied destinations before the
// wrapped transport gets a chance to open a connection or resolve a name.
type guardedRoundTripper struct {
	guard *Guard
	next  http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (rt *guardedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := rt.guard.CheckRequest(req); err != nil {
		if req.Body != nil {
			req.Body.Close()
		}
		return nil, err
	}
	return rt.next.RoundTrip(req)
}

// CheckRequest evaluates the destination of an outgoing HTTP request.
func (g *Guard) CheckRequest(req *http.Request) error {
	scheme := "http"
	target := ""
	if req != nil && req.URL != nil {
		if req.URL.Scheme != "" {
			scheme = req.URL.Scheme
		}
		target = req.URL.String()
	}

	dest, err := DestinationFromRequest(req)
	if err != nil {
		return g.deny(scheme, target, err)
	}
	return g.CheckDestination(scheme, target, dest)
}

// RoundTripper returns the guarded round tripper used by every HTTP client
// in the process.
func (g *Guard) RoundTripper() http.RoundTripper {
	return &guardedRoundTripper{guard: g, next: g.Transport()}
}

// HTTPClient returns a standard library client over [Guard.RoundTripper].
func (g *Guard) HTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Transport: g.RoundTripper(), Timeout: timeout}
}

// RestyClient returns a resty client over [Guard.RoundTripper]. baseURL may
// be empty.
func (g *Guard) RestyClient(baseURL string, timeout time.Duration) *resty.Client {
	client := resty.New().SetTransport(g.RoundTripper())
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if baseURL != "" {
		client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	}
	return client
}

// Get issues a GET request and returns once the response headers arrive.
// It is the guarded counterpart of http.Get: it shares the exact
// normalization and evaluation path of every other entry point.
func (g *Guard) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, g.deny("http", rawURL, ErrMalformedDestination)
	}
	return g.HTTPClient(0).Do(req)
}

// Ping issues a GET request and discards the body. It reports the response
// status code.
func (g *Guard) Ping(ctx context.Context, rawURL string) (int, error) {
	resp, err := g.Get(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
