package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 4 << 10
)

// Options configures a Client.
type Options struct {
	BaseURL            string
	SessionCookieName  string
	SessionCookieValue string
	CSRFHeader         string
	CSRFToken          string
	Timeout            time.Duration

	// Transport overrides the default round tripper. Tests use it to point
	// the client at an httptest server.
	Transport http.RoundTripper
}

// Client talks to the recruitment platform's dashboard JSON endpoints on
// behalf of one logged-in viewer.
type Client struct {
	base *url.URL
	http *http.Client
	log  *zap.Logger

	mu         sync.RWMutex
	csrfHeader string
	csrfToken  string
}

// New creates a client. The session cookie, when given, is seeded into the
// client's cookie jar for the base URL's host.
func New(opts Options, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", opts.BaseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if opts.SessionCookieName != "" {
		jar.SetCookies(base, []*http.Cookie{{
			Name:  opts.SessionCookieName,
			Value: opts.SessionCookieValue,
			Path:  "/",
		}})
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		base: base,
		http: &http.Client{
			Jar:       jar,
			Timeout:   timeout,
			Transport: opts.Transport,
		},
		log:        log.Named("api"),
		csrfHeader: opts.CSRFHeader,
		csrfToken:  opts.CSRFToken,
	}, nil
}

// BaseURL returns a copy of the server root.
func (c *Client) BaseURL() *url.URL {
	u := *c.base
	return &u
}

// SetCSRF replaces the anti-forgery header attached to every POST.
func (c *Client) SetCSRF(header, token string) {
	c.mu.Lock()
	c.csrfHeader = header
	c.csrfToken = token
	c.mu.Unlock()
}

// CSRF returns the anti-forgery header name and token currently in use.
func (c *Client) CSRF() (header, token string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.csrfHeader, c.csrfToken
}

// FetchMessages GETs a message endpoint. A JSON null body yields an empty
// transcript.
func (c *Client) FetchMessages(ctx context.Context, path string) ([]Message, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var msgs []Message
	if err := json.NewDecoder(resp.Body).Decode(&msgs); err != nil {
		return nil, fmt.Errorf("GET %s: %w: %v", path, ErrBadResponse, err)
	}
	return msgs, nil
}

// PostMessage POSTs {"message": text} with the anti-forgery header. The
// response body is ignored; only the status matters.
func (c *Client) PostMessage(ctx context.Context, path, text string) error {
	body, err := json.Marshal(sendRequest{Message: text})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// GetPage fetches an HTML page relative to the base URL. Caller closes the body.
func (c *Client) GetPage(ctx context.Context, path string) (io.ReadCloser, error) {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	target := c.base.ResolveReference(ref)

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		if header, token := c.CSRF(); header != "" {
			req.Header.Set(header, token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}
	return resp, nil
}
