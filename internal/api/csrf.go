package api

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// Spring Security's default names for the anti-forgery token.
const (
	csrfMetaToken     = "_csrf"
	csrfMetaHeader    = "_csrf_header"
	defaultCSRFHeader = "X-CSRF-TOKEN"
)

// ErrNoCSRF is returned when a page carries no anti-forgery token.
var ErrNoCSRF = errors.New("no csrf token on page")

// DiscoverCSRF loads a dashboard page and reads the anti-forgery header name
// and token from its <meta name="_csrf"> / <meta name="_csrf_header"> tags,
// falling back to a hidden "_csrf" form input. On success the client starts
// attaching the token to POSTs.
func (c *Client) DiscoverCSRF(ctx context.Context, pagePath string) (header, token string, err error) {
	body, err := c.GetPage(ctx, pagePath)
	if err != nil {
		return "", "", err
	}
	defer body.Close()

	header, token, err = ParseCSRF(body)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", pagePath, err)
	}
	c.SetCSRF(header, token)
	return header, token, nil
}

// ParseCSRF scans an HTML document for the anti-forgery header and token.
func ParseCSRF(r io.Reader) (header, token string, err error) {
	z := html.NewTokenizer(r)
	var inputToken string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return "", "", fmt.Errorf("parse html: %w", z.Err())
			}
			if token == "" {
				token = inputToken
			}
			if token == "" {
				return "", "", ErrNoCSRF
			}
			if header == "" {
				header = defaultCSRFHeader
			}
			return header, token, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			switch t.Data {
			case "meta":
				switch attr(t, "name") {
				case csrfMetaToken:
					token = attr(t, "content")
				case csrfMetaHeader:
					header = attr(t, "content")
				}
			case "input":
				if attr(t, "name") == csrfMetaToken && inputToken == "" {
					inputToken = attr(t, "value")
				}
			}
		}
	}
}

func attr(t html.Token, key string) string {
	for _, a := range t.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
