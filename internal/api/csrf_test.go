package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSRF(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		wantHeader string
		wantToken  string
		wantErr    error
	}{
		{
			name:       "meta tags",
			page:       `<html><head><meta name="_csrf" content="abc"><meta name="_csrf_header" content="X-XSRF-TOKEN"></head></html>`,
			wantHeader: "X-XSRF-TOKEN",
			wantToken:  "abc",
		},
		{
			name:       "token without header name",
			page:       `<meta name="_csrf" content="abc">`,
			wantHeader: "X-CSRF-TOKEN",
			wantToken:  "abc",
		},
		{
			name:       "hidden form input",
			page:       `<form><input type="hidden" name="_csrf" value="from-form"/></form>`,
			wantHeader: "X-CSRF-TOKEN",
			wantToken:  "from-form",
		},
		{
			name:       "meta wins over input",
			page:       `<input name="_csrf" value="form"><meta name="_csrf" content="meta">`,
			wantHeader: "X-CSRF-TOKEN",
			wantToken:  "meta",
		},
		{
			name:    "missing",
			page:    `<html><body>login</body></html>`,
			wantErr: ErrNoCSRF,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, token, err := ParseCSRF(strings.NewReader(tt.page))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "err = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, header)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestDiscoverCSRF(t *testing.T) {
	srv := newFakeServer(t)
	c, err := New(Options{BaseURL: srv.URL}, nil)
	require.NoError(t, err)

	header, token, err := c.DiscoverCSRF(context.Background(), "/seeker/dashboard")
	require.NoError(t, err)
	assert.Equal(t, "X-XSRF", header)
	assert.Equal(t, "tok-123", token)

	gotHeader, gotToken := c.CSRF()
	assert.Equal(t, "X-XSRF", gotHeader)
	assert.Equal(t, "tok-123", gotToken)
}

func TestDiscoverCSRFAttachesToPosts(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`<meta name="_csrf" content="t1"><meta name="_csrf_header" content="X-Token">`))
			return
		}
		seen = r.Header.Get("X-Token")
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL}, nil)
	require.NoError(t, err)
	_, _, err = c.DiscoverCSRF(context.Background(), "/employer/dashboard")
	require.NoError(t, err)
	require.NoError(t, c.PostMessage(context.Background(), "/employer/api/support/note/add", "x"))
	assert.Equal(t, "t1", seen)
}
