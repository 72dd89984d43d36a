package app

import (
	"fmt"
	"net/url"
	"time"

	"github.com/matheus3301/hirechat/internal/api"
	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/config"
	"github.com/matheus3301/hirechat/internal/profile"
	"github.com/matheus3301/hirechat/internal/router"
	"go.uber.org/zap"
)

// Settings is a loaded and validated profile.
type Settings struct {
	Name     string
	Profile  *config.Profile
	Surface  chat.Surface
	Interval time.Duration
}

// LoadSettings reads the named profile from the global config.
func LoadSettings(name string) (*Settings, error) {
	p, err := profile.Load(name)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", name, err)
	}
	surface, err := chat.ParseSurface(p.Surface)
	if err != nil {
		return nil, err
	}
	interval, err := p.Interval()
	if err != nil {
		return nil, err
	}
	return &Settings{
		Name:     name,
		Profile:  p,
		Surface:  surface,
		Interval: interval,
	}, nil
}

// Dashboard returns the dashboard layout of the profile's surface.
func (s *Settings) Dashboard() router.Dashboard {
	return router.For(s.Surface)
}

// NewClient creates the API client for a profile.
func NewClient(s *Settings, logger *zap.Logger) (*api.Client, error) {
	return api.New(api.Options{
		BaseURL:            s.Profile.BaseURL,
		SessionCookieName:  s.Profile.SessionCookieName,
		SessionCookieValue: s.Profile.SessionCookieValue,
		CSRFHeader:         s.Profile.CSRFHeader,
		CSRFToken:          s.Profile.CSRFToken,
	}, logger)
}

// StartLocation resolves the URL a client starts on. raw may be absolute or
// relative to base; empty means the dashboard's own page. URLs on another
// host are rejected.
func StartLocation(base *url.URL, d router.Dashboard, raw string) (*url.URL, error) {
	if raw == "" {
		raw = d.Path
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse start url: %w", err)
	}
	u := base.ResolveReference(ref)
	if u.Host != base.Host {
		return nil, fmt.Errorf("start url %q is not on %s", raw, base.Host)
	}
	return u, nil
}
