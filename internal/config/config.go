package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPollInterval matches the dashboards' 5s refresh.
const DefaultPollInterval = 5 * time.Second

// Config represents the global ~/.hirechat/config.toml.
type Config struct {
	DefaultProfile string              `toml:"default_profile"`
	Profiles       map[string]*Profile `toml:"profiles"`
}

// Profile holds the connection settings for one account on the platform.
type Profile struct {
	BaseURL            string         `toml:"base_url"`
	Surface            string         `toml:"surface"`
	SessionCookieName  string         `toml:"session_cookie_name"`
	SessionCookieValue string         `toml:"session_cookie_value"`
	CSRFHeader         string         `toml:"csrf_header"`
	CSRFToken          string         `toml:"csrf_token"`
	PollInterval       string         `toml:"poll_interval"`
	StartURL           string         `toml:"start_url"`
	Conversations      []Conversation `toml:"conversations"`
}

// Conversation seeds the conversation list with a thread the server page
// would normally render (user list, inbox, active chats).
type Conversation struct {
	Channel string `toml:"channel"`
	Key     string `toml:"key"`
	Title   string `toml:"title"`
}

// Load reads config from the given path. Returns zero config and error if file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// Profile returns the named profile or an error if it is not configured.
func (c *Config) Profile(name string) (*Profile, error) {
	p, ok := c.Profiles[name]
	if !ok || p == nil {
		return nil, fmt.Errorf("profile %q not found in config", name)
	}
	return p, nil
}

// Validate checks the fields every client needs before talking to the server.
func (p *Profile) Validate() error {
	if p.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	switch p.Surface {
	case "admin", "employer", "seeker":
	default:
		return fmt.Errorf("invalid surface %q: must be admin, employer or seeker", p.Surface)
	}
	if (p.CSRFHeader == "") != (p.CSRFToken == "") {
		return fmt.Errorf("csrf_header and csrf_token must be set together")
	}
	if _, err := p.Interval(); err != nil {
		return err
	}
	return nil
}

// Interval returns the poll interval, defaulting to DefaultPollInterval.
func (p *Profile) Interval() (time.Duration, error) {
	if p.PollInterval == "" {
		return DefaultPollInterval, nil
	}
	d, err := time.ParseDuration(p.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid poll_interval %q: %w", p.PollInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("poll_interval must be positive, got %s", d)
	}
	return d, nil
}
