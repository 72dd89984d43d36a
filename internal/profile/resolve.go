package profile

import "github.com/matheus3301/hirechat/internal/config"

const DefaultName = "main"

// Resolve determines the active profile name using precedence:
// 1. flagOverride (--profile flag)
// 2. config.toml default_profile
// 3. "main"
func Resolve(flagOverride string) string {
	if flagOverride != "" {
		return flagOverride
	}
	cfg, err := config.Load(ConfigPath())
	if err == nil && cfg.DefaultProfile != "" {
		return cfg.DefaultProfile
	}
	return DefaultName
}

// Load resolves, validates and returns the named profile's settings.
func Load(name string) (*config.Profile, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	cfg, err := config.Load(ConfigPath())
	if err != nil {
		return nil, err
	}
	p, err := cfg.Profile(name)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
