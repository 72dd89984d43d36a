package main

import (
	"fmt"
	"strings"

	"github.com/matheus3301/hirechat/internal/api"
	"github.com/matheus3301/hirechat/internal/app"
	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/logging"
	"github.com/matheus3301/hirechat/internal/profile"
	"github.com/matheus3301/hirechat/internal/store"
	"go.uber.org/zap"
)

const program = "hirectl"

// env is what a subcommand works with: the active profile, a logger, and
// lazily the local cache and the API client.
type env struct {
	settings *app.Settings
	logger   *zap.Logger

	db     *store.DB
	client *api.Client
}

func loadEnv() (*env, error) {
	name := profile.Resolve(profileFlag)
	s, err := app.LoadSettings(name)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Path:    profile.LogPath(name, program),
		Profile: name,
		Console: verboseFlag,
		Debug:   verboseFlag,
	})
	if err != nil {
		return nil, err
	}
	return &env{settings: s, logger: logger}, nil
}

// store opens the profile's cache. The interactive client may hold the
// profile lock; SQLite's busy timeout covers the shared writes.
func (e *env) store() (*store.DB, error) {
	if e.db != nil {
		return e.db, nil
	}
	if err := profile.EnsureDir(e.settings.Name); err != nil {
		return nil, err
	}
	db, err := app.OpenStore(profile.CachePath(e.settings.Name), e.logger)
	if err != nil {
		return nil, err
	}
	e.db = db
	return db, nil
}

func (e *env) api() (*api.Client, error) {
	if e.client != nil {
		return e.client, nil
	}
	c, err := app.NewClient(e.settings, e.logger)
	if err != nil {
		return nil, err
	}
	e.client = c
	return c, nil
}

func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	_ = e.logger.Sync()
}

// parseTarget reads "<channel> [key]" from the front of args. Support takes
// no key. The remaining arguments are returned.
func parseTarget(args []string) (chat.Conversation, []string, error) {
	if len(args) == 0 {
		return chat.Conversation{}, nil, fmt.Errorf("missing channel (direct-user, application or support)")
	}
	ch, err := chat.ParseChannel(args[0])
	if err != nil {
		return chat.Conversation{}, nil, err
	}
	if ch == chat.Support {
		return chat.Conversation{Channel: ch}, args[1:], nil
	}
	if len(args) < 2 {
		return chat.Conversation{}, nil, fmt.Errorf("%s conversation needs a key", ch)
	}
	conv, err := chat.ParseConversation(string(ch), args[1])
	if err != nil {
		return chat.Conversation{}, nil, err
	}
	return conv, args[2:], nil
}

// route resolves a conversation against the profile's surface.
func (e *env) route(args []string) (chat.Route, []string, error) {
	conv, rest, err := parseTarget(args)
	if err != nil {
		return chat.Route{}, nil, err
	}
	r, err := chat.RouteFor(e.settings.Surface, conv)
	if err != nil {
		return chat.Route{}, nil, err
	}
	return r, rest, nil
}

func joinText(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
