package chat

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/matheus3301/hirechat/internal/api"
)

// Surface is the dashboard a viewer is logged into.
type Surface string

const (
	SurfaceAdmin    Surface = "admin"
	SurfaceEmployer Surface = "employer"
	SurfaceSeeker   Surface = "seeker"
)

// ParseSurface validates a surface name.
func ParseSurface(s string) (Surface, error) {
	switch v := Surface(strings.ToLower(strings.TrimSpace(s))); v {
	case SurfaceAdmin, SurfaceEmployer, SurfaceSeeker:
		return v, nil
	}
	return "", fmt.Errorf("unknown surface %q (want admin, employer or seeker)", s)
}

// ViewerRole is the sender role the server stamps on this surface's own messages.
func (s Surface) ViewerRole() string {
	switch s {
	case SurfaceAdmin:
		return api.RoleAdmin
	case SurfaceEmployer:
		return api.RoleEmployer
	case SurfaceSeeker:
		return api.RoleSeeker
	}
	return ""
}

// ChannelType selects which kind of thread a conversation is.
type ChannelType string

const (
	DirectUser  ChannelType = "direct-user"
	Application ChannelType = "application"
	Support     ChannelType = "support"
)

// ParseChannel validates a channel type name.
func ParseChannel(s string) (ChannelType, error) {
	switch v := ChannelType(strings.ToLower(strings.TrimSpace(s))); v {
	case DirectUser, Application, Support:
		return v, nil
	}
	return "", fmt.Errorf("unknown channel %q (want direct-user, application or support)", s)
}

// Conversation identifies a thread. Key is a user id for direct-user, an
// application id for application, and empty for support, which is implicit
// per viewer.
type Conversation struct {
	Channel ChannelType
	Key     string
}

// ParseConversation builds a conversation from a channel name and an optional key.
func ParseConversation(channel, key string) (Conversation, error) {
	ch, err := ParseChannel(channel)
	if err != nil {
		return Conversation{}, err
	}
	conv := Conversation{Channel: ch, Key: strings.TrimSpace(key)}
	if err := conv.Validate(); err != nil {
		return Conversation{}, err
	}
	return conv, nil
}

// Validate checks that the key matches the channel.
func (c Conversation) Validate() error {
	switch c.Channel {
	case Support:
		if c.Key != "" {
			return fmt.Errorf("support conversation takes no key, got %q", c.Key)
		}
	case DirectUser, Application:
		if c.Key == "" {
			return fmt.Errorf("%s conversation needs a key", c.Channel)
		}
	default:
		return fmt.Errorf("unknown channel %q", c.Channel)
	}
	return nil
}

func (c Conversation) String() string {
	if c.Key == "" {
		return string(c.Channel)
	}
	return string(c.Channel) + ":" + c.Key
}

// Text shown instead of a transcript.
const (
	LoadingText      = "Loading messages..."
	ErrorText        = "Failed to load messages."
	EmptyText        = "No message history. Start the conversation!"
	SupportEmptyText = "Welcome to Support Chat. Send a message and an Admin will reply soon."
	SendingTime      = "Sending..."
)

// ErrUnsupportedConversation is returned when a surface has no endpoint for a
// channel, e.g. a seeker opening a direct-user thread.
var ErrUnsupportedConversation = errors.New("conversation not available on this surface")

// Route is everything the chat core needs to run one conversation on one
// surface: where to read, where to write, who "we" are, and what to show when
// the thread is empty or a counterpart is anonymous.
type Route struct {
	Surface      Surface
	Conversation Conversation
	FetchPath    string
	PostPath     string
	ViewerRole   string
	EmptyText    string
	Counterpart  string
}

// RouteFor resolves the endpoints for a conversation on a surface.
func RouteFor(s Surface, conv Conversation) (Route, error) {
	if err := conv.Validate(); err != nil {
		return Route{}, err
	}
	r := Route{
		Surface:      s,
		Conversation: conv,
		ViewerRole:   s.ViewerRole(),
		EmptyText:    EmptyText,
	}
	key := url.PathEscape(conv.Key)

	switch {
	case s == SurfaceAdmin && conv.Channel == DirectUser:
		r.FetchPath = "/admin/api/support/messages/" + key
		r.PostPath = "/admin/api/support/reply/" + key
		r.Counterpart = "User"
	case s == SurfaceEmployer && conv.Channel == Application:
		r.FetchPath = "/employer/api/applications/" + key + "/messages"
		r.PostPath = r.FetchPath
		r.Counterpart = "Candidate"
	case s == SurfaceEmployer && conv.Channel == Support:
		r.FetchPath = "/employer/api/support/messages"
		r.PostPath = "/employer/api/support/note/add"
		r.EmptyText = SupportEmptyText
		r.Counterpart = "Admin"
	case s == SurfaceSeeker && conv.Channel == Application:
		r.FetchPath = "/seeker/api/applications/" + key + "/messages"
		r.PostPath = r.FetchPath
		r.Counterpart = "Employer"
	case s == SurfaceSeeker && conv.Channel == Support:
		r.FetchPath = "/seeker/api/support/messages"
		r.PostPath = "/seeker/api/support/note/add"
		r.EmptyText = SupportEmptyText
		r.Counterpart = "Support Team"
	default:
		return Route{}, fmt.Errorf("%s on %s: %w", conv, s, ErrUnsupportedConversation)
	}
	return r, nil
}
