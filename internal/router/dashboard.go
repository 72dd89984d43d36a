package router

import "github.com/matheus3301/hirechat/internal/chat"

// View is one named panel of a dashboard.
type View struct {
	ID    string
	Title string

	// Chat, when set, is opened as soon as the view is activated.
	Chat *chat.Conversation

	// External views are not panels: activating one is a full navigation to
	// this path.
	External string

	// Filterable views accept a status filter, served by full navigation.
	Filterable bool
}

// Dashboard describes the client-side switchable page of one surface.
type Dashboard struct {
	Surface chat.Surface
	Path    string
	Default string
	Views   []View

	// Transient query parameters are dropped on every switch.
	Transient []string

	// OpenParam carries a conversation key to open on load; the conversation
	// lives in ChatView on channel OpenChannel.
	OpenParam   string
	OpenChannel chat.ChannelType
	ChatView    string

	// BackExternal maps a view reached through history to a full navigation.
	BackExternal map[string]string
}

// View looks up a view by id.
func (d Dashboard) View(id string) (View, bool) {
	for _, v := range d.Views {
		if v.ID == id {
			return v, true
		}
	}
	return View{}, false
}

// IDs lists view ids in sidebar order.
func (d Dashboard) IDs() []string {
	ids := make([]string, len(d.Views))
	for i, v := range d.Views {
		ids[i] = v.ID
	}
	return ids
}

var support = &chat.Conversation{Channel: chat.Support}

// For returns the dashboard layout of a surface.
func For(s chat.Surface) Dashboard {
	switch s {
	case chat.SurfaceEmployer:
		return Dashboard{
			Surface: s,
			Path:    "/employer/dashboard",
			Default: "overview",
			Views: []View{
				{ID: "overview", Title: "Dashboard Overview"},
				{ID: "messages", Title: "Applicant Inbox"},
				{ID: "jobs", Title: "Job Postings", Filterable: true},
				{ID: "support", Title: "Support Chat (Admin)", Chat: support},
				{ID: "candidates", Title: "Find Candidates"},
			},
			Transient:   []string{"appId"},
			OpenParam:   "appId",
			OpenChannel: chat.Application,
			ChatView:    "messages",
		}
	case chat.SurfaceSeeker:
		return Dashboard{
			Surface: s,
			Path:    "/seeker/dashboard",
			Default: "dashboard",
			Views: []View{
				{ID: "dashboard", Title: "Dashboard Overview"},
				{ID: "jobs", Title: "Job Search"},
				{ID: "tracker", Title: "My Applications"},
				{ID: "chats", Title: "Messages"},
				{ID: "support", Title: "Support Chat", Chat: support},
				{ID: "ai-assistant", Title: "AI Job Assistant"},
			},
			Transient:    []string{"openAppId"},
			OpenParam:    "openAppId",
			OpenChannel:  chat.Application,
			ChatView:     "chats",
			BackExternal: map[string]string{"jobs": "/jobs/hub"},
		}
	default:
		return Dashboard{
			Surface: chat.SurfaceAdmin,
			Path:    "/admin/support",
			Default: "support",
			Views: []View{
				{ID: "support", Title: "Support Inbox"},
				{ID: "dashboard", Title: "Admin Dashboard", External: "/admin/dashboard"},
				{ID: "users", Title: "Users", External: "/admin/users"},
			},
			Transient:   []string{"userId"},
			OpenParam:   "userId",
			OpenChannel: chat.DirectUser,
			ChatView:    "support",
		}
	}
}
