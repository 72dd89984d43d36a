package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/matheus3301/hirechat/internal/bus"
	"github.com/matheus3301/hirechat/internal/chat"
)

// ErrUnknownView is returned for a view id the dashboard does not have.
var ErrUnknownView = errors.New("unknown view")

// Panel is a switchable region of the screen.
type Panel interface {
	Show()
	Hide()
}

// Nav highlights the sidebar entry of the active view.
type Nav interface {
	Highlight(view string)
}

// Releaser cancels the active chat poll. *chat.Poller implements it.
type Releaser interface {
	Release()
}

// Navigation is the outcome of a switch.
type Navigation struct {
	View  string
	Title string
	URL   *url.URL

	// Reload is set when the switch must be served by loading URL instead of
	// toggling panels. No panel was touched.
	Reload bool

	// Open is the conversation the activated view should show, if any.
	Open *chat.Conversation
}

// Switched is the bus payload of a view switch.
type Switched struct {
	From, To string
	URL      string
	Reload   bool
}

// Router activates exactly one view of a dashboard at a time and keeps the
// shareable URL in step.
type Router struct {
	dash Dashboard
	poll Releaser
	bus  *bus.Bus

	mu       sync.Mutex
	location *url.URL
	panels   map[string]Panel
	nav      Nav
	active   string
	history  []*url.URL
}

// New creates a router positioned at location, the URL the client started on.
func New(d Dashboard, location *url.URL, poll Releaser, b *bus.Bus) *Router {
	loc := *location
	return &Router{
		dash:     d,
		poll:     poll,
		bus:      b,
		location: &loc,
		panels:   make(map[string]Panel),
	}
}

// Bind attaches the panel shown for a view.
func (r *Router) Bind(view string, p Panel) error {
	v, ok := r.dash.View(view)
	if !ok || v.External != "" {
		return fmt.Errorf("bind %q: %w", view, ErrUnknownView)
	}
	r.mu.Lock()
	r.panels[view] = p
	r.mu.Unlock()
	return nil
}

// SetNav attaches the sidebar.
func (r *Router) SetNav(n Nav) {
	r.mu.Lock()
	r.nav = n
	r.mu.Unlock()
}

// Dashboard returns the layout the router switches over.
func (r *Router) Dashboard() Dashboard { return r.dash }

// Active returns the visible view id, empty before the first switch.
func (r *Router) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Location returns a copy of the current shareable URL.
func (r *Router) Location() *url.URL {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc := *r.location
	return &loc
}

// URLFor returns the dashboard URL that opens view directly.
func (r *Router) URLFor(view string) (*url.URL, error) {
	if _, ok := r.dash.View(view); !ok {
		return nil, fmt.Errorf("%q: %w", view, ErrUnknownView)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dashboardURL(view), nil
}

// Switch activates target. The active chat poll is released first,
// whatever the outcome. Outside the dashboard page, or for an external
// view, the result asks for a full navigation and no panel is touched.
func (r *Router) Switch(target string) (Navigation, error) {
	v, ok := r.dash.View(target)
	if !ok {
		return Navigation{}, fmt.Errorf("%q: %w", target, ErrUnknownView)
	}
	r.release()

	r.mu.Lock()
	defer r.mu.Unlock()

	if v.External != "" {
		return r.reload(v, r.resolve(v.External, nil)), nil
	}
	if !r.onDashboard() {
		return r.reload(v, r.dashboardURL(target)), nil
	}

	prev := *r.location
	r.history = append(r.history, &prev)
	return r.activate(v), nil
}

// Filter serves a filtered view, e.g. jobs by status, by full navigation.
func (r *Router) Filter(target, status string) (Navigation, error) {
	v, ok := r.dash.View(target)
	if !ok {
		return Navigation{}, fmt.Errorf("%q: %w", target, ErrUnknownView)
	}
	if !v.Filterable || status == "" {
		return r.Switch(target)
	}
	r.release()

	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.dashboardURL(target)
	q := u.Query()
	q.Set("status", status)
	u.RawQuery = q.Encode()
	return r.reload(v, u), nil
}

// Back returns to the previous view in history. ok is false when there is
// nothing to go back to.
func (r *Router) Back() (nav Navigation, ok bool, err error) {
	r.mu.Lock()
	if len(r.history) == 0 {
		r.mu.Unlock()
		return Navigation{}, false, nil
	}
	prev := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	r.mu.Unlock()

	target := prev.Query().Get("view")
	if target == "" {
		target = r.dash.Default
	}
	v, found := r.dash.View(target)
	if !found {
		return Navigation{}, true, fmt.Errorf("%q: %w", target, ErrUnknownView)
	}
	r.release()

	r.mu.Lock()
	defer r.mu.Unlock()
	if ext, isExt := r.dash.BackExternal[target]; isExt {
		return r.reload(v, r.resolve(ext, nil)), true, nil
	}
	r.location = prev
	return r.activate(v), true, nil
}

// Initial activates the view named by the start URL, falling back to the
// dashboard's default. When the URL names a conversation to open, the
// dashboard's chat view is activated and the conversation reported.
func (r *Router) Initial() (Navigation, error) {
	r.release()

	r.mu.Lock()
	defer r.mu.Unlock()

	q := r.location.Query()
	target := q.Get("view")
	if _, ok := r.dash.View(target); !ok {
		target = r.dash.Default
	}
	var open *chat.Conversation
	if key := strings.TrimSpace(q.Get(r.dash.OpenParam)); key != "" && r.dash.OpenParam != "" {
		target = r.dash.ChatView
		open = &chat.Conversation{Channel: r.dash.OpenChannel, Key: key}
	}

	v, _ := r.dash.View(target)
	if v.External != "" {
		return r.reload(v, r.resolve(v.External, nil)), nil
	}
	if !r.onDashboard() {
		return r.reload(v, r.dashboardURL(target)), nil
	}
	nav := r.activate(v)
	if open != nil {
		nav.Open = open
	}
	return nav, nil
}

// activate shows v, hides every other panel, highlights v in the sidebar and
// rewrites the URL. Callers hold r.mu.
func (r *Router) activate(v View) Navigation {
	for id, p := range r.panels {
		if id != v.ID {
			p.Hide()
		}
	}
	if p, ok := r.panels[v.ID]; ok {
		p.Show()
	}
	if r.nav != nil {
		r.nav.Highlight(v.ID)
	}

	q := r.location.Query()
	q.Set("view", v.ID)
	for _, k := range r.dash.Transient {
		q.Del(k)
	}
	r.location.Path = r.dash.Path
	r.location.RawQuery = q.Encode()

	from := r.active
	r.active = v.ID
	loc := *r.location
	r.bus.Emit(bus.KindViewSwitched, Switched{From: from, To: v.ID, URL: loc.String()})

	return Navigation{View: v.ID, Title: v.Title, URL: &loc, Open: v.Chat}
}

func (r *Router) release() {
	if r.poll != nil {
		r.poll.Release()
	}
}

func (r *Router) reload(v View, u *url.URL) Navigation {
	r.bus.Emit(bus.KindViewSwitched, Switched{From: r.active, To: v.ID, URL: u.String(), Reload: true})
	return Navigation{View: v.ID, Title: v.Title, URL: u, Reload: true}
}

func (r *Router) onDashboard() bool {
	p := strings.TrimSuffix(r.location.Path, "/")
	return p == r.dash.Path
}

func (r *Router) dashboardURL(view string) *url.URL {
	return r.resolve(r.dash.Path, url.Values{"view": {view}})
}

// resolve builds path?query against the current location, so absolute start
// URLs keep their scheme and host.
func (r *Router) resolve(path string, q url.Values) *url.URL {
	ref := &url.URL{Path: path}
	if q != nil {
		ref.RawQuery = q.Encode()
	}
	return r.location.ResolveReference(ref)
}
