package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/hirechat/internal/bus"
	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/router"
	"github.com/matheus3301/hirechat/internal/status"
	intsync "github.com/matheus3301/hirechat/internal/sync"
	"github.com/matheus3301/hirechat/internal/tui/keys"
	"github.com/matheus3301/hirechat/internal/tui/model"
	"github.com/matheus3301/hirechat/internal/tui/ui"
	"github.com/matheus3301/hirechat/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Root page names.
const (
	pageMain    = "main"
	pageHelp    = "help"
	pageSearch  = "search"
	pageShare   = "share"
	pageDetails = "details"
	pageAlert   = "alert"
)

// Options wires the app to the rest of the client.
type Options struct {
	Profile string
	Router  *router.Router
	// Chat configures the controller; Pane and Composer are filled in by New.
	Chat   chat.Options
	Model  *model.ViewModel
	Bus    *bus.Bus
	Logger *zap.Logger
}

// App is the main TUI application shell.
//
// Controller calls block on the network and hold the controller's lock while
// they update the pane, so the UI goroutine never calls into the controller
// directly: opens, sends and refreshes run on their own goroutines, and the
// pane and composer hand their updates back through a repaint request.
// Close is the exception; it only cancels the poll handle.
type App struct {
	app      *tview.Application
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.Logger
	profile  string
	surface  chat.Surface
	router   *router.Router
	ctl      *chat.Controller
	vm       *model.ViewModel
	bus      *bus.Bus
	theme    *ui.Theme
	flash    *ui.FlashModel
	registry *keys.Registry

	pages     *ui.Pages
	main      *tview.Flex
	content   *tview.Pages
	info      *ui.SessionInfo
	menu      *ui.Menu
	crumbs    *ui.Crumbs
	prompt    *ui.Prompt
	flashBar  *ui.FlashBar
	statusBar *views.StatusBar
	sidebar   *views.Sidebar
	thread    *views.Thread
	composer  *views.Composer
	screens   map[string]*views.Screen
	help      *views.HelpView
	search    *views.SearchView
	share     *views.ShareView
	details   *views.ConversationInfo

	opens *openQueue
	dirty chan struct{}

	// Guarded by the UI goroutine.
	state       status.State
	returnFocus tview.Primitive
	detailsConv chat.Conversation
}

// New builds the application and its controller.
func New(opts Options) *App {
	ctx, cancel := context.WithCancel(context.Background())
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	theme := ui.DefaultTheme()
	d := opts.Router.Dashboard()

	a := &App{
		app:      tview.NewApplication(),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger.Named("tui"),
		profile:  opts.Profile,
		surface:  d.Surface,
		router:   opts.Router,
		vm:       opts.Model,
		bus:      opts.Bus,
		theme:    theme,
		flash:    ui.NewFlashModel(),
		registry: keys.NewRegistry(),
		screens:  make(map[string]*views.Screen),
		opens:    newOpenQueue(8),
		dirty:    make(chan struct{}, 1),
		state:    status.Idle,
	}

	a.thread = views.NewThread(theme, a.requestPaint)
	a.composer = views.NewComposer(theme, a.requestPaint)

	chatOpts := opts.Chat
	chatOpts.Surface = d.Surface
	chatOpts.Pane = a.thread
	chatOpts.Composer = a.composer
	a.ctl = chat.NewController(chatOpts)

	a.setupLayout(d)
	a.setupBindings(d)
	a.setupCallbacks()
	return a
}

// Controller returns the chat controller driving the transcript pane.
func (a *App) Controller() *chat.Controller { return a.ctl }

func (a *App) setupLayout(d router.Dashboard) {
	a.info = ui.NewSessionInfo(a.theme)
	a.menu = ui.NewMenu(a.theme)
	a.crumbs = ui.NewCrumbs(a.theme)
	a.prompt = ui.NewPrompt(a.theme)
	a.flashBar = ui.NewFlashBar(a.theme)
	a.statusBar = views.NewStatusBar(a.profile, string(a.surface))
	a.sidebar = views.NewSidebar(a.theme, d)
	a.help = views.NewHelpView(a.theme, d)
	a.search = views.NewSearchView(a.theme)
	a.share = views.NewShareView(a.theme)
	a.details = views.NewConversationInfo(a.theme)

	a.prompt.SetCompletions(append(append([]string{}, Commands...), d.IDs()...))

	header := tview.NewFlex().
		AddItem(a.info, 38, 0, false).
		AddItem(a.menu, 0, 1, false).
		AddItem(ui.NewLogo(a.theme, string(a.surface)+" dashboard"), 26, 0, false)

	chatColumn := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.thread, 0, 1, false).
		AddItem(a.composer, 3, 0, false)

	a.content = tview.NewPages()
	for _, s := range views.NewScreens(a.theme, d, a.content, chatColumn, a.thread, a.viewLink) {
		a.screens[s.View().ID] = s
		if err := a.router.Bind(s.View().ID, s); err != nil {
			a.logger.Error("bind panel", zap.Error(err))
		}
	}
	a.router.SetNav(a.sidebar)

	body := tview.NewFlex().
		AddItem(a.sidebar, 30, 0, false).
		AddItem(a.content, 0, 1, true)

	a.main = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 7, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.flashBar, 1, 0, false).
		AddItem(a.statusBar, 1, 0, false)

	a.pages = ui.NewPages()
	a.pages.AddPage(pageMain, a.main, true, true)
	a.pages.AddPage(pageHelp, a.help, true, false)
	a.pages.AddPage(pageSearch, a.search, true, false)
	a.pages.AddPage(pageShare, a.share, true, false)
	a.pages.AddPage(pageDetails, a.details, true, false)
	a.pages.Reset(pageMain)
	a.pages.SetOnChange(func([]string) { a.refreshChrome() })

	a.app.SetRoot(a.pages, true)
	a.app.SetInputCapture(a.capture)
	a.app.SetFocus(a.sidebar)
}

func (a *App) setupBindings(d router.Dashboard) {
	global := []struct {
		name string
		act  *keys.Action
	}{
		{"command", &keys.Action{Key: tcell.KeyRune, Rune: ':', Hint: ":", Description: "Command", Visible: true, Handler: func() { a.activatePrompt(ui.PromptCommand) }}},
		{"filter", &keys.Action{Key: tcell.KeyRune, Rune: '/', Hint: "/", Description: "Filter", Visible: true, Handler: func() { a.activatePrompt(ui.PromptFilter) }}},
		{"search", &keys.Action{Key: tcell.KeyRune, Rune: 's', Hint: "s", Description: "Search", Visible: true, Handler: a.showSearch}},
		{"compose", &keys.Action{Key: tcell.KeyRune, Rune: 'i', Hint: "i", Description: "Compose", Visible: true, Handler: a.focusComposer}},
		{"refresh", &keys.Action{Key: tcell.KeyRune, Rune: 'r', Hint: "r", Description: "Refresh", Handler: a.refresh}},
		{"next", &keys.Action{Key: tcell.KeyTab, Hint: "Tab", Description: "Next pane", Handler: a.cycleFocus}},
		{"back", &keys.Action{Key: tcell.KeyEscape, Hint: "Esc", Description: "Back", Visible: true, Handler: a.back}},
		{"help", &keys.Action{Key: tcell.KeyRune, Rune: '?', Hint: "?", Description: "Help", Visible: true, Handler: a.showHelp}},
		{"quit", &keys.Action{Key: tcell.KeyRune, Rune: 'q', Hint: "q", Description: "Quit", Visible: true, Handler: a.Stop}},
	}
	for _, g := range global {
		a.registry.AddGlobal(g.name, g.act)
	}
	for i := range d.Views {
		if i >= 9 {
			break
		}
		n := i + 1
		a.registry.AddGlobal(fmt.Sprintf("view-%d", n), &keys.Action{
			Key: tcell.KeyRune, Rune: rune('0' + n),
			Hint: "1-9", Description: "View", Numeric: true, Visible: n == 1,
			Handler: func() {
				if id, ok := a.sidebar.ViewAt(n); ok {
					a.switchView(id)
				}
			},
		})
	}

	details := &keys.Action{Key: tcell.KeyRune, Rune: 'd', Hint: "d", Description: "Details", Visible: true, Handler: a.showDetails}
	a.registry.AddView("list", "details", details)
	a.registry.AddView("thread", "details", details)
	a.registry.AddView(pageDetails, "open", &keys.Action{Key: tcell.KeyEnter, Hint: "Enter", Description: "Open", Visible: true, Handler: func() {
		conv := a.detailsConv
		a.popOverlay()
		a.openConversation(conv, "")
	}})
}

func (a *App) setupCallbacks() {
	a.sidebar.SetOnSelect(a.switchView)

	for _, s := range a.screens {
		if s.List == nil {
			continue
		}
		list := s.List
		list.SetSelectedFunc(func(int, int) {
			if k, ok := list.Selected(); ok {
				a.openConversation(k.Conversation, k.Title())
			}
		})
	}

	a.composer.SetOnSend(func(text string) {
		go a.send(text)
	})

	a.prompt.SetOnSubmit(func(mode ui.PromptMode, text string) {
		a.deactivatePrompt()
		switch mode {
		case ui.PromptCommand:
			a.runCommand(ParseCommand(text))
		case ui.PromptFilter:
			a.applyFilter(text)
		}
	})
	a.prompt.SetOnCancel(func() {
		mode := a.prompt.Mode()
		a.deactivatePrompt()
		if mode == ui.PromptFilter {
			a.applyFilter("")
		}
	})

	a.search.SetOnQuery(func(query string) {
		go func() {
			results, err := a.vm.Search(query)
			if err != nil {
				a.flash.Err(fmt.Errorf("search: %w", err))
				return
			}
			a.app.QueueUpdateDraw(func() {
				a.search.Update(results, query)
				if len(results) > 0 {
					a.app.SetFocus(a.search.Results())
				}
			})
		}()
	})
	a.search.Results().SetSelectedFunc(func(int, int) {
		conv, ok := a.search.SelectedResult()
		if !ok {
			return
		}
		a.popOverlay()
		a.openConversation(conv, "")
	})
}

// Run starts the TUI application and blocks until it stops.
func (a *App) Run() error {
	a.follow(a.router.Initial())

	go a.paintLoop()
	go a.openLoop()
	go a.watchBus()
	go a.watchFlash()
	go a.clock()
	go a.reloadConversations()

	return a.app.Run()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.ctl.Close()
	a.cancel()
	a.app.Stop()
}

// requestPaint asks for the pane and composer to be repainted. It never
// blocks, so the controller may call it while holding its lock.
func (a *App) requestPaint() {
	select {
	case a.dirty <- struct{}{}:
	default:
	}
}

func (a *App) paintLoop() {
	for {
		select {
		case <-a.ctx.Done():
			return
		case <-a.dirty:
			a.app.QueueUpdateDraw(func() {
				a.thread.Paint()
				a.composer.Paint()
			})
		}
	}
}

// openLoop serializes conversation opens so the last one requested wins.
func (a *App) openLoop() {
	for {
		select {
		case <-a.ctx.Done():
			return
		case req := <-a.opens.ch:
			ran, err := a.opens.run(req, func() error {
				return a.ctl.Open(a.ctx, req.conv, req.title)
			})
			if !ran {
				a.logger.Debug("dropping superseded open", zap.Stringer("conversation", req.conv))
				continue
			}
			if err != nil {
				a.logger.Warn("open conversation failed", zap.Stringer("conversation", req.conv), zap.Error(err))
				a.flash.Err(err)
			}
		}
	}
}

func (a *App) watchBus() {
	if a.bus == nil {
		return
	}
	ch, unsub := a.bus.Subscribe("", 128)
	defer unsub()
	for {
		select {
		case <-a.ctx.Done():
			return
		case evt := <-ch:
			a.handleEvent(evt)
		}
	}
}

func (a *App) handleEvent(evt bus.Event) {
	switch p := evt.Payload.(type) {
	case status.StatusChange:
		conv, _, open := a.thread.Current()
		if !open || p.Subject != conv.String() {
			return
		}
		a.app.QueueUpdateDraw(func() {
			a.state = p.To
			a.refreshChrome()
		})
	case chat.FetchFailed:
		a.flash.Warn(chat.ErrorText)
	case intsync.CacheUpdated:
		a.reloadConversations()
	}
}

func (a *App) watchFlash() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-a.ctx.Done():
			return
		case <-a.flash.Watch():
		case <-ticker.C:
		}
		msg := a.flash.GetMessage()
		a.app.QueueUpdateDraw(func() { a.flashBar.Update(msg) })
	}
}

func (a *App) clock() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			a.app.QueueUpdateDraw(a.statusBar.Tick)
		}
	}
}

// reloadConversations reads the cache and refreshes every list. Runs off the
// UI goroutine.
func (a *App) reloadConversations() {
	if err := a.vm.LoadConversations(); err != nil {
		a.logger.Warn("load conversations failed", zap.Error(err))
		a.flash.Err(fmt.Errorf("load conversations: %w", err))
		return
	}
	a.app.QueueUpdateDraw(a.refreshLists)
}

func (a *App) refreshLists() {
	filter := a.vm.Filter()
	conv, _, open := a.thread.Current()
	for _, s := range a.screens {
		if s.List == nil {
			continue
		}
		s.List.Update(a.vm.Conversations(s.Channel), filter)
		if open {
			s.List.SetActive(conv)
		}
	}
	a.refreshChrome()
}

// refreshChrome redraws header, crumbs and status from current state.
func (a *App) refreshChrome() {
	view := a.router.Active()
	title := view
	if v, ok := a.router.Dashboard().View(view); ok {
		title = v.Title
	}
	conv, convTitle, open := a.thread.Current()
	chatName := ""
	if open {
		chatName = convTitle
	}

	convName := ""
	if open {
		convName = conv.String()
	}
	host := ""
	if u := a.router.Location(); u != nil {
		host = u.Host
	}
	a.info.Update(&ui.SessionData{
		Profile:      a.profile,
		Surface:      string(a.surface),
		Host:         host,
		View:         view,
		Conversation: convName,
		State:        string(a.state),
		Known:        a.vm.Count(),
	})

	overlay := ""
	if top := a.pages.Current(); top != pageMain {
		overlay = top
	}
	a.crumbs.Update(string(a.surface), title, chatName, overlay)
	a.menu.Update(a.registry.Hints(a.scope()))
	a.statusBar.SetState(string(a.state), open && a.state != status.Cancelled && a.state != status.Idle)
}

// scope names the key binding scope of what has focus.
func (a *App) scope() string {
	if top := a.pages.Current(); top != pageMain {
		return top
	}
	switch f := a.app.GetFocus(); f {
	case a.sidebar:
		return "sidebar"
	case a.thread:
		return "thread"
	case a.composer:
		return "composer"
	default:
		if s := a.activeScreen(); s != nil && s.List != nil && f == s.List {
			return "list"
		}
	}
	return ""
}

func (a *App) activeScreen() *views.Screen {
	return a.screens[a.router.Active()]
}

// capture is the application-wide key handler.
func (a *App) capture(ev *tcell.EventKey) *tcell.EventKey {
	if a.pages.Current() == pageAlert {
		return ev
	}
	switch f := a.app.GetFocus(); f {
	case a.composer:
		if ev.Key() == tcell.KeyEscape {
			a.app.SetFocus(a.thread)
			a.refreshChrome()
			return nil
		}
		return ev
	case a.prompt:
		return ev
	case a.search.Input():
		if ev.Key() == tcell.KeyEscape {
			a.popOverlay()
			return nil
		}
		return ev
	}
	if ev.Key() == tcell.KeyCtrlC {
		a.Stop()
		return nil
	}
	if a.registry.HandleEvent(a.scope(), ev) {
		return nil
	}
	return ev
}

// switchView activates a view through the router.
func (a *App) switchView(id string) {
	a.follow(a.router.Switch(id))
}

// follow applies the outcome of a router operation to the screen.
func (a *App) follow(nav router.Navigation, err error) {
	if err != nil {
		a.flash.Err(err)
		return
	}
	// Opens queued for the view we left must not start a poll behind the
	// new one.
	a.opens.invalidate()
	if nav.Reload {
		// The target is not part of this dashboard page. The poll was already
		// released, so the pane must not keep showing a live conversation.
		a.detach()
		a.showShare(nav.URL.String(), nav.Title+" (open in browser)")
		return
	}

	s := a.screens[nav.View]
	if s != nil {
		a.app.SetFocus(s.Focus())
	}
	if nav.Open != nil {
		title := ""
		if v, ok := a.router.Dashboard().View(nav.View); ok && v.Chat != nil {
			title = v.Title
		}
		a.openConversation(*nav.Open, title)
	} else {
		a.detach()
	}
	a.refreshChrome()
}

// detach shows the pane as idle. The router released the poll already; an
// open that finished after it is released here too.
func (a *App) detach() {
	a.ctl.Close()
	a.thread.Reset("Select a conversation.")
	a.composer.Unbind()
	a.state = status.Idle
	for _, s := range a.screens {
		if s.List != nil {
			s.List.SetActive(chat.Conversation{})
		}
	}
}

// openConversation queues conv to be opened by the controller.
func (a *App) openConversation(conv chat.Conversation, title string) {
	if _, err := chat.RouteFor(a.surface, conv); err != nil {
		a.flash.Err(err)
		return
	}
	if title == "" {
		if k, ok := a.vm.Lookup(conv); ok {
			title = k.Title()
		}
	}
	if target := a.viewFor(conv); target != a.router.Active() {
		nav, err := a.router.Switch(target)
		if err != nil || nav.Reload {
			a.follow(nav, err)
			return
		}
		if s := a.screens[nav.View]; s != nil {
			a.app.SetFocus(s.Focus())
		}
	}
	if s := a.activeScreen(); s != nil && s.List != nil {
		s.List.SetActive(conv)
	}
	a.state = status.Loading
	if !a.opens.push(conv, title) {
		a.flash.Warn("too many pending opens, try again")
	}
	a.refreshChrome()
}

// viewFor returns the view that shows conv: a view dedicated to it, or the
// dashboard's conversation browser.
func (a *App) viewFor(conv chat.Conversation) string {
	d := a.router.Dashboard()
	for _, v := range d.Views {
		if v.Chat != nil && *v.Chat == conv {
			return v.ID
		}
	}
	return d.ChatView
}

func (a *App) send(text string) {
	err := a.ctl.Send(a.ctx, text)
	switch {
	case err == nil:
		a.flash.Info("Message sent")
	case errors.Is(err, chat.ErrEmptyMessage):
	case errors.Is(err, context.Canceled):
	default:
		a.app.QueueUpdateDraw(func() {
			a.alert("Failed to send message.\n\n" + err.Error())
		})
	}
}

func (a *App) refresh() {
	if _, ok := a.composer.Bound(); !ok {
		a.flash.Warn("no conversation open")
		return
	}
	go a.ctl.Refresh()
	a.flash.Info("Refreshing")
}

func (a *App) focusComposer() {
	if _, ok := a.composer.Bound(); !ok {
		a.flash.Warn("open a conversation first")
		return
	}
	if s := a.activeScreen(); s == nil || !s.HasChat() {
		return
	}
	a.app.SetFocus(a.composer)
	a.refreshChrome()
}

// cycleFocus moves focus sidebar -> list -> thread -> sidebar.
func (a *App) cycleFocus() {
	order := []tview.Primitive{a.sidebar}
	if s := a.activeScreen(); s != nil {
		if s.List != nil {
			order = append(order, s.List)
		}
		if s.HasChat() {
			order = append(order, a.thread)
		} else {
			order = append(order, s.Primitive)
		}
	}
	current := a.app.GetFocus()
	next := order[0]
	for i, p := range order {
		if p == current {
			next = order[(i+1)%len(order)]
		}
	}
	a.app.SetFocus(next)
	a.refreshChrome()
}

// back closes the top overlay, leaves the thread, or goes to the previous
// view, in that order.
func (a *App) back() {
	if a.pages.Depth() > 1 {
		a.popOverlay()
		return
	}
	if a.app.GetFocus() == a.thread {
		if s := a.activeScreen(); s != nil && s.List != nil {
			a.app.SetFocus(s.List)
			a.refreshChrome()
			return
		}
	}
	nav, ok, err := a.router.Back()
	if !ok {
		a.flash.Info("no previous view")
		return
	}
	a.follow(nav, err)
}

func (a *App) pushOverlay(name string, focus tview.Primitive) {
	if a.pages.Current() == pageMain {
		a.returnFocus = a.app.GetFocus()
	}
	a.pages.Push(name)
	a.app.SetFocus(focus)
}

func (a *App) popOverlay() {
	a.pages.Pop()
	if a.pages.Current() == pageMain && a.returnFocus != nil {
		a.app.SetFocus(a.returnFocus)
	}
	a.refreshChrome()
}

func (a *App) showHelp() {
	a.pushOverlay(pageHelp, a.help)
}

func (a *App) showSearch() {
	a.search.Reset()
	a.pushOverlay(pageSearch, a.search.Input())
}

func (a *App) showShare(link, title string) {
	a.share.SetTitle(fmt.Sprintf(" %s ", tview.Escape(title)))
	a.share.ShowURL(link)
	a.pushOverlay(pageShare, a.share)
}

func (a *App) showDetails() {
	var conv chat.Conversation
	var known intsync.Known
	found := false
	if a.scope() == "list" {
		if k, ok := a.activeScreen().List.Selected(); ok {
			known, conv, found = k, k.Conversation, true
		}
	} else if c, title, open := a.thread.Current(); open {
		conv, found = c, true
		known = intsync.Known{Conversation: c}
		known.Summary.Title = title
		if k, ok := a.vm.Lookup(c); ok {
			known = k
		}
	}
	if !found {
		return
	}
	route, err := chat.RouteFor(a.surface, conv)
	if err != nil {
		a.flash.Err(err)
		return
	}
	a.detailsConv = conv
	a.details.Update(known, route)
	a.pushOverlay(pageDetails, a.details)
}

// alert shows a blocking modal over the current screen.
func (a *App) alert(text string) {
	focus := a.app.GetFocus()
	modal := views.NewAlert(a.theme, text, func() {
		a.pages.Pop()
		a.app.SetFocus(focus)
		a.refreshChrome()
	})
	a.pages.Overlay(pageAlert, modal)
	a.app.SetFocus(modal)
}

func (a *App) activatePrompt(mode ui.PromptMode) {
	if mode == ui.PromptFilter {
		if s := a.activeScreen(); s == nil || s.List == nil {
			a.flash.Warn("nothing to filter in this view")
			return
		}
	}
	initial := ""
	if mode == ui.PromptFilter {
		initial = a.vm.Filter()
	}
	a.returnFocus = a.app.GetFocus()
	a.prompt.Activate(mode, initial)
	a.main.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) deactivatePrompt() {
	a.main.ResizeItem(a.prompt, 0, 0)
	if a.returnFocus != nil {
		a.app.SetFocus(a.returnFocus)
	}
}

func (a *App) applyFilter(text string) {
	a.vm.SetFilter(text)
	a.refreshLists()
}

// runCommand executes a prompt command.
func (a *App) runCommand(cmd Command) {
	switch cmd.Name {
	case "quit":
		a.Stop()
	case "help":
		a.showHelp()
	case "back":
		a.back()
	case "refresh":
		a.refresh()
	case "search":
		a.showSearch()
		if q := cmd.Rest(0); q != "" {
			a.search.Input().SetText(q)
			go func() {
				results, err := a.vm.Search(q)
				if err != nil {
					a.flash.Err(err)
					return
				}
				a.app.QueueUpdateDraw(func() { a.search.Update(results, q) })
			}()
		}
	case "share":
		title := "Share"
		if v, ok := a.router.Dashboard().View(a.router.Active()); ok {
			title = v.Title
		}
		a.showShare(a.router.Location().String(), title)
	case "view":
		id := cmd.Arg(0)
		if id == "" {
			a.flash.Warn("usage: :view <id> [status]")
			return
		}
		if st := cmd.Arg(1); st != "" {
			a.follow(a.router.Filter(id, st))
			return
		}
		a.switchView(id)
	case "open":
		conv, title, err := parseOpen(cmd)
		if err != nil {
			a.flash.Err(err)
			return
		}
		a.openConversation(conv, title)
	case "":
	default:
		a.flash.Warn(fmt.Sprintf("unknown command %q", cmd.Name))
	}
}

// parseOpen reads ":open <channel> [key] [title]". Support threads take no key.
func parseOpen(cmd Command) (chat.Conversation, string, error) {
	channel, err := chat.ParseChannel(cmd.Arg(0))
	if err != nil {
		return chat.Conversation{}, "", err
	}
	if channel == chat.Support {
		return chat.Conversation{Channel: channel}, cmd.Rest(1), nil
	}
	conv, err := chat.ParseConversation(string(channel), cmd.Arg(1))
	if err != nil {
		return chat.Conversation{}, "", err
	}
	return conv, cmd.Rest(2), nil
}

// viewLink is the dashboard URL that opens view directly.
func (a *App) viewLink(view string) string {
	u, err := a.router.URLFor(view)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(u.String())
}
