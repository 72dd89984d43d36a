package model

import (
	"strings"
	"sync"

	"github.com/matheus3301/hirechat/internal/chat"
	"github.com/matheus3301/hirechat/internal/store"
	intsync "github.com/matheus3301/hirechat/internal/sync"
)

const (
	listLimit   = 200
	searchLimit = 50
)

// ViewModel caches the conversation list of one surface for the UI. Loads
// hit the local cache; callers run them off the UI goroutine.
type ViewModel struct {
	mu sync.RWMutex

	surface chat.Surface
	known   *intsync.Reconciler
	db      *store.DB

	conversations []intsync.Known
	filter        string
}

// NewViewModel creates a view model for surface backed by the local cache.
func NewViewModel(surface chat.Surface, known *intsync.Reconciler, db *store.DB) *ViewModel {
	return &ViewModel{
		surface: surface,
		known:   known,
		db:      db,
	}
}

// LoadConversations refreshes the cached conversation list.
func (vm *ViewModel) LoadConversations() error {
	list, err := vm.known.Known(vm.surface, listLimit)
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.conversations = list
	vm.mu.Unlock()
	return nil
}

// SetFilter sets the text conversation lists are narrowed by.
func (vm *ViewModel) SetFilter(filter string) {
	vm.mu.Lock()
	vm.filter = strings.TrimSpace(filter)
	vm.mu.Unlock()
}

// Filter returns the active filter.
func (vm *ViewModel) Filter() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.filter
}

// Count returns how many conversations are known, ignoring the filter.
func (vm *ViewModel) Count() int {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return len(vm.conversations)
}

// Conversations returns the known conversations on channel that match the
// filter, in cache order (most recently updated first).
func (vm *ViewModel) Conversations(channel chat.ChannelType) []intsync.Known {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	var out []intsync.Known
	for _, k := range vm.conversations {
		if k.Conversation.Channel != channel {
			continue
		}
		if vm.filter != "" && !matches(k, vm.filter) {
			continue
		}
		out = append(out, k)
	}
	return out
}

// Lookup returns the known entry of conv.
func (vm *ViewModel) Lookup(conv chat.Conversation) (intsync.Known, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	for _, k := range vm.conversations {
		if k.Conversation == conv {
			return k, true
		}
	}
	return intsync.Known{}, false
}

// Search looks up cached messages of this surface.
func (vm *ViewModel) Search(query string) ([]store.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	return vm.db.SearchMessages(string(vm.surface), query, searchLimit)
}

func matches(k intsync.Known, filter string) bool {
	f := strings.ToLower(filter)
	return strings.Contains(strings.ToLower(k.Title()), f) ||
		strings.Contains(strings.ToLower(k.Conversation.Key), f) ||
		strings.Contains(strings.ToLower(k.Summary.LastMessagePreview), f)
}
