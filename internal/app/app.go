// Package app holds the application state of eatnsplit and every transition
// that user input can trigger: toggling the add-friend form, selecting a
// friend, editing and submitting the two forms.
//
// All state lives in one App. Front ends read it through View and mutate it
// only through App's methods, so the rendered output is always derived fresh
// from current state.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mmynk/eatnsplit/internal/models"
	"github.com/mmynk/eatnsplit/internal/storage"
)

// App owns the friend registry, the UI mode and both form drafts.
// Methods are safe to call from multiple goroutines; they are applied one at
// a time.
type App struct {
	mu        sync.Mutex
	store     storage.Store
	mode      Mode
	addDraft  AddFriendDraft
	billDraft BillDraft

	newID     func() string
	avatarURL string
	observers []Observer
}

// Option configures an App.
type Option func(*App)

// WithIDFunc replaces the identifier source used for new friends.
func WithIDFunc(fn func() string) Option {
	return func(a *App) {
		a.newID = fn
	}
}

// WithAvatarTemplate sets the default image URL of the add-friend form.
func WithAvatarTemplate(url string) Option {
	return func(a *App) {
		a.avatarURL = url
	}
}

// WithObserver registers an observer for state transitions.
func WithObserver(o Observer) Option {
	return func(a *App) {
		a.observers = append(a.observers, o)
	}
}

// New creates an App backed by store, starting in Idle mode.
func New(store storage.Store, opts ...Option) *App {
	a := &App{
		store:     store,
		mode:      Idle{},
		newID:     uuid.NewString,
		avatarURL: models.DefaultAvatarURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.addDraft = a.defaultAddDraft()
	a.billDraft = defaultBillDraft()
	return a
}

// Seed appends friends to the registry in order.
func Seed(ctx context.Context, store storage.Store, friends []models.Friend) error {
	for i := range friends {
		friend := friends[i]
		if err := store.AppendFriend(ctx, &friend); err != nil {
			return fmt.Errorf("failed to seed friend %s: %w", friend.Name, err)
		}
	}
	return nil
}

// Mode returns the current UI mode.
func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Friends returns the friend list in registry order.
func (a *App) Friends(ctx context.Context) ([]models.Friend, error) {
	return a.store.ListFriends(ctx)
}

// Settlements returns the recorded bill splits, newest first. An empty
// friendID returns all of them.
func (a *App) Settlements(ctx context.Context, friendID string) ([]models.Settlement, error) {
	return a.store.ListSettlements(ctx, friendID)
}

func (a *App) notify(changes ...Change) {
	for _, c := range changes {
		slog.Debug("State changed", "entity", c.Entity, "action", c.Action, "friend_id", c.FriendID)
		for _, o := range a.observers {
			o.Observe(c)
		}
	}
}
