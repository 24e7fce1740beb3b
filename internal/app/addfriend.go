package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/eatnsplit/internal/models"
)

// AddFriendDraft is the text entered in the add-friend form.
type AddFriendDraft struct {
	Name  string
	Image string
}

func (a *App) defaultAddDraft() AddFriendDraft {
	return AddFriendDraft{Image: a.avatarURL}
}

// ToggleAddFriend opens the add-friend form, or closes it if already open.
// Opening clears any selection and starts from a default draft.
func (a *App) ToggleAddFriend() {
	a.mu.Lock()
	var changes []Change
	switch m := a.mode.(type) {
	case AddingFriend:
		a.mode = Idle{}
		changes = append(changes, Change{Entity: EntityAddForm, Action: ActionClosed})
	case SplittingBill:
		a.mode = AddingFriend{}
		a.addDraft = a.defaultAddDraft()
		a.billDraft = defaultBillDraft()
		changes = append(changes,
			Change{Entity: EntitySelection, Action: ActionCleared, FriendID: m.FriendID},
			Change{Entity: EntityAddForm, Action: ActionOpened},
		)
	case Idle:
		a.mode = AddingFriend{}
		a.addDraft = a.defaultAddDraft()
		changes = append(changes, Change{Entity: EntityAddForm, Action: ActionOpened})
	}
	a.mu.Unlock()

	a.notify(changes...)
}

// AddFriendDraft returns the add-friend form contents and whether the form
// is open.
func (a *App) AddFriendDraft() (AddFriendDraft, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, open := a.mode.(AddingFriend)
	return a.addDraft, open
}

// SetFriendName updates the name field. It reports false if the form is closed.
func (a *App) SetFriendName(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, open := a.mode.(AddingFriend); !open {
		return false
	}
	a.addDraft.Name = name
	return true
}

// SetFriendImage updates the image URL field. It reports false if the form is closed.
func (a *App) SetFriendImage(image string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, open := a.mode.(AddingFriend); !open {
		return false
	}
	a.addDraft.Image = image
	return true
}

// SubmitAddFriend appends a new friend built from the draft.
//
// It does nothing and returns (nil, nil) when the form is closed or either
// field is blank; the draft is left as it was. On success the friend gets a
// fresh ID, an avatar URL made unique by that ID and a zero balance, the draft
// is reset and the form closes.
func (a *App) SubmitAddFriend(ctx context.Context) (*models.Friend, error) {
	a.mu.Lock()
	friend, err := a.submitAddFriendLocked(ctx)
	a.mu.Unlock()

	if friend != nil {
		a.notify(
			Change{Entity: EntityFriend, Action: ActionAdded, FriendID: friend.ID},
			Change{Entity: EntityAddForm, Action: ActionClosed},
		)
	}
	return friend, err
}

func (a *App) submitAddFriendLocked(ctx context.Context) (*models.Friend, error) {
	if _, open := a.mode.(AddingFriend); !open {
		return nil, nil
	}

	name := strings.TrimSpace(a.addDraft.Name)
	image := strings.TrimSpace(a.addDraft.Image)
	if name == "" || image == "" {
		slog.Debug("Add friend skipped", "reason", "empty field")
		return nil, nil
	}

	id := a.newID()
	friend := &models.Friend{
		ID:      id,
		Name:    name,
		Image:   models.AvatarFor(image, id),
		Balance: 0,
	}
	if err := a.store.AppendFriend(ctx, friend); err != nil {
		return nil, fmt.Errorf("failed to add friend: %w", err)
	}

	a.addDraft = a.defaultAddDraft()
	a.mode = Idle{}

	slog.Info("Friend added", "friend_id", friend.ID, "name", friend.Name)
	return friend, nil
}
