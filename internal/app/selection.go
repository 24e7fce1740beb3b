package app

import "context"

// Selected returns the selected friend's ID, if any.
func (a *App) Selected() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return selectedOf(a.mode)
}

// SelectFriend toggles the selection of friendID.
//
// Selecting the currently selected friend clears the selection. Selecting any
// other friend opens the split-bill form for them with a fresh draft and
// closes the add-friend form. An unknown friendID returns an error wrapping
// storage.ErrNotFound and changes nothing.
func (a *App) SelectFriend(ctx context.Context, friendID string) error {
	if _, err := a.store.GetFriend(ctx, friendID); err != nil {
		return err
	}

	a.mu.Lock()
	var changes []Change
	switch m := a.mode.(type) {
	case SplittingBill:
		if m.FriendID == friendID {
			a.mode = Idle{}
			changes = append(changes, Change{Entity: EntitySelection, Action: ActionCleared, FriendID: friendID})
		} else {
			a.mode = SplittingBill{FriendID: friendID}
			changes = append(changes, Change{Entity: EntitySelection, Action: ActionSelected, FriendID: friendID})
		}
	case AddingFriend:
		a.mode = SplittingBill{FriendID: friendID}
		changes = append(changes,
			Change{Entity: EntityAddForm, Action: ActionClosed},
			Change{Entity: EntitySelection, Action: ActionSelected, FriendID: friendID},
		)
	case Idle:
		a.mode = SplittingBill{FriendID: friendID}
		changes = append(changes, Change{Entity: EntitySelection, Action: ActionSelected, FriendID: friendID})
	}
	a.billDraft = defaultBillDraft()
	a.mu.Unlock()

	a.notify(changes...)
	return nil
}
