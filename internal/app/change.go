package app

import "github.com/mmynk/eatnsplit/internal/models"

// Entities and actions reported in a Change.
const (
	EntityFriend    = "friend"
	EntitySelection = "selection"
	EntityAddForm   = "add_form"
	EntityBill      = "bill"

	ActionAdded    = "added"
	ActionSelected = "selected"
	ActionCleared  = "cleared"
	ActionOpened   = "opened"
	ActionClosed   = "closed"
	ActionSplit    = "split"
)

// Change describes one state transition. Observers receive it after the
// transition has been applied.
type Change struct {
	Entity   string
	Action   string
	FriendID string

	// Set for bill splits only.
	Payer models.Payer
	Delta float64
}

// Observer is notified of every state transition.
type Observer interface {
	Observe(Change)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Change)

// Observe calls f(c).
func (f ObserverFunc) Observe(c Change) {
	f(c)
}
