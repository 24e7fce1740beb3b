package app

// Mode is the transient UI mode. Exactly one is active at a time, which makes
// the add-friend form and a friend selection mutually exclusive.
//
// The concrete modes are Idle, AddingFriend and SplittingBill.
type Mode interface {
	isMode()
}

// Idle means no form is open and no friend is selected.
type Idle struct{}

// AddingFriend means the add-friend form is open.
type AddingFriend struct{}

// SplittingBill means FriendID is selected and the split-bill form is open.
type SplittingBill struct {
	FriendID string
}

func (Idle) isMode()          {}
func (AddingFriend) isMode()  {}
func (SplittingBill) isMode() {}
