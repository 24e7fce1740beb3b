package app

import (
	"context"

	"github.com/mmynk/eatnsplit/internal/calculator"
	"github.com/mmynk/eatnsplit/internal/models"
)

// View is everything a front end needs to render one frame.
type View struct {
	Friends []FriendView
	Summary calculator.Summary

	// AddButtonLabel is the caption of the add-friend toggle.
	AddButtonLabel string

	// AddFriend is nil unless the add-friend form is open.
	AddFriend *AddFriendView

	// SplitBill is nil unless a friend is selected.
	SplitBill *SplitBillView
}

// FriendView is one row of the friend list.
type FriendView struct {
	models.Friend
	Status      calculator.BalanceStatus
	Message     string
	Selected    bool
	SelectLabel string
}

// AddFriendView is the add-friend form.
type AddFriendView struct {
	Name  string
	Image string
}

// SplitBillView is the split-bill form for the selected friend.
type SplitBillView struct {
	Friend     models.Friend
	BillTotal  float64
	UserPaid   float64
	FriendPaid float64
	Payer      models.Payer
}

// View derives the complete view from current state.
func (a *App) View(ctx context.Context) (View, error) {
	friends, err := a.store.ListFriends(ctx)
	if err != nil {
		return View{}, err
	}

	a.mu.Lock()
	mode := a.mode
	addDraft := a.addDraft
	billDraft := a.billDraft
	a.mu.Unlock()

	selectedID, _ := selectedOf(mode)

	v := View{
		Friends:        make([]FriendView, len(friends)),
		Summary:        calculator.Summarize(friends),
		AddButtonLabel: "Add friend",
	}
	for i, f := range friends {
		fv := FriendView{
			Friend:      f,
			Status:      calculator.Status(f.Balance),
			Message:     calculator.Describe(f),
			Selected:    f.ID == selectedID,
			SelectLabel: "Select",
		}
		if fv.Selected {
			fv.SelectLabel = "Close"
		}
		v.Friends[i] = fv
	}

	switch m := mode.(type) {
	case Idle:
	case AddingFriend:
		v.AddButtonLabel = "Close"
		v.AddFriend = &AddFriendView{Name: addDraft.Name, Image: addDraft.Image}
	case SplittingBill:
		for _, f := range friends {
			if f.ID != m.FriendID {
				continue
			}
			v.SplitBill = &SplitBillView{
				Friend:     f,
				BillTotal:  billDraft.BillTotal,
				UserPaid:   billDraft.UserPaid,
				FriendPaid: billDraft.FriendPaid(),
				Payer:      billDraft.Payer,
			}
			break
		}
	}

	return v, nil
}

func selectedOf(mode Mode) (string, bool) {
	if m, ok := mode.(SplittingBill); ok {
		return m.FriendID, true
	}
	return "", false
}
