package service

import (
	"github.com/mmynk/eatnsplit/internal/app"
	"github.com/mmynk/eatnsplit/internal/models"
)

// Friend is a friend row as sent over the wire.
type Friend struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Balance  float64 `json:"balance"`
	Status   string  `json:"status,omitempty"`
	Message  string  `json:"message,omitempty"`
	Selected bool    `json:"selected,omitempty"`
}

// Summary totals balances across all friends.
type Summary struct {
	OwedToYou float64 `json:"owed_to_you"`
	YouOwe    float64 `json:"you_owe"`
	Net       float64 `json:"net"`
}

// AddFriendForm is the open add-friend form.
type AddFriendForm struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// SplitBillForm is the open split-bill form.
type SplitBillForm struct {
	FriendID   string  `json:"friend_id"`
	FriendName string  `json:"friend_name"`
	BillTotal  float64 `json:"bill_total"`
	UserPaid   float64 `json:"user_paid"`
	FriendPaid float64 `json:"friend_paid"`
	Payer      string  `json:"payer"`
}

// View is the complete rendered state.
type View struct {
	Friends        []Friend       `json:"friends"`
	Summary        Summary        `json:"summary"`
	AddButtonLabel string         `json:"add_button_label"`
	AddFriend      *AddFriendForm `json:"add_friend,omitempty"`
	SplitBill      *SplitBillForm `json:"split_bill,omitempty"`
}

// Settlement is one applied bill split.
type Settlement struct {
	ID         string  `json:"id"`
	FriendID   string  `json:"friend_id"`
	BillTotal  float64 `json:"bill_total"`
	UserPaid   float64 `json:"user_paid"`
	FriendPaid float64 `json:"friend_paid"`
	Payer      string  `json:"payer"`
	Delta      float64 `json:"delta"`
	CreatedAt  int64   `json:"created_at"`
}

type GetViewRequest struct{}

type GetViewResponse struct {
	View View `json:"view"`
}

type ListFriendsRequest struct{}

type ListFriendsResponse struct {
	Friends []Friend `json:"friends"`
}

type ToggleAddFriendRequest struct{}

type ToggleAddFriendResponse struct {
	View View `json:"view"`
}

// AddFriendRequest fills and submits the add-friend form. An empty Image
// keeps the form's default avatar template.
type AddFriendRequest struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

type AddFriendResponse struct {
	Applied bool    `json:"applied"`
	Friend  *Friend `json:"friend,omitempty"`
	View    View    `json:"view"`
}

type SelectFriendRequest struct {
	FriendID string `json:"friend_id"`
}

type SelectFriendResponse struct {
	View View `json:"view"`
}

// SplitBillRequest fills and submits the split-bill form. If FriendID is set
// and not already selected, that friend is selected first.
type SplitBillRequest struct {
	FriendID  string  `json:"friend_id,omitempty"`
	BillTotal float64 `json:"bill_total"`
	UserPaid  float64 `json:"user_paid"`
	Payer     string  `json:"payer,omitempty"`
}

type SplitBillResponse struct {
	Applied    bool        `json:"applied"`
	Rejected   []string    `json:"rejected,omitempty"`
	Settlement *Settlement `json:"settlement,omitempty"`
	View       View        `json:"view"`
}

type ListSettlementsRequest struct {
	FriendID string `json:"friend_id,omitempty"`
}

type ListSettlementsResponse struct {
	Settlements []Settlement `json:"settlements"`
}

func toFriend(f models.Friend) Friend {
	return Friend{ID: f.ID, Name: f.Name, Image: f.Image, Balance: f.Balance}
}

func toSettlement(s models.Settlement) Settlement {
	return Settlement{
		ID:         s.ID,
		FriendID:   s.FriendID,
		BillTotal:  s.BillTotal,
		UserPaid:   s.UserPaid,
		FriendPaid: s.FriendPaid,
		Payer:      string(s.Payer),
		Delta:      s.Delta,
		CreatedAt:  s.CreatedAt,
	}
}

func toView(v app.View) View {
	out := View{
		Friends: make([]Friend, len(v.Friends)),
		Summary: Summary{
			OwedToYou: v.Summary.OwedToYou,
			YouOwe:    v.Summary.YouOwe,
			Net:       v.Summary.Net,
		},
		AddButtonLabel: v.AddButtonLabel,
	}
	for i, fv := range v.Friends {
		f := toFriend(fv.Friend)
		f.Status = fv.Status.String()
		f.Message = fv.Message
		f.Selected = fv.Selected
		out.Friends[i] = f
	}
	if v.AddFriend != nil {
		out.AddFriend = &AddFriendForm{Name: v.AddFriend.Name, Image: v.AddFriend.Image}
	}
	if v.SplitBill != nil {
		out.SplitBill = &SplitBillForm{
			FriendID:   v.SplitBill.Friend.ID,
			FriendName: v.SplitBill.Friend.Name,
			BillTotal:  v.SplitBill.BillTotal,
			UserPaid:   v.SplitBill.UserPaid,
			FriendPaid: v.SplitBill.FriendPaid,
			Payer:      string(v.SplitBill.Payer),
		}
	}
	return out
}
