package models

// Payer identifies which party fronted the full bill amount.
type Payer string

const (
	// PayerUser means the user paid the bill.
	PayerUser Payer = "user"
	// PayerFriend means the selected friend paid the bill.
	PayerFriend Payer = "friend"
)

// Valid reports whether p is one of the known payers.
func (p Payer) Valid() bool {
	return p == PayerUser || p == PayerFriend
}

// Settlement represents one split bill applied to a friend's balance.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// FriendID is the friend whose balance was adjusted.
	FriendID string

	// BillTotal is the full amount of the bill.
	BillTotal float64

	// UserPaid is the user's own share of the bill.
	UserPaid float64

	// FriendPaid is the friend's share (BillTotal - UserPaid).
	FriendPaid float64

	// Payer is who fronted the bill.
	Payer Payer

	// Delta is the signed amount added to the friend's balance.
	Delta float64

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}
