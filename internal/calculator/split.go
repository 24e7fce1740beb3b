package calculator

import (
	"fmt"

	"github.com/mmynk/eatnsplit/internal/models"
)

// FriendShare returns the friend's part of a bill: billTotal - userPaid.
// It never goes below zero.
func FriendShare(billTotal, userPaid float64) float64 {
	share := billTotal - userPaid
	if share < 0 {
		return 0
	}
	return share
}

// SettlementDelta computes the signed amount to add to the friend's balance
// after splitting a bill.
//
// If the user paid, the friend now owes the user their share (+friendShare).
// If the friend paid, the user owes the friend their own share (-userPaid).
func SettlementDelta(billTotal, userPaid float64, payer models.Payer) (float64, error) {
	switch payer {
	case models.PayerUser:
		return FriendShare(billTotal, userPaid), nil
	case models.PayerFriend:
		return -userPaid, nil
	default:
		return 0, fmt.Errorf("unknown payer %q", payer)
	}
}
