package calculator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/mmynk/eatnsplit/internal/models"
)

// evenTolerance absorbs floating point noise left over from repeated settlements.
const evenTolerance = 0.005

// BalanceStatus is the display state derived from a balance's sign.
type BalanceStatus int

const (
	// StatusEven means neither side owes anything.
	StatusEven BalanceStatus = iota
	// StatusYouOwe means the user owes the friend.
	StatusYouOwe
	// StatusOwesYou means the friend owes the user.
	StatusOwesYou
)

func (s BalanceStatus) String() string {
	switch s {
	case StatusYouOwe:
		return "you_owe"
	case StatusOwesYou:
		return "owes_you"
	default:
		return "even"
	}
}

// Status classifies a balance. Every balance maps to exactly one status.
func Status(balance float64) BalanceStatus {
	switch {
	case balance <= -evenTolerance:
		return StatusYouOwe
	case balance >= evenTolerance:
		return StatusOwesYou
	default:
		return StatusEven
	}
}

// FormatAmount renders an amount with the shortest decimal representation.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// Describe returns the balance annotation shown next to a friend.
func Describe(friend models.Friend) string {
	amount := FormatAmount(math.Abs(friend.Balance))
	switch Status(friend.Balance) {
	case StatusYouOwe:
		return fmt.Sprintf("You owe %s %s£", friend.Name, amount)
	case StatusOwesYou:
		return fmt.Sprintf("%s owes you %s£", friend.Name, amount)
	default:
		return fmt.Sprintf("You and %s are even", friend.Name)
	}
}

// Summary aggregates balances across all friends.
type Summary struct {
	OwedToYou float64 // Sum of positive balances
	YouOwe    float64 // Sum of negative balances, as a positive number
	Net       float64 // OwedToYou - YouOwe
}

// Summarize totals the balances of the given friends.
func Summarize(friends []models.Friend) Summary {
	var s Summary
	for _, f := range friends {
		switch Status(f.Balance) {
		case StatusOwesYou:
			s.OwedToYou += f.Balance
		case StatusYouOwe:
			s.YouOwe += -f.Balance
		}
	}
	s.Net = s.OwedToYou - s.YouOwe
	return s
}
