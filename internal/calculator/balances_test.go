package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/eatnsplit/internal/models"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		balance float64
		want    BalanceStatus
	}{
		{balance: -7, want: StatusYouOwe},
		{balance: 20, want: StatusOwesYou},
		{balance: 0, want: StatusEven},
		{balance: 0.1 + 0.2 - 0.3, want: StatusEven},
		{balance: -0.01, want: StatusYouOwe},
		{balance: 0.01, want: StatusOwesYou},
	}

	for _, tt := range tests {
		if got := Status(tt.balance); got != tt.want {
			t.Errorf("Status(%v) = %v, want %v", tt.balance, got, tt.want)
		}
	}
}

func TestStatusIsExclusive(t *testing.T) {
	// Every balance lands in exactly one of the three states.
	for _, b := range []float64{-1e6, -12.5, -0.006, -0.004, 0, 0.004, 0.006, 3, 1e6} {
		s := Status(b)
		matches := 0
		for _, candidate := range []BalanceStatus{StatusEven, StatusYouOwe, StatusOwesYou} {
			if s == candidate {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("Status(%v) matched %d states", b, matches)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		friend models.Friend
		want   string
	}{
		{friend: models.Friend{Name: "Clark", Balance: -7}, want: "You owe Clark 7£"},
		{friend: models.Friend{Name: "Sarah", Balance: 20}, want: "Sarah owes you 20£"},
		{friend: models.Friend{Name: "Anthony", Balance: 0}, want: "You and Anthony are even"},
		{friend: models.Friend{Name: "Diana", Balance: 12.5}, want: "Diana owes you 12.5£"},
	}

	for _, tt := range tests {
		t.Run(tt.friend.Name, func(t *testing.T) {
			if got := Describe(tt.friend); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(models.InitialFriends())

	// Clark -7, Sarah +20, Anthony 0
	if math.Abs(summary.OwedToYou-20) > 0.01 {
		t.Errorf("OwedToYou = %v, want 20", summary.OwedToYou)
	}
	if math.Abs(summary.YouOwe-7) > 0.01 {
		t.Errorf("YouOwe = %v, want 7", summary.YouOwe)
	}
	if math.Abs(summary.Net-13) > 0.01 {
		t.Errorf("Net = %v, want 13", summary.Net)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero value", summary)
	}
}
