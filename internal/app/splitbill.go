package app

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/mmynk/eatnsplit/internal/calculator"
	"github.com/mmynk/eatnsplit/internal/models"
)

// BillDraft is the state of the split-bill form. Zero amounts mean the field
// is empty.
type BillDraft struct {
	BillTotal float64
	UserPaid  float64
	Payer     models.Payer
}

// FriendPaid is the friend's share of the bill, shown read-only.
func (d BillDraft) FriendPaid() float64 {
	return calculator.FriendShare(d.BillTotal, d.UserPaid)
}

func defaultBillDraft() BillDraft {
	return BillDraft{Payer: models.PayerUser}
}

// parseAmount reads a non-negative amount. An empty string is zero.
func parseAmount(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// BillDraft returns the split-bill form contents and whether the form is open.
func (a *App) BillDraft() (BillDraft, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, open := a.mode.(SplittingBill)
	return a.billDraft, open
}

// SetBillTotal updates the bill amount. Unparsable or negative input is
// rejected and the previous value kept. If the user's share would exceed the
// new total it is lowered to match.
func (a *App) SetBillTotal(raw string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, open := a.mode.(SplittingBill); !open {
		return false
	}
	v, ok := parseAmount(raw)
	if !ok {
		return false
	}
	a.billDraft.BillTotal = v
	if a.billDraft.UserPaid > v {
		a.billDraft.UserPaid = v
	}
	return true
}

// SetUserPaid updates the user's share. Input above the bill total is
// rejected and the previous value kept.
func (a *App) SetUserPaid(raw string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, open := a.mode.(SplittingBill); !open {
		return false
	}
	v, ok := parseAmount(raw)
	if !ok || v > a.billDraft.BillTotal {
		return false
	}
	a.billDraft.UserPaid = v
	return true
}

// SetPayer chooses who fronted the bill.
func (a *App) SetPayer(payer models.Payer) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, open := a.mode.(SplittingBill); !open {
		return false
	}
	if !payer.Valid() {
		return false
	}
	a.billDraft.Payer = payer
	return true
}

// SubmitSplitBill applies the drafted bill to the selected friend's balance.
//
// It does nothing and returns (nil, nil) when no friend is selected or either
// amount is empty. On success the settlement is recorded, the selection is
// cleared and the form closes.
func (a *App) SubmitSplitBill(ctx context.Context) (*models.Settlement, error) {
	a.mu.Lock()
	settlement, err := a.submitSplitBillLocked(ctx)
	a.mu.Unlock()

	if settlement != nil {
		a.notify(
			Change{
				Entity:   EntityBill,
				Action:   ActionSplit,
				FriendID: settlement.FriendID,
				Payer:    settlement.Payer,
				Delta:    settlement.Delta,
			},
			Change{Entity: EntitySelection, Action: ActionCleared, FriendID: settlement.FriendID},
		)
	}
	return settlement, err
}

func (a *App) submitSplitBillLocked(ctx context.Context) (*models.Settlement, error) {
	m, open := a.mode.(SplittingBill)
	if !open {
		return nil, nil
	}

	d := a.billDraft
	if d.BillTotal == 0 || d.UserPaid == 0 {
		slog.Debug("Split bill skipped", "reason", "empty amount", "friend_id", m.FriendID)
		return nil, nil
	}

	delta, err := calculator.SettlementDelta(d.BillTotal, d.UserPaid, d.Payer)
	if err != nil {
		return nil, fmt.Errorf("failed to compute settlement: %w", err)
	}

	settlement := &models.Settlement{
		FriendID:   m.FriendID,
		BillTotal:  d.BillTotal,
		UserPaid:   d.UserPaid,
		FriendPaid: d.FriendPaid(),
		Payer:      d.Payer,
		Delta:      delta,
	}
	friend, err := a.store.ApplySettlement(ctx, settlement)
	if err != nil {
		return nil, fmt.Errorf("failed to apply settlement: %w", err)
	}

	a.billDraft = defaultBillDraft()
	a.mode = Idle{}

	slog.Info("Bill split",
		"friend_id", friend.ID,
		"payer", settlement.Payer,
		"delta", settlement.Delta,
		"balance", friend.Balance,
	)
	return settlement, nil
}
