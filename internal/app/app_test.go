package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/eatnsplit/internal/models"
	"github.com/mmynk/eatnsplit/internal/storage"
	"github.com/mmynk/eatnsplit/internal/storage/memory"
)

const (
	clarkID   = "118836"
	sarahID   = "933372"
	anthonyID = "499476"
)

// newTestApp returns an App seeded with the demo friends, a deterministic ID
// source and a recorder of every change it emits.
func newTestApp(t *testing.T) (*App, *[]Change) {
	t.Helper()

	store := memory.New()
	require.NoError(t, Seed(context.Background(), store, models.InitialFriends()))

	var changes []Change
	n := 0
	a := New(store,
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithObserver(ObserverFunc(func(c Change) {
			changes = append(changes, c)
		})),
	)
	return a, &changes
}

func TestNewStartsIdle(t *testing.T) {
	a, _ := newTestApp(t)

	assert.Equal(t, Idle{}, a.Mode())
	_, ok := a.Selected()
	assert.False(t, ok)

	draft, open := a.AddFriendDraft()
	assert.False(t, open)
	assert.Equal(t, AddFriendDraft{Image: models.DefaultAvatarURL}, draft)
}

func TestSelectFriendTogglesOnRepeat(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.SelectFriend(ctx, sarahID))
	id, ok := a.Selected()
	require.True(t, ok)
	assert.Equal(t, sarahID, id)

	require.NoError(t, a.SelectFriend(ctx, sarahID))
	_, ok = a.Selected()
	assert.False(t, ok, "selecting the same friend twice should clear the selection")
	assert.Equal(t, Idle{}, a.Mode())
}

func TestSelectDifferentFriendSwitchesAndResetsDraft(t *testing.T) {
	a, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.SelectFriend(ctx, sarahID))
	require.True(t, a.SetBillTotal("100"))
	require.True(t, a.SetUserPaid("40"))

	require.NoError(t, a.SelectFriend(ctx, clarkID))
	assert.Equal(t, SplittingBill{FriendID: clarkID}, a.Mode())

	draft, open := a.BillDraft()
	require.True(t, open)
	assert.Equal(t, BillDraft{Payer: models.PayerUser}, draft)
}

func TestSelectUnknownFriend(t *testing.T) {
	a, changes := newTestApp(t)

	err := a.SelectFriend(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
	assert.Equal(t, Idle{}, a.Mode())
	assert.Empty(t, *changes)
}

func TestSelectingClosesAddFriendForm(t *testing.T) {
	a, _ := newTestApp(t)

	a.ToggleAddFriend()
	assert.Equal(t, AddingFriend{}, a.Mode())

	require.NoError(t, a.SelectFriend(context.Background(), anthonyID))
	assert.Equal(t, SplittingBill{FriendID: anthonyID}, a.Mode())

	_, open := a.AddFriendDraft()
	assert.False(t, open)
}

func TestOpeningAddFriendFormClearsSelection(t *testing.T) {
	a, changes := newTestApp(t)

	require.NoError(t, a.SelectFriend(context.Background(), clarkID))
	a.ToggleAddFriend()

	assert.Equal(t, AddingFriend{}, a.Mode())
	_, ok := a.Selected()
	assert.False(t, ok)

	want := []Change{
		{Entity: EntitySelection, Action: ActionSelected, FriendID: clarkID},
		{Entity: EntitySelection, Action: ActionCleared, FriendID: clarkID},
		{Entity: EntityAddForm, Action: ActionOpened},
	}
	assert.Empty(t, cmp.Diff(want, *changes))

	a.ToggleAddFriend()
	assert.Equal(t, Idle{}, a.Mode())
}

func TestSubmitAddFriend(t *testing.T) {
	a, changes := newTestApp(t)
	ctx := context.Background()

	before, err := a.Friends(ctx)
	require.NoError(t, err)

	a.ToggleAddFriend()
	require.True(t, a.SetFriendName("Diana"))

	friend, err := a.SubmitAddFriend(ctx)
	require.NoError(t, err)
	require.NotNil(t, friend)

	assert.Equal(t, models.Friend{
		ID:      "id-1",
		Name:    "Diana",
		Image:   "https://i.pravatar.cc/48?=id-1",
		Balance: 0,
	}, *friend)

	after, err := a.Friends(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Empty(t, cmp.Diff(before, after[:len(before)]), "existing friends must not change")
	assert.Equal(t, *friend, after[len(after)-1])

	assert.Equal(t, Idle{}, a.Mode(), "form closes after a successful submit")

	a.ToggleAddFriend()
	draft, _ := a.AddFriendDraft()
	assert.Equal(t, AddFriendDraft{Image: models.DefaultAvatarURL}, draft)

	assert.Contains(t, *changes, Change{Entity: EntityFriend, Action: ActionAdded, FriendID: "id-1"})
}

func TestSubmitAddFriendEmptyFieldsIsNoop(t *testing.T) {
	tests := []struct {
		name  string
		fill  func(a *App)
		draft AddFriendDraft
	}{
		{
			name:  "empty name",
			fill:  func(a *App) {},
			draft: AddFriendDraft{Image: models.DefaultAvatarURL},
		},
		{
			name:  "blank name",
			fill:  func(a *App) { a.SetFriendName("   ") },
			draft: AddFriendDraft{Name: "   ", Image: models.DefaultAvatarURL},
		},
		{
			name: "empty image",
			fill: func(a *App) {
				a.SetFriendName("Diana")
				a.SetFriendImage("")
			},
			draft: AddFriendDraft{Name: "Diana"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t)
			ctx := context.Background()

			a.ToggleAddFriend()
			tt.fill(a)

			friend, err := a.SubmitAddFriend(ctx)
			require.NoError(t, err)
			assert.Nil(t, friend)

			friends, err := a.Friends(ctx)
			require.NoError(t, err)
			assert.Len(t, friends, 3)

			draft, open := a.AddFriendDraft()
			assert.True(t, open, "form stays open")
			assert.Equal(t, tt.draft, draft, "fields are left unchanged")
		})
	}
}

func TestAddFriendSettersRequireOpenForm(t *testing.T) {
	a, _ := newTestApp(t)

	assert.False(t, a.SetFriendName("Diana"))
	assert.False(t, a.SetFriendImage("x"))

	friend, err := a.SubmitAddFriend(context.Background())
	require.NoError(t, err)
	assert.Nil(t, friend)
}

func TestSubmitSplitBill(t *testing.T) {
	tests := []struct {
		name        string
		payer       models.Payer
		wantDelta   float64
		wantBalance float64
	}{
		{name: "user pays", payer: models.PayerUser, wantDelta: 60, wantBalance: 80},
		{name: "friend pays", payer: models.PayerFriend, wantDelta: -40, wantBalance: -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t)
			ctx := context.Background()

			require.NoError(t, a.SelectFriend(ctx, sarahID))
			require.True(t, a.SetBillTotal("100"))
			require.True(t, a.SetUserPaid("40"))
			require.True(t, a.SetPayer(tt.payer))

			draft, _ := a.BillDraft()
			assert.InDelta(t, 60, draft.FriendPaid(), 0.001)

			settlement, err := a.SubmitSplitBill(ctx)
			require.NoError(t, err)
			require.NotNil(t, settlement)
			assert.InDelta(t, tt.wantDelta, settlement.Delta, 0.001)
			assert.Equal(t, sarahID, settlement.FriendID)

			friends, err := a.Friends(ctx)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantBalance, friends[1].Balance, 0.001)

			_, ok := a.Selected()
			assert.False(t, ok, "selection is cleared after a split")

			v, err := a.View(ctx)
			require.NoError(t, err)
			assert.Nil(t, v.SplitBill, "split form is no longer rendered")
		})
	}
}

func TestSetUserPaidAboveTotalIsRejected(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.SelectFriend(context.Background(), sarahID))

	require.True(t, a.SetBillTotal("100"))
	require.True(t, a.SetUserPaid("40"))
	assert.False(t, a.SetUserPaid("150"))

	draft, _ := a.BillDraft()
	assert.Equal(t, 40.0, draft.UserPaid)
}

func TestSetBillTotalRejectsBadInput(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.SelectFriend(context.Background(), sarahID))
	require.True(t, a.SetBillTotal("50"))

	for _, raw := range []string{"abc", "-5", "NaN", "Inf"} {
		assert.False(t, a.SetBillTotal(raw), raw)
	}

	draft, _ := a.BillDraft()
	assert.Equal(t, 50.0, draft.BillTotal)

	assert.True(t, a.SetBillTotal(""))
	draft, _ = a.BillDraft()
	assert.Equal(t, 0.0, draft.BillTotal)
}

func TestLoweringBillTotalLowersUserPaid(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.SelectFriend(context.Background(), sarahID))

	require.True(t, a.SetBillTotal("100"))
	require.True(t, a.SetUserPaid("80"))
	require.True(t, a.SetBillTotal("50"))

	draft, _ := a.BillDraft()
	assert.Equal(t, 50.0, draft.UserPaid)
	assert.Equal(t, 0.0, draft.FriendPaid())
}

func TestSubmitSplitBillEmptyAmountsIsNoop(t *testing.T) {
	a, changes := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.SelectFriend(ctx, sarahID))
	require.True(t, a.SetBillTotal("100"))

	settlement, err := a.SubmitSplitBill(ctx)
	require.NoError(t, err)
	assert.Nil(t, settlement)

	assert.Equal(t, SplittingBill{FriendID: sarahID}, a.Mode(), "form stays open")
	assert.Len(t, *changes, 1)

	friends, _ := a.Friends(ctx)
	assert.Equal(t, 20.0, friends[1].Balance)
}

func TestSplitBillInertWithoutSelection(t *testing.T) {
	a, _ := newTestApp(t)

	assert.False(t, a.SetBillTotal("100"))
	assert.False(t, a.SetUserPaid("40"))
	assert.False(t, a.SetPayer(models.PayerFriend))

	settlement, err := a.SubmitSplitBill(context.Background())
	require.NoError(t, err)
	assert.Nil(t, settlement)
}

func TestSetPayerRejectsUnknown(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.SelectFriend(context.Background(), sarahID))

	assert.False(t, a.SetPayer("nobody"))
	draft, _ := a.BillDraft()
	assert.Equal(t, models.PayerUser, draft.Payer)
}
