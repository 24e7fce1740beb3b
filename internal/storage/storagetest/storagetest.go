// Package storagetest holds behaviour tests shared by every storage.Store backend.
package storagetest

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/mmynk/eatnsplit/internal/models"
	"github.com/mmynk/eatnsplit/internal/storage"
)

// Run exercises a Store implementation. newStore must return an empty store;
// Run closes it.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	t.Run("AppendFriend preserves order and existing records", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		for _, f := range models.InitialFriends() {
			friend := f
			if err := store.AppendFriend(ctx, &friend); err != nil {
				t.Fatalf("AppendFriend(%s) failed: %v", f.Name, err)
			}
		}

		before, err := store.ListFriends(ctx)
		if err != nil {
			t.Fatalf("ListFriends failed: %v", err)
		}

		newFriend := &models.Friend{ID: "new-1", Name: "Diana", Image: "img", Balance: 0}
		if err := store.AppendFriend(ctx, newFriend); err != nil {
			t.Fatalf("AppendFriend failed: %v", err)
		}

		after, err := store.ListFriends(ctx)
		if err != nil {
			t.Fatalf("ListFriends failed: %v", err)
		}

		if len(after) != len(before)+1 {
			t.Fatalf("expected %d friends, got %d", len(before)+1, len(after))
		}
		for i := range before {
			if after[i] != before[i] {
				t.Errorf("friend %d changed: got %+v, want %+v", i, after[i], before[i])
			}
		}
		if after[len(after)-1] != *newFriend {
			t.Errorf("last friend = %+v, want %+v", after[len(after)-1], *newFriend)
		}
	})

	t.Run("AppendFriend generates ID when empty", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		friend := &models.Friend{Name: "Eve", Image: "img"}
		if err := store.AppendFriend(ctx, friend); err != nil {
			t.Fatalf("AppendFriend failed: %v", err)
		}
		if friend.ID == "" {
			t.Error("expected friend ID to be generated")
		}
	})

	t.Run("AppendFriend rejects duplicate IDs", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		if err := store.AppendFriend(ctx, &models.Friend{ID: "dup", Name: "A", Image: "img"}); err != nil {
			t.Fatalf("AppendFriend failed: %v", err)
		}
		err := store.AppendFriend(ctx, &models.Friend{ID: "dup", Name: "B", Image: "img"})
		if !errors.Is(err, storage.ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}

		friends, _ := store.ListFriends(ctx)
		if len(friends) != 1 || friends[0].Name != "A" {
			t.Errorf("duplicate append altered registry: %+v", friends)
		}
	})

	t.Run("GetFriend returns ErrNotFound for unknown ID", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		_, err := store.GetFriend(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ApplySettlement adjusts only the target balance", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		for _, f := range models.InitialFriends() {
			friend := f
			if err := store.AppendFriend(ctx, &friend); err != nil {
				t.Fatalf("AppendFriend failed: %v", err)
			}
		}

		settlement := &models.Settlement{
			FriendID:   "933372",
			BillTotal:  100,
			UserPaid:   40,
			FriendPaid: 60,
			Payer:      models.PayerUser,
			Delta:      60,
		}
		updated, err := store.ApplySettlement(ctx, settlement)
		if err != nil {
			t.Fatalf("ApplySettlement failed: %v", err)
		}
		if math.Abs(updated.Balance-80) > 0.001 {
			t.Errorf("Sarah balance = %v, want 80", updated.Balance)
		}
		if settlement.ID == "" {
			t.Error("expected settlement ID to be generated")
		}
		if settlement.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}

		clark, err := store.GetFriend(ctx, "118836")
		if err != nil {
			t.Fatalf("GetFriend failed: %v", err)
		}
		if clark.Balance != -7 {
			t.Errorf("Clark balance = %v, want -7", clark.Balance)
		}

		friends, _ := store.ListFriends(ctx)
		if friends[1].ID != "933372" {
			t.Errorf("settlement reordered friends: %+v", friends)
		}
	})

	t.Run("ApplySettlement returns ErrNotFound for unknown friend", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		_, err := store.ApplySettlement(ctx, &models.Settlement{FriendID: "ghost", Payer: models.PayerUser, Delta: 5})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}

		settlements, err := store.ListSettlements(ctx, "")
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if len(settlements) != 0 {
			t.Errorf("expected no settlements recorded, got %d", len(settlements))
		}
	})

	t.Run("ListSettlements filters by friend newest first", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		for _, f := range models.InitialFriends() {
			friend := f
			if err := store.AppendFriend(ctx, &friend); err != nil {
				t.Fatalf("AppendFriend failed: %v", err)
			}
		}

		apply := func(friendID string, delta float64, createdAt int64) {
			t.Helper()
			_, err := store.ApplySettlement(ctx, &models.Settlement{
				FriendID:  friendID,
				Payer:     models.PayerFriend,
				UserPaid:  -delta,
				BillTotal: -delta,
				Delta:     delta,
				CreatedAt: createdAt,
			})
			if err != nil {
				t.Fatalf("ApplySettlement failed: %v", err)
			}
		}
		apply("118836", -1, 100)
		apply("499476", -2, 200)
		apply("118836", -3, 300)

		clarks, err := store.ListSettlements(ctx, "118836")
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if len(clarks) != 2 {
			t.Fatalf("expected 2 settlements for Clark, got %d", len(clarks))
		}
		if clarks[0].Delta != -3 || clarks[1].Delta != -1 {
			t.Errorf("expected newest first, got %+v", clarks)
		}
		if clarks[0].Payer != models.PayerFriend {
			t.Errorf("payer = %q, want %q", clarks[0].Payer, models.PayerFriend)
		}

		all, err := store.ListSettlements(ctx, "")
		if err != nil {
			t.Fatalf("ListSettlements failed: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 settlements overall, got %d", len(all))
		}

		clark, _ := store.GetFriend(ctx, "118836")
		if math.Abs(clark.Balance-(-11)) > 0.001 {
			t.Errorf("Clark balance = %v, want -11", clark.Balance)
		}
	})
}
