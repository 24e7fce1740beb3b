// Package storage provides abstractions for the friend registry.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/eatnsplit/internal/models"
)

var (
	// ErrNotFound is returned when a friend does not exist.
	ErrNotFound = errors.New("friend not found")
	// ErrDuplicateID is returned when appending a friend whose ID is taken.
	ErrDuplicateID = errors.New("friend id already exists")
)

// Store defines the friend registry operations.
// This abstraction allows swapping storage backends (in-memory, SQLite)
// without changing the application layer.
type Store interface {
	// ListFriends returns all friends in insertion order.
	ListFriends(ctx context.Context) ([]models.Friend, error)

	// GetFriend retrieves a friend by ID.
	// Returns an error wrapping ErrNotFound if the friend does not exist.
	GetFriend(ctx context.Context, friendID string) (*models.Friend, error)

	// AppendFriend adds a friend to the end of the list.
	// Existing friends are left untouched. Returns an error wrapping
	// ErrDuplicateID if the ID is already present.
	AppendFriend(ctx context.Context, friend *models.Friend) error

	// ApplySettlement adds settlement.Delta to the balance of the friend with
	// ID settlement.FriendID and records the settlement. The settlement's ID and
	// CreatedAt are populated when empty. Returns the updated friend.
	ApplySettlement(ctx context.Context, settlement *models.Settlement) (*models.Friend, error)

	// ListSettlements returns recorded settlements, newest first.
	// An empty friendID lists settlements for all friends.
	ListSettlements(ctx context.Context, friendID string) ([]models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
