// Package memory provides an in-process implementation of storage.Store.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/eatnsplit/internal/models"
	"github.com/mmynk/eatnsplit/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps friends in an ordered slice with an ID index.
type Store struct {
	mu          sync.RWMutex
	friends     []models.Friend
	index       map[string]int
	settlements []models.Settlement
}

// New creates an empty Store.
func New() *Store {
	return &Store{index: make(map[string]int)}
}

// ListFriends returns a copy of all friends in insertion order.
func (s *Store) ListFriends(ctx context.Context) ([]models.Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	friends := make([]models.Friend, len(s.friends))
	copy(friends, s.friends)
	return friends, nil
}

// GetFriend retrieves a friend by ID.
func (s *Store) GetFriend(ctx context.Context, friendID string) (*models.Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[friendID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, friendID)
	}
	friend := s.friends[i]
	return &friend, nil
}

// AppendFriend adds a friend to the end of the list.
func (s *Store) AppendFriend(ctx context.Context, friend *models.Friend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if friend.ID == "" {
		friend.ID = uuid.New().String()
	}
	if _, exists := s.index[friend.ID]; exists {
		return fmt.Errorf("%w: %s", storage.ErrDuplicateID, friend.ID)
	}

	s.index[friend.ID] = len(s.friends)
	s.friends = append(s.friends, *friend)
	return nil
}

// ApplySettlement replaces the friend with an equal ID by one with the
// adjusted balance and records the settlement.
func (s *Store) ApplySettlement(ctx context.Context, settlement *models.Settlement) (*models.Friend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[settlement.FriendID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, settlement.FriendID)
	}

	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	updated := s.friends[i]
	updated.Balance += settlement.Delta
	s.friends[i] = updated
	s.settlements = append(s.settlements, *settlement)

	return &updated, nil
}

// ListSettlements returns recorded settlements, newest first.
func (s *Store) ListSettlements(ctx context.Context, friendID string) ([]models.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var settlements []models.Settlement
	for i := len(s.settlements) - 1; i >= 0; i-- {
		if friendID == "" || s.settlements[i].FriendID == friendID {
			settlements = append(settlements, s.settlements[i])
		}
	}
	return settlements, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
