package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/eatnsplit/internal/models"
	"github.com/mmynk/eatnsplit/internal/storage"
)

// ApplySettlement adjusts the friend's balance and records the settlement
// in a single transaction.
func (s *SQLiteStore) ApplySettlement(ctx context.Context, settlement *models.Settlement) (*models.Friend, error) {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE friends SET balance = balance + ? WHERE id = ?",
		settlement.Delta, settlement.FriendID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, settlement.FriendID)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (id, friend_id, bill_total, user_paid, friend_paid, payer, delta, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.FriendID, settlement.BillTotal, settlement.UserPaid,
		settlement.FriendPaid, string(settlement.Payer), settlement.Delta, settlement.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert settlement: %w", err)
	}

	friend, err := getFriend(ctx, tx, settlement.FriendID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return friend, nil
}

// ListSettlements retrieves settlements newest first, optionally for one friend.
func (s *SQLiteStore) ListSettlements(ctx context.Context, friendID string) ([]models.Settlement, error) {
	query := `SELECT id, friend_id, bill_total, user_paid, friend_paid, payer, delta, created_at
		 FROM settlements`
	var args []any
	if friendID != "" {
		query += " WHERE friend_id = ?"
		args = append(args, friendID)
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []models.Settlement
	for rows.Next() {
		var st models.Settlement
		var payer string
		if err := rows.Scan(&st.ID, &st.FriendID, &st.BillTotal, &st.UserPaid,
			&st.FriendPaid, &payer, &st.Delta, &st.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		st.Payer = models.Payer(payer)
		settlements = append(settlements, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}
