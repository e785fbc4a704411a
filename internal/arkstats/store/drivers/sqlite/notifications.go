package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/pkg/idx"
)

type notificationsRepo struct {
	db *sql.DB
}

func (r *notificationsRepo) Create(ctx context.Context, n domain.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, server_name, trigger_type, player_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(n.ID), n.UserID, n.ServerName, string(n.Trigger), n.PlayerCount,
		n.CreatedAt.UTC().Unix(),
	)
	return err
}

func (r *notificationsRepo) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, server_name, trigger_type, player_count, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var (
			n           domain.Notification
			id, trigger string
			createdAt   int64
		)
		if err := rows.Scan(&id, &n.UserID, &n.ServerName, &trigger, &n.PlayerCount, &createdAt); err != nil {
			return nil, err
		}
		n.ID = idx.ID(id)
		n.Trigger = domain.Trigger(trigger)
		n.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, n)
	}
	return out, rows.Err()
}

// Delete scopes the removal to the owning user so one user cannot delete
// another's notification by guessing ids.
func (r *notificationsRepo) Delete(ctx context.Context, id idx.ID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE id = ? AND user_id = ?`, string(id), userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
