package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/pkg/idx"
)

type watchersRepo struct {
	db *sql.DB
}

func (r *watchersRepo) Create(ctx context.Context, w domain.ServerWatcher) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO server_watchers (
			id, guild_id, channel_id, server_name, cluster,
			last_player_count, user_id, message_id, webhook_id, webhook_token, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(w.ID), w.GuildID, w.ChannelID, w.ServerName, w.Cluster,
		w.LastPlayerCount, w.UserID, w.MessageID, w.WebhookID, w.WebhookToken,
		w.CreatedAt.UTC().Unix(),
	)
	return err
}

func (r *watchersRepo) ListByGuild(ctx context.Context, guildID string) ([]domain.ServerWatcher, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, guild_id, channel_id, server_name, cluster,
		       last_player_count, user_id, message_id, webhook_id, webhook_token, created_at
		FROM server_watchers
		WHERE guild_id = ?
		ORDER BY id`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ServerWatcher
	for rows.Next() {
		var (
			w         domain.ServerWatcher
			id        string
			createdAt int64
		)
		if err := rows.Scan(
			&id, &w.GuildID, &w.ChannelID, &w.ServerName, &w.Cluster,
			&w.LastPlayerCount, &w.UserID, &w.MessageID, &w.WebhookID, &w.WebhookToken, &createdAt,
		); err != nil {
			return nil, err
		}
		w.ID = idx.ID(id)
		w.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, w)
	}
	return out, rows.Err()
}

// Delete scopes the removal to the guild so callers can only drop watchers in
// guilds they manage.
func (r *watchersRepo) Delete(ctx context.Context, id idx.ID, guildID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM server_watchers
		WHERE id = ? AND guild_id = ?`, string(id), guildID)
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
