package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
)

type playerHistoryRepo struct {
	db *sql.DB
}

func (r *playerHistoryRepo) Append(ctx context.Context, samples []domain.PlayerSample) error {
	if len(samples) == 0 {
		return nil
	}

	stmt, err := r.db.PrepareContext(ctx, `
		INSERT INTO player_history (server_name, players, sampled_at)
		VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.ExecContext(ctx, s.ServerName, s.Players, s.SampledAt.UTC().Unix()); err != nil {
			return err
		}
	}
	return nil
}

// Recent returns up to limit of the newest samples for a server, reordered
// oldest first so callers can chart them left to right.
func (r *playerHistoryRepo) Recent(ctx context.Context, serverName string, limit int) ([]domain.PlayerSample, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT server_name, players, sampled_at
		FROM (
			SELECT server_name, players, sampled_at
			FROM player_history
			WHERE server_name = ?
			ORDER BY sampled_at DESC
			LIMIT ?
		)
		ORDER BY sampled_at ASC`, serverName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PlayerSample
	for rows.Next() {
		var (
			s         domain.PlayerSample
			sampledAt int64
		)
		if err := rows.Scan(&s.ServerName, &s.Players, &sampledAt); err != nil {
			return nil, err
		}
		s.SampledAt = time.Unix(sampledAt, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *playerHistoryRepo) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM player_history
		WHERE sampled_at < ?`, cutoff.UTC().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
