package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) GetByDiscordID(ctx context.Context, discordID string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT discord_id, username, discriminator, tag, avatar,
		       access_token, refresh_token, premium, created_at, updated_at
		FROM users
		WHERE discord_id = ?`, discordID)

	var (
		u                    domain.User
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&u.DiscordID, &u.Username, &u.Discriminator, &u.Tag, &u.Avatar,
		&u.AccessToken, &u.RefreshToken, &u.Premium, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	u.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return u, nil
}

// Upsert inserts the user or refreshes the profile and credential columns of
// the existing row. created_at is only ever written on first insert.
func (r *usersRepo) Upsert(ctx context.Context, u domain.User) error {
	now := time.Now().UTC().Unix()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			discord_id, username, discriminator, tag, avatar,
			access_token, refresh_token, premium, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (discord_id) DO UPDATE SET
			username      = excluded.username,
			discriminator = excluded.discriminator,
			tag           = excluded.tag,
			avatar        = excluded.avatar,
			access_token  = excluded.access_token,
			refresh_token = excluded.refresh_token,
			premium       = excluded.premium,
			updated_at    = excluded.updated_at`,
		u.DiscordID, u.Username, u.Discriminator, u.Tag, u.Avatar,
		u.AccessToken, u.RefreshToken, u.Premium, now, now,
	)
	return err
}

func (r *usersRepo) UpdateTokens(ctx context.Context, discordID, accessToken, refreshToken string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET access_token = ?, refresh_token = ?, updated_at = ?
		WHERE discord_id = ?`,
		accessToken, refreshToken, time.Now().UTC().Unix(), discordID,
	)
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
