package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store"
	"github.com/Rezosh/server-stats-website/pkg/cryptox"
	"github.com/Rezosh/server-stats-website/pkg/discord"
	"github.com/Rezosh/server-stats-website/pkg/slogx"
)

var ErrInvalidGrant = errors.New("invalid_grant")

// AuthService owns the Discord login flow: exchanging authorization codes,
// refreshing stored credentials, and keeping the local user record in sync
// with the Discord profile.
type AuthService struct {
	Store    store.Store
	Discord  *discord.Client
	Cipher   *cryptox.TokenCipher
	Sessions *SessionService

	// SupportGuildID and PremiumRoleID identify the community guild and the
	// role that marks supporters. Either may be empty, in which case nobody
	// is premium.
	SupportGuildID string
	PremiumRoleID  string
}

// LoginResult is what a completed code exchange produces.
type LoginResult struct {
	User         domain.User
	SessionToken string
}

// BeginLogin mints a state token and builds the Discord authorize URL the
// browser should be redirected to.
func (s *AuthService) BeginLogin() (string, error) {
	state, err := s.Sessions.MintState()
	if err != nil {
		return "", err
	}
	return s.Discord.AuthorizeURL(state), nil
}

// Login completes the OAuth2 callback: it verifies the state, exchanges the
// code, fetches the profile, resolves supporter status, and upserts the user
// keyed by their Discord id. Nothing is written when the exchange or the
// profile fetch fails.
func (s *AuthService) Login(ctx context.Context, code, state string) (LoginResult, error) {
	l := slogx.FromContext(ctx)

	if err := s.Sessions.VerifyState(state); err != nil {
		return LoginResult{}, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return LoginResult{}, ErrInvalidGrant
	}

	creds, err := s.Discord.ExchangeCode(ctx, code)
	if err != nil {
		return LoginResult{}, err
	}

	me, err := s.Discord.CurrentUser(ctx, creds.AccessToken)
	if err != nil {
		return LoginResult{}, err
	}

	encrypted, err := s.Cipher.EncryptPair(creds.AccessToken, creds.RefreshToken)
	if err != nil {
		return LoginResult{}, err
	}

	user := domain.User{
		DiscordID:     me.ID,
		Username:      me.Username,
		Discriminator: me.Discriminator,
		Tag:           me.Tag(),
		Avatar:        me.Avatar,
		AccessToken:   encrypted.AccessToken,
		RefreshToken:  encrypted.RefreshToken,
		Premium:       s.premiumStatus(ctx, me.ID),
	}

	if err := s.Store.Users().Upsert(ctx, user); err != nil {
		return LoginResult{}, err
	}

	token, err := s.Sessions.MintSession(user.DiscordID)
	if err != nil {
		return LoginResult{}, err
	}

	l.Info("user logged in",
		slog.String("discord_id", user.DiscordID),
		slog.Bool("premium", user.Premium),
	)

	return LoginResult{User: user, SessionToken: token}, nil
}

// premiumStatus checks whether the user holds the supporter role in the
// support guild. Any failure, including the user not being a member, reads as
// not premium.
func (s *AuthService) premiumStatus(ctx context.Context, discordID string) bool {
	if s.SupportGuildID == "" || s.PremiumRoleID == "" {
		return false
	}

	member, err := s.Discord.GuildMember(ctx, s.SupportGuildID, discordID)
	if err != nil {
		slogx.FromContext(ctx).Warn("premium status lookup failed",
			slog.String("discord_id", discordID),
			slog.String("error", err.Error()),
		)
		return false
	}

	return member.HasRole(s.PremiumRoleID)
}

// RefreshCredentials exchanges the user's stored refresh token for a fresh
// credential pair and persists the new pair.
func (s *AuthService) RefreshCredentials(ctx context.Context, discordID string) (domain.User, error) {
	user, err := s.Store.Users().GetByDiscordID(ctx, discordID)
	if err != nil {
		return domain.User{}, err
	}

	refreshToken, err := s.Cipher.Decrypt(user.RefreshToken)
	if err != nil {
		return domain.User{}, err
	}

	creds, err := s.Discord.ExchangeRefresh(ctx, refreshToken)
	if err != nil {
		return domain.User{}, err
	}

	encrypted, err := s.Cipher.EncryptPair(creds.AccessToken, creds.RefreshToken)
	if err != nil {
		return domain.User{}, err
	}

	if err := s.Store.Users().UpdateTokens(ctx, discordID, encrypted.AccessToken, encrypted.RefreshToken); err != nil {
		return domain.User{}, err
	}

	user.AccessToken = encrypted.AccessToken
	user.RefreshToken = encrypted.RefreshToken
	user.UpdatedAt = time.Now().UTC()
	return user, nil
}

// CurrentUser returns the stored record for a logged-in user.
func (s *AuthService) CurrentUser(ctx context.Context, discordID string) (domain.User, error) {
	return s.Store.Users().GetByDiscordID(ctx, discordID)
}
