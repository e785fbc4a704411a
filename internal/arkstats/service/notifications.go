package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store"
	"github.com/Rezosh/server-stats-website/pkg/idx"
)

var ErrInvalidNotification = errors.New("invalid_notification")

// NotificationService manages a user's population alerts.
type NotificationService struct {
	Store store.Store
}

// Create validates and stores a new alert for the user.
func (s *NotificationService) Create(
	ctx context.Context,
	userID, serverName string,
	trigger domain.Trigger,
	playerCount int,
) (domain.Notification, error) {
	serverName = strings.TrimSpace(serverName)
	if serverName == "" || !trigger.Valid() || playerCount < 0 {
		return domain.Notification{}, ErrInvalidNotification
	}

	n := domain.Notification{
		ID:          idx.New(),
		UserID:      userID,
		ServerName:  serverName,
		Trigger:     trigger,
		PlayerCount: playerCount,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Store.Notifications().Create(ctx, n); err != nil {
		return domain.Notification{}, err
	}
	return n, nil
}

// List returns the user's alerts, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.Store.Notifications().ListByUser(ctx, userID)
}

// Delete removes one of the user's alerts.
func (s *NotificationService) Delete(ctx context.Context, userID string, id idx.ID) error {
	return s.Store.Notifications().Delete(ctx, id, userID)
}
