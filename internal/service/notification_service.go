package service

import (
	"context"
	"encoding/json"
	"fmt"

	"hosteladmin/internal/model"
	"hosteladmin/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier is the sink the workflow engine and other services consume.
// Delivery is best-effort and must never fail the calling operation.
type Notifier interface {
	Notify(userID uuid.UUID, kind string, payload NotificationPayload)
}

// NotificationPayload is what a transition publishes about itself.
type NotificationPayload struct {
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	RelatedID *uuid.UUID `json:"related_id,omitempty"`
	Priority  string     `json:"priority,omitempty"`
}

// RealtimePusher delivers a marshaled notification to a connected user.
// The websocket hub implements it; a user with no open connection is simply
// skipped.
type RealtimePusher interface {
	SendToUser(userID uuid.UUID, payload []byte) bool
}

// NotificationService persists notification rows and fans them out over the
// realtime pusher.
type NotificationService interface {
	Notifier
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo   repository.NotificationRepository
	pusher RealtimePusher
	log    *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, pusher RealtimePusher, log *zap.Logger) NotificationService {
	return &notificationService{repo: repo, pusher: pusher, log: log}
}

// Notify stores the notification and pushes it to the user's websocket, if
// connected. Both steps are best-effort: the caller's state change is already
// committed, so failures here are logged and swallowed.
func (s *notificationService) Notify(userID uuid.UUID, kind string, payload NotificationPayload) {
	priority := payload.Priority
	if priority == "" {
		priority = "medium"
	}
	n := model.Notification{
		UserID:    userID,
		Title:     payload.Title,
		Message:   payload.Message,
		Kind:      kind,
		RelatedID: payload.RelatedID,
		Priority:  priority,
	}

	// Detached from the caller's request context: the transition is already
	// durable and must not be re-tied to its cancellation.
	if err := s.repo.Create(context.Background(), &n); err != nil {
		s.log.Error("failed to persist notification",
			zap.String("user_id", userID.String()),
			zap.String("kind", kind),
			zap.Error(err))
		return
	}

	if s.pusher == nil {
		return
	}
	raw, err := json.Marshal(n)
	if err != nil {
		s.log.Error("failed to marshal notification", zap.Error(err))
		return
	}
	if !s.pusher.SendToUser(userID, raw) {
		s.log.Debug("user not connected, notification stored only",
			zap.String("user_id", userID.String()))
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page, limit int) ([]model.Notification, int64, error) {
	items, total, err := s.repo.ListByUser(ctx, userID, unreadOnly, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *notificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
