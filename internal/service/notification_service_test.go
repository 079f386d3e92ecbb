package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hosteladmin/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotificationRepo struct {
	created   []model.Notification
	createErr error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, unreadOnly bool, _, _ int) ([]model.Notification, int64, error) {
	var out []model.Notification
	for _, n := range f.created {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	for i, n := range f.created {
		if n.ID == id && n.UserID == userID {
			f.created[i].IsRead = true
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	for i, n := range f.created {
		if n.UserID == userID {
			f.created[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range f.created {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type fakePusher struct {
	sent      map[uuid.UUID][][]byte
	connected bool
}

func (f *fakePusher) SendToUser(userID uuid.UUID, payload []byte) bool {
	if !f.connected {
		return false
	}
	if f.sent == nil {
		f.sent = make(map[uuid.UUID][][]byte)
	}
	f.sent[userID] = append(f.sent[userID], payload)
	return true
}

func TestNotifyPersistsAndPushes(t *testing.T) {
	repo := &fakeNotificationRepo{}
	pusher := &fakePusher{connected: true}
	svc := NewNotificationService(repo, pusher, zap.NewNop())

	userID := uuid.New()
	related := uuid.New()
	svc.Notify(userID, model.NotificationKindRequisition, NotificationPayload{
		Title:     "Requisition Update",
		Message:   "Approved by warden",
		RelatedID: &related,
	})

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	assert.Equal(t, userID, stored.UserID)
	assert.Equal(t, model.NotificationKindRequisition, stored.Kind)
	assert.Equal(t, "medium", stored.Priority)
	assert.False(t, stored.IsRead)

	require.Len(t, pusher.sent[userID], 1)
	var pushed model.Notification
	require.NoError(t, json.Unmarshal(pusher.sent[userID][0], &pushed))
	assert.Equal(t, "Approved by warden", pushed.Message)
	require.NotNil(t, pushed.RelatedID)
	assert.Equal(t, related, *pushed.RelatedID)
}

func TestNotifyStoresWhenUserOffline(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, &fakePusher{connected: false}, zap.NewNop())

	svc.Notify(uuid.New(), model.NotificationKindSystem, NotificationPayload{
		Title:   "Maintenance window",
		Message: "The portal restarts at midnight",
	})

	assert.Len(t, repo.created, 1)
}

func TestNotifySwallowsPersistFailure(t *testing.T) {
	repo := &fakeNotificationRepo{createErr: errors.New("connection refused")}
	pusher := &fakePusher{connected: true}
	svc := NewNotificationService(repo, pusher, zap.NewNop())

	// Must not panic or push anything a reader could not later list.
	svc.Notify(uuid.New(), model.NotificationKindPayment, NotificationPayload{
		Title:   "Payment Due",
		Message: "Hostel fee for the autumn term",
	})

	assert.Empty(t, repo.created)
	assert.Empty(t, pusher.sent)
}

func TestMarkReadAndCount(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo, nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	svc.Notify(userID, model.NotificationKindNotice, NotificationPayload{Title: "A", Message: "first"})
	svc.Notify(userID, model.NotificationKindNotice, NotificationPayload{Title: "B", Message: "second"})

	count, err := svc.CountUnread(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, svc.MarkRead(ctx, repo.created[0].ID, userID))

	unread, total, err := svc.List(ctx, userID, true, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, unread, 1)
	assert.Equal(t, "second", unread[0].Message)

	require.NoError(t, svc.MarkAllRead(ctx, userID))
	count, err = svc.CountUnread(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
