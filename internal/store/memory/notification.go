package memory

import (
	"context"
	"slices"
	"time"

	"bloodconnect/internal/utils"
	"bloodconnect/pkg/types"
)

func (s *Store) CreateNotification(_ context.Context, notification *types.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification.ID = utils.NanoID()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	if notification.Status == "" {
		notification.Status = types.NotificationUnread
	}

	n := *notification
	s.notifications[n.ID] = &n
	s.notificationOrder = append(s.notificationOrder, n.ID)
	return nil
}

func (s *Store) Notification(_ context.Context, notificationID string) (*types.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notifications[notificationID]
	if !ok {
		return nil, types.ErrNotificationNotFound
	}
	out := *n
	return &out, nil
}

// Notifications returns notifications newest first. An empty donorID
// returns every donor's notifications.
func (s *Store) Notifications(_ context.Context, donorID string) ([]*types.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Notification, 0)
	for _, id := range slices.Backward(s.notificationOrder) {
		n := s.notifications[id]
		if donorID != "" && n.DonorID != donorID {
			continue
		}
		c := *n
		out = append(out, &c)
	}

	slices.SortStableFunc(out, func(a, b *types.Notification) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *Store) MarkNotificationRead(_ context.Context, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[notificationID]
	if !ok {
		return types.ErrNotificationNotFound
	}
	n.Status = types.NotificationRead
	return nil
}
