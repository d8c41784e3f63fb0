package service

import (
	"context"
	"fmt"

	"bloodconnect/pkg/types"
)

// Notifications returns a donor's notifications newest first. An empty
// donorID lists everyone's.
func (s *Service) Notifications(ctx context.Context, donorID string) ([]*types.Notification, error) {
	return s.notifications.Notifications(ctx, donorID)
}

func (s *Service) Accept(ctx context.Context, notificationID string) (*types.Notification, error) {
	return s.respond(ctx, notificationID, types.ResponseAccepted)
}

func (s *Service) Decline(ctx context.Context, notificationID string) (*types.Notification, error) {
	return s.respond(ctx, notificationID, types.ResponseDeclined)
}

// respond marks the notification read and records the donor's decision on
// the request it was sent for. A notification can be answered once.
func (s *Service) respond(ctx context.Context, notificationID string, decision types.ResponseDecision) (*types.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, err := s.notifications.Notification(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	if notification.Status == types.NotificationRead {
		return nil, types.ErrNotificationHandled
	}

	if notification.RequestID != nil {
		err := s.requests.AddResponse(ctx, *notification.RequestID, types.DonorResponse{
			DonorID:        notification.DonorID,
			NotificationID: notification.ID,
			Decision:       decision,
			RespondedAt:    s.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record response: %w", err)
		}
	}

	if err := s.notifications.MarkNotificationRead(ctx, notificationID); err != nil {
		return nil, err
	}
	notification.Status = types.NotificationRead

	if decision == types.ResponseAccepted {
		if err := s.refreshBadges(ctx, notification.DonorID); err != nil {
			return nil, err
		}
	}

	s.events.DonorResponded(decision)

	s.logger.WithField("notification_id", notificationID).
		WithField("donor_id", notification.DonorID).
		WithField("decision", decision).
		Info("donor responded to request")

	return notification, nil
}

// refreshBadges re-evaluates a donor's stored badges. Callers hold s.mu.
func (s *Service) refreshBadges(ctx context.Context, donorID string) error {
	donor, err := s.donors.Donor(ctx, donorID)
	if err != nil {
		return err
	}

	donations, urgent, err := s.donorActivity(ctx, donorID)
	if err != nil {
		return err
	}

	if added := awardBadges(donor, donations, urgent); len(added) > 0 {
		if err := s.donors.UpdateDonor(ctx, donor); err != nil {
			return fmt.Errorf("failed to update donor badges: %w", err)
		}
		s.logger.WithField("donor_id", donorID).WithField("badges", added).Info("badges awarded")
	}

	return nil
}

// donorActivity counts a donor's donations and accepted urgent requests.
func (s *Service) donorActivity(ctx context.Context, donorID string) (int, int, error) {
	donations, err := s.donations.Donations(ctx, donorID)
	if err != nil {
		return 0, 0, err
	}

	requests, err := s.requests.Requests(ctx)
	if err != nil {
		return 0, 0, err
	}

	urgent := 0
	for _, request := range requests {
		if !request.Urgency.Urgent() {
			continue
		}
		if resp, ok := request.Response(donorID); ok && resp.Decision == types.ResponseAccepted {
			urgent++
		}
	}

	return len(donations), urgent, nil
}
