package server

import (
	"context"
	"net/http"

	"bloodconnect/pkg/types"
)

type NotificationsPageData struct {
	types.BasePageData
	Donor         *types.Donor
	Notifications []*types.Notification
}

// handleNotifications lists the current donor's notifications, or every
// notification when no donor is selected. ?donor= picks a donor explicitly.
func (s *Service) handleNotifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	donorID := r.URL.Query().Get("donor")
	if donorID == "" {
		donorID = s.currentDonorID(r)
	}

	data := &NotificationsPageData{
		BasePageData: basePage(r, "Notifications"),
	}

	if donorID != "" {
		donor, err := s.app.Donor(ctx, donorID)
		if err != nil && statusFor(err) != http.StatusNotFound {
			s.logger.WithError(err).Error("failed to load donor")
			s.internalServerError(w)
			return
		}
		if donor == nil {
			donorID = ""
		}
		data.Donor = donor
	}

	notifications, err := s.app.Notifications(ctx, donorID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list notifications")
		s.internalServerError(w)
		return
	}
	data.Notifications = notifications

	if err := s.renderTemplate(w, r, "page.notifications", data); err != nil {
		s.logger.WithError(err).Error("failed to render notifications page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostAccept(w http.ResponseWriter, r *http.Request) {
	s.handleRespond(w, r, s.app.Accept, "Request accepted! Patient will be notified.")
}

func (s *Service) handlePostDecline(w http.ResponseWriter, r *http.Request) {
	s.handleRespond(w, r, s.app.Decline, "Request declined.")
}

func (s *Service) handleRespond(
	w http.ResponseWriter,
	r *http.Request,
	respond func(ctx context.Context, notificationID string) (*types.Notification, error),
	notice string,
) {
	if _, err := respond(r.Context(), r.PathValue("id")); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			s.logger.WithError(err).Error("failed to record response")
		}
		s.redirectWithError(w, r, "/notifications", userMessage(err))
		return
	}

	s.redirectWithNotice(w, r, "/notifications", notice)
}
