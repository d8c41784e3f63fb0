package server

import (
	"errors"
	"net/http"
	"net/url"

	"bloodconnect/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	return s.renderTemplateStatus(w, r, http.StatusOK, templateName, data)
}

func (s *Service) renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, templateName string, data any) error {
	if setter, ok := data.(types.NavbarDataSetter); ok {
		setter.SetNavbarData(s.navbarData(r))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return s.templates.ExecuteTemplate(w, templateName, data)
}

func (s *Service) navbarData(r *http.Request) types.NavbarData {
	donor := s.currentDonor(r)
	if donor == nil {
		return types.NavbarData{}
	}

	nav := types.NavbarData{
		CurrentDonorID:   donor.ID,
		CurrentDonorName: donor.Name,
	}

	notifications, err := s.app.Notifications(r.Context(), donor.ID)
	if err != nil {
		s.logger.WithError(err).Warn("failed to count unread notifications")
		return nav
	}

	for _, n := range notifications {
		if n.Status == types.NotificationUnread {
			nav.UnreadNotifications++
		}
	}

	return nav
}

// basePage fills the title and the flash messages carried in the query.
func basePage(r *http.Request, title string) types.BasePageData {
	return types.BasePageData{
		Title:  title,
		Notice: r.URL.Query().Get("notice"),
		Error:  r.URL.Query().Get("error"),
	}
}

func (s *Service) redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	v := url.Values{}
	v.Set("notice", notice)
	http.Redirect(w, r, path+"?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	v := url.Values{}
	v.Set("error", msg)
	http.Redirect(w, r, path+"?"+v.Encode(), http.StatusSeeOther)
}

func (s *Service) internalServerError(w http.ResponseWriter) {
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, types.ErrInvalidBloodType),
		errors.Is(err, types.ErrInvalidCoordinate),
		errors.Is(err, types.ErrInvalidRadius):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrDonorNotFound),
		errors.Is(err, types.ErrRequestNotFound),
		errors.Is(err, types.ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrNotificationHandled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// userMessage is the error text safe to show in a flash message.
func userMessage(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "something went wrong, please try again"
	}
	return err.Error()
}

// fieldErrors extracts per-field messages from a validation failure.
func fieldErrors(err error) (map[string]string, bool) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}

// nonEmpty drops blank values so optional fields decode as unset.
func nonEmpty(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, vs := range values {
		for _, v := range vs {
			if v != "" {
				out[k] = append(out[k], v)
			}
		}
	}
	return out
}
