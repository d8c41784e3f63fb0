package server

import (
	"net/http"
	"time"

	"bloodconnect/internal"
	"bloodconnect/pkg/types"
)

// setCurrentDonor remembers which donor this browser acts as.
func (s *Service) setCurrentDonor(w http.ResponseWriter, r *http.Request, donorID string) error {
	encoded, err := s.cookie.Encode(internal.COOKIE_CURRENT_DONOR_NAME, donorID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_CURRENT_DONOR_NAME,
		Value:    encoded,
		Path:     "/",
		Expires:  time.Now().Add(internal.COOKIE_CURRENT_DONOR_DAYS * 24 * time.Hour),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func (s *Service) currentDonorID(r *http.Request) string {
	cookie, err := r.Cookie(internal.COOKIE_CURRENT_DONOR_NAME)
	if err != nil {
		return ""
	}

	var donorID string
	if err := s.cookie.Decode(internal.COOKIE_CURRENT_DONOR_NAME, cookie.Value, &donorID); err != nil {
		s.logger.WithError(err).Debug("ignoring undecodable donor cookie")
		return ""
	}

	return donorID
}

// currentDonor loads the donor named by the cookie, nil when there is none
// or it no longer exists.
func (s *Service) currentDonor(r *http.Request) *types.Donor {
	donorID := s.currentDonorID(r)
	if donorID == "" {
		return nil
	}

	donor, err := s.app.Donor(r.Context(), donorID)
	if err != nil {
		return nil
	}

	return donor
}
