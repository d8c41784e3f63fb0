package server

import (
	"encoding/json"
	"net/http"

	"bloodconnect/pkg/types"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (s *Service) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to encode json response")
	}
}

func (s *Service) writeJSONError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).Error("api request failed")
	}

	body := errorResponse{Error: userMessage(err)}
	if fields, ok := fieldErrors(err); ok {
		body.Fields = fields
	}

	s.writeJSON(w, status, body)
}

// handleAPIMatch ranks compatible donors for a JSON query.
func (s *Service) handleAPIMatch(w http.ResponseWriter, r *http.Request) {
	var query types.MatchQuery
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&query); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	results, err := s.app.Match(r.Context(), query)
	if err != nil {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, results)
}

func (s *Service) handleAPIDonors(w http.ResponseWriter, r *http.Request) {
	var form types.DonorSearchForm
	if err := decoder.Decode(&form, nonEmpty(r.URL.Query())); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid query parameters"})
		return
	}

	results, err := s.app.SearchDonors(r.Context(), &form)
	if err != nil {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, results)
}

func (s *Service) handleAPIRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.app.Requests(r.Context())
	if err != nil {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, requests)
}

func (s *Service) handleAPIAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := s.app.Analytics(r.Context())
	if err != nil {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, analytics)
}

func (s *Service) handleAPILeaderboard(w http.ResponseWriter, r *http.Request) {
	leaderboard, err := s.app.Leaderboard(r.Context())
	if err != nil {
		s.writeJSONError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, leaderboard)
}
