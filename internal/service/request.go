package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"bloodconnect/internal/matching"
	"bloodconnect/internal/utils"
	"bloodconnect/pkg/types"

	"github.com/sirupsen/logrus"
)

// SubmitResult is what a request submission produced. Matches holds every
// compatible donor in range, Display the ones shown to the requester.
type SubmitResult struct {
	Request  *types.BloodRequest
	RadiusKm float64
	Matches  []matching.Match
	Display  []matching.Match
	Notified []*types.Notification
}

// Submit stores a blood request, ranks compatible donors around the
// hospital and notifies the closest of them.
func (s *Service) Submit(ctx context.Context, form *types.BloodRequestForm) (*SubmitResult, error) {
	if err := validateStruct(form); err != nil {
		return nil, err
	}

	bloodType, err := types.ParseBloodType(form.BloodType)
	if err != nil {
		return nil, err
	}

	urgency, err := types.ParseUrgency(form.Urgency)
	if err != nil {
		return nil, err
	}

	request := &types.BloodRequest{
		PatientName:    strings.TrimSpace(form.PatientName),
		BloodType:      bloodType,
		UnitsNeeded:    form.UnitsNeeded,
		Urgency:        urgency,
		HospitalName:   strings.TrimSpace(form.HospitalName),
		Contact:        strings.TrimSpace(form.Contact),
		Location:       strings.TrimSpace(form.Location),
		Latitude:       form.Latitude,
		Longitude:      form.Longitude,
		AdditionalInfo: strings.TrimSpace(form.AdditionalInfo),
		Status:         types.RequestStatusActive,
		CreatedAt:      s.now(),
	}

	// Nothing is stored until the query validates and matching succeeds.
	radius := s.opts.Policy.Radius(urgency)
	query := matching.Query{
		BloodType: bloodType,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
		RadiusKm:  radius,
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	matches, err := s.engine.FindCompatibleDonors(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to match donors: %w", err)
	}

	if err := s.requests.CreateRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to store request: %w", err)
	}

	result := &SubmitResult{
		Request:  request,
		RadiusKm: radius,
		Matches:  matches,
		Display:  matches[:min(max(s.opts.DisplayTopN, 0), len(matches))],
	}

	for _, match := range matches[:min(max(s.opts.Policy.TopN(urgency), 0), len(matches))] {
		notification := &types.Notification{
			DonorID:   match.Donor.ID,
			Message:   notificationMessage(request, match.DistanceKm),
			RequestID: utils.StringPtr(request.ID),
			Status:    types.NotificationUnread,
			CreatedAt: s.now(),
		}

		if err := s.notifications.CreateNotification(ctx, notification); err != nil {
			return nil, fmt.Errorf("failed to notify donor %s: %w", match.Donor.ID, err)
		}
		result.Notified = append(result.Notified, notification)
	}

	s.events.RequestSubmitted(urgency, len(result.Notified))

	s.logger.WithFields(logrus.Fields{
		"request_id": request.ID,
		"blood_type": bloodType,
		"urgency":    urgency,
		"radius_km":  radius,
		"matches":    len(matches),
		"notified":   len(result.Notified),
	}).Info("blood request submitted")

	return result, nil
}

func notificationMessage(request *types.BloodRequest, distanceKm float64) string {
	return fmt.Sprintf(
		"URGENT: %s needs %s blood at %s. Distance: %.1fkm",
		request.PatientName, request.BloodType, request.HospitalName, distanceKm,
	)
}

func (s *Service) Request(ctx context.Context, requestID string) (*types.BloodRequest, error) {
	return s.requests.Request(ctx, requestID)
}

// Requests returns every request, newest first.
func (s *Service) Requests(ctx context.Context) ([]*types.BloodRequest, error) {
	requests, err := s.requests.Requests(ctx)
	if err != nil {
		return nil, err
	}
	slices.Reverse(requests)
	return requests, nil
}

// RequestMatches ranks donors for a stored request using the radius its
// urgency gets under the notification policy.
func (s *Service) RequestMatches(ctx context.Context, request *types.BloodRequest) ([]matching.Match, error) {
	return s.engine.FindCompatibleDonors(ctx, matching.Query{
		BloodType: request.BloodType,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
		RadiusKm:  s.opts.Policy.Radius(request.Urgency),
	})
}

// ActiveRequests returns the open requests, newest first.
func (s *Service) ActiveRequests(ctx context.Context) ([]*types.BloodRequest, error) {
	requests, err := s.Requests(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(requests, func(r *types.BloodRequest) bool {
		return r.Status != types.RequestStatusActive
	}), nil
}

// CancelRequest closes an active request. Fulfilled requests stay fulfilled.
func (s *Service) CancelRequest(ctx context.Context, requestID string) (*types.BloodRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, err := s.requests.Request(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.Status != types.RequestStatusActive {
		return request, nil
	}

	if err := s.requests.UpdateRequestStatus(ctx, requestID, types.RequestStatusCancelled); err != nil {
		return nil, err
	}
	request.Status = types.RequestStatusCancelled

	s.logger.WithField("request_id", requestID).Info("blood request cancelled")

	return request, nil
}

// Match ranks compatible donors for an ad hoc query.
func (s *Service) Match(ctx context.Context, query types.MatchQuery) ([]types.MatchResult, error) {
	bloodType, err := types.ParseBloodType(query.BloodType)
	if err != nil {
		return nil, err
	}

	matches, err := s.engine.FindCompatibleDonors(ctx, matching.Query{
		BloodType: bloodType,
		Latitude:  query.Latitude,
		Longitude: query.Longitude,
		RadiusKm:  query.RadiusKm,
	})
	if err != nil {
		return nil, err
	}

	out := make([]types.MatchResult, 0, len(matches))
	for _, m := range matches {
		out = append(out, types.MatchResult{DonorID: m.Donor.ID, DistanceKm: m.DistanceKm})
	}
	return out, nil
}
