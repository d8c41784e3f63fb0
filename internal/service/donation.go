package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"bloodconnect/internal/utils"
	"bloodconnect/pkg/types"

	"github.com/sirupsen/logrus"
)

type DonationResult struct {
	Donation         *types.Donation
	Donor            *types.Donor
	NewBadges        []string
	RequestFulfilled bool
}

// RecordDonation logs a donation for the donor, awards points and badges
// and, when the donation was made against a request, marks the request
// fulfilled once its donations cover the units needed.
func (s *Service) RecordDonation(ctx context.Context, donorID string, form *types.DonationForm) (*DonationResult, error) {
	if err := validateStruct(form); err != nil {
		return nil, err
	}

	units := form.Units
	if units == 0 {
		units = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	donor, err := s.donors.Donor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	var request *types.BloodRequest
	if id := strings.TrimSpace(form.RequestID); id != "" {
		request, err = s.requests.Request(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	if request != nil && !types.CanDonateTo(donor.BloodType, request.BloodType) {
		return nil, &types.ValidationError{Fields: map[string]string{
			"request_id": fmt.Sprintf("%s blood can't be given to a %s patient", donor.BloodType, request.BloodType),
		}}
	}

	points := s.opts.DonationPoints
	if request != nil && request.Status == types.RequestStatusActive && request.Urgency.Urgent() {
		points += s.opts.UrgentBonusPoints
	}

	now := s.now()
	donation := &types.Donation{
		DonorID:       donor.ID,
		Units:         units,
		PointsAwarded: points,
		DonatedAt:     now,
	}
	if request != nil {
		donation.RequestID = utils.StringPtr(request.ID)
	}

	if err := s.donations.CreateDonation(ctx, donation); err != nil {
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}

	donations, urgent, err := s.donorActivity(ctx, donor.ID)
	if err != nil {
		return nil, err
	}

	donor.Points += points
	donor.LastDonation = utils.TimePtr(now)
	result := &DonationResult{
		Donation:  donation,
		Donor:     donor,
		NewBadges: awardBadges(donor, donations, urgent),
	}

	if err := s.donors.UpdateDonor(ctx, donor); err != nil {
		return nil, fmt.Errorf("failed to update donor after donation: %w", err)
	}

	if request != nil && request.Status == types.RequestStatusActive {
		fulfilled, err := s.requestCovered(ctx, request)
		if err != nil {
			return nil, err
		}
		if fulfilled {
			if err := s.requests.UpdateRequestStatus(ctx, request.ID, types.RequestStatusFulfilled); err != nil {
				return nil, fmt.Errorf("failed to fulfil request: %w", err)
			}
			result.RequestFulfilled = true
		}
	}

	s.events.DonationRecorded()

	s.logger.WithFields(logrus.Fields{
		"donor_id":   donor.ID,
		"donation":   donation.ID,
		"points":     points,
		"new_badges": result.NewBadges,
		"fulfilled":  result.RequestFulfilled,
	}).Info("donation recorded")

	return result, nil
}

// requestCovered reports whether the units donated against the request
// reach the units it needs.
func (s *Service) requestCovered(ctx context.Context, request *types.BloodRequest) (bool, error) {
	donations, err := s.donations.Donations(ctx, "")
	if err != nil {
		return false, err
	}

	units := 0
	for _, d := range donations {
		if d.RequestID != nil && *d.RequestID == request.ID {
			units += d.Units
		}
	}

	return units >= request.UnitsNeeded, nil
}

// DonorDonations returns a donor's donations, newest first.
func (s *Service) DonorDonations(ctx context.Context, donorID string) ([]*types.Donation, error) {
	donations, err := s.donations.Donations(ctx, donorID)
	if err != nil {
		return nil, err
	}
	slices.Reverse(donations)
	return donations, nil
}
