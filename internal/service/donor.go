package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"bloodconnect/internal/geo"
	"bloodconnect/pkg/types"
)

// Register validates the form and stores a new available donor.
func (s *Service) Register(ctx context.Context, form *types.DonorRegistrationForm) (*types.Donor, error) {
	if err := validateStruct(form); err != nil {
		return nil, err
	}

	bloodType, err := types.ParseBloodType(form.BloodType)
	if err != nil {
		return nil, err
	}

	conditions := make([]string, 0, len(form.MedicalConditions))
	for _, c := range form.MedicalConditions {
		if c = strings.TrimSpace(c); c != "" {
			conditions = append(conditions, c)
		}
	}

	donor := &types.Donor{
		Name:              strings.TrimSpace(form.Name),
		BloodType:         bloodType,
		Phone:             strings.TrimSpace(form.Phone),
		Location:          strings.TrimSpace(form.Location),
		Latitude:          form.Latitude,
		Longitude:         form.Longitude,
		Age:               form.Age,
		MedicalConditions: conditions,
		Status:            types.DonorStatusAvailable,
		Badges:            []string{BadgeNewDonor},
		RegisteredAt:      s.now(),
	}

	if err := s.donors.CreateDonor(ctx, donor); err != nil {
		return nil, fmt.Errorf("failed to register donor: %w", err)
	}

	s.logger.WithField("donor_id", donor.ID).WithField("blood_type", donor.BloodType).Info("donor registered")

	return donor, nil
}

func (s *Service) Donor(ctx context.Context, donorID string) (*types.Donor, error) {
	return s.donors.Donor(ctx, donorID)
}

func (s *Service) Donors(ctx context.Context) ([]*types.Donor, error) {
	return s.donors.Donors(ctx)
}

// DonorListing is one row of the find donors page. DistanceKm is set when
// the search had an origin.
type DonorListing struct {
	Donor      *types.Donor `json:"donor"`
	DistanceKm *float64     `json:"distanceKm,omitempty"`
}

// SearchDonors filters donors by exact blood type ("" or "All" keeps every
// type) and, when both coordinates are given, by distance from them.
// Available donors come first, then by name.
func (s *Service) SearchDonors(ctx context.Context, form *types.DonorSearchForm) ([]DonorListing, error) {
	var bloodType types.BloodType
	if f := strings.TrimSpace(form.BloodType); f != "" && !strings.EqualFold(f, "all") {
		bt, err := types.ParseBloodType(f)
		if err != nil {
			return nil, err
		}
		bloodType = bt
	}

	withOrigin := form.Latitude != nil && form.Longitude != nil
	radius := form.RadiusKm
	if withOrigin {
		if err := geo.ValidateCoordinate(*form.Latitude, *form.Longitude); err != nil {
			return nil, err
		}
		if radius < 0 {
			return nil, fmt.Errorf("%w: %v", types.ErrInvalidRadius, radius)
		}
		if radius == 0 {
			radius = s.opts.SearchRadiusKm
		}
	}

	donors, err := s.donors.Donors(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]DonorListing, 0, len(donors))
	for _, donor := range donors {
		if bloodType != "" && donor.BloodType != bloodType {
			continue
		}

		listing := DonorListing{Donor: donor}
		if withOrigin {
			if geo.ValidateCoordinate(donor.Latitude, donor.Longitude) != nil {
				continue
			}
			d := geo.DistanceKm(*form.Latitude, *form.Longitude, donor.Latitude, donor.Longitude)
			if d > radius {
				continue
			}
			listing.DistanceKm = &d
		}

		out = append(out, listing)
	}

	slices.SortStableFunc(out, func(a, b DonorListing) int {
		if a.Donor.Available() != b.Donor.Available() {
			if a.Donor.Available() {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Donor.Name, b.Donor.Name)
	})

	return out, nil
}

// SetAvailability switches a donor between Available and Unavailable.
func (s *Service) SetAvailability(ctx context.Context, donorID string, status types.DonorStatus) (*types.Donor, error) {
	if !status.Valid() {
		return nil, &types.ValidationError{Fields: map[string]string{"status": "select Available or Unavailable"}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	donor, err := s.donors.Donor(ctx, donorID)
	if err != nil {
		return nil, err
	}

	if donor.Status == status {
		return donor, nil
	}

	donor.Status = status
	if err := s.donors.UpdateDonor(ctx, donor); err != nil {
		return nil, fmt.Errorf("failed to update donor status: %w", err)
	}

	s.logger.WithField("donor_id", donorID).WithField("status", status).Info("donor availability changed")

	return donor, nil
}
