package service

import (
	"context"
	"time"

	"bloodconnect/internal/utils"
	"bloodconnect/pkg/types"
)

// SampleDonors returns the demo donors around Hyderabad.
func SampleDonors(now time.Time) []*types.Donor {
	daysAgo := func(days int) *time.Time {
		return utils.TimePtr(now.AddDate(0, 0, -days))
	}

	return []*types.Donor{
		{
			Name:         "John Doe",
			BloodType:    types.BloodTypeOPos,
			Phone:        "+91-9876543210",
			Location:     "Banjara Hills, Hyderabad",
			Latitude:     17.4126,
			Longitude:    78.4438,
			Status:       types.DonorStatusAvailable,
			LastDonation: daysAgo(120),
			Points:       150,
			Badges:       []string{BadgeFirstTimeDonor, BadgeRegularDonor},
			RegisteredAt: now,
		},
		{
			Name:         "Sarah Wilson",
			BloodType:    types.BloodTypeAPos,
			Phone:        "+91-9876543211",
			Location:     "Jubilee Hills, Hyderabad",
			Latitude:     17.4239,
			Longitude:    78.4738,
			Status:       types.DonorStatusAvailable,
			LastDonation: daysAgo(90),
			Points:       280,
			Badges:       []string{BadgeLifeSaver, BadgeHeroDonor},
			RegisteredAt: now,
		},
		{
			Name:         "Mike Johnson",
			BloodType:    types.BloodTypeBNeg,
			Phone:        "+91-9876543212",
			Location:     "Gachibowli, Hyderabad",
			Latitude:     17.4400,
			Longitude:    78.3489,
			Status:       types.DonorStatusAvailable,
			LastDonation: daysAgo(95),
			Points:       200,
			Badges:       []string{BadgeRareBloodHero},
			RegisteredAt: now,
		},
	}
}

// SeedSampleData stores the sample donors when there are no donors yet and
// returns how many were added.
func (s *Service) SeedSampleData(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.donors.Donors(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	samples := SampleDonors(s.now())
	for _, donor := range samples {
		if err := s.donors.CreateDonor(ctx, donor); err != nil {
			return 0, err
		}
	}

	s.logger.WithField("donors", len(samples)).Info("seeded sample donors")

	return len(samples), nil
}
