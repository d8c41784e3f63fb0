package memory

import (
	"context"
	"time"

	"bloodconnect/internal/utils"
	"bloodconnect/pkg/types"
)

func (s *Store) CreateDonation(_ context.Context, donation *types.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	donation.ID = utils.NanoID()
	if donation.DonatedAt.IsZero() {
		donation.DonatedAt = time.Now()
	}

	d := *donation
	s.donations = append(s.donations, &d)
	return nil
}

// Donations returns donations oldest first. An empty donorID returns all.
func (s *Store) Donations(_ context.Context, donorID string) ([]*types.Donation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Donation, 0, len(s.donations))
	for _, d := range s.donations {
		if donorID != "" && d.DonorID != donorID {
			continue
		}
		c := *d
		out = append(out, &c)
	}
	return out, nil
}
