package memory

import (
	"context"
	"fmt"
	"time"

	"bloodconnect/internal/utils"
	"bloodconnect/pkg/types"
)

func (s *Store) CreateDonor(_ context.Context, donor *types.Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if donor.ID == "" {
		donor.ID = utils.NanoID()
	}
	if _, ok := s.donors[donor.ID]; ok {
		return fmt.Errorf("donor %s already exists", donor.ID)
	}
	if donor.RegisteredAt.IsZero() {
		donor.RegisteredAt = time.Now()
	}

	s.donors[donor.ID] = donor.Clone()
	s.donorOrder = append(s.donorOrder, donor.ID)
	return nil
}

func (s *Store) Donor(_ context.Context, donorID string) (*types.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	donor, ok := s.donors[donorID]
	if !ok {
		return nil, types.ErrDonorNotFound
	}
	return donor.Clone(), nil
}

// Donors returns every donor in registration order.
func (s *Store) Donors(_ context.Context) ([]*types.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Donor, 0, len(s.donorOrder))
	for _, id := range s.donorOrder {
		out = append(out, s.donors[id].Clone())
	}
	return out, nil
}

func (s *Store) UpdateDonor(_ context.Context, donor *types.Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.donors[donor.ID]
	if !ok {
		return types.ErrDonorNotFound
	}

	updated := donor.Clone()
	updated.RegisteredAt = existing.RegisteredAt
	s.donors[donor.ID] = updated
	return nil
}
