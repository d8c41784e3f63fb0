package memory

import (
	"context"
	"time"

	"bloodconnect/internal/utils"
	"bloodconnect/pkg/types"
)

func (s *Store) CreateRequest(_ context.Context, request *types.BloodRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	request.ID = utils.NanoID()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	if request.Status == "" {
		request.Status = types.RequestStatusActive
	}

	s.requests[request.ID] = request.Clone()
	s.requestOrder = append(s.requestOrder, request.ID)
	return nil
}

func (s *Store) Request(_ context.Context, requestID string) (*types.BloodRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, ok := s.requests[requestID]
	if !ok {
		return nil, types.ErrRequestNotFound
	}
	return request.Clone(), nil
}

// Requests returns every request in submission order.
func (s *Store) Requests(_ context.Context) ([]*types.BloodRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.BloodRequest, 0, len(s.requestOrder))
	for _, id := range s.requestOrder {
		out = append(out, s.requests[id].Clone())
	}
	return out, nil
}

func (s *Store) UpdateRequestStatus(_ context.Context, requestID string, status types.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[requestID]
	if !ok {
		return types.ErrRequestNotFound
	}
	request.Status = status
	return nil
}

func (s *Store) AddResponse(_ context.Context, requestID string, response types.DonorResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.requests[requestID]
	if !ok {
		return types.ErrRequestNotFound
	}
	response.RequestID = requestID
	request.Responses = append(request.Responses, response)
	return nil
}
