// Package memory is the in-process session store. Every read hands out
// copies taken under the read lock so callers can scan without holding it.
package memory

import (
	"sync"

	"bloodconnect/pkg/types"
)

type Store struct {
	mu sync.RWMutex

	donors     map[string]*types.Donor
	donorOrder []string

	requests     map[string]*types.BloodRequest
	requestOrder []string

	notifications     map[string]*types.Notification
	notificationOrder []string

	donations []*types.Donation
}

func New() *Store {
	return &Store{
		donors:        make(map[string]*types.Donor),
		requests:      make(map[string]*types.BloodRequest),
		notifications: make(map[string]*types.Notification),
	}
}
