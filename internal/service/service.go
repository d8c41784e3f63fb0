// Package service holds the donor, request, notification and donation
// workflows that sit on top of the matching engine.
package service

import (
	"context"
	"sync"
	"time"

	"bloodconnect/internal/matching"
	"bloodconnect/pkg/types"

	"github.com/sirupsen/logrus"
)

type DonorRepository interface {
	CreateDonor(ctx context.Context, donor *types.Donor) error
	Donor(ctx context.Context, donorID string) (*types.Donor, error)
	Donors(ctx context.Context) ([]*types.Donor, error)
	UpdateDonor(ctx context.Context, donor *types.Donor) error
}

type RequestRepository interface {
	CreateRequest(ctx context.Context, request *types.BloodRequest) error
	Request(ctx context.Context, requestID string) (*types.BloodRequest, error)
	Requests(ctx context.Context) ([]*types.BloodRequest, error)
	UpdateRequestStatus(ctx context.Context, requestID string, status types.RequestStatus) error
	AddResponse(ctx context.Context, requestID string, response types.DonorResponse) error
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *types.Notification) error
	Notification(ctx context.Context, notificationID string) (*types.Notification, error)
	Notifications(ctx context.Context, donorID string) ([]*types.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error
}

type DonationRepository interface {
	CreateDonation(ctx context.Context, donation *types.Donation) error
	Donations(ctx context.Context, donorID string) ([]*types.Donation, error)
}

// Repositories groups the storage the service needs. The memory store
// satisfies all four, the postgres store provides one type per field.
type Repositories struct {
	Donors        DonorRepository
	Requests      RequestRepository
	Notifications NotificationRepository
	Donations     DonationRepository
}

// Events receives workflow counters.
type Events interface {
	RequestSubmitted(urgency types.Urgency, notified int)
	DonorResponded(decision types.ResponseDecision)
	DonationRecorded()
}

type Options struct {
	Policy            types.NotificationPolicy
	DisplayTopN       int
	SearchRadiusKm    float64
	DonationPoints    int
	UrgentBonusPoints int
	Events            Events
}

// OptionsFromConfig copies the workflow settings out of the config.
func OptionsFromConfig(config *types.Config) Options {
	return Options{
		Policy:            config.Policy(),
		DisplayTopN:       config.DisplayTopN,
		SearchRadiusKm:    config.SearchRadiusKm,
		DonationPoints:    config.DonationPoints,
		UrgentBonusPoints: config.UrgentBonusPoints,
	}
}

type Service struct {
	logger logrus.FieldLogger

	donors        DonorRepository
	requests      RequestRepository
	notifications NotificationRepository
	donations     DonationRepository

	engine *matching.Engine
	opts   Options
	events Events

	// mu serializes the read-modify-write workflows (responses, donations,
	// availability) so two of them can't interleave on the same records.
	mu  sync.Mutex
	now func() time.Time
}

func New(logger logrus.FieldLogger, repos Repositories, engine *matching.Engine, opts Options) *Service {
	events := opts.Events
	if events == nil {
		events = noopEvents{}
	}

	return &Service{
		logger:        logger,
		donors:        repos.Donors,
		requests:      repos.Requests,
		notifications: repos.Notifications,
		donations:     repos.Donations,
		engine:        engine,
		opts:          opts,
		events:        events,
		now:           time.Now,
	}
}

// Engine exposes the matching engine for callers that rank donors without
// running a workflow.
func (s *Service) Engine() *matching.Engine {
	return s.engine
}

func (s *Service) Policy() types.NotificationPolicy {
	return s.opts.Policy
}

type noopEvents struct{}

func (noopEvents) RequestSubmitted(types.Urgency, int)   {}
func (noopEvents) DonorResponded(types.ResponseDecision) {}
func (noopEvents) DonationRecorded()                     {}
