package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"bloodconnect/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonorLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	d := &types.Donor{Name: "John Doe", BloodType: types.BloodTypeOPos, Status: types.DonorStatusAvailable, Badges: []string{"New Donor"}}
	require.NoError(t, s.CreateDonor(ctx, d))
	require.NotEmpty(t, d.ID)
	assert.False(t, d.RegisteredAt.IsZero())

	got, err := s.Donor(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got.Name)

	// mutating a returned copy leaves the store untouched
	got.Badges[0] = "mutated"
	got.Points = 500
	again, err := s.Donor(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"New Donor"}, again.Badges)
	assert.Zero(t, again.Points)

	got.Points = 150
	require.NoError(t, s.UpdateDonor(ctx, got))
	again, err = s.Donor(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, again.Points)
	assert.Equal(t, d.RegisteredAt, again.RegisteredAt)

	_, err = s.Donor(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrDonorNotFound)
	assert.ErrorIs(t, s.UpdateDonor(ctx, &types.Donor{ID: "missing"}), types.ErrDonorNotFound)
}

func TestCreateDonorKeepsProvidedID(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateDonor(ctx, &types.Donor{ID: "fixed"}))
	assert.Error(t, s.CreateDonor(ctx, &types.Donor{ID: "fixed"}))
}

func TestDonorsSnapshotOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.CreateDonor(ctx, &types.Donor{Name: name}))
	}

	donors, err := s.Donors(ctx)
	require.NoError(t, err)
	require.Len(t, donors, 3)
	assert.Equal(t, "a", donors[0].Name)
	assert.Equal(t, "c", donors[2].Name)

	donors[0].Name = "changed"
	fresh, _ := s.Donors(ctx)
	assert.Equal(t, "a", fresh[0].Name)
}

func TestRequestResponses(t *testing.T) {
	ctx := context.Background()
	s := New()

	req := &types.BloodRequest{PatientName: "Asha", BloodType: types.BloodTypeABPos, UnitsNeeded: 2}
	require.NoError(t, s.CreateRequest(ctx, req))
	assert.Equal(t, types.RequestStatusActive, req.Status)

	require.NoError(t, s.AddResponse(ctx, req.ID, types.DonorResponse{DonorID: "d1", Decision: types.ResponseAccepted}))
	require.NoError(t, s.UpdateRequestStatus(ctx, req.ID, types.RequestStatusFulfilled))

	got, err := s.Request(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RequestStatusFulfilled, got.Status)
	require.Len(t, got.Responses, 1)
	assert.Equal(t, req.ID, got.Responses[0].RequestID)

	resp, ok := got.Response("d1")
	assert.True(t, ok)
	assert.Equal(t, types.ResponseAccepted, resp.Decision)

	assert.ErrorIs(t, s.AddResponse(ctx, "missing", types.DonorResponse{}), types.ErrRequestNotFound)
	assert.ErrorIs(t, s.UpdateRequestStatus(ctx, "missing", types.RequestStatusCancelled), types.ErrRequestNotFound)
}

func TestNotificationsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateNotification(ctx, &types.Notification{DonorID: "d1", Message: "first", CreatedAt: base}))
	require.NoError(t, s.CreateNotification(ctx, &types.Notification{DonorID: "d2", Message: "second", CreatedAt: base.Add(time.Minute)}))
	third := &types.Notification{DonorID: "d1", Message: "third", CreatedAt: base.Add(2 * time.Minute)}
	require.NoError(t, s.CreateNotification(ctx, third))

	all, err := s.Notifications(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Message)
	assert.Equal(t, "first", all[2].Message)

	mine, err := s.Notifications(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, types.NotificationUnread, mine[0].Status)

	require.NoError(t, s.MarkNotificationRead(ctx, third.ID))
	n, err := s.Notification(ctx, third.ID)
	require.NoError(t, err)
	assert.Equal(t, types.NotificationRead, n.Status)

	assert.ErrorIs(t, s.MarkNotificationRead(ctx, "missing"), types.ErrNotificationNotFound)
}

func TestDonationsByDonor(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateDonation(ctx, &types.Donation{DonorID: "d1", Units: 1}))
	require.NoError(t, s.CreateDonation(ctx, &types.Donation{DonorID: "d2", Units: 1}))

	all, err := s.Donations(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := s.Donations(ctx, "d2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.NotEmpty(t, mine[0].ID)
}

func TestConcurrentReadsAndWrites(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.CreateDonor(ctx, &types.Donor{Name: "x", Status: types.DonorStatusAvailable})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Donors(ctx)
		}()
	}
	wg.Wait()

	donors, err := s.Donors(ctx)
	require.NoError(t, err)
	assert.Len(t, donors, 20)
}
