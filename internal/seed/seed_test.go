package seed

import (
	"context"
	"math/rand"
	"testing"

	"bloodconnect/internal/matching"
	"bloodconnect/internal/service"
	"bloodconnect/internal/store/memory"
	"bloodconnect/pkg/types"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFakeDonorsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	n, err := SeedFakeDonors(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, len(fakeDonors), n)

	donor, err := store.Donor(ctx, fakeDonors[0].ID)
	require.NoError(t, err)
	donor.Points = 400
	require.NoError(t, store.UpdateDonor(ctx, donor))

	_, err = SeedFakeDonors(ctx, store)
	require.NoError(t, err)

	donors, err := store.Donors(ctx)
	require.NoError(t, err)
	assert.Len(t, donors, len(fakeDonors))

	donor, err = store.Donor(ctx, fakeDonors[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 400, donor.Points)
}

func TestFakeDonorsAreValid(t *testing.T) {
	ids := make(map[string]bool)
	for _, d := range fakeDonors {
		assert.True(t, d.BloodType.Valid(), d.Name)
		assert.Len(t, d.ID, 21, d.Name)
		assert.False(t, ids[d.ID], "duplicate id %s", d.ID)
		ids[d.ID] = true
	}
}

func TestSeedFakeRequests(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	store := memory.New()

	app := service.New(logger, service.Repositories{
		Donors:        store,
		Requests:      store,
		Notifications: store,
		Donations:     store,
	}, matching.NewEngine(store, logger, nil), service.Options{
		Policy:         types.NotificationPolicy{RadiusKm: 15, NotifyTopN: 10},
		DisplayTopN:    5,
		DonationPoints: 100,
	})

	_, err := SeedFakeDonors(ctx, store)
	require.NoError(t, err)

	n, err := SeedFakeRequests(ctx, app, rand.New(rand.NewSource(7)), 12)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	requests, err := app.Requests(ctx)
	require.NoError(t, err)
	assert.Len(t, requests, 12)

	notifications, err := app.Notifications(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, notifications)
}
