package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bloodconnect/internal/matching"
	"bloodconnect/internal/store/memory"
	"bloodconnect/pkg/types"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	originLat = 17.4126
	originLon = 78.4438
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type countingEvents struct {
	requests  int
	notified  int
	responses map[types.ResponseDecision]int
	donations int
}

func (e *countingEvents) RequestSubmitted(_ types.Urgency, notified int) {
	e.requests++
	e.notified += notified
}

func (e *countingEvents) DonorResponded(decision types.ResponseDecision) {
	if e.responses == nil {
		e.responses = make(map[types.ResponseDecision]int)
	}
	e.responses[decision]++
}

func (e *countingEvents) DonationRecorded() {
	e.donations++
}

func defaultOptions() Options {
	return Options{
		Policy:            types.NotificationPolicy{RadiusKm: 15, NotifyTopN: 10},
		DisplayTopN:       5,
		SearchRadiusKm:    10,
		DonationPoints:    100,
		UrgentBonusPoints: 50,
	}
}

func newTestService(t *testing.T, opts Options) (*Service, *memory.Store, *fakeClock) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	store := memory.New()
	engine := matching.NewEngine(store, logger, nil)

	svc := New(logger, Repositories{
		Donors:        store,
		Requests:      store,
		Notifications: store,
		Donations:     store,
	}, engine, opts)

	clock := &fakeClock{t: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	svc.now = clock.Now

	return svc, store, clock
}

func addDonor(t *testing.T, store *memory.Store, id, name string, bt types.BloodType, latOffset float64, status types.DonorStatus) *types.Donor {
	t.Helper()

	donor := &types.Donor{
		ID:        id,
		Name:      name,
		BloodType: bt,
		Location:  "Banjara Hills, Hyderabad",
		Latitude:  originLat + latOffset,
		Longitude: originLon,
		Status:    status,
		Badges:    []string{BadgeNewDonor},
	}
	require.NoError(t, store.CreateDonor(context.Background(), donor))
	return donor
}

func requestForm(bt types.BloodType, urgency types.Urgency, units int) *types.BloodRequestForm {
	return &types.BloodRequestForm{
		PatientName:  "Asha",
		BloodType:    string(bt),
		UnitsNeeded:  units,
		Urgency:      string(urgency),
		HospitalName: "Apollo",
		Contact:      "+91-9000000000",
		Location:     "Banjara Hills, Hyderabad",
		Latitude:     originLat,
		Longitude:    originLon,
	}
}

func TestRegister(t *testing.T) {
	svc, _, _ := newTestService(t, defaultOptions())
	ctx := context.Background()

	donor, err := svc.Register(ctx, &types.DonorRegistrationForm{
		Name:              " Priya ",
		BloodType:         "ab-",
		Phone:             "+91-9123456789",
		Age:               30,
		Location:          "Madhapur, Hyderabad",
		Latitude:          17.4483,
		Longitude:         78.3915,
		MedicalConditions: []string{"None", " "},
		TermsAccepted:     true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, donor.ID)
	assert.Equal(t, "Priya", donor.Name)
	assert.Equal(t, types.BloodTypeABNeg, donor.BloodType)
	assert.Equal(t, types.DonorStatusAvailable, donor.Status)
	assert.Equal(t, []string{BadgeNewDonor}, donor.Badges)
	assert.Equal(t, []string{"None"}, donor.MedicalConditions)
	assert.Zero(t, donor.Points)

	stored, err := svc.Donor(ctx, donor.ID)
	require.NoError(t, err)
	assert.Equal(t, donor.Name, stored.Name)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t, defaultOptions())

	_, err := svc.Register(context.Background(), &types.DonorRegistrationForm{
		Name:      "Too Young",
		BloodType: "C+",
		Phone:     "1",
		Age:       16,
		Location:  "Somewhere",
	})

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "blood_type")
	assert.Contains(t, verr.Fields, "age")
	assert.Contains(t, verr.Fields, "terms_accepted")
	assert.NotContains(t, verr.Fields, "name")
	assert.Equal(t, "select a valid blood type", verr.Fields["blood_type"])

	donors, err := svc.Donors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, donors)
}

func TestSubmitNotifiesClosestCompatibleDonors(t *testing.T) {
	events := &countingEvents{}
	opts := defaultOptions()
	opts.Events = events
	svc, store, _ := newTestService(t, opts)
	ctx := context.Background()

	addDonor(t, store, "a-neg", "Anil", types.BloodTypeANeg, 0.018, types.DonorStatusAvailable)
	addDonor(t, store, "o-pos", "Omar", types.BloodTypeOPos, 0.045, types.DonorStatusAvailable)
	addDonor(t, store, "b-pos", "Bala", types.BloodTypeBPos, 0.009, types.DonorStatusAvailable)
	addDonor(t, store, "far", "Farah", types.BloodTypeAPos, 0.27, types.DonorStatusAvailable)
	addDonor(t, store, "resting", "Ravi", types.BloodTypeONeg, 0, types.DonorStatusUnavailable)

	result, err := svc.Submit(ctx, requestForm(types.BloodTypeAPos, types.UrgencyHigh, 2))
	require.NoError(t, err)

	assert.Equal(t, types.RequestStatusActive, result.Request.Status)
	assert.Equal(t, 15.0, result.RadiusKm)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "a-neg", result.Matches[0].Donor.ID)
	assert.Equal(t, "o-pos", result.Matches[1].Donor.ID)
	assert.Len(t, result.Display, 2)

	require.Len(t, result.Notified, 2)
	assert.Equal(t, "URGENT: Asha needs A+ blood at Apollo. Distance: 2.0km", result.Notified[0].Message)
	assert.Equal(t, "URGENT: Asha needs A+ blood at Apollo. Distance: 5.0km", result.Notified[1].Message)
	assert.Equal(t, result.Request.ID, *result.Notified[0].RequestID)

	mine, err := svc.Notifications(ctx, "a-neg")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	none, err := svc.Notifications(ctx, "b-pos")
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.Equal(t, 1, events.requests)
	assert.Equal(t, 2, events.notified)
}

func TestSubmitHonoursPolicyLimits(t *testing.T) {
	opts := defaultOptions()
	opts.DisplayTopN = 1
	opts.Policy = types.NotificationPolicy{
		RadiusKm:        15,
		NotifyTopN:      2,
		UrgencyRadiusKm: map[types.Urgency]float64{types.UrgencyCritical: 40},
		UrgencyTopN:     map[types.Urgency]int{types.UrgencyLow: 0},
	}
	svc, store, _ := newTestService(t, opts)
	ctx := context.Background()

	addDonor(t, store, "near", "Nina", types.BloodTypeONeg, 0.018, types.DonorStatusAvailable)
	addDonor(t, store, "mid", "Meera", types.BloodTypeONeg, 0.045, types.DonorStatusAvailable)
	addDonor(t, store, "far", "Farah", types.BloodTypeONeg, 0.27, types.DonorStatusAvailable)

	critical, err := svc.Submit(ctx, requestForm(types.BloodTypeABPos, types.UrgencyCritical, 1))
	require.NoError(t, err)
	assert.Equal(t, 40.0, critical.RadiusKm)
	assert.Len(t, critical.Matches, 3)
	assert.Len(t, critical.Display, 1)
	assert.Len(t, critical.Notified, 2)

	medium, err := svc.Submit(ctx, requestForm(types.BloodTypeABPos, types.UrgencyMedium, 1))
	require.NoError(t, err)
	assert.Len(t, medium.Matches, 2)

	low, err := svc.Submit(ctx, requestForm(types.BloodTypeABPos, types.UrgencyLow, 1))
	require.NoError(t, err)
	assert.Len(t, low.Matches, 2)
	assert.Empty(t, low.Notified)
}

func TestSubmitWithoutDonors(t *testing.T) {
	svc, _, _ := newTestService(t, defaultOptions())

	result, err := svc.Submit(context.Background(), requestForm(types.BloodTypeONeg, types.UrgencyLow, 1))
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
	assert.Empty(t, result.Notified)

	stored, err := svc.Request(context.Background(), result.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", stored.PatientName)
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _ := newTestService(t, defaultOptions())

	form := requestForm(types.BloodTypeONeg, "Whenever", 0)
	form.HospitalName = ""

	_, err := svc.Submit(context.Background(), form)

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "urgency")
	assert.Contains(t, verr.Fields, "units_needed")
	assert.Contains(t, verr.Fields, "hospital_name")

	requests, err := svc.Requests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, requests)
}

type failingDonors struct{}

func (failingDonors) Donors(context.Context) ([]*types.Donor, error) {
	return nil, errors.New("snapshot unavailable")
}

func TestSubmitStoresNothingWhenMatchingFails(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid policy radius", func(t *testing.T) {
		opts := defaultOptions()
		opts.Policy.RadiusKm = -1
		svc, store, _ := newTestService(t, opts)
		addDonor(t, store, "d1", "Dev", types.BloodTypeONeg, 0, types.DonorStatusAvailable)

		_, err := svc.Submit(ctx, requestForm(types.BloodTypeOPos, types.UrgencyCritical, 1))
		assert.ErrorIs(t, err, types.ErrInvalidRadius)

		requests, err := svc.Requests(ctx)
		require.NoError(t, err)
		assert.Empty(t, requests)

		notifications, err := svc.Notifications(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, notifications)
	})

	t.Run("donor snapshot error", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		store := memory.New()
		svc := New(logger, Repositories{
			Donors:        store,
			Requests:      store,
			Notifications: store,
			Donations:     store,
		}, matching.NewEngine(failingDonors{}, logger, nil), defaultOptions())

		_, err := svc.Submit(ctx, requestForm(types.BloodTypeOPos, types.UrgencyHigh, 1))
		require.Error(t, err)

		requests, err := store.Requests(ctx)
		require.NoError(t, err)
		assert.Empty(t, requests)
	})
}

func TestRespondRecordsDecisionOnce(t *testing.T) {
	events := &countingEvents{}
	opts := defaultOptions()
	opts.Events = events
	svc, store, clock := newTestService(t, opts)
	ctx := context.Background()

	addDonor(t, store, "d1", "Dev", types.BloodTypeONeg, 0.018, types.DonorStatusAvailable)
	addDonor(t, store, "d2", "Dia", types.BloodTypeONeg, 0.045, types.DonorStatusAvailable)

	result, err := svc.Submit(ctx, requestForm(types.BloodTypeOPos, types.UrgencyCritical, 1))
	require.NoError(t, err)
	require.Len(t, result.Notified, 2)

	clock.Advance(12 * time.Minute)

	n, err := svc.Accept(ctx, result.Notified[0].ID)
	require.NoError(t, err)
	assert.Equal(t, types.NotificationRead, n.Status)

	_, err = svc.Accept(ctx, result.Notified[0].ID)
	assert.ErrorIs(t, err, types.ErrNotificationHandled)

	_, err = svc.Decline(ctx, result.Notified[1].ID)
	require.NoError(t, err)

	_, err = svc.Decline(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotificationNotFound)

	request, err := svc.Request(ctx, result.Request.ID)
	require.NoError(t, err)
	require.Len(t, request.Responses, 2)

	resp, ok := request.Response("d1")
	require.True(t, ok)
	assert.Equal(t, types.ResponseAccepted, resp.Decision)
	assert.Equal(t, result.Notified[0].ID, resp.NotificationID)

	resp, ok = request.Response("d2")
	require.True(t, ok)
	assert.Equal(t, types.ResponseDeclined, resp.Decision)

	assert.Equal(t, 1, events.responses[types.ResponseAccepted])
	assert.Equal(t, 1, events.responses[types.ResponseDeclined])
}

func TestRecordDonationAwardsPointsAndFulfils(t *testing.T) {
	events := &countingEvents{}
	opts := defaultOptions()
	opts.Events = events
	svc, store, clock := newTestService(t, opts)
	ctx := context.Background()

	addDonor(t, store, "rare", "Rhea", types.BloodTypeANeg, 0.018, types.DonorStatusAvailable)
	addDonor(t, store, "common", "Chandra", types.BloodTypeOPos, 0.045, types.DonorStatusAvailable)

	submitted, err := svc.Submit(ctx, requestForm(types.BloodTypeAPos, types.UrgencyCritical, 2))
	require.NoError(t, err)
	requestID := submitted.Request.ID

	clock.Advance(time.Hour)

	first, err := svc.RecordDonation(ctx, "rare", &types.DonationForm{RequestID: requestID})
	require.NoError(t, err)
	assert.Equal(t, 150, first.Donation.PointsAwarded)
	assert.Equal(t, 1, first.Donation.Units)
	assert.Equal(t, 150, first.Donor.Points)
	assert.Equal(t, []string{BadgeFirstTimeDonor, BadgeRareBloodHero}, first.NewBadges)
	assert.False(t, first.RequestFulfilled)
	require.NotNil(t, first.Donor.LastDonation)
	assert.Equal(t, clock.Now(), *first.Donor.LastDonation)

	second, err := svc.RecordDonation(ctx, "common", &types.DonationForm{RequestID: requestID})
	require.NoError(t, err)
	assert.True(t, second.RequestFulfilled)
	assert.Equal(t, []string{BadgeFirstTimeDonor}, second.NewBadges)

	request, err := svc.Request(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, types.RequestStatusFulfilled, request.Status)

	walkIn, err := svc.RecordDonation(ctx, "common", &types.DonationForm{})
	require.NoError(t, err)
	assert.Equal(t, 100, walkIn.Donation.PointsAwarded)
	assert.Nil(t, walkIn.Donation.RequestID)
	assert.Equal(t, 250, walkIn.Donor.Points)

	stored, err := svc.Donor(ctx, "common")
	require.NoError(t, err)
	assert.Equal(t, 250, stored.Points)

	assert.Equal(t, 3, events.donations)
}

func TestRecordDonationErrors(t *testing.T) {
	svc, store, _ := newTestService(t, defaultOptions())
	ctx := context.Background()
	addDonor(t, store, "d1", "Dev", types.BloodTypeONeg, 0, types.DonorStatusAvailable)

	_, err := svc.RecordDonation(ctx, "missing", &types.DonationForm{})
	assert.ErrorIs(t, err, types.ErrDonorNotFound)

	_, err = svc.RecordDonation(ctx, "d1", &types.DonationForm{RequestID: "missing"})
	assert.ErrorIs(t, err, types.ErrRequestNotFound)

	var verr *types.ValidationError
	_, err = svc.RecordDonation(ctx, "d1", &types.DonationForm{Units: 11})
	assert.ErrorAs(t, err, &verr)
}

func TestRecordDonationRejectsIncompatibleDonor(t *testing.T) {
	svc, store, _ := newTestService(t, defaultOptions())
	ctx := context.Background()
	addDonor(t, store, "aplus", "Anil", types.BloodTypeAPos, 0, types.DonorStatusAvailable)

	submitted, err := svc.Submit(ctx, requestForm(types.BloodTypeOPos, types.UrgencyCritical, 1))
	require.NoError(t, err)
	assert.Empty(t, submitted.Matches)

	var verr *types.ValidationError
	_, err = svc.RecordDonation(ctx, "aplus", &types.DonationForm{RequestID: submitted.Request.ID})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "request_id")

	request, err := svc.Request(ctx, submitted.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RequestStatusActive, request.Status)

	donor, err := svc.Donor(ctx, "aplus")
	require.NoError(t, err)
	assert.Zero(t, donor.Points)
	assert.Nil(t, donor.LastDonation)

	donations, err := svc.DonorDonations(ctx, "aplus")
	require.NoError(t, err)
	assert.Empty(t, donations)
}

func TestUrgentBonusOnlyForActiveRequests(t *testing.T) {
	svc, store, _ := newTestService(t, defaultOptions())
	ctx := context.Background()
	addDonor(t, store, "d1", "Dev", types.BloodTypeONeg, 0, types.DonorStatusAvailable)
	addDonor(t, store, "d2", "Dia", types.BloodTypeONeg, 0.01, types.DonorStatusAvailable)

	fulfilled, err := svc.Submit(ctx, requestForm(types.BloodTypeOPos, types.UrgencyCritical, 1))
	require.NoError(t, err)

	first, err := svc.RecordDonation(ctx, "d1", &types.DonationForm{RequestID: fulfilled.Request.ID})
	require.NoError(t, err)
	assert.Equal(t, 150, first.Donation.PointsAwarded)
	require.True(t, first.RequestFulfilled)

	late, err := svc.RecordDonation(ctx, "d2", &types.DonationForm{RequestID: fulfilled.Request.ID})
	require.NoError(t, err)
	assert.Equal(t, 100, late.Donation.PointsAwarded)
	assert.False(t, late.RequestFulfilled)

	cancelled, err := svc.Submit(ctx, requestForm(types.BloodTypeOPos, types.UrgencyHigh, 1))
	require.NoError(t, err)
	_, err = svc.CancelRequest(ctx, cancelled.Request.ID)
	require.NoError(t, err)

	afterCancel, err := svc.RecordDonation(ctx, "d1", &types.DonationForm{RequestID: cancelled.Request.ID})
	require.NoError(t, err)
	assert.Equal(t, 100, afterCancel.Donation.PointsAwarded)
	assert.Equal(t, 250, afterCancel.Donor.Points)

	request, err := svc.Request(ctx, cancelled.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RequestStatusCancelled, request.Status)
}

func TestDonationMilestoneBadges(t *testing.T) {
	svc, store, _ := newTestService(t, defaultOptions())
	ctx := context.Background()
	addDonor(t, store, "d1", "Dev", types.BloodTypeOPos, 0, types.DonorStatusAvailable)

	var all []string
	for range 3 {
		result, err := svc.RecordDonation(ctx, "d1", &types.DonationForm{})
		require.NoError(t, err)
		all = append(all, result.NewBadges...)
	}

	assert.Equal(t, []string{BadgeFirstTimeDonor, BadgeRegularDonor}, all)

	donor, err := svc.Donor(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, []string{BadgeNewDonor, BadgeFirstTimeDonor, BadgeRegularDonor}, donor.Badges)
}

func TestEmergencyResponderBadge(t *testing.T) {
	svc, store, _ := newTestService(t, defaultOptions())
	ctx := context.Background()
	addDonor(t, store, "hero", "Hari", types.BloodTypeONeg, 0, types.DonorStatusAvailable)

	for i := range 5 {
		result, err := svc.Submit(ctx, requestForm(types.BloodTypeOPos, types.UrgencyHigh, 1))
		require.NoError(t, err)
		require.Len(t, result.Notified, 1)

		_, err = svc.Accept(ctx, result.Notified[0].ID)
		require.NoError(t, err)

		donor, err := svc.Donor(ctx, "hero")
		require.NoError(t, err)
		assert.Equal(t, i == 4, donor.HasBadge(BadgeEmergencyResponder), "after %d accepts", i+1)
	}
}

func TestEarnedBadges(t *testing.T) {
	assert.Empty(t, earnedBadges(0, 0, types.BloodTypeONeg))
	assert.Equal(t, []string{BadgeFirstTimeDonor}, earnedBadges(1, 4, types.BloodTypeOPos))
	assert.Equal(t,
		[]string{BadgeFirstTimeDonor, BadgeRegularDonor, BadgeLifeSaver, BadgeHeroDonor, BadgeEmergencyResponder, BadgeRareBloodHero},
		earnedBadges(25, 5, types.BloodTypeABNeg),
	)
	assert.Len(t, BadgeCatalogue, 7)
}

func TestSearchDonors(t *testing.T) {
	svc, store, _ := newTestService(t, defaultOptions())
	ctx := context.Background()

	addDonor(t, store, "z", "Zara", types.BloodTypeOPos, 0.018, types.DonorStatusAvailable)
	addDonor(t, store, "a", "Arun", types.BloodTypeOPos, 0.5, types.DonorStatusAvailable)
	addDonor(t, store, "b", "Bina", types.BloodTypeOPos, 0, types.DonorStatusUnavailable)
	addDonor(t, store, "c", "Chitra", types.BloodTypeBNeg, 0, types.DonorStatusAvailable)

	all, err := svc.SearchDonors(ctx, &types.DonorSearchForm{BloodType: "All"})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"Arun", "Chitra", "Zara", "Bina"}, listingNames(all))
	assert.Nil(t, all[0].DistanceKm)

	opos, err := svc.SearchDonors(ctx, &types.DonorSearchForm{BloodType: "o+"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Arun", "Zara", "Bina"}, listingNames(opos))

	lat, lon := originLat, originLon
	near, err := svc.SearchDonors(ctx, &types.DonorSearchForm{BloodType: "O+", Latitude: &lat, Longitude: &lon})
	require.NoError(t, err)
	assert.Equal(t, []string{"Zara", "Bina"}, listingNames(near))
	require.NotNil(t, near[0].DistanceKm)
	assert.InDelta(t, 2.0, *near[0].DistanceKm, 0.01)

	wide, err := svc.SearchDonors(ctx, &types.DonorSearchForm{Latitude: &lat, Longitude: &lon, RadiusKm: 100})
	require.NoError(t, err)
	assert.Len(t, wide, 4)

	_, err = svc.SearchDonors(ctx, &types.DonorSearchForm{BloodType: "Q"})
	assert.ErrorIs(t, err, types.ErrInvalidBloodType)
}

func listingNames(listings []DonorListing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.Donor.Name)
	}
	return out
}

func TestSetAvailability(t *testing.T) {
	svc, store, _ := newTestService(t, defaultOptions())
	ctx := context.Background()
	addDonor(t, store, "d1", "Dev", types.BloodTypeONeg, 0, types.DonorStatusAvailable)

	donor, err := svc.SetAvailability(ctx, "d1", types.DonorStatusUnavailable)
	require.NoError(t, err)
	assert.False(t, donor.Available())

	matches, err := svc.Match(ctx, types.MatchQuery{BloodType: "O-", Latitude: originLat, Longitude: originLon, RadiusKm: 5})
	require.NoError(t, err)
	assert.Empty(t, matches)

	_, err = svc.SetAvailability(ctx, "d1", "Sleeping")
	var verr *types.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.SetAvailability(ctx, "missing", types.DonorStatusAvailable)
	assert.ErrorIs(t, err, types.ErrDonorNotFound)
}

func TestMatch(t *testing.T) {
	svc, store, _ := newTestService(t, defaultOptions())
	ctx := context.Background()
	addDonor(t, store, "d1", "Dev", types.BloodTypeONeg, 0, types.DonorStatusAvailable)

	matches, err := svc.Match(ctx, types.MatchQuery{BloodType: "AB+", Latitude: originLat, Longitude: originLon, RadiusKm: 0})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, types.MatchResult{DonorID: "d1", DistanceKm: 0}, matches[0])

	_, err = svc.Match(ctx, types.MatchQuery{BloodType: "Z", Latitude: originLat, Longitude: originLon, RadiusKm: 5})
	assert.ErrorIs(t, err, types.ErrInvalidBloodType)

	_, err = svc.Match(ctx, types.MatchQuery{BloodType: "O+", Latitude: 91, Longitude: originLon, RadiusKm: 5})
	assert.ErrorIs(t, err, types.ErrInvalidCoordinate)

	_, err = svc.Match(ctx, types.MatchQuery{BloodType: "O+", Latitude: originLat, Longitude: originLon, RadiusKm: -1})
	assert.ErrorIs(t, err, types.ErrInvalidRadius)
}

func TestCancelRequest(t *testing.T) {
	svc, _, _ := newTestService(t, defaultOptions())
	ctx := context.Background()

	result, err := svc.Submit(ctx, requestForm(types.BloodTypeONeg, types.UrgencyLow, 1))
	require.NoError(t, err)

	request, err := svc.CancelRequest(ctx, result.Request.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RequestStatusCancelled, request.Status)

	_, err = svc.CancelRequest(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrRequestNotFound)
}
