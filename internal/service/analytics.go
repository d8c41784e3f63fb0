package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"bloodconnect/pkg/types"
)

type BloodTypeCount struct {
	BloodType types.BloodType `json:"bloodType"`
	Count     int             `json:"count"`
}

type Dashboard struct {
	TotalDonors        int                   `json:"totalDonors"`
	AvailableDonors    int                   `json:"availableDonors"`
	ActiveRequests     int                   `json:"activeRequests"`
	CompletedDonations int                   `json:"completedDonations"`
	RecentRequests     []*types.BloodRequest `json:"recentRequests"`
	BloodTypes         []BloodTypeCount      `json:"bloodTypes"`
}

const recentRequestCount = 3

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	donors, err := s.donors.Donors(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.Requests(ctx)
	if err != nil {
		return nil, err
	}

	donations, err := s.donations.Donations(ctx, "")
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		TotalDonors:        len(donors),
		CompletedDonations: len(donations),
		RecentRequests:     requests[:min(recentRequestCount, len(requests))],
	}

	counts := make(map[types.BloodType]int)
	for _, donor := range donors {
		if donor.Available() {
			d.AvailableDonors++
		}
		counts[donor.BloodType]++
	}

	for _, request := range requests {
		if request.Status == types.RequestStatusActive {
			d.ActiveRequests++
		}
	}

	for _, bt := range types.BloodTypes {
		if counts[bt] > 0 {
			d.BloodTypes = append(d.BloodTypes, BloodTypeCount{BloodType: bt, Count: counts[bt]})
		}
	}

	return d, nil
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type AreaCount struct {
	Area  string `json:"area"`
	Count int    `json:"count"`
}

// ResponseTimes summarizes the time from a request being created to a
// donor answering it.
type ResponseTimes struct {
	Count   int           `json:"count"`
	Average time.Duration `json:"average"`
	Fastest time.Duration `json:"fastest"`
	Slowest time.Duration `json:"slowest"`
}

type Analytics struct {
	GeneratedAt       time.Time     `json:"generatedAt"`
	MonthlyDonations  []MonthCount  `json:"monthlyDonations"`
	ResponseTimes     ResponseTimes `json:"responseTimes"`
	DonorsByArea      []AreaCount   `json:"donorsByArea"`
	NotificationsSent int           `json:"notificationsSent"`
	Responses         int           `json:"responses"`
	Accepted          int           `json:"accepted"`
	ResponseRate      float64       `json:"responseRate"`
	Requests          int           `json:"requests"`
	Fulfilled         int           `json:"fulfilled"`
	FulfilmentRate    float64       `json:"fulfilmentRate"`
}

func (s *Service) Analytics(ctx context.Context) (*Analytics, error) {
	donors, err := s.donors.Donors(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.requests.Requests(ctx)
	if err != nil {
		return nil, err
	}

	donations, err := s.donations.Donations(ctx, "")
	if err != nil {
		return nil, err
	}

	notifications, err := s.notifications.Notifications(ctx, "")
	if err != nil {
		return nil, err
	}

	a := &Analytics{
		GeneratedAt:      s.now(),
		MonthlyDonations: monthlyDonations(donations),
		DonorsByArea:     donorsByArea(donors),
		Requests:         len(requests),
	}

	for _, n := range notifications {
		if n.RequestID != nil {
			a.NotificationsSent++
		}
	}

	var elapsed []time.Duration
	for _, request := range requests {
		if request.Status == types.RequestStatusFulfilled {
			a.Fulfilled++
		}
		for _, resp := range request.Responses {
			a.Responses++
			if resp.Decision == types.ResponseAccepted {
				a.Accepted++
			}
			elapsed = append(elapsed, max(resp.RespondedAt.Sub(request.CreatedAt), 0))
		}
	}

	a.ResponseTimes = summarizeResponseTimes(elapsed)
	a.ResponseRate = ratio(a.Responses, a.NotificationsSent)
	a.FulfilmentRate = ratio(a.Fulfilled, a.Requests)

	return a, nil
}

func monthlyDonations(donations []*types.Donation) []MonthCount {
	counts := make(map[string]int)
	for _, d := range donations {
		counts[d.DonatedAt.Format("2006-01")]++
	}

	out := make([]MonthCount, 0, len(counts))
	for month, count := range counts {
		out = append(out, MonthCount{Month: month, Count: count})
	}
	slices.SortFunc(out, func(a, b MonthCount) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

// donorsByArea counts donors per area, largest first.
func donorsByArea(donors []*types.Donor) []AreaCount {
	counts := make(map[string]int)
	for _, donor := range donors {
		counts[donor.Area()]++
	}

	out := make([]AreaCount, 0, len(counts))
	for area, count := range counts {
		out = append(out, AreaCount{Area: area, Count: count})
	}
	slices.SortFunc(out, func(a, b AreaCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Area, b.Area)
	})
	return out
}

func summarizeResponseTimes(elapsed []time.Duration) ResponseTimes {
	if len(elapsed) == 0 {
		return ResponseTimes{}
	}

	var total time.Duration
	for _, e := range elapsed {
		total += e
	}

	return ResponseTimes{
		Count:   len(elapsed),
		Average: total / time.Duration(len(elapsed)),
		Fastest: slices.Min(elapsed),
		Slowest: slices.Max(elapsed),
	}
}

func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
