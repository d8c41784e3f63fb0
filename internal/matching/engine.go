// Package matching ranks available donors that can serve a blood type by
// their distance from a point.
package matching

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"bloodconnect/internal/geo"
	"bloodconnect/pkg/types"

	"github.com/sirupsen/logrus"
)

// radiusToleranceKm absorbs haversine rounding so a donor placed exactly
// on the radius stays in range.
const radiusToleranceKm = 1e-6

type Query struct {
	BloodType types.BloodType
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

type Match struct {
	Donor      *types.Donor
	DistanceKm float64
}

// SkipFunc is told about donor records that could not be considered.
type SkipFunc func(donor *types.Donor, err error)

// DonorSource hands out a point in time snapshot of every donor. Callers
// must not observe later writes through the returned slice.
type DonorSource interface {
	Donors(ctx context.Context) ([]*types.Donor, error)
}

// Recorder receives matching telemetry. Implementations must be safe for
// concurrent use.
type Recorder interface {
	ObserveQuery(bloodType types.BloodType, matches int, elapsed time.Duration)
	DonorSkipped(reason string)
}

func (q Query) Validate() error {
	if !q.BloodType.Valid() {
		return fmt.Errorf("%w: %q", types.ErrInvalidBloodType, q.BloodType)
	}
	if err := geo.ValidateCoordinate(q.Latitude, q.Longitude); err != nil {
		return err
	}
	if math.IsNaN(q.RadiusKm) || math.IsInf(q.RadiusKm, 0) || q.RadiusKm < 0 {
		return fmt.Errorf("%w: %v", types.ErrInvalidRadius, q.RadiusKm)
	}
	return nil
}

// validateDonor checks the parts of a stored record the ranking relies on.
func validateDonor(donor *types.Donor) error {
	if !donor.BloodType.Valid() {
		return fmt.Errorf("%w: %q", types.ErrInvalidBloodType, donor.BloodType)
	}
	return geo.ValidateCoordinate(donor.Latitude, donor.Longitude)
}

// FindCompatibleDonors returns every available donor whose blood can serve
// q.BloodType and who is within q.RadiusKm (inclusive, within 1e-6 km) of
// the query origin, closest first. Equal distances are ordered by donor id.
// Donors with an invalid blood type or coordinates are reported to skip and
// left out whatever their status or type. An empty result is not an error.
func FindCompatibleDonors(q Query, donors []*types.Donor, skip SkipFunc) ([]Match, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	matches := make([]Match, 0)
	for _, donor := range donors {
		if donor == nil {
			continue
		}

		if err := validateDonor(donor); err != nil {
			if skip != nil {
				skip(donor, err)
			}
			continue
		}

		if !donor.Available() || !types.CanDonateTo(donor.BloodType, q.BloodType) {
			continue
		}

		distance := geo.DistanceKm(q.Latitude, q.Longitude, donor.Latitude, donor.Longitude)
		if distance > q.RadiusKm+radiusToleranceKm {
			continue
		}

		matches = append(matches, Match{Donor: donor, DistanceKm: distance})
	}

	slices.SortFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(a.DistanceKm, b.DistanceKm); c != 0 {
			return c
		}
		return cmp.Compare(a.Donor.ID, b.Donor.ID)
	})

	return matches, nil
}

// Engine runs queries against a live donor source.
type Engine struct {
	donors   DonorSource
	logger   logrus.FieldLogger
	recorder Recorder
}

func NewEngine(donors DonorSource, logger logrus.FieldLogger, recorder Recorder) *Engine {
	return &Engine{
		donors:   donors,
		logger:   logger,
		recorder: recorder,
	}
}

func (e *Engine) FindCompatibleDonors(ctx context.Context, q Query) ([]Match, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()

	snapshot, err := e.donors.Donors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot donors: %w", err)
	}

	matches, err := FindCompatibleDonors(q, snapshot, e.skipped)
	if err != nil {
		return nil, err
	}

	if e.recorder != nil {
		e.recorder.ObserveQuery(q.BloodType, len(matches), time.Since(started))
	}

	e.logger.WithFields(logrus.Fields{
		"blood_type": q.BloodType,
		"radius_km":  q.RadiusKm,
		"candidates": len(snapshot),
		"matches":    len(matches),
	}).Debug("donor match query")

	return matches, nil
}

func (e *Engine) skipped(donor *types.Donor, err error) {
	e.logger.WithError(err).WithField("donor_id", donor.ID).Warn("skipping malformed donor record")

	if e.recorder == nil {
		return
	}

	reason := "invalid_coordinate"
	if errors.Is(err, types.ErrInvalidBloodType) {
		reason = "invalid_blood_type"
	}
	e.recorder.DonorSkipped(reason)
}
