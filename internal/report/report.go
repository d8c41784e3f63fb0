// Package report snapshots platform analytics and archives them as JSON.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bloodconnect/internal/service"
)

// Source produces the figures that go into a report.
type Source interface {
	Dashboard(ctx context.Context) (*service.Dashboard, error)
	Analytics(ctx context.Context) (*service.Analytics, error)
	Leaderboard(ctx context.Context) (*service.Leaderboard, error)
}

// Archive stores a rendered report and returns its key.
type Archive interface {
	Put(ctx context.Context, name string, body []byte, contentType string) (string, error)
}

type Snapshot struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Dashboard   *service.Dashboard   `json:"dashboard"`
	Analytics   *service.Analytics   `json:"analytics"`
	Leaderboard *service.Leaderboard `json:"leaderboard"`
}

func Build(ctx context.Context, source Source, now time.Time) (*Snapshot, error) {
	dashboard, err := source.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	analytics, err := source.Analytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build analytics: %w", err)
	}

	leaderboard, err := source.Leaderboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard: %w", err)
	}

	return &Snapshot{
		GeneratedAt: now.UTC(),
		Dashboard:   dashboard,
		Analytics:   analytics,
		Leaderboard: leaderboard,
	}, nil
}

// Name is the object name a snapshot is archived under.
func (s *Snapshot) Name() string {
	return fmt.Sprintf("analytics-%s.json", s.GeneratedAt.Format("20060102T150405Z"))
}

// Publish renders the snapshot and uploads it, returning the object key.
func Publish(ctx context.Context, archive Archive, snapshot *Snapshot) (string, error) {
	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	return archive.Put(ctx, snapshot.Name(), body, "application/json")
}
