package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bloodconnect/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	err error
}

func (s stubSource) Dashboard(context.Context) (*service.Dashboard, error) {
	return &service.Dashboard{TotalDonors: 3}, s.err
}

func (s stubSource) Analytics(context.Context) (*service.Analytics, error) {
	return &service.Analytics{Requests: 2}, nil
}

func (s stubSource) Leaderboard(context.Context) (*service.Leaderboard, error) {
	return &service.Leaderboard{Badges: service.BadgeCatalogue}, nil
}

type memoryArchive struct {
	name string
	body []byte
}

func (a *memoryArchive) Put(_ context.Context, name string, body []byte, _ string) (string, error) {
	a.name = name
	a.body = body
	return "reports/" + name, nil
}

func TestBuildAndPublish(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	snapshot, err := Build(ctx, stubSource{}, now)
	require.NoError(t, err)
	assert.Equal(t, "analytics-20240601T093000Z.json", snapshot.Name())

	archive := &memoryArchive{}
	key, err := Publish(ctx, archive, snapshot)
	require.NoError(t, err)
	assert.Equal(t, "reports/analytics-20240601T093000Z.json", key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(archive.body, &decoded))
	assert.Equal(t, 3.0, decoded["dashboard"].(map[string]any)["totalDonors"])
	assert.Equal(t, 2.0, decoded["analytics"].(map[string]any)["requests"])
}

func TestBuildError(t *testing.T) {
	_, err := Build(context.Background(), stubSource{err: errors.New("boom")}, time.Now())
	assert.ErrorContains(t, err, "boom")
}
