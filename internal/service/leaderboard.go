package service

import (
	"cmp"
	"context"
	"slices"
	"strconv"

	"bloodconnect/pkg/types"
)

const leaderboardSize = 10

type LeaderboardEntry struct {
	Rank          int          `json:"rank"`
	Medal         string       `json:"medal"`
	Donor         *types.Donor `json:"donor"`
	LocalChampion bool         `json:"localChampion"`
}

type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
	Badges  []Badge            `json:"badges"`
}

// Medal is the rank marker shown next to a leaderboard entry.
func Medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return strconv.Itoa(rank) + "."
	}
}

// Leaderboard ranks donors by points, ties broken by name, and flags the
// top donor of each area as its Local Champion.
func (s *Service) Leaderboard(ctx context.Context) (*Leaderboard, error) {
	donors, err := s.donors.Donors(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(donors, compareStanding)

	champions := localChampions(donors)

	board := &Leaderboard{Badges: BadgeCatalogue}
	for i, donor := range donors[:min(leaderboardSize, len(donors))] {
		board.Entries = append(board.Entries, LeaderboardEntry{
			Rank:          i + 1,
			Medal:         Medal(i + 1),
			Donor:         donor,
			LocalChampion: champions[donor.ID],
		})
	}

	return board, nil
}

func compareStanding(a, b *types.Donor) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// localChampions expects donors already in standing order. Donors without
// points can't be champions.
func localChampions(donors []*types.Donor) map[string]bool {
	seen := make(map[string]bool)
	out := make(map[string]bool)
	for _, donor := range donors {
		area := donor.Area()
		if area == "" || seen[area] || donor.Points <= 0 {
			continue
		}
		seen[area] = true
		out[donor.ID] = true
	}
	return out
}
