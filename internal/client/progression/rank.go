package progression

import (
	"errors"
	"fmt"
	"slices"

	"github.com/farag11/daheeh/internal/client/models"
)

var ErrInvalidRankTable = errors.New("invalid rank table")

// DefaultRanks covers every level from 1 upwards.
var DefaultRanks = []models.RankInfo{
	{Name: "Novice", MinLevel: 1, MaxLevel: 4, Color: "#9CA3AF", Icon: "seedling"},
	{Name: "Apprentice", MinLevel: 5, MaxLevel: 9, Color: "#22C55E", Icon: "book"},
	{Name: "Scholar", MinLevel: 10, MaxLevel: 19, Color: "#3B82F6", Icon: "graduation-cap"},
	{Name: "Expert", MinLevel: 20, MaxLevel: 34, Color: "#A855F7", Icon: "brain"},
	{Name: "Master", MinLevel: 35, MaxLevel: 49, Color: "#F59E0B", Icon: "crown"},
	{Name: "Legend", MinLevel: 50, MaxLevel: 0, Color: "#EF4444", Icon: "trophy"},
}

// ValidateRanks checks that ranks start at level 1, are contiguous and
// non-overlapping, and end in exactly one open-ended rank.
func ValidateRanks(ranks []models.RankInfo) error {
	if len(ranks) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidRankTable)
	}

	next := 1
	for i, r := range ranks {
		if r.MinLevel != next {
			return fmt.Errorf("%w: rank %q starts at %d, want %d", ErrInvalidRankTable, r.Name, r.MinLevel, next)
		}
		last := i == len(ranks)-1
		if r.MaxLevel == 0 {
			if !last {
				return fmt.Errorf("%w: open-ended rank %q is not last", ErrInvalidRankTable, r.Name)
			}
			return nil
		}
		if r.MaxLevel < r.MinLevel {
			return fmt.Errorf("%w: rank %q ends before it starts", ErrInvalidRankTable, r.Name)
		}
		next = r.MaxLevel + 1
	}
	return fmt.Errorf("%w: last rank must be open-ended", ErrInvalidRankTable)
}

// RankFor returns the first rank containing level, or the last rank when
// none does. Tables accepted by ValidateRanks never need the fallback.
func RankFor(ranks []models.RankInfo, level int) models.RankInfo {
	if i := slices.IndexFunc(ranks, func(r models.RankInfo) bool { return r.Contains(level) }); i >= 0 {
		return ranks[i]
	}
	if len(ranks) == 0 {
		return models.RankInfo{}
	}
	return ranks[len(ranks)-1]
}
