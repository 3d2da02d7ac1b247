package browse

import (
	"math"

	"github.com/mkowalski/puck-picks/internal/models"
)

const fullSeasonGames = 82

// ProjectedValue computes the 82-game-normalized projection of a player's
// output under the given modifiers.
//
// Each countable category contributes round(raw * value) when the modifiers
// are globally active and that modifier is enabled, and 0 otherwise. The
// rounded contributions are summed, the sum is prorated to a full season,
// and the result is rounded once more. The rounding order matters for
// numeric reproducibility and must not be reordered.
//
// A player with zero games played is treated as already having a full
// season: no proration is applied.
func ProjectedValue(stats models.PlayerStats, mods ModifierSet, active bool) int {
	prorate := 1.0
	if stats.GamesPlayed > 0 {
		prorate = float64(fullSeasonGames) / float64(stats.GamesPlayed)
	}

	sum := contribution(stats.Goals, mods.Goal, active) +
		contribution(stats.Assists, mods.Assist, active) +
		contribution(stats.ShortHandedGoals, mods.ShortHandedGoal, active) +
		contribution(stats.GameWinningGoals, mods.GameWinningGoal, active)

	return int(math.Round(float64(sum) * prorate))
}

func contribution(raw int, mod Modifier, active bool) int {
	if !active || !mod.Enabled {
		return 0
	}
	return int(math.Round(float64(raw) * mod.Value))
}
