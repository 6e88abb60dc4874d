package recommend

import (
	"sort"

	"github.com/wutims/draftengine/internal/domain"
)

// GameResult is one previous game of a series, from the caller's side
// perspective, used to derive in-series tendencies.
type GameResult struct {
	Winner    domain.Side
	BlueComp  []string
	RedComp   []string
	BlueBans  []string
	RedBans   []string
}

// GameSummary preserves order and side for a previous_games list entry.
type GameSummary struct {
	Winner   domain.Side
	BlueComp []string
	RedComp  []string
}

// SideTendencies is one side's derived patterns across a series so far.
type SideTendencies struct {
	PrioritizedPicks  []string // picked in ≥2 previous games
	FirstPickPatterns []string // first pick of the game in ≥2 previous games
	BannedAgainstThem []string // champions the opponent banned in ≥2 games
}

// SeriesContext is the aggregate result of SeriesContextBuilder.FromGameResults.
type SeriesContext struct {
	PreviousGames             []GameSummary
	SeriesScore               [2]int // blue_wins, red_wins
	OurTendencies             SideTendencies
	EnemyTendencies           SideTendencies
	IsSeriesContextAvailable  bool
}

// SeriesContextBuilder aggregates previous-game tendencies from in-series history.
type SeriesContextBuilder struct{}

func NewSeriesContextBuilder() *SeriesContextBuilder {
	return &SeriesContextBuilder{}
}

// FromGameResults builds a SeriesContext from the ordered results of every
// game played so far in the series and the caller's side for this game.
func (s *SeriesContextBuilder) FromGameResults(games []GameResult, ourSide domain.Side, gameNumber int) SeriesContext {
	ctx := SeriesContext{IsSeriesContextAvailable: gameNumber > 1 && len(games) > 0}

	var blueWins, redWins int
	summaries := make([]GameSummary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, GameSummary{Winner: g.Winner, BlueComp: g.BlueComp, RedComp: g.RedComp})
		switch g.Winner {
		case domain.SideBlue:
			blueWins++
		case domain.SideRed:
			redWins++
		}
	}
	ctx.PreviousGames = summaries
	ctx.SeriesScore = [2]int{blueWins, redWins}

	enemySide := domain.SideRed
	if ourSide == domain.SideRed {
		enemySide = domain.SideBlue
	}

	ctx.OurTendencies = extractTendencies(games, ourSide)
	ctx.EnemyTendencies = extractTendencies(games, enemySide)

	return ctx
}

// extractTendencies implements the Counter-based pattern extraction: picks
// in ≥2 games, first picks in ≥2 games, and bans the opponent made against
// this side in ≥2 games.
func extractTendencies(games []GameResult, side domain.Side) SideTendencies {
	pickCounts := map[string]int{}
	firstPickCounts := map[string]int{}
	banAgainstCounts := map[string]int{}

	for _, g := range games {
		var ourComp, enemyComp, enemyBans []string
		if side == domain.SideBlue {
			ourComp, enemyComp, enemyBans = g.BlueComp, g.RedComp, g.RedBans
		} else {
			ourComp, enemyComp, enemyBans = g.RedComp, g.BlueComp, g.BlueBans
		}
		_ = enemyComp
		for i, champ := range ourComp {
			pickCounts[champ]++
			if i == 0 {
				firstPickCounts[champ]++
			}
		}
		for _, champ := range enemyBans {
			banAgainstCounts[champ]++
		}
	}

	return SideTendencies{
		PrioritizedPicks:  keysAtLeast(pickCounts, 2),
		FirstPickPatterns: keysAtLeast(firstPickCounts, 2),
		BannedAgainstThem: keysAtLeast(banAgainstCounts, 2),
	}
}

func keysAtLeast(counts map[string]int, min int) []string {
	var out []string
	for k, v := range counts {
		if v >= min {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
