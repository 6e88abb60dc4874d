package session

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/repository"
)

// matchHistoryStrategy derives an EnemyStrategy from a team's recorded
// games: one randomly chosen reference draft supplies the primary script,
// its remaining games supply fallback scripts in recency order, and
// pick frequency across all of them supplies the weighted-random pool.
type matchHistoryStrategy struct {
	pool            []string
	referenceScript map[int]string
	fallbackScripts []map[int]string
	weights         map[string]float64
}

// NewMatchHistoryStrategy loads a team's recent games from store and
// builds the strategy described in session.EnemyStrategy. It returns
// false when the team has no recorded games, so callers can fall back to
// NewUniformStrategy.
func NewMatchHistoryStrategy(ctx context.Context, store repository.MatchDataStore, teamID uuid.UUID) (EnemyStrategy, bool) {
	games, err := store.TeamGames(ctx, teamID, 20)
	if err != nil || len(games) == 0 {
		return nil, false
	}

	actionsByGame := make(map[uuid.UUID][]repository.DraftActionRecord, len(games))
	for _, g := range games {
		actions, err := store.DraftActions(ctx, g.GameID)
		if err != nil {
			continue
		}
		actionsByGame[g.GameID] = actions
	}

	reference := games[rand.Intn(len(games))]
	referenceScript := scriptFor(actionsByGame[reference.GameID], reference.Side)

	fallbackScripts := make([]map[int]string, 0, len(games)-1)
	for _, g := range games {
		if g.GameID == reference.GameID {
			continue
		}
		fallbackScripts = append(fallbackScripts, scriptFor(actionsByGame[g.GameID], g.Side))
	}

	weights, pool := buildChampionWeights(games, actionsByGame)

	return &matchHistoryStrategy{
		pool:            pool,
		referenceScript: referenceScript,
		fallbackScripts: fallbackScripts,
		weights:         weights,
	}, true
}

func scriptFor(actions []repository.DraftActionRecord, side domain.Side) map[int]string {
	script := make(map[int]string)
	for _, a := range actions {
		if a.TeamSide == side {
			script[a.Sequence] = a.Champion
		}
	}
	return script
}

func buildChampionWeights(games []repository.TeamGame, actionsByGame map[uuid.UUID][]repository.DraftActionRecord) (map[string]float64, []string) {
	counts := make(map[string]int)
	total := 0
	for _, g := range games {
		for _, a := range actionsByGame[g.GameID] {
			if a.TeamSide == g.Side && a.ActionType == domain.ActionTypePick {
				counts[a.Champion]++
				total++
			}
		}
	}
	if total == 0 {
		return map[string]float64{}, nil
	}
	weights := make(map[string]float64, len(counts))
	pool := make([]string, 0, len(counts))
	for champ, count := range counts {
		weights[champ] = float64(count) / float64(total)
		pool = append(pool, champ)
	}
	return weights, pool
}

func (s *matchHistoryStrategy) ChampionPool(teamID string) []string {
	return s.pool
}

func (s *matchHistoryStrategy) ReferenceScript(actionIndex int) (string, bool) {
	champ, ok := s.referenceScript[actionIndex]
	return champ, ok
}

func (s *matchHistoryStrategy) FallbackScript(actionIndex int) (string, bool) {
	for _, script := range s.fallbackScripts {
		if champ, ok := script[actionIndex]; ok {
			return champ, true
		}
	}
	return "", false
}

func (s *matchHistoryStrategy) WeightedRandom(teamID string, available []string) (string, bool) {
	total := 0.0
	weighted := make([]string, 0, len(available))
	cumulative := make([]float64, 0, len(available))
	for _, champ := range available {
		w, ok := s.weights[champ]
		if !ok || w <= 0 {
			continue
		}
		total += w
		weighted = append(weighted, champ)
		cumulative = append(cumulative, total)
	}
	if total == 0 {
		if len(available) == 0 {
			return "", false
		}
		return available[rand.Intn(len(available))], true
	}
	target := rand.Float64() * total
	for i, c := range cumulative {
		if target <= c {
			return weighted[i], true
		}
	}
	return weighted[len(weighted)-1], true
}
