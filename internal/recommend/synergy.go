package recommend

import (
	"sort"

	"github.com/wutims/draftengine/internal/knowledge"
)

// ratingMultipliers maps a curated synergy strength letter to its score
// multiplier.
var ratingMultipliers = map[string]float64{
	"S": 1.0,
	"A": 0.8,
	"B": 0.6,
	"C": 0.4,
}

// baseCuratedScore is the ceiling a curated synergy entry scales against.
const baseCuratedScore = 0.85

// SynergyPair is one scored champion pairing, used in team synergy reports.
type SynergyPair struct {
	ChampionA string
	ChampionB string
	Score     float64
}

// TeamSynergy is the aggregate result of scoring every pairing in a comp.
type TeamSynergy struct {
	TotalScore float64
	PairCount  int
	Pairs      []SynergyPair
}

// SynergyService scores pairwise champion synergy from curated data first,
// statistical data second, and a neutral 0.5 default otherwise.
type SynergyService struct {
	store *knowledge.Store
}

func NewSynergyService(store *knowledge.Store) *SynergyService {
	return &SynergyService{store: store}
}

// GetSynergyScore returns the pairwise synergy of a and b.
func (s *SynergyService) GetSynergyScore(a, b string) float64 {
	if curated, ok := s.store.CuratedSynergy(a); ok {
		if strength, ok := curated.BestPartners[b]; ok {
			return baseCuratedScore * ratingMultipliers[strength]
		}
	}
	if curated, ok := s.store.CuratedSynergy(b); ok {
		if strength, ok := curated.BestPartners[a]; ok {
			return baseCuratedScore * ratingMultipliers[strength]
		}
	}
	if stat, ok := s.store.StatisticalSynergy(a, b); ok {
		return stat.WinRate
	}
	return 0.5
}

// CalculateTeamSynergy averages all pairwise scores across picks.
func (s *SynergyService) CalculateTeamSynergy(picks []string) TeamSynergy {
	var pairs []SynergyPair
	total := 0.0
	for i := 0; i < len(picks); i++ {
		for j := i + 1; j < len(picks); j++ {
			score := s.GetSynergyScore(picks[i], picks[j])
			pairs = append(pairs, SynergyPair{ChampionA: picks[i], ChampionB: picks[j], Score: score})
			total += score
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Score > pairs[j].Score })
	result := TeamSynergy{PairCount: len(pairs), Pairs: pairs}
	if len(pairs) > 0 {
		result.TotalScore = total / float64(len(pairs))
	} else {
		result.TotalScore = 0.5
	}
	return result
}
