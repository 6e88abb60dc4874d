package recommend

import (
	"sort"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/knowledge"
)

// Base pick-score component weights; these must always sum to 1.
const (
	weightMeta        = 0.25
	weightProficiency = 0.35
	weightMatchup     = 0.25
	weightCounter     = 0.15

	synergyMultiplierRange = 0.3
	defaultSuggestedRole   = domain.RoleMid
)

// Flag is a short qualitative tag attached to a recommendation.
type Flag string

const (
	FlagNone          Flag = ""
	FlagLowConfidence Flag = "LOW_CONFIDENCE"
	FlagSurprisePick  Flag = "SURPRISE_PICK"
)

// PickRecommendation is one scored pick candidate.
type PickRecommendation struct {
	Champion          string
	SuggestedRole     domain.Role
	Meta              float64
	Proficiency       float64
	ProficiencyPlayer string
	Matchup           float64
	Counter           float64
	Synergy           float64
	BaseScore         float64
	SynergyMultiplier float64
	TotalScore        float64
	Confidence        float64
	Flag              Flag
	Reasons           []string
}

// PickRecommendationEngine produces a weighted, multi-component ranking of
// pick candidates for a team's next pick.
type PickRecommendationEngine struct {
	store       *knowledge.Store
	flex        *FlexResolver
	meta        *MetaScorer
	matchup     *MatchupCalculator
	proficiency *ProficiencyScorer
	synergy     *SynergyService
}

func NewPickRecommendationEngine(store *knowledge.Store, flex *FlexResolver) *PickRecommendationEngine {
	return &PickRecommendationEngine{
		store:       store,
		flex:        flex,
		meta:        NewMetaScorer(store),
		matchup:     NewMatchupCalculator(store),
		proficiency: NewProficiencyScorer(store),
		synergy:     NewSynergyService(store),
	}
}

// roleCacheEntry holds a champion's role distribution as seen from the two
// contexts the pick engine needs: the filtered (candidate) view and the
// unfiltered (enemy pick) view.
type roleCacheEntry struct {
	filtered   map[domain.Role]float64
	unfiltered map[domain.Role]float64
}

// GetRecommendations runs the full pick-scoring pipeline.
func (e *PickRecommendationEngine) GetRecommendations(team []RosterPlayer, ourPicks, enemyPicks, banned []string, limit int) []PickRecommendation {
	unavailable := toSet(banned, ourPicks, enemyPicks)

	filled := e.inferFilledRoles(ourPicks)
	unfilled := unfilledRoles(filled)

	cache := e.buildRoleCache(team, unfilled, enemyPicks, filled)

	var candidates []string
	for champ, entry := range cache {
		if unavailable[champ] {
			continue
		}
		if len(entry.filtered) == 0 {
			continue
		}
		if isEnemyPick(champ, enemyPicks) {
			continue
		}
		candidates = append(candidates, champ)
	}
	sort.Strings(candidates)

	recs := make([]PickRecommendation, 0, len(candidates))
	for _, champ := range candidates {
		recs = append(recs, e.score(champ, cache[champ], team, ourPicks, enemyPicks))
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].TotalScore > recs[j].TotalScore })
	if limit > 0 && len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

func isEnemyPick(champ string, enemyPicks []string) bool {
	for _, e := range enemyPicks {
		if e == champ {
			return true
		}
	}
	return false
}

func toSet(lists ...[]string) map[string]bool {
	set := map[string]bool{}
	for _, list := range lists {
		for _, v := range list {
			set[v] = true
		}
	}
	return set
}

// inferFilledRoles takes argmax of each pick's unfiltered distribution.
func (e *PickRecommendationEngine) inferFilledRoles(ourPicks []string) map[domain.Role]bool {
	filled := map[domain.Role]bool{}
	for _, champ := range ourPicks {
		dist := e.flex.GetRoleProbabilities(champ, nil)
		best := domain.Role("")
		bestP := -1.0
		for _, role := range domain.AllRoles {
			if p, ok := dist[role]; ok && p > bestP {
				bestP = p
				best = role
			}
		}
		if best != "" {
			filled[best] = true
		}
	}
	return filled
}

func unfilledRoles(filled map[domain.Role]bool) []domain.Role {
	var out []domain.Role
	for _, role := range domain.AllRoles {
		if !filled[role] {
			out = append(out, role)
		}
	}
	return out
}

// buildRoleCache is the request-scoped cache of §4.6 step 3: built fresh per
// call, never shared across requests.
func (e *PickRecommendationEngine) buildRoleCache(team []RosterPlayer, unfilled []domain.Role, enemyPicks []string, filled map[domain.Role]bool) map[string]roleCacheEntry {
	cache := map[string]roleCacheEntry{}

	addCandidate := func(champ string) {
		if _, ok := cache[champ]; ok {
			return
		}
		cache[champ] = roleCacheEntry{
			filtered:   e.flex.GetRoleProbabilities(champ, filled),
			unfiltered: e.flex.GetRoleProbabilities(champ, nil),
		}
	}

	for _, player := range team {
		pool := e.proficiency.GetPlayerChampionPool(player.Name)
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].WinRate > pool[j].WinRate })
		for i, entry := range pool {
			if i >= 15 {
				break
			}
			addCandidate(entry.Champion)
		}
	}

	for _, role := range unfilled {
		for _, champ := range e.meta.GetTopMetaChampions(role, 10) {
			addCandidate(champ)
		}
	}

	for _, champ := range enemyPicks {
		cache[champ] = roleCacheEntry{
			filtered:   e.flex.GetRoleProbabilities(champ, filled),
			unfiltered: e.flex.GetRoleProbabilities(champ, nil),
		}
	}

	return cache
}

func (e *PickRecommendationEngine) score(champ string, cache roleCacheEntry, team []RosterPlayer, ourPicks, enemyPicks []string) PickRecommendation {
	suggestedRole := argmaxRole(cache.filtered)
	if suggestedRole == "" {
		suggestedRole = defaultSuggestedRole
	}

	metaScore := e.meta.GetMetaScore(champ, MetaMethodDefault)

	proficiencyScore, proficiencyConf, proficiencyPlayer := e.bestProficiency(champ, team)
	proficiencyConfValue := confidenceValue(proficiencyConf)

	matchupScore := e.averageLaneMatchup(champ, suggestedRole, enemyPicks)
	counterScore := e.averageTeamMatchup(champ, enemyPicks)

	synergyResult := e.synergy.CalculateTeamSynergy(append(append([]string{}, ourPicks...), champ))
	synergyScore := synergyResult.TotalScore

	baseScore := weightMeta*metaScore + weightProficiency*proficiencyScore + weightMatchup*matchupScore + weightCounter*counterScore
	synergyMultiplier := 1 + (synergyScore-0.5)*synergyMultiplierRange
	totalScore := baseScore * synergyMultiplier
	confidence := (1 + proficiencyConfValue) / 2

	rec := PickRecommendation{
		Champion:          champ,
		SuggestedRole:     suggestedRole,
		Meta:              metaScore,
		Proficiency:       proficiencyScore,
		ProficiencyPlayer: proficiencyPlayer,
		Matchup:           matchupScore,
		Counter:           counterScore,
		Synergy:           synergyScore,
		BaseScore:         baseScore,
		SynergyMultiplier: synergyMultiplier,
		TotalScore:        totalScore,
		Confidence:        confidence,
	}
	rec.Flag = computeFlag(confidence, metaScore, proficiencyScore)
	rec.Reasons = generatePickReasons(metaScore, proficiencyScore, matchupScore, synergyScore)
	return rec
}

func argmaxRole(dist map[domain.Role]float64) domain.Role {
	best := domain.Role("")
	bestP := -1.0
	for _, role := range domain.AllRoles {
		if p, ok := dist[role]; ok && p > bestP {
			bestP = p
			best = role
		}
	}
	return best
}

// bestProficiency searches every team player and keeps the maximum score.
func (e *PickRecommendationEngine) bestProficiency(champ string, team []RosterPlayer) (float64, knowledge.Confidence, string) {
	best := -1.0
	bestConf := knowledge.ConfidenceNoData
	bestPlayer := ""
	for _, player := range team {
		score, conf := e.proficiency.GetProficiencyScore(player.Name, champ)
		if score > best {
			best = score
			bestConf = conf
			bestPlayer = player.Name
		}
	}
	if best < 0 {
		return 0.5, knowledge.ConfidenceNoData, ""
	}
	return best, bestConf, bestPlayer
}

func (e *PickRecommendationEngine) averageLaneMatchup(champ string, role domain.Role, enemyPicks []string) float64 {
	var total float64
	var count int
	for _, enemy := range enemyPicks {
		// Use the cache's unfiltered distribution semantics: an enemy pick
		// only factors into matchup scoring for roles it could plausibly
		// play, read fresh here since the cache is keyed by champion name
		// and this helper only needs this one role's viability.
		dist := e.flex.GetRoleProbabilities(enemy, nil)
		if p, ok := dist[role]; !ok || p <= 0 {
			continue
		}
		total += e.matchup.GetLaneMatchup(champ, enemy, role).Score
		count++
	}
	if count == 0 {
		return 0.5
	}
	return total / float64(count)
}

func (e *PickRecommendationEngine) averageTeamMatchup(champ string, enemyPicks []string) float64 {
	if len(enemyPicks) == 0 {
		return 0.5
	}
	total := 0.0
	for _, enemy := range enemyPicks {
		total += e.matchup.GetTeamMatchup(champ, enemy).Score
	}
	return total / float64(len(enemyPicks))
}

func computeFlag(confidence, meta, proficiency float64) Flag {
	if confidence < 0.7 {
		return FlagLowConfidence
	}
	if meta < 0.4 && proficiency >= 0.7 {
		return FlagSurprisePick
	}
	return FlagNone
}

func generatePickReasons(meta, proficiency, matchup, synergy float64) []string {
	var reasons []string
	if meta >= 0.75 {
		reasons = append(reasons, "S-tier meta pick")
	}
	if proficiency >= 0.7 {
		reasons = append(reasons, "Strong team proficiency")
	}
	if matchup >= 0.55 {
		reasons = append(reasons, "Favorable lane matchups")
	}
	if synergy >= 0.65 {
		reasons = append(reasons, "Strong team synergy")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Solid overall pick")
	}
	return reasons
}

// RoleGrouped buckets recommendations by suggested role, keeping the top
// limitPerRole per role, for a UI "alternative view."
func RoleGrouped(recs []PickRecommendation, limitPerRole int) map[domain.Role][]PickRecommendation {
	grouped := map[domain.Role][]PickRecommendation{}
	for _, rec := range recs {
		bucket := grouped[rec.SuggestedRole]
		if len(bucket) >= limitPerRole {
			continue
		}
		grouped[rec.SuggestedRole] = append(bucket, rec)
	}
	return grouped
}
