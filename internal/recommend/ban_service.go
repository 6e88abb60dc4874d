package recommend

import (
	"sort"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/knowledge"
)

// Phase is the draft phase a ban is being generated within; only the two
// ban phases are meaningful to this service.
type Phase int

const (
	PhaseBan1 Phase = iota
	PhasePick1
	PhaseBan2
	PhasePick2
	PhaseComplete
)

// BanRecommendation is one scored ban candidate.
type BanRecommendation struct {
	Champion     string
	Priority     float64
	TargetPlayer string // empty when not player-targeted
	Reasons      []string
	Components   map[string]float64
}

// RosterLookup resolves an enemy team id to its current roster when the
// caller did not pass explicit enemy players. Implemented by the match
// data store repository; nil is a valid "no repository available" value.
type RosterLookup func(teamID string) ([]RosterPlayer, bool)

// BanRecommendationService produces tiered ban recommendations: a
// player-targeted seed, phase-1 global power bans, phase-2 contextual
// bans, and a meta-priority backfill, merged and truncated.
type BanRecommendationService struct {
	store       *knowledge.Store
	flex        *FlexResolver
	meta        *MetaScorer
	matchup     *MatchupCalculator
	proficiency *ProficiencyScorer
	tournament  *TournamentScorer
	archetype   *ArchetypeService
	synergy     *SynergyService
	rolephase   *RolePhaseScorer
	rosterOf    RosterLookup
}

func NewBanRecommendationService(store *knowledge.Store, flex *FlexResolver, tournament *TournamentScorer, rosterOf RosterLookup) *BanRecommendationService {
	return &BanRecommendationService{
		store:       store,
		flex:        flex,
		meta:        NewMetaScorer(store),
		matchup:     NewMatchupCalculator(store),
		proficiency: NewProficiencyScorer(store),
		tournament:  tournament,
		archetype:   NewArchetypeService(store),
		synergy:     NewSynergyService(store),
		rolephase:   NewRolePhaseScorer(),
		rosterOf:    rosterOf,
	}
}

// GetBanRecommendations runs the full player-targeted and phase-based ban pipeline.
func (b *BanRecommendationService) GetBanRecommendations(
	enemyTeamID string,
	ourPicks, enemyPicks, banned []string,
	phase Phase,
	enemyPlayers []RosterPlayer,
	limit int,
) []BanRecommendation {
	if len(enemyPlayers) == 0 && b.rosterOf != nil {
		if roster, ok := b.rosterOf(enemyTeamID); ok {
			enemyPlayers = roster
		}
	}

	unavailable := toSet(banned, ourPicks, enemyPicks)
	merged := map[string]*BanRecommendation{}

	merge := func(rec BanRecommendation) {
		if unavailable[rec.Champion] {
			return
		}
		if existing, ok := merged[rec.Champion]; ok {
			if rec.Priority > existing.Priority {
				existing.Priority = rec.Priority
			}
			existing.Reasons = mergeReasons(existing.Reasons, rec.Reasons)
			if existing.TargetPlayer == "" {
				existing.TargetPlayer = rec.TargetPlayer
			}
			return
		}
		r := rec
		merged[rec.Champion] = &r
	}

	filledEnemyRoles := b.inferFilledRolesFor(enemyPicks)
	unfilledEnemyRoles := unfilledRoles(filledEnemyRoles)
	enemyRoleOwner := map[domain.Role]string{}
	for _, p := range enemyPlayers {
		enemyRoleOwner[p.Role] = p.Name
	}

	// 2. Player-targeted seed.
	for _, player := range enemyPlayers {
		for _, rec := range b.playerTargetedCandidates(player, phase) {
			merge(rec)
		}
	}

	// 3. Global power bans, phase 1 only.
	if phase == PhaseBan1 {
		for _, champ := range b.tournament.GetTopPriorityChampions(20) {
			priority := b.tournament.GetPriority(champ)
			if priority < 0.30 {
				continue
			}
			flexValue := b.flexValue(champ)
			score := 0.75*priority + 0.25*flexValue
			merge(BanRecommendation{
				Champion: champ,
				Priority: clamp(score, 0, 1),
				Reasons:  []string{"Global power pick this tournament"},
				Components: map[string]float64{
					"tournament_priority": priority,
					"flex_value":          flexValue,
				},
			})
		}
	}

	// 4. Contextual phase-2 bans. Candidates are the tournament-priority
	// pool unioned with enemy players' own pools for roles they haven't
	// filled yet, since a pool-only comfort pick can outrank a generic
	// meta champion once it's tested against the enemy's actual comp.
	if phase == PhaseBan2 {
		enemyPool := b.enemyPoolChampions(unfilledEnemyRoles, enemyPlayers)
		candidates := map[string]bool{}
		for _, champ := range b.tournament.GetTopPriorityChampions(30) {
			candidates[champ] = true
		}
		for champ := range enemyPool {
			candidates[champ] = true
		}
		for champ := range candidates {
			if unavailable[champ] {
				continue
			}
			if rec, ok := b.contextualBan(champ, ourPicks, enemyPicks, unfilledEnemyRoles, enemyRoleOwner, enemyPool[champ]); ok {
				merge(rec)
			}
		}
		// Supplemented legacy counter-pick source (see DESIGN.md): bans
		// that directly counter an enemy's already-locked picks.
		for _, champ := range b.tournament.GetTopPriorityChampions(30) {
			if unavailable[champ] {
				continue
			}
			if rec, ok := b.counterPickBan(champ, enemyPicks); ok {
				merge(rec)
			}
		}
	}

	// 5. Meta priority injection.
	for _, champ := range b.tournament.GetTopPriorityChampions(15) {
		if _, already := merged[champ]; already {
			continue
		}
		priority := b.tournament.GetPriority(champ)
		score := 0.8 * priority
		if score < 0.25 {
			continue
		}
		merge(BanRecommendation{
			Champion: champ,
			Priority: clamp(score, 0, 1),
			Reasons:  []string{"Contested tournament priority pick"},
			Components: map[string]float64{
				"tournament_priority": priority,
			},
		})
	}

	out := make([]BanRecommendation, 0, len(merged))
	for _, rec := range merged {
		out = append(out, *rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Champion < out[j].Champion
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func mergeReasons(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range append(append([]string{}, a...), b...) {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// playerTargetedCandidates builds one ban candidate per entry in an enemy
// player's top-5 champion pool (min 2 games).
func (b *BanRecommendationService) playerTargetedCandidates(player RosterPlayer, phase Phase) []BanRecommendation {
	pool := b.proficiency.GetPlayerChampionPool(player.Name)
	var eligible []PoolEntry
	for _, entry := range pool {
		if entry.GamesRaw >= 2 {
			eligible = append(eligible, entry)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool { return eligible[i].WinRate > eligible[j].WinRate })
	if len(eligible) > 5 {
		eligible = eligible[:5]
	}

	recs := make([]BanRecommendation, 0, len(eligible))
	for _, entry := range eligible {
		proficiencyScore, _ := b.proficiency.GetProficiencyScore(player.Name, entry.Champion)
		priority, reasons, components := b.calculateBanPriority(entry.Champion, player.Name, player.Role, proficiencyScore, entry.Confidence, entry.GamesRaw >= 2, phase)
		recs = append(recs, BanRecommendation{
			Champion:     entry.Champion,
			Priority:     priority,
			TargetPlayer: player.Name,
			Reasons:      reasons,
			Components:   components,
		})
	}
	return recs
}

// calculateBanPriority implements both phase-1 and phase-2 priority
// formulas.
func (b *BanRecommendationService) calculateBanPriority(champion, playerName string, targetRole domain.Role, proficiencyScore float64, conf knowledge.Confidence, inPool bool, phase Phase) (float64, []string, map[string]float64) {
	tournamentPriority := b.tournament.GetPriority(champion)
	flexValue := b.flexValue(champion)

	if phase == PhaseBan1 {
		base := 0.60*tournamentPriority + 0.25*flexValue + 0.15*proficiencyScore

		isHighTournament := tournamentPriority >= 0.50
		isHighProficiency := proficiencyScore >= 0.70 && (conf == knowledge.ConfidenceHigh || conf == knowledge.ConfidenceMedium)

		var bonus float64
		var tier string
		switch {
		case isHighTournament && isHighProficiency && inPool:
			bonus, tier = 0.10, "T1_SIGNATURE_POWER"
		case isHighTournament:
			bonus, tier = 0.05, "T2_META_POWER"
		case isHighProficiency && inPool:
			bonus, tier = 0.03, "T3_COMFORT_PICK"
		default:
			bonus, tier = 0.0, "T4_GENERAL"
		}

		multiplier := b.rolephase.BanMultiplier(targetRole, 0)
		priority := clamp((base+bonus)*multiplier, 0, 1)
		return priority, []string{tierReason(tier)}, map[string]float64{
			"tournament_priority": tournamentPriority,
			"flex_value":          flexValue,
			"proficiency":         proficiencyScore,
			"tier_bonus":          bonus,
		}
	}

	// Phase 2: no tier bonus at this layer; tiers come from contextual analysis.
	comfort := 0.0
	if entry, ok := b.store.PlayerChampion(playerName, champion); ok {
		comfort = clamp(float64(entry.GamesRaw)/10, 0, 1)
	}
	confValue := confidenceValue(conf)
	base := 0.50*tournamentPriority + 0.25*proficiencyScore + 0.15*comfort + 0.10*confValue
	multiplier := b.rolephase.BanMultiplier(targetRole, 6)
	priority := clamp(base*multiplier, 0, 1)
	return priority, []string{"Comfort/meta target"}, map[string]float64{
		"tournament_priority": tournamentPriority,
		"proficiency":         proficiencyScore,
		"comfort":             comfort,
		"confidence":          confValue,
	}
}

func tierReason(tier string) string {
	switch tier {
	case "T1_SIGNATURE_POWER":
		return "Signature power pick for this player"
	case "T2_META_POWER":
		return "High tournament priority"
	case "T3_COMFORT_PICK":
		return "Strong individual comfort pick"
	default:
		return "General ban candidate"
	}
}

// flexValue maps the count of viable roles (above the noise threshold) to
// a flexibility score: 0.8 for 3+, 0.5 for 2, 0.2 for 1, 0.2 default.
func (b *BanRecommendationService) flexValue(champion string) float64 {
	viable := len(b.flex.GetRoleProbabilities(champion, nil))
	switch {
	case viable >= 3:
		return 0.8
	case viable == 2:
		return 0.5
	case viable == 1:
		return 0.2
	default:
		return 0.2
	}
}

func (b *BanRecommendationService) inferFilledRolesFor(picks []string) map[domain.Role]bool {
	filled := map[domain.Role]bool{}
	for _, champ := range picks {
		dist := b.flex.GetRoleProbabilities(champ, nil)
		if role := argmaxRole(dist); role != "" {
			filled[role] = true
		}
	}
	return filled
}

// roleDenialScore: 0.8 if the champion can fill an unfilled enemy role and
// appears in that role's enemy player's pool; 0.4 if it can fill the role
// but is not in that pool; else 0.
func (b *BanRecommendationService) roleDenialScore(champion string, unfilledEnemyRoles []domain.Role, enemyRoleOwner map[domain.Role]string) float64 {
	dist := b.flex.GetRoleProbabilities(champion, nil)
	best := 0.0
	for _, role := range unfilledEnemyRoles {
		if _, ok := dist[role]; !ok {
			continue
		}
		score := 0.4
		if owner, ok := enemyRoleOwner[role]; ok {
			if _, inPool := b.store.PlayerChampion(owner, champion); inPool {
				score = 0.8
			}
		}
		if score > best {
			best = score
		}
	}
	return best
}

func (b *BanRecommendationService) archetypeCounterScore(champion string, enemyPicks []string) float64 {
	current := b.archetype.CalculateTeamArchetype(enemyPicks)
	if current.Primary == "" {
		return 0
	}
	contribution := b.archetype.GetContributionToArchetype(champion, current.Primary)
	withChamp := b.archetype.CalculateTeamArchetype(append(append([]string{}, enemyPicks...), champion))
	delta := withChamp.Alignment - current.Alignment
	return clamp(0.6*contribution+0.4*delta, 0, 1)
}

func (b *BanRecommendationService) synergyDenialScore(champion string, enemyPicks []string) float64 {
	without := b.synergy.CalculateTeamSynergy(enemyPicks).TotalScore
	with := b.synergy.CalculateTeamSynergy(append(append([]string{}, enemyPicks...), champion)).TotalScore
	return clamp(3*(with-without), 0, 1)
}

// countersOurPicks reports whether champion hard-counters any of our
// current picks (matchup score below 0.45) and, if so, how strongly —
// 1.0 minus the worst such matchup score, taken over every pick it
// counters.
func (b *BanRecommendationService) countersOurPicks(champion string, ourPicks []string) (bool, float64) {
	counters := false
	strength := 0.0
	for _, ours := range ourPicks {
		if score := b.matchup.GetTeamMatchup(ours, champion).Score; score < 0.45 {
			counters = true
			if s := 1 - score; s > strength {
				strength = s
			}
		}
	}
	return counters, strength
}

// enemyPoolChampions collects, for each enemy player assigned to a role
// the enemy hasn't filled yet, the player's top-8 proficiency-ranked
// champions (min 2 games) — the pool a phase-2 contextual ban candidate
// is checked against for the T1/T2 "in enemy pool" bonus tiers.
func (b *BanRecommendationService) enemyPoolChampions(unfilledEnemyRoles []domain.Role, enemyPlayers []RosterPlayer) map[string]bool {
	unfilled := map[domain.Role]bool{}
	for _, r := range unfilledEnemyRoles {
		unfilled[r] = true
	}

	out := map[string]bool{}
	for _, player := range enemyPlayers {
		if !unfilled[player.Role] {
			continue
		}
		var eligible []PoolEntry
		for _, entry := range b.proficiency.GetPlayerChampionPool(player.Name) {
			if entry.GamesRaw >= 2 {
				eligible = append(eligible, entry)
			}
		}
		scores := map[string]float64{}
		for _, entry := range eligible {
			score, _ := b.proficiency.GetProficiencyScore(player.Name, entry.Champion)
			scores[entry.Champion] = score
		}
		sort.SliceStable(eligible, func(i, j int) bool { return scores[eligible[i].Champion] > scores[eligible[j].Champion] })
		if len(eligible) > 8 {
			eligible = eligible[:8]
		}
		for _, entry := range eligible {
			out[entry.Champion] = true
		}
	}
	return out
}

// contextualBan scores a phase-2 candidate against four tiers, matching
// the ground-truth priority system: counters our picks AND sits in the
// enemy's pool (T1, +0.20); completes the enemy's archetype AND sits in
// their pool (T2, +0.15); counters our picks alone (T3, +0.10); or a
// weaker general archetype/synergy/role signal (T4, +0.0). A candidate
// clearing none of these is skipped rather than banned at a token score.
func (b *BanRecommendationService) contextualBan(champion string, ourPicks, enemyPicks []string, unfilledEnemyRoles []domain.Role, enemyRoleOwner map[domain.Role]string, isInEnemyPool bool) (BanRecommendation, bool) {
	archetypeCounter := b.archetypeCounterScore(champion, enemyPicks)
	synergyDenial := b.synergyDenialScore(champion, enemyPicks)
	roleDenial := b.roleDenialScore(champion, unfilledEnemyRoles, enemyRoleOwner)
	tournamentPriority := b.tournament.GetPriority(champion)
	countersUs, counterStrength := b.countersOurPicks(champion, ourPicks)

	var tierBonus float64
	var reasons []string
	switch {
	case countersUs && isInEnemyPool:
		tierBonus = 0.20
		reasons = append(reasons, "Counters our picks and sits in enemy's pool")
	case archetypeCounter > 0.3 && isInEnemyPool:
		tierBonus = 0.15
		reasons = append(reasons, "Completes enemy's comp and sits in their pool")
	case countersUs:
		tierBonus = 0.10
		reasons = append(reasons, "Counters our picks")
	case archetypeCounter > 0.2 || synergyDenial > 0.2 || roleDenial > 0.2:
		tierBonus = 0.0
	default:
		return BanRecommendation{}, false
	}

	components := map[string]float64{"tournament_priority": tournamentPriority * 0.25}
	score := tournamentPriority * 0.25
	if countersUs {
		components["counter_our_picks"] = counterStrength * 0.25
		score += counterStrength * 0.25
	}
	if archetypeCounter > 0.1 {
		components["archetype_counter"] = archetypeCounter * 0.20
		score += archetypeCounter * 0.20
		reasons = append(reasons, "Fits enemy's archetype")
	}
	if synergyDenial > 0.1 {
		components["synergy_denial"] = synergyDenial * 0.15
		score += synergyDenial * 0.15
		reasons = append(reasons, "Synergizes with enemy")
	}
	if roleDenial > 0.1 {
		components["role_denial"] = roleDenial * 0.10
		score += roleDenial * 0.10
		reasons = append(reasons, "Fills enemy's role")
	}
	components["tier_bonus"] = tierBonus
	score += tierBonus

	if len(reasons) == 0 {
		reasons = []string{"Contextual ban"}
	} else if len(reasons) > 3 {
		reasons = reasons[:3]
	}

	return BanRecommendation{
		Champion:   champion,
		Priority:   clamp(score, 0, 1),
		Reasons:    reasons,
		Components: components,
	}, true
}

// counterPickBan is the supplemented legacy counter-pick source: a
// champion that favorably matches up into an enemy's already-locked pick.
func (b *BanRecommendationService) counterPickBan(champion string, enemyPicks []string) (BanRecommendation, bool) {
	if len(enemyPicks) == 0 {
		return BanRecommendation{}, false
	}
	best := 0.0
	for _, enemy := range enemyPicks {
		if s := b.matchup.GetTeamMatchup(champion, enemy).Score; s > best {
			best = s
		}
	}
	if best < 0.58 {
		return BanRecommendation{}, false
	}
	return BanRecommendation{
		Champion: champion,
		Priority: clamp(0.3*best, 0, 1),
		Reasons:  []string{"Directly counters an enemy pick"},
		Components: map[string]float64{
			"counter_matchup": best,
		},
	}, true
}
