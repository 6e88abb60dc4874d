package recommend

import (
	"sort"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/knowledge"
)

// dataKeyMap translates a canonical role to the token flex_champions.json
// stores it under.
var dataKeyMap = map[domain.Role]string{
	domain.RoleTop:     "TOP",
	domain.RoleJungle:  "JUNGLE",
	domain.RoleMid:     "MID",
	domain.RoleBot:     "ADC",
	domain.RoleSupport: "SUP",
}

// dataToCanonical is the reverse, tolerant of every spelling the knowledge
// files use for a role token.
var dataToCanonical = map[string]domain.Role{
	"JUNGLE": domain.RoleJungle, "jungle": domain.RoleJungle, "JNG": domain.RoleJungle,
	"TOP": domain.RoleTop, "top": domain.RoleTop,
	"MID": domain.RoleMid, "mid": domain.RoleMid, "MIDDLE": domain.RoleMid,
	"ADC": domain.RoleBot, "adc": domain.RoleBot, "BOT": domain.RoleBot, "bot": domain.RoleBot, "BOTTOM": domain.RoleBot,
	"SUP": domain.RoleSupport, "sup": domain.RoleSupport, "SUPPORT": domain.RoleSupport, "support": domain.RoleSupport,
}

// defaultRoleOrder is the ultimate, deterministic fallback assignment order
// for a champion with no flex data and no role history at all.
var defaultRoleOrder = []domain.Role{domain.RoleMid, domain.RoleBot, domain.RoleTop, domain.RoleJungle, domain.RoleSupport}

// FlexResolver answers: given a champion and a set of already-filled roles,
// what is its probability distribution over the remaining roles?
type FlexResolver struct {
	store        *knowledge.Store
	tournamentID string // empty in non-replay contexts
}

func NewFlexResolver(store *knowledge.Store) *FlexResolver {
	return &FlexResolver{store: store}
}

// WithTournament returns a resolver that rescues unknown champions from
// the per-tournament replay meta file instead of the default one.
func (f *FlexResolver) WithTournament(tournamentID string) *FlexResolver {
	return &FlexResolver{store: f.store, tournamentID: tournamentID}
}

// GetRoleProbabilities returns champion's role distribution, excluding
// filledRoles, filtered below MinRoleProbability, renormalized to sum 1.
// An empty map means the champion cannot play any remaining role.
func (f *FlexResolver) GetRoleProbabilities(champion string, filledRoles map[domain.Role]bool) map[domain.Role]float64 {
	if filledRoles == nil {
		filledRoles = map[domain.Role]bool{}
	}

	raw := f.rawDistribution(champion)
	if raw == nil {
		// Ultimate fallback: no flex record, role history, or tournament
		// meta at all. Deterministically assign the first still-open role
		// in defaultRoleOrder so the lookup always resolves to something
		// usable instead of an empty map.
		for _, role := range defaultRoleOrder {
			if !filledRoles[role] {
				return map[domain.Role]float64{role: 1.0}
			}
		}
		return map[domain.Role]float64{}
	}

	filtered := map[domain.Role]float64{}
	for role, p := range raw {
		if filledRoles[role] {
			continue
		}
		if p < MinRoleProbability {
			continue
		}
		filtered[role] = p
	}
	total := 0.0
	for _, p := range filtered {
		total += p
	}
	if total <= 0 {
		return map[domain.Role]float64{}
	}
	out := make(map[domain.Role]float64, len(filtered))
	for role, p := range filtered {
		out[role] = p / total
	}
	return out
}

// rawDistribution resolves the unfiltered distribution through the five
// fallback tiers, before thresholding and renormalizing.
func (f *FlexResolver) rawDistribution(champion string) map[domain.Role]float64 {
	if entry, ok := f.store.FlexChampion(champion); ok {
		probs := map[domain.Role]float64{}
		for role, key := range dataKeyMap {
			if v, ok := entry.Probabilities[key]; ok {
				probs[role] = v
			}
		}
		return probs
	}

	if hist, ok := f.store.RoleHistory(champion); ok {
		if len(hist.CurrentViableRoles) > 0 && len(hist.CurrentDistribution) > 0 {
			probs := map[domain.Role]float64{}
			for key, v := range hist.CurrentDistribution {
				if role, ok := dataToCanonical[key]; ok {
					probs[role] = v
				} else if domain.Role(key).IsValid() {
					probs[domain.Role(key)] = v
				}
			}
			return probs
		}
		canonical := hist.CanonicalRole
		if canonical == "" {
			canonical = hist.ProPlayPrimaryRole
		}
		if role, ok := dataToCanonical[canonical]; ok {
			return map[domain.Role]float64{role: 1.0}
		}
		if normalized, ok := domain.NormalizeRole(canonical); ok {
			return map[domain.Role]float64{normalized: 1.0}
		}
	}

	if f.tournamentID != "" {
		if meta, ok := f.store.ReplayTournamentMeta(f.tournamentID, champion); ok {
			if dist := distributionFromPerformance(meta); dist != nil {
				return dist
			}
		}
	} else if meta, ok := f.store.TournamentMeta(champion); ok {
		if dist := distributionFromPerformance(meta); dist != nil {
			return dist
		}
	}

	return nil
}

// distributionFromPerformance builds a pick-count-weighted role
// distribution from a tournament meta entry's per-role performance table —
// the "rescue" tier for champions with no role-history or flex record.
func distributionFromPerformance(meta knowledge.TournamentMetaEntry) map[domain.Role]float64 {
	if len(meta.Performance) == 0 {
		return nil
	}
	total := 0
	counts := map[domain.Role]int{}
	for key, perf := range meta.Performance {
		role, ok := dataToCanonical[key]
		if !ok {
			if normalized, ok2 := domain.NormalizeRole(key); ok2 {
				role, ok = normalized, true
			}
		}
		if !ok {
			continue
		}
		counts[role] += perf.Picks
		total += perf.Picks
	}
	if total == 0 {
		return nil
	}
	probs := make(map[domain.Role]float64, len(counts))
	for role, c := range counts {
		probs[role] = float64(c) / float64(total)
	}
	return probs
}

// IsFlexPick reports whether at least two roles survive the threshold.
func (f *FlexResolver) IsFlexPick(champion string) bool {
	probs := f.GetRoleProbabilities(champion, nil)
	return len(probs) >= 2
}

// FinalizeRoleAssignments solves the five-champion/five-role assignment.
// For each canonical role, the champion whose distribution puts the
// highest probability there wins it, ties broken by lower flexibility
// (fewer viable roles, so flex picks settle into whatever role is left).
func (f *FlexResolver) FinalizeRoleAssignments(picks []string) []RoleAssignment {
	type candidate struct {
		champion    string
		probs       map[domain.Role]float64
		flexibility int
	}
	candidates := make([]candidate, len(picks))
	for i, champ := range picks {
		probs := f.GetRoleProbabilities(champ, nil)
		candidates[i] = candidate{champion: champ, probs: probs, flexibility: len(probs)}
	}

	assigned := map[string]bool{}
	result := make([]RoleAssignment, 0, 5)
	for _, role := range domain.AllRoles {
		bestIdx := -1
		bestProb := -1.0
		for i, c := range candidates {
			if assigned[c.champion] {
				continue
			}
			p, ok := c.probs[role]
			if !ok {
				continue
			}
			if p > bestProb || (p == bestProb && bestIdx >= 0 && c.flexibility < candidates[bestIdx].flexibility) {
				bestProb = p
				bestIdx = i
			}
		}
		if bestIdx >= 0 {
			assigned[candidates[bestIdx].champion] = true
			result = append(result, RoleAssignment{Role: role, Champion: candidates[bestIdx].champion})
		}
	}

	// Any champion that never won a role (degenerate distributions) takes
	// whichever canonical role remains, in flexibility order, so the
	// result is always a bijection over five valid champions.
	var leftoverRoles []domain.Role
	takenRoles := map[domain.Role]bool{}
	for _, r := range result {
		takenRoles[r.Role] = true
	}
	for _, role := range domain.AllRoles {
		if !takenRoles[role] {
			leftoverRoles = append(leftoverRoles, role)
		}
	}
	var leftoverChamps []candidate
	for _, c := range candidates {
		if !assigned[c.champion] {
			leftoverChamps = append(leftoverChamps, c)
		}
	}
	sort.Slice(leftoverChamps, func(i, j int) bool {
		return leftoverChamps[i].flexibility < leftoverChamps[j].flexibility
	})
	for i, role := range leftoverRoles {
		if i < len(leftoverChamps) {
			result = append(result, RoleAssignment{Role: role, Champion: leftoverChamps[i].champion})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return domain.RoleSortIndex(result[i].Role) < domain.RoleSortIndex(result[j].Role)
	})
	return result
}

// RoleAssignment is one output row of FinalizeRoleAssignments.
type RoleAssignment struct {
	Role     domain.Role
	Champion string
}
