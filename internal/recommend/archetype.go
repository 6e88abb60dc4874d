package recommend

import (
	"fmt"
	"sort"

	"github.com/wutims/draftengine/internal/knowledge"
)

// Archetypes is the fixed composition-style tag set.
var Archetypes = []string{"engage", "split", "teamfight", "protect", "pick"}

// ArchetypeScores is one champion's or one team's tag -> [0,1] map.
type ArchetypeScores map[string]float64

// ArchetypeProfile is the primary/secondary summary of an archetype map.
type ArchetypeProfile struct {
	Primary   string
	Secondary string
	Scores    ArchetypeScores
	Alignment float64 // magnitude of the primary coordinate
}

// ArchetypeService scores individual champions and full team compositions
// against the engage/split/teamfight/protect/pick tag set.
type ArchetypeService struct {
	store *knowledge.Store
}

func NewArchetypeService(store *knowledge.Store) *ArchetypeService {
	return &ArchetypeService{store: store}
}

// GetChampionArchetypes returns a champion's primary/secondary tags.
func (a *ArchetypeService) GetChampionArchetypes(champion string) ArchetypeProfile {
	hist, _ := a.store.RoleHistory(champion)
	return profileFromScores(hist.ArchetypeScores)
}

func profileFromScores(scores map[string]float64) ArchetypeProfile {
	if scores == nil {
		scores = map[string]float64{}
	}
	ranked := rankedTags(scores)
	profile := ArchetypeProfile{Scores: scores}
	if len(ranked) > 0 {
		profile.Primary = ranked[0]
		profile.Alignment = scores[ranked[0]]
	}
	if len(ranked) > 1 {
		profile.Secondary = ranked[1]
	}
	return profile
}

func rankedTags(scores map[string]float64) []string {
	tags := make([]string, 0, len(Archetypes))
	for _, tag := range Archetypes {
		if v, ok := scores[tag]; ok && v > 0 {
			tags = append(tags, tag)
		}
	}
	sort.SliceStable(tags, func(i, j int) bool { return scores[tags[i]] > scores[tags[j]] })
	return tags
}

// CalculateTeamArchetype sums each tag across all picks and normalizes to
// sum 1. Returns primary="" if every pick is unknown to the knowledge store.
func (a *ArchetypeService) CalculateTeamArchetype(picks []string) ArchetypeProfile {
	totals := map[string]float64{}
	any := false
	for _, champ := range picks {
		hist, ok := a.store.RoleHistory(champ)
		if !ok || len(hist.ArchetypeScores) == 0 {
			continue
		}
		any = true
		for tag, v := range hist.ArchetypeScores {
			totals[tag] += v
		}
	}
	if !any {
		return ArchetypeProfile{}
	}
	sum := 0.0
	for _, v := range totals {
		sum += v
	}
	if sum > 0 {
		for tag := range totals {
			totals[tag] /= sum
		}
	}
	return profileFromScores(totals)
}

// GetArchetypeEffectiveness reads the rock-paper-scissors matrix; missing
// entries default to neutral 1.0.
func (a *ArchetypeService) GetArchetypeEffectiveness(ours, theirs string) float64 {
	return a.store.ArchetypeEffectiveness(ours, theirs)
}

// GetVersatilityScore rewards champions with multiple non-zero tags.
func (a *ArchetypeService) GetVersatilityScore(champion string) float64 {
	hist, ok := a.store.RoleHistory(champion)
	if !ok {
		return 0
	}
	count := 0
	sum := 0.0
	for _, tag := range Archetypes {
		if v := hist.ArchetypeScores[tag]; v > 0 {
			count++
			sum += v
		}
	}
	if count == 0 {
		return 0
	}
	return clamp(sum/float64(count)*(float64(count)/float64(len(Archetypes))+0.5), 0, 1)
}

// GetContributionToArchetype is the champion's tag score normalized by the
// sum of all of the champion's tag scores — a projection onto that one tag.
func (a *ArchetypeService) GetContributionToArchetype(champion, tag string) float64 {
	hist, ok := a.store.RoleHistory(champion)
	if !ok {
		return 0
	}
	total := 0.0
	for _, v := range hist.ArchetypeScores {
		total += v
	}
	if total <= 0 {
		return 0
	}
	return hist.ArchetypeScores[tag] / total
}

// GetRawStrength is the champion's single highest tag score.
func (a *ArchetypeService) GetRawStrength(champion string) float64 {
	hist, ok := a.store.RoleHistory(champion)
	if !ok {
		return 0
	}
	max := 0.0
	for _, v := range hist.ArchetypeScores {
		if v > max {
			max = v
		}
	}
	return max
}

// CompAdvantage is the result of comparing two team archetype profiles.
type CompAdvantage struct {
	Advantage     float64
	OurArchetype  string
	EnemyArchetype string
	Description   string
}

// CalculateCompAdvantage compares our composition's archetype against
// theirs through the effectiveness matrix.
func (a *ArchetypeService) CalculateCompAdvantage(ours, theirs []string) CompAdvantage {
	ourProfile := a.CalculateTeamArchetype(ours)
	theirProfile := a.CalculateTeamArchetype(theirs)
	if ourProfile.Primary == "" || theirProfile.Primary == "" {
		return CompAdvantage{Advantage: 1.0, OurArchetype: ourProfile.Primary, EnemyArchetype: theirProfile.Primary, Description: "Unclear composition identity"}
	}
	effectiveness := a.GetArchetypeEffectiveness(ourProfile.Primary, theirProfile.Primary)
	return CompAdvantage{
		Advantage:      effectiveness,
		OurArchetype:   ourProfile.Primary,
		EnemyArchetype: theirProfile.Primary,
		Description:    describeAdvantage(ourProfile.Primary, theirProfile.Primary, effectiveness),
	}
}

func describeAdvantage(ours, theirs string, effectiveness float64) string {
	switch {
	case effectiveness > 1.1:
		return fmt.Sprintf("%s composition favors us against their %s", ours, theirs)
	case effectiveness < 0.9:
		return fmt.Sprintf("%s composition is countered by their %s", ours, theirs)
	default:
		return fmt.Sprintf("%s vs %s is roughly even", ours, theirs)
	}
}
