package draftsvc

import (
	"github.com/wutims/draftengine/internal/knowledge"
	"github.com/wutims/draftengine/internal/recommend"
)

// QualityReport scores one completed (or in-progress) team composition
// along the same dimensions the recommendation engines optimize for,
// so a finished draft can be graded rather than only guided.
type QualityReport struct {
	MetaScore      float64
	SynergyScore   float64
	ArchetypeScore float64
	OverallScore   float64
	Archetype      recommend.ArchetypeProfile
	Strengths      []string
	Weaknesses     []string
}

// QualityAnalyzer scores a finished draft side's composition quality.
type QualityAnalyzer struct {
	store     *knowledge.Store
	meta      *recommend.MetaScorer
	synergy   *recommend.SynergyService
	archetype *recommend.ArchetypeService
}

func NewQualityAnalyzer(store *knowledge.Store) *QualityAnalyzer {
	return &QualityAnalyzer{
		store:     store,
		meta:      recommend.NewMetaScorer(store),
		synergy:   recommend.NewSynergyService(store),
		archetype: recommend.NewArchetypeService(store),
	}
}

// AnalyzeQuality grades a five-champion composition. picks need not be
// role-assigned; only the champion names matter to this analysis.
func (q *QualityAnalyzer) AnalyzeQuality(picks []string) QualityReport {
	if len(picks) == 0 {
		return QualityReport{}
	}

	metaTotal := 0.0
	for _, champ := range picks {
		metaTotal += q.meta.GetMetaScore(champ, recommend.MetaMethodDefault)
	}
	metaScore := metaTotal / float64(len(picks))

	synergyResult := q.synergy.CalculateTeamSynergy(picks)
	archetypeProfile := q.archetype.CalculateTeamArchetype(picks)
	archetypeScore := archetypeBalance(archetypeProfile.Scores)

	overall := 0.4*metaScore + 0.35*synergyResult.TotalScore + 0.25*archetypeScore

	report := QualityReport{
		MetaScore:      metaScore,
		SynergyScore:   synergyResult.TotalScore,
		ArchetypeScore: archetypeScore,
		OverallScore:   overall,
		Archetype:      archetypeProfile,
	}
	report.Strengths, report.Weaknesses = describeComposition(metaScore, synergyResult.TotalScore, archetypeScore)
	return report
}

// archetypeBalance rewards a comp that leans into one or two clear
// game plans over one that is spread evenly across all five tags —
// an even spread usually means no team has a coherent win condition.
func archetypeBalance(scores map[string]float64) float64 {
	if len(scores) == 0 {
		return 0.5
	}
	max := 0.0
	for _, v := range scores {
		if v > max {
			max = v
		}
	}
	return clamp(0.3+max*0.7, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func describeComposition(meta, synergy, archetype float64) (strengths, weaknesses []string) {
	if meta >= 0.65 {
		strengths = append(strengths, "Strong individual pick power")
	} else if meta < 0.45 {
		weaknesses = append(weaknesses, "Low average meta strength")
	}
	if synergy >= 0.6 {
		strengths = append(strengths, "Cohesive team synergy")
	} else if synergy < 0.45 {
		weaknesses = append(weaknesses, "Weak pairwise synergy")
	}
	if archetype >= 0.6 {
		strengths = append(strengths, "Clear team identity")
	} else if archetype < 0.4 {
		weaknesses = append(weaknesses, "Unfocused game plan")
	}
	return strengths, weaknesses
}
