// Package llm reranks the algorithmic pick/ban recommendations with a
// large language model, using the same candidates and scores the core
// engine already produced so a model outage degrades to the algorithm's
// own ranking rather than failing the request.
package llm

import "github.com/wutims/draftengine/internal/domain"

// PlayerRef is the minimal player identity the prompt builder needs —
// enough to talk about comfort picks and role assignments without
// depending on the repository layer.
type PlayerRef struct {
	Name string
	Role domain.Role
}

// DraftContext is everything about the draft's current position the
// prompt builder and strategic-context helpers need.
type DraftContext struct {
	Phase           domain.DraftPhase
	Patch           string
	OurTeam         string
	EnemyTeam       string
	OurPicks        []string
	EnemyPicks      []string
	Banned          []string
	FearlessBlocked []string
	DraftMode       string

	// OurArchetypeTags/EnemyArchetypeTags are each side's composition-tag
	// scores so far (e.g. "engage", "poke", "scaling"), computed by the
	// caller from the archetype service. Nil is fine before either side
	// has enough picks to read a direction.
	OurArchetypeTags   map[string]float64
	EnemyArchetypeTags map[string]float64
}

// Candidate is the common shape both a pick recommendation and a ban
// recommendation reduce to before reaching the reranker — it never
// needs to know which engine produced it.
type Candidate struct {
	Champion     string
	Role         domain.Role
	Score        float64
	Priority     float64
	TargetPlayer string
	Reasons      []string
	Components   map[string]float64
}

// RerankedRecommendation is one candidate after the model has placed it
// in its revised order.
type RerankedRecommendation struct {
	Champion         string   `json:"champion"`
	OriginalRank     int      `json:"original_rank"`
	NewRank          int      `json:"new_rank"`
	OriginalScore    float64  `json:"original_score"`
	Confidence       float64  `json:"confidence"`
	Reasoning        string   `json:"reasoning"`
	StrategicFactors []string `json:"strategic_factors"`
}

// AdditionalSuggestion is a champion the model surfaces outside the
// algorithm's own candidate list, with its own justification.
type AdditionalSuggestion struct {
	Champion   string  `json:"champion"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
	Role       string  `json:"role"`
	ForPlayer  string  `json:"for_player"`
}

// RerankerResult is what RerankPicks/RerankBans return, whether it came
// from a real model response or the algorithm-only fallback.
type RerankerResult struct {
	Reranked              []RerankedRecommendation `json:"reranked"`
	AdditionalSuggestions []AdditionalSuggestion    `json:"additional_suggestions"`
	DraftAnalysis         string                    `json:"draft_analysis"`
}

// ViableRoles reports which roles a champion can reasonably be played
// in, used to drop role-incompatible candidates before they ever reach
// the model. Callers wire this to the flex resolver's role table.
type ViableRoles func(champion string) []domain.Role

// SeriesSection carries series-level context (prior-game picks, bans,
// and winners) into the prompt when a series is in progress. A nil
// pointer means this is game one.
type SeriesSection struct {
	GameNumber    int
	PriorBans     []string
	PriorPicksOur []string
	PriorPicksEnemy []string
	OurWins       int
	EnemyWins     int
}
