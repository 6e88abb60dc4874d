package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wutims/draftengine/internal/domain"
)

// archetypeCounters maps a team's dominant composition tag to the
// tags that typically answer it, used to phrase phase-two prompts
// around what the enemy is trying to do rather than just what they
// picked.
var archetypeCounters = map[string][]string{
	"engage":       {"disengage", "pick"},
	"poke":         {"engage", "dive"},
	"pick":         {"vision", "grouping"},
	"split_push":   {"wave_clear", "teleport_race"},
	"scaling":      {"early_aggression", "objective_rush"},
	"protect":      {"peel_breaking", "burst"},
	"dive":       {"peel", "disengage"},
	"teamfight":  {"pick", "split_push"},
}

func dominantArchetype(tags map[string]float64) (string, bool) {
	best, bestScore := "", 0.0
	for tag, score := range tags {
		if score > bestScore {
			best, bestScore = tag, score
		}
	}
	return best, bestScore >= 0.35
}

func counterArchetypes(tag string) []string {
	return archetypeCounters[tag]
}

func isPhase1(phase domain.DraftPhase) bool {
	return phase == domain.DraftPhaseBan1 || phase == domain.DraftPhasePick1
}

// pickContextType classifies where in the draft a pick is happening,
// since the priority ordering the model should apply shifts once both
// sides have shown enough of their hand to read a strategy.
func pickContextType(ctx DraftContext) string {
	switch {
	case len(ctx.OurPicks) == 0 && len(ctx.EnemyPicks) == 0:
		return "first_pick"
	case len(ctx.OurPicks) >= 3 || len(ctx.EnemyPicks) >= 3:
		return "late_draft"
	default:
		return "responding"
	}
}

func buildPrompt(action string, ctx DraftContext, candidates []Candidate, ourPlayers, enemyPlayers []PlayerRef, series *SeriesSection) string {
	phase1 := isPhase1(ctx.Phase)
	switch {
	case phase1 && action == "pick":
		return buildPhase1PickPrompt(ctx, candidates, ourPlayers)
	case phase1 && action == "ban":
		return buildPhase1BanPrompt(ctx, candidates, enemyPlayers)
	case !phase1 && action == "pick":
		return buildPhase2PickPrompt(ctx, candidates, ourPlayers, series)
	default:
		return buildPhase2BanPrompt(ctx, candidates, enemyPlayers, series)
	}
}

func writeHeader(b *strings.Builder, ctx DraftContext, title string) {
	fmt.Fprintf(b, "%s\n\n", title)
	fmt.Fprintf(b, "Patch: %s\n", ctx.Patch)
	fmt.Fprintf(b, "Our team: %s | Enemy team: %s\n", ctx.OurTeam, ctx.EnemyTeam)
	if len(ctx.OurPicks) > 0 {
		fmt.Fprintf(b, "Our picks so far: %s\n", strings.Join(ctx.OurPicks, ", "))
	}
	if len(ctx.EnemyPicks) > 0 {
		fmt.Fprintf(b, "Enemy picks so far: %s\n", strings.Join(ctx.EnemyPicks, ", "))
	}
	if len(ctx.Banned) > 0 {
		fmt.Fprintf(b, "Banned: %s\n", strings.Join(ctx.Banned, ", "))
	}
	if ctx.DraftMode == "fearless" && len(ctx.FearlessBlocked) > 0 {
		fmt.Fprintf(b, "Fearless-blocked (used earlier in the series): %s\n", strings.Join(ctx.FearlessBlocked, ", "))
	}
	b.WriteString("\n")
}

func writeCandidates(b *strings.Builder, candidates []Candidate) {
	b.WriteString("Candidates (algorithm rank, score, why):\n")
	for i, c := range candidates {
		reasons := strings.Join(c.Reasons, "; ")
		if c.TargetPlayer != "" {
			fmt.Fprintf(b, "%d. %s (role %s, score %.3f, target %s) — %s\n", i+1, c.Champion, c.Role, c.Score, c.TargetPlayer, reasons)
		} else {
			fmt.Fprintf(b, "%d. %s (role %s, score %.3f) — %s\n", i+1, c.Champion, c.Role, c.Score, reasons)
		}
	}
	b.WriteString("\n")
}

func writeResponseContract(b *strings.Builder) {
	b.WriteString("\nRespond with a single JSON object only, no prose outside it:\n")
	b.WriteString(`{"reranked":[{"champion":"","new_rank":1,"confidence":0.0,"reasoning":"","strategic_factors":[]}],"additional_suggestions":[],"draft_analysis":""}`)
	b.WriteString("\n")
}

// buildPhase1PickPrompt orders priorities for an early pick where
// almost nothing is known about either team's plan yet: raw power and
// safety dominate over reads on the opponent.
func buildPhase1PickPrompt(ctx DraftContext, candidates []Candidate, ourPlayers []PlayerRef) string {
	var b strings.Builder
	writeHeader(&b, ctx, "Early-phase pick recommendation")
	b.WriteString("Priority order: meta power, blind-pick safety, flex value, player comfort, counter potential.\n\n")
	if len(ourPlayers) > 0 {
		writePlayerComfort(&b, ourPlayers)
	}
	writeCandidates(&b, candidates)
	writeResponseContract(&b)
	return b.String()
}

// buildPhase1BanPrompt orders priorities for an early ban: deny what
// is strong and flexible before targeting any specific player, since
// roles and matchups aren't locked in yet.
func buildPhase1BanPrompt(ctx DraftContext, candidates []Candidate, enemyPlayers []PlayerRef) string {
	var b strings.Builder
	writeHeader(&b, ctx, "Early-phase ban recommendation")
	b.WriteString("Priority order: meta power bans, flex threat bans, enemy player targeting, deny strong blind picks.\n\n")
	if len(enemyPlayers) > 0 {
		writePlayerComfort(&b, enemyPlayers)
	}
	writeCandidates(&b, candidates)
	writeResponseContract(&b)
	return b.String()
}

// buildPhase2PickPrompt orders priorities for a late pick, where both
// comps are mostly visible and the decision should respond to what the
// enemy is actually building toward.
func buildPhase2PickPrompt(ctx DraftContext, candidates []Candidate, ourPlayers []PlayerRef, series *SeriesSection) string {
	var b strings.Builder
	writeHeader(&b, ctx, "Late-phase pick recommendation")
	b.WriteString("Priority order: counter the enemy's strategy, complete our own synergies, disrupt their win condition, meta power, player comfort as tiebreaker.\n\n")
	if len(ourPlayers) > 0 {
		writePlayerComfort(&b, ourPlayers)
	}
	if s := describeStrategy("Enemy", ctx.EnemyArchetypeTags); s != "" {
		b.WriteString(s + "\n\n")
	}
	writeSeriesContext(&b, series)
	writeCandidates(&b, candidates)
	writeResponseContract(&b)
	return b.String()
}

// buildPhase2BanPrompt orders priorities for a late ban, aimed at the
// enemy composition that has now mostly declared itself.
func buildPhase2BanPrompt(ctx DraftContext, candidates []Candidate, enemyPlayers []PlayerRef, series *SeriesSection) string {
	var b strings.Builder
	writeHeader(&b, ctx, "Late-phase ban recommendation")
	b.WriteString("Priority order: break enemy synergies, deny counters to our comp, remove archetype enablers, deny flex/power picks, enemy player pools as tiebreaker.\n\n")
	if len(enemyPlayers) > 0 {
		writePlayerComfort(&b, enemyPlayers)
	}
	writeSeriesContext(&b, series)
	writeCandidates(&b, candidates)
	writeResponseContract(&b)
	return b.String()
}

func writePlayerComfort(b *strings.Builder, players []PlayerRef) {
	sorted := append([]PlayerRef{}, players...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Role < sorted[j].Role })
	b.WriteString("Roster:\n")
	for _, p := range sorted {
		fmt.Fprintf(b, "- %s (%s)\n", p.Name, p.Role)
	}
	b.WriteString("\n")
}

func writeSeriesContext(b *strings.Builder, series *SeriesSection) {
	if series == nil {
		return
	}
	fmt.Fprintf(b, "Series: game %d, score %d-%d.\n", series.GameNumber, series.OurWins, series.EnemyWins)
	if len(series.PriorBans) > 0 {
		fmt.Fprintf(b, "Prior games' bans: %s\n", strings.Join(series.PriorBans, ", "))
	}
	if len(series.PriorPicksOur) > 0 {
		fmt.Fprintf(b, "Our prior picks: %s\n", strings.Join(series.PriorPicksOur, ", "))
	}
	if len(series.PriorPicksEnemy) > 0 {
		fmt.Fprintf(b, "Enemy prior picks: %s\n", strings.Join(series.PriorPicksEnemy, ", "))
	}
	b.WriteString("\n")
}

// describeStrategy turns an archetype tag distribution into a short
// prose hint the model can use without having to infer it from a raw
// champion list itself.
func describeStrategy(label string, tags map[string]float64) string {
	tag, ok := dominantArchetype(tags)
	if !ok {
		return ""
	}
	counters := counterArchetypes(tag)
	if len(counters) == 0 {
		return fmt.Sprintf("%s is leaning %s.", label, tag)
	}
	return fmt.Sprintf("%s is leaning %s; answered by %s.", label, tag, strings.Join(counters, " or "))
}
