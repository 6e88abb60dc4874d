package recommend

import (
	"sort"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/knowledge"
)

// MetaMethod selects one of the meta scorer's three strategies.
type MetaMethod string

const (
	MetaMethodDefault  MetaMethod = "default"
	MetaMethodPresence MetaMethod = "presence"
	MetaMethodHybrid   MetaMethod = "hybrid"
)

// MetaScorer reads current pro-play presence and tier data.
type MetaScorer struct {
	store *knowledge.Store
}

func NewMetaScorer(store *knowledge.Store) *MetaScorer {
	return &MetaScorer{store: store}
}

// GetMetaScore returns a champion's meta score in [0,1] under one of the
// three strategies. Unknown champions score a neutral 0.5 regardless of
// method, never an error.
func (m *MetaScorer) GetMetaScore(champion string, method MetaMethod) float64 {
	stats, ok := m.store.MetaStats(champion)
	if !ok {
		return 0.5
	}
	presenceScore := 0.3 + m.GetPresence(champion)*0.7
	switch method {
	case MetaMethodPresence:
		return clamp(presenceScore, 0, 1)
	case MetaMethodHybrid:
		return clamp((stats.MetaScore+presenceScore)/2, 0, 1)
	default:
		return clamp(stats.MetaScore, 0, 1)
	}
}

// GetPresence returns pick_rate + ban_rate, 0 for unknown champions.
func (m *MetaScorer) GetPresence(champion string) float64 {
	stats, ok := m.store.MetaStats(champion)
	if !ok {
		return 0
	}
	return stats.PickRate + stats.BanRate
}

// GetMetaTier returns the champion's stored tier, or the priority-derived
// tier fallback when meta_stats has no entry but tournament_meta does.
func (m *MetaScorer) GetMetaTier(champion string) string {
	if stats, ok := m.store.MetaStats(champion); ok && stats.MetaTier != "" {
		return stats.MetaTier
	}
	if tm, ok := m.store.TournamentMeta(champion); ok {
		return PriorityToTier(tm.Priority)
	}
	return "D"
}

// GetBlindPickSafety scores how safe a champion is to lock in without
// knowing the enemy comp: counter-dependent champions are capped low;
// otherwise it scales around a 0.5 win rate baseline.
func (m *MetaScorer) GetBlindPickSafety(champion string) float64 {
	stats, ok := m.store.MetaStats(champion)
	if !ok {
		return 1.0
	}
	if stats.CounterPickDependent {
		return 0.85
	}
	if stats.BlindPickSafety > 0 {
		return clamp(0.9+(stats.BlindPickSafety-0.5)*0.4, 0, 1)
	}
	return 1.0
}

// championPlaysRole reports whether a champion is viable for role, using
// current-role-viability data with a fallback to an all-time distribution
// of at least 10%.
func (m *MetaScorer) championPlaysRole(champion string, role domain.Role) bool {
	hist, ok := m.store.RoleHistory(champion)
	if !ok {
		return false
	}
	for _, viable := range hist.CurrentViableRoles {
		if r, ok := dataToCanonical[viable]; ok && r == role {
			return true
		}
		if normalized, ok := domain.NormalizeRole(viable); ok && normalized == role {
			return true
		}
	}
	for key, v := range hist.AllTimeDistribution {
		r, ok := dataToCanonical[key]
		if !ok {
			r, ok = domain.NormalizeRole(key)
		}
		if ok && r == role && v >= 0.1 {
			return true
		}
	}
	return false
}

// GetTopMetaChampions returns the top `limit` champions viable for role,
// sorted descending by meta score.
func (m *MetaScorer) GetTopMetaChampions(role domain.Role, limit int) []string {
	candidates := m.store.AllChampionsWithRoleHistory()
	sort.Strings(candidates)
	type scored struct {
		champion string
		score    float64
	}
	var eligible []scored
	for _, champ := range candidates {
		if !m.championPlaysRole(champ, role) {
			continue
		}
		eligible = append(eligible, scored{champ, m.GetMetaScore(champ, MetaMethodDefault)})
	}
	sort.SliceStable(eligible, func(i, j int) bool { return eligible[i].score > eligible[j].score })
	if limit > 0 && len(eligible) > limit {
		eligible = eligible[:limit]
	}
	out := make([]string, len(eligible))
	for i, e := range eligible {
		out[i] = e.champion
	}
	return out
}
