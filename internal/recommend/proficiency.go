package recommend

import (
	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/knowledge"
)

// transferMaxWeight caps how much of a proficiency blend can come from a
// skill-transfer source rather than the player's own direct data.
const transferMaxWeight = 0.5

// TransferSource names where a proficiency figure ultimately came from.
type TransferSource string

const (
	TransferDirect   TransferSource = "direct"
	TransferTransfer TransferSource = "transfer"
	TransferNone     TransferSource = "none"
)

// ProficiencyScorer scores a player's comfort on a given champion.
type ProficiencyScorer struct {
	store *knowledge.Store
}

func NewProficiencyScorer(store *knowledge.Store) *ProficiencyScorer {
	return &ProficiencyScorer{store: store}
}

// GetProficiencyScore returns (score, confidence) for (player, champion).
// score = 0.6*win_rate + 0.4*min(1, games/10); NO_DATA champions score a
// neutral 0.5 at NO_DATA confidence.
func (p *ProficiencyScorer) GetProficiencyScore(player, champion string) (float64, knowledge.Confidence) {
	entry, ok := p.store.PlayerChampion(player, champion)
	if !ok {
		return 0.5, knowledge.ConfidenceNoData
	}
	score := 0.6*entry.WinRate + 0.4*clamp(float64(entry.GamesRaw)/10, 0, 1)
	return score, ConfidenceFromGames(entry.GamesRaw)
}

// GetRoleProficiency is an alias kept for the driver surface's per-role
// proficiency display; proficiency itself is champion-scoped, not
// role-scoped, so this simply forwards.
func (p *ProficiencyScorer) GetRoleProficiency(player, champion string) (float64, knowledge.Confidence) {
	return p.GetProficiencyScore(player, champion)
}

// GetRoleProficiencyWithTransfer extends the base score with a skill-
// transfer blend when the direct entry is thin (NO_DATA or LOW): it
// searches similar champions for one the player has MEDIUM/HIGH data on
// and blends toward it weighted by co-play rate, capped at transferMaxWeight.
func (p *ProficiencyScorer) GetRoleProficiencyWithTransfer(player, champion string) (score float64, confidence knowledge.Confidence, source TransferSource) {
	direct, directConf := p.GetProficiencyScore(player, champion)
	if directConf != knowledge.ConfidenceNoData && directConf != knowledge.ConfidenceLow {
		return direct, directConf, TransferDirect
	}

	for _, t := range p.store.SkillTransferSources(champion) {
		transferEntry, ok := p.store.PlayerChampion(player, t.Champion)
		if !ok {
			continue
		}
		transferConf := ConfidenceFromGames(transferEntry.GamesRaw)
		if transferConf != knowledge.ConfidenceMedium && transferConf != knowledge.ConfidenceHigh {
			continue
		}
		transferScore, _ := p.GetProficiencyScore(player, t.Champion)
		w := clamp(0.5*t.CoPlayRate, 0, transferMaxWeight)
		blended := (1-w)*direct + w*transferScore
		return blended, directConf, TransferTransfer
	}

	return direct, directConf, TransferNone
}

// CalculateRoleStrength returns the games-weighted average win rate over
// a player's pool champions whose primary role matches role, or (0, false)
// if the player has no pool data for that role.
func (p *ProficiencyScorer) CalculateRoleStrength(player string, role domain.Role) (float64, bool) {
	pool := p.store.PlayerPool(player)
	if len(pool) == 0 {
		return 0, false
	}
	var totalWeight, weightedWR float64
	for champ, entry := range pool {
		hist, ok := p.store.RoleHistory(champ)
		if !ok {
			continue
		}
		canonical := hist.CanonicalRole
		if canonical == "" {
			canonical = hist.ProPlayPrimaryRole
		}
		r, ok := dataToCanonical[canonical]
		if !ok {
			r, ok = domain.NormalizeRole(canonical)
		}
		if !ok || r != role {
			continue
		}
		weight := float64(entry.GamesRaw)
		if weight <= 0 {
			weight = 1
		}
		totalWeight += weight
		weightedWR += weight * entry.WinRate
	}
	if totalWeight == 0 {
		return 0, false
	}
	return weightedWR / totalWeight, true
}

// GetPlayerChampionPool returns a player's full pool as confidence-bucketed
// entries, sorted by nothing in particular — callers sort as needed.
func (p *ProficiencyScorer) GetPlayerChampionPool(player string) []PoolEntry {
	pool := p.store.PlayerPool(player)
	out := make([]PoolEntry, 0, len(pool))
	for champ, e := range pool {
		out = append(out, PoolEntry{
			Champion:        champ,
			GamesRaw:        e.GamesRaw,
			GamesWeighted:   e.GamesWeighted,
			WinRate:         e.WinRate,
			WinRateWeighted: e.WinRateWeighted,
			Confidence:      ConfidenceFromGames(e.GamesRaw),
		})
	}
	return out
}
