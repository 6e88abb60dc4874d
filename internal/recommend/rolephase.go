package recommend

import (
	"math"

	"github.com/wutims/draftengine/internal/domain"
)

// roleWindow is the [low, high] range of total-picks-so-far during which a
// role is "on phase" — picked at its usual point in a professional draft.
// Tuned from common pro-draft sequencing: top/jungle priority resolves
// early, mid is contested through the middle of the draft, bot/support
// duos are frequently locked together late.
var roleWindow = map[domain.Role][2]int{
	domain.RoleTop:     {0, 6},
	domain.RoleJungle:  {0, 8},
	domain.RoleMid:     {2, 8},
	domain.RoleBot:     {4, 10},
	domain.RoleSupport: {4, 10},
}

// RolePhaseScorer penalizes bans/picks that are out of phase for a role.
type RolePhaseScorer struct{}

func NewRolePhaseScorer() *RolePhaseScorer {
	return &RolePhaseScorer{}
}

// PickMultiplier returns a multiplier in (0,1] for picking/banning a champion
// in role when totalPicks picks have been completed across both sides.
func (RolePhaseScorer) PickMultiplier(role domain.Role, totalPicks int) float64 {
	window, ok := roleWindow[role]
	if !ok {
		return 1.0
	}
	low, high := window[0], window[1]
	var dist int
	switch {
	case totalPicks < low:
		dist = low - totalPicks
	case totalPicks > high:
		dist = totalPicks - high
	default:
		return 1.0
	}
	multiplier := 1.0 - float64(dist)*0.15
	if multiplier < 0.3 {
		multiplier = 0.3
	}
	return multiplier
}

// BanMultiplier applies the softer ban-side penalty: sqrt of the pick
// multiplier, since a wrong-phase ban is a weaker signal than a wrong-phase
// pick would be.
func (r RolePhaseScorer) BanMultiplier(role domain.Role, totalPicks int) float64 {
	return math.Sqrt(r.PickMultiplier(role, totalPicks))
}
