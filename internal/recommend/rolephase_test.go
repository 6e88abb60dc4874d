package recommend_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wutims/draftengine/internal/domain"
	"github.com/wutims/draftengine/internal/recommend"
)

func TestRolePhaseScorer_PickMultiplier(t *testing.T) {
	scorer := recommend.NewRolePhaseScorer()

	cases := []struct {
		name       string
		role       domain.Role
		totalPicks int
		want       float64
	}{
		{"top within window is unpenalized", domain.RoleTop, 3, 1.0},
		{"support before its window ramps down", domain.RoleSupport, 0, 1.0 - 4*0.15},
		{"mid well past its window floors at 0.3", domain.RoleMid, 20, 0.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scorer.PickMultiplier(tc.role, tc.totalPicks)
			t.Logf("%s at %d picks = %v", tc.role, tc.totalPicks, got)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestRolePhaseScorer_BanMultiplierIsSqrtOfPick(t *testing.T) {
	scorer := recommend.NewRolePhaseScorer()
	pick := scorer.PickMultiplier(domain.RoleBot, 0)
	ban := scorer.BanMultiplier(domain.RoleBot, 0)
	assert.InDelta(t, math.Sqrt(pick), ban, 1e-9)
}
