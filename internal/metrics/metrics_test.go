package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/wutims/draftengine/internal/metrics"
)

func TestRegistry_ExposesRegisteredCollectors(t *testing.T) {
	reg := metrics.Registry()

	count, err := testutil.GatherAndCount(reg)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, count, 0)
}

func TestRecommendationRequests_IncrementsByLabels(t *testing.T) {
	before := testutil.ToFloat64(metrics.RecommendationRequests.WithLabelValues("pick", "PICK_PHASE_1"))
	metrics.RecommendationRequests.WithLabelValues("pick", "PICK_PHASE_1").Inc()
	after := testutil.ToFloat64(metrics.RecommendationRequests.WithLabelValues("pick", "PICK_PHASE_1"))

	assert.Equal(t, before+1, after)
}

func TestActiveSessions_TracksGaugeByKind(t *testing.T) {
	metrics.ActiveSessions.WithLabelValues("simulator").Set(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.ActiveSessions.WithLabelValues("simulator")))

	metrics.ActiveSessions.WithLabelValues("simulator").Set(0)
}
