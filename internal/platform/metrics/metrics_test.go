package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveOptimization(t *testing.T) {
	RegisterDefault()
	RegisterDefault()

	before := testutil.ToFloat64(Optimizations.WithLabelValues("failure"))
	noCrew := testutil.ToFloat64(UnassignedJobs.WithLabelValues("no_crew_available"))
	ObserveOptimization(false, 20*time.Millisecond, map[string]int{"no_crew_available": 3})

	assert.Equal(t, before+1, testutil.ToFloat64(Optimizations.WithLabelValues("failure")))
	assert.Equal(t, noCrew+3, testutil.ToFloat64(UnassignedJobs.WithLabelValues("no_crew_available")))

	// Later runs add to the totals instead of replacing them.
	ObserveOptimization(true, time.Millisecond, nil)
	ObserveOptimization(true, time.Millisecond, map[string]int{"no_crew_available": 2})
	assert.Equal(t, noCrew+5, testutil.ToFloat64(UnassignedJobs.WithLabelValues("no_crew_available")))
}

func TestObserveHTTP(t *testing.T) {
	ObserveHTTP("GET", "/health", 200, time.Millisecond)
	assert.GreaterOrEqual(t, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/health", "200")), 1.0)
}
