package correlate_test

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/correlate/pkg/correlate"
)

func TestPrometheusObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := correlate.NewPrometheusObserver(reg)
	require.NoError(t, err)

	c := correlate.MustNew(correlate.WithTrustedSources("10.0.0.0/8"), correlate.WithObserver(obs))
	for _, peer := range []string{"10.0.0.1", "10.0.0.2", "203.0.113.1"} {
		ctx, _ := c.Start(context.Background(), peer, "incoming-id")
		c.End(ctx, true, nil)
	}

	expected := `
# HELP correlation_resolutions_total Correlation id resolutions by outcome.
# TYPE correlation_resolutions_total counter
correlation_resolutions_total{outcome="accepted_incoming"} 2
correlation_resolutions_total{outcome="generated_no_header"} 0
correlation_resolutions_total{outcome="rejected_invalid"} 0
correlation_resolutions_total{outcome="rejected_untrusted"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "correlation_resolutions_total"))
}

func TestPrometheusObserverDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := correlate.NewPrometheusObserver(reg)
	require.NoError(t, err)

	_, err = correlate.NewPrometheusObserver(reg)
	assert.Error(t, err)
}

func TestPrometheusObserverWithoutRegistry(t *testing.T) {
	obs, err := correlate.NewPrometheusObserver(nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() { obs.ObserveResolution(correlate.OutcomeGeneratedNoHeader) })
}
