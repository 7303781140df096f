package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelcraft/studio/internal/pkg/billing"
)

var _ billing.Metrics = (*BillingMetrics)(nil)

func TestBillingMetricsRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBillingMetrics(reg)

	m.RecordWebhookEvent("order.paid", billing.StatusGranted)
	m.RecordWebhookEvent("order.paid", billing.StatusGranted)
	m.RecordWebhookEvent("order.paid", billing.StatusDuplicate)
	m.RecordCreditsGranted("Regular", 100)
	m.RecordCreditsGranted("Regular", 100)
	m.RecordWebhookProcessingDuration("order.paid", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.webhookEventsTotal.WithLabelValues("order.paid", "granted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.webhookEventsTotal.WithLabelValues("order.paid", "duplicate")))
	assert.Equal(t, 200.0, testutil.ToFloat64(m.creditsGrantedTotal.WithLabelValues("Regular")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "studio_billing_webhook_events_total")
	assert.Contains(t, names, "studio_billing_webhook_processing_duration_seconds")
	assert.Contains(t, names, "studio_billing_credits_granted_total")
}

func TestNewRegistryHasRuntimeCollectors(t *testing.T) {
	families, err := NewRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
