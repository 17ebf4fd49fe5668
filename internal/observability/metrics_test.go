package observability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/community-service/internal/observability"
)

func TestMetrics_Counters(t *testing.T) {
	m := observability.NewMetrics()

	m.RecordRequest("/posts", "GET", 200, 5*time.Millisecond)
	m.RecordRequest("/posts", "GET", 200, 7*time.Millisecond)
	m.RecordError("/posts", "POST", "MISSING_CREDENTIALS")
	m.RecordAuthFailure("MISSING_CREDENTIALS")
	m.RecordAuthFailure("WRONG_ROLE")

	requests, latencyMs, errorCounts, authFailures := m.Snapshot()
	assert.Equal(t, int64(2), requests["/posts|GET|200"])
	assert.Equal(t, int64(12), latencyMs["/posts|GET|200"])
	assert.Equal(t, int64(1), errorCounts["/posts|POST|MISSING_CREDENTIALS"])
	assert.Equal(t, int64(1), authFailures["MISSING_CREDENTIALS"])
	assert.Equal(t, int64(1), authFailures["WRONG_ROLE"])
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *observability.Metrics

	assert.NotPanics(t, func() {
		m.RecordRequest("/posts", "GET", 200, time.Millisecond)
		m.RecordError("/posts", "GET", "INTERNAL_ERROR")
		m.RecordAuthFailure("INVALID_TOKEN")
	})
}
