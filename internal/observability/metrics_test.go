package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRecordInteraction(t *testing.T) {
	m := NewMetrics()

	m.RecordInteraction(InteractionCreateTicket, "ok")
	m.RecordInteraction(InteractionCreateTicket, "ok")
	m.RecordInteraction(InteractionCloseTicket, "denied")

	interactions, _ := m.Snapshot()
	assert.Equal(t, int64(2), interactions["create_ticket|ok"])
	assert.Equal(t, int64(1), interactions["close_ticket|denied"])
}

func TestMetricsRecordRequest(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordRequest("/", "GET", 200, time.Millisecond)

	_, requests := m.Snapshot()
	assert.Equal(t, int64(2), requests["/|GET|200"])
}

func TestMetricsNilReceiverSafe(t *testing.T) {
	var m *Metrics
	m.RecordInteraction(InteractionTicketRole, "ok")
	m.RecordRequest("/", "GET", 200, 0)

	interactions, requests := m.Snapshot()
	assert.Empty(t, interactions)
	assert.Empty(t, requests)
}
