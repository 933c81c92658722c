package observability

import (
	"strconv"
	"sync"
	"time"
)

// Interaction kinds tracked by the metrics counters.
const (
	InteractionCreateTicket = "create_ticket"
	InteractionCloseTicket  = "close_ticket"
	InteractionTicketSetup  = "ticket_setup"
	InteractionTicketRole   = "ticket_role"
)

// Metrics provides basic in-memory counters for interaction handling and the
// keep-alive HTTP surface.
type Metrics struct {
	mu               sync.Mutex
	interactionCount map[string]int64
	requestCount     map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		interactionCount: make(map[string]int64),
		requestCount:     make(map[string]int64),
	}
}

// RecordInteraction increments the counter for a handled interaction and its
// outcome ("ok", "denied", or "error").
func (m *Metrics) RecordInteraction(kind, outcome string) {
	if m == nil {
		return
	}
	key := kind + "|" + outcome
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interactionCount[key]++
}

// RecordRequest increments counters for HTTP requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// Snapshot returns a copy of all counters for the /metrics endpoint.
func (m *Metrics) Snapshot() (interactions, requests map[string]int64) {
	interactions = make(map[string]int64)
	requests = make(map[string]int64)
	if m == nil {
		return interactions, requests
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.interactionCount {
		interactions[k] = v
	}
	for k, v := range m.requestCount {
		requests[k] = v
	}
	return interactions, requests
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
