package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	registrationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fcmreceiver",
			Subsystem: "registration",
			Name:      "requests_total",
			Help:      "Checkin/register/install HTTP requests made during Register.",
		},
		[]string{"step", "status"},
	)
	registrationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fcmreceiver",
			Subsystem: "registration",
			Name:      "request_duration_seconds",
			Help:      "Registration HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"step", "status"},
	)
	connectionState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fcmreceiver",
			Subsystem: "session",
			Name:      "connection_state",
			Help:      "Current MCS connection state, as a session.ConnState ordinal.",
		},
	)
	reconnects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fcmreceiver",
			Subsystem: "session",
			Name:      "reconnects_total",
			Help:      "Reconnect attempts made by the supervisor, labeled by cause.",
		},
		[]string{"cause"},
	)
	heartbeats = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fcmreceiver",
			Subsystem: "session",
			Name:      "heartbeats_total",
			Help:      "Heartbeat pings/acks exchanged with mtalk, labeled by direction.",
		},
		[]string{"direction"},
	)
	messagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fcmreceiver",
			Subsystem: "session",
			Name:      "messages_received_total",
			Help:      "DataMessageStanza frames received, labeled by outcome.",
		},
		[]string{"outcome"},
	)
)

// RegisterMetrics registers all collectors with the default Prometheus
// registry. Safe to call more than once and from more than one
// goroutine; only the first call does anything.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			registrationRequests,
			registrationDuration,
			connectionState,
			reconnects,
			heartbeats,
			messagesReceived,
		)
	})
}

// RecordRegistrationRequest records one checkin/register3/install call.
func RecordRegistrationRequest(step string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	registrationRequests.WithLabelValues(step, statusLabel).Inc()
	registrationDuration.WithLabelValues(step, statusLabel).Observe(duration.Seconds())
}

// SetConnectionState publishes the supervisor's current ConnState
// ordinal so it can be graphed alongside reconnects/heartbeats.
func SetConnectionState(state int) {
	RegisterMetrics()
	connectionState.Set(float64(state))
}

// RecordReconnect counts one reconnect attempt, labeled by the error
// stage that failed (the supervisor uses "dial_failed",
// "handshake_failed" and "stream_error").
func RecordReconnect(cause string) {
	RegisterMetrics()
	reconnects.WithLabelValues(cause).Inc()
}

// RecordHeartbeat counts one heartbeat ping or ack, direction being
// "sent" or "received".
func RecordHeartbeat(direction string) {
	RegisterMetrics()
	heartbeats.WithLabelValues(direction).Inc()
}

// RecordMessage counts one received DataMessageStanza, outcome being
// "delivered", "duplicate", "decrypt_error" or
// "rejected_no_persistent_id".
func RecordMessage(outcome string) {
	RegisterMetrics()
	messagesReceived.WithLabelValues(outcome).Inc()
}
