package lantern

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EventMetrics tracks dispatch-related metrics.
var EventMetrics = struct {
	EventsTotal *prometheus.CounterVec
}{
	EventsTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lantern_events_total",
			Help: "Total number of gateway events processed, split by event type",
		},
		[]string{"event_type"},
	),
}

func recordEvent(eventType string) {
	EventMetrics.EventsTotal.WithLabelValues(eventType).Inc()
}

// StateMetrics tracks state population per entity kind.
var StateMetrics = struct {
	Guilds   prometheus.Gauge
	Roles    prometheus.Gauge
	Channels prometheus.Gauge
	Users    prometheus.Gauge
	Invites  prometheus.Gauge
	Webhooks prometheus.Gauge
}{
	Guilds: promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lantern_state_guilds",
			Help: "Total number of guilds in state",
		},
	),
	Roles: promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lantern_state_roles",
			Help: "Total number of roles in state",
		},
	),
	Channels: promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lantern_state_channels",
			Help: "Total number of channels in state",
		},
	),
	Users: promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lantern_state_users",
			Help: "Total number of users in state",
		},
	),
	Invites: promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lantern_state_invites",
			Help: "Total number of invites in state",
		},
	),
	Webhooks: promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lantern_state_webhooks",
			Help: "Total number of webhooks in state",
		},
	),
}

// CollectStateMetrics refreshes the state population gauges.
func CollectStateMetrics(s *State) {
	StateMetrics.Guilds.Set(float64(s.guilds.Count()))
	StateMetrics.Roles.Set(float64(s.roles.Count()))
	StateMetrics.Channels.Set(float64(s.channels.Count()))
	StateMetrics.Users.Set(float64(s.users.Count()))
	StateMetrics.Invites.Set(float64(s.invites.Count()))
	StateMetrics.Webhooks.Set(float64(s.webhooks.Count()))
}
