package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "branchqueue"

// Metrics groups every collector the service exports. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	ticketsIssued        *prometheus.CounterVec
	ticketsCalled        *prometheus.CounterVec
	ticketsRecalled      prometheus.Counter
	ticketsFinished      prometheus.Counter
	waitingTickets       prometheus.Gauge
	announcements        *prometheus.CounterVec
	announcementFailures prometheus.Counter
	playlistRotations    prometheus.Counter
	relayErrors          *prometheus.CounterVec
	subscriberDrops      prometheus.Counter
}

// NewRegistry creates a dedicated registry carrying the Go runtime and
// process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticketsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_issued_total",
			Help:      "Tickets issued per department",
		}, []string{"department"}),
		ticketsCalled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_called_total",
			Help:      "Tickets called per counter",
		}, []string{"counter"}),
		ticketsRecalled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_recalled_total",
			Help:      "Recall requests applied to called tickets",
		}),
		ticketsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_finished_total",
			Help:      "Tickets moved to FINISHED",
		}),
		waitingTickets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tickets_waiting",
			Help:      "Tickets currently WAITING",
		}),
		announcements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "announcements_total",
			Help:      "Announcements emitted by kind",
		}, []string{"kind"}),
		announcementFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "announcement_failures_total",
			Help:      "Speech backend failures",
		}),
		playlistRotations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playlist_rotations_total",
			Help:      "Playlist timer rotations",
		}),
		relayErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_errors_total",
			Help:      "State change relay failures per sink",
		}, []string{"sink"}),
		subscriberDrops: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscriber_drops_total",
			Help:      "State changes dropped because a subscriber buffer was full",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.ticketsIssued,
			m.ticketsCalled,
			m.ticketsRecalled,
			m.ticketsFinished,
			m.waitingTickets,
			m.announcements,
			m.announcementFailures,
			m.playlistRotations,
			m.relayErrors,
			m.subscriberDrops,
		)
	}
	return m
}

// Handler exposes the registry over HTTP.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) TicketIssued(departmentID string) {
	if m == nil {
		return
	}
	m.ticketsIssued.WithLabelValues(departmentID).Inc()
}

func (m *Metrics) TicketCalled(counter string) {
	if m == nil {
		return
	}
	m.ticketsCalled.WithLabelValues(counter).Inc()
}

func (m *Metrics) TicketRecalled() {
	if m == nil {
		return
	}
	m.ticketsRecalled.Inc()
}

func (m *Metrics) TicketFinished() {
	if m == nil {
		return
	}
	m.ticketsFinished.Inc()
}

func (m *Metrics) SetWaiting(n int) {
	if m == nil {
		return
	}
	m.waitingTickets.Set(float64(n))
}

func (m *Metrics) Announcement(kind string) {
	if m == nil {
		return
	}
	m.announcements.WithLabelValues(kind).Inc()
}

func (m *Metrics) AnnouncementFailed() {
	if m == nil {
		return
	}
	m.announcementFailures.Inc()
}

func (m *Metrics) PlaylistRotated() {
	if m == nil {
		return
	}
	m.playlistRotations.Inc()
}

func (m *Metrics) RelayError(sink string) {
	if m == nil {
		return
	}
	m.relayErrors.WithLabelValues(sink).Inc()
}

func (m *Metrics) SubscriberDropped() {
	if m == nil {
		return
	}
	m.subscriberDrops.Inc()
}
