// Package metrics exposes the platform's Prometheus collectors: HTTP
// surface, match simulation throughput, live match occupancy, marketplace
// settlement activity, tournament round advancement, and season tick health.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the application-specific Prometheus collectors, kept
// separate from the default global registry so process-level collectors
// don't leak in from unrelated imports.
var Registry = prometheus.NewRegistry()

var (
	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "domeball",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "domeball",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "domeball",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~2.56s
		},
		[]string{"method", "path"},
	)

	matchesSimulated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "domeball",
			Subsystem: "simulation",
			Name:      "matches_simulated_total",
			Help:      "Total number of matches simulated, by mode and match type.",
		},
		[]string{"mode", "match_type"},
	)

	simulationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "domeball",
			Subsystem: "simulation",
			Name:      "duration_seconds",
			Help:      "Wall-clock time spent simulating a single match.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"mode"},
	)

	liveMatchesActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "domeball",
			Subsystem: "livematch",
			Name:      "active_workers",
			Help:      "Current number of in-memory live match workers.",
		},
	)

	liveMatchCheckpoints = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "domeball",
			Subsystem: "livematch",
			Name:      "checkpoints_total",
			Help:      "Total number of live match checkpoints persisted.",
		},
		[]string{"outcome"},
	)

	marketplaceListings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "domeball",
			Subsystem: "marketplace",
			Name:      "listings_total",
			Help:      "Total number of marketplace listings created.",
		},
		[]string{"phase"},
	)

	marketplaceSettlements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "domeball",
			Subsystem: "marketplace",
			Name:      "settlements_total",
			Help:      "Total number of marketplace listings settled, by outcome.",
		},
		[]string{"outcome"},
	)

	marketplaceBidAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "domeball",
			Subsystem: "marketplace",
			Name:      "bid_attempts_total",
			Help:      "Total number of bid/buy-now attempts, by result.",
		},
		[]string{"result"},
	)

	tournamentRoundsAdvanced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "domeball",
			Subsystem: "tournament",
			Name:      "rounds_advanced_total",
			Help:      "Total number of tournament rounds advanced, by tournament type.",
		},
		[]string{"tournament_type"},
	)

	tournamentForfeits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "domeball",
			Subsystem: "tournament",
			Name:      "forfeits_total",
			Help:      "Total number of matches decided by forfeit.",
		},
		[]string{"tournament_type"},
	)

	seasonTickDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "domeball",
			Subsystem: "season",
			Name:      "tick_duration_seconds",
			Help:      "Duration of a single season scheduler tick.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"step"},
	)

	seasonDayAdvances = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "domeball",
			Subsystem: "season",
			Name:      "day_advances_total",
			Help:      "Total number of season day advancements performed, by result.",
		},
		[]string{"result"},
	)

	seasonIsLeader = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "domeball",
			Subsystem: "season",
			Name:      "is_leader",
			Help:      "1 if this process currently holds the season scheduler leader lock, else 0.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		matchesSimulated,
		simulationDuration,
		liveMatchesActive,
		liveMatchCheckpoints,
		marketplaceListings,
		marketplaceSettlements,
		marketplaceBidAttempts,
		tournamentRoundsAdvanced,
		tournamentForfeits,
		seasonTickDuration,
		seasonDayAdvances,
		seasonIsLeader,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered collectors.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// InstrumentHandler wraps next with request-count and latency collection.
func InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	})
}

// RecordMatchSimulated records a completed simulation run.
func RecordMatchSimulated(mode, matchType string, duration time.Duration) {
	matchesSimulated.WithLabelValues(mode, matchType).Inc()
	simulationDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// SetLiveMatchesActive reports the current live match worker count.
func SetLiveMatchesActive(n int) {
	liveMatchesActive.Set(float64(n))
}

// RecordLiveMatchCheckpoint records a checkpoint persist attempt.
func RecordLiveMatchCheckpoint(err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	liveMatchCheckpoints.WithLabelValues(outcome).Inc()
}

// RecordListingCreated records a new marketplace listing by phase.
func RecordListingCreated(phase string) {
	marketplaceListings.WithLabelValues(phase).Inc()
}

// RecordSettlement records a listing settlement outcome (sold, expired).
func RecordSettlement(outcome string) {
	marketplaceSettlements.WithLabelValues(outcome).Inc()
}

// RecordBidAttempt records a bid/buy-now attempt result (accepted, rejected).
func RecordBidAttempt(result string) {
	marketplaceBidAttempts.WithLabelValues(result).Inc()
}

// RecordTournamentRoundAdvanced records one round-advancement for a
// tournament type (DAILY_DIVISIONAL, MID_SEASON_CLASSIC, PLAYOFF).
func RecordTournamentRoundAdvanced(tournamentType string) {
	tournamentRoundsAdvanced.WithLabelValues(tournamentType).Inc()
}

// RecordForfeit records a forfeit decision for a tournament type.
func RecordForfeit(tournamentType string) {
	tournamentForfeits.WithLabelValues(tournamentType).Inc()
}

// ObserveSeasonTickStep records the duration of one named step within a
// season scheduler tick (e.g. "day_advance", "match_window_scan").
func ObserveSeasonTickStep(step string, duration time.Duration) {
	seasonTickDuration.WithLabelValues(step).Observe(duration.Seconds())
}

// RecordSeasonDayAdvance records a day-advancement attempt's result
// ("advanced", "skipped", "error").
func RecordSeasonDayAdvance(result string) {
	seasonDayAdvances.WithLabelValues(result).Inc()
}

// SetSeasonLeader reports whether this process holds the scheduler lock.
func SetSeasonLeader(isLeader bool) {
	if isLeader {
		seasonIsLeader.Set(1)
	} else {
		seasonIsLeader.Set(0)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// canonicalPath collapses path parameters into a stable label so the path
// cardinality of httpRequests/httpDuration stays bounded regardless of how
// many distinct ids are requested.
func canonicalPath(raw string) string {
	if raw == "" || raw == "/" {
		return "/"
	}
	trimmed := strings.Trim(raw, "/")
	if trimmed == "" {
		return "/"
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) == 0 {
		return "/"
	}
	switch parts[0] {
	case "teams", "players", "games", "tournaments", "listings":
		if len(parts) == 1 {
			return "/" + parts[0]
		}
		if len(parts) == 2 {
			return "/" + parts[0] + "/:id"
		}
		return "/" + parts[0] + "/:id/" + strings.Join(parts[2:], "/")
	default:
		return "/" + parts[0]
	}
}
