// Package metrics records run counters for a filter pass and writes them in
// the Prometheus text exposition format for the node_exporter textfile
// collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sdep"

// Recorder holds the counters for one run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	linesRead      prometheus.Counter
	eventsParsed   prometheus.Counter
	eventsSelected prometheus.Counter
	runDuration    prometheus.Gauge
	lastRun        prometheus.Gauge
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.linesRead = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lines_read_total",
		Help:      "Input lines read",
	})
	r.eventsParsed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_parsed_total",
		Help:      "Input lines that started with a valid date-time stamp",
	})
	r.eventsSelected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_selected_total",
		Help:      "Events inside the time window that were written",
	})
	r.runDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Wall time of the last run",
	})
	r.lastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix timestamp of the last completed run",
	})

	r.registry.MustRegister(
		r.linesRead, r.eventsParsed, r.eventsSelected,
		r.runDuration, r.lastRun,
	)

	return r
}

// ObserveLoad records the result of reading the input.
func (r *Recorder) ObserveLoad(linesRead, eventsParsed int) {
	r.linesRead.Add(float64(linesRead))
	r.eventsParsed.Add(float64(eventsParsed))
}

// ObserveSelected records how many events were written.
func (r *Recorder) ObserveSelected(n int) {
	r.eventsSelected.Add(float64(n))
}

// ObserveRun records the run duration and completion time.
func (r *Recorder) ObserveRun(start, end time.Time) {
	r.runDuration.Set(end.Sub(start).Seconds())
	r.lastRun.Set(float64(end.Unix()))
}

// Registry exposes the underlying registry as a Gatherer.
func (r *Recorder) Registry() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
