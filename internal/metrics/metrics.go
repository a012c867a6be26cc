// Package metrics records provisioning activity as Prometheus metrics.
//
// The CLI runs once and exits, so metrics are collected on a private
// registry and written to a node-exporter textfile instead of being served.
package metrics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/repokit/internal/platform/cfn"
	"github.com/imamik/repokit/internal/provisioning"
)

const namespace = "repokit"

// Recorder owns the collectors for one synthesis run.
type Recorder struct {
	registry *prometheus.Registry

	eventsTotal        *prometheus.CounterVec
	phaseDuration      *prometheus.HistogramVec
	templateResources  *prometheus.GaugeVec
	publishedArtifacts *prometheus.CounterVec
}

// NewRecorder creates a recorder whose series carry the application label.
func NewRecorder(application string) *Recorder {
	labels := prometheus.Labels{"application": application}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "provisioning",
				Name:        "events_total",
				Help:        "Total number of provisioning events by type and phase",
				ConstLabels: labels,
			},
			[]string{"type", "phase"},
		),
		phaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   namespace,
				Subsystem:   "provisioning",
				Name:        "phase_duration_seconds",
				Help:        "Duration of provisioning phases in seconds",
				ConstLabels: labels,
				Buckets:     prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms to ~16s
			},
			[]string{"phase"},
		),
		templateResources: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   namespace,
				Subsystem:   "template",
				Name:        "resources",
				Help:        "Number of resources in the synthesized template by type",
				ConstLabels: labels,
			},
			[]string{"resource_type"},
		),
		publishedArtifacts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   namespace,
				Subsystem:   "publish",
				Name:        "artifacts_total",
				Help:        "Total number of published artifacts by result",
				ConstLabels: labels,
			},
			[]string{"result"},
		),
	}

	r.registry.MustRegister(r.eventsTotal, r.phaseDuration, r.templateResources, r.publishedArtifacts)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observer wraps next so that every event is also counted.
func (r *Recorder) Observer(next provisioning.Observer) provisioning.Observer {
	return &observer{next: next, recorder: r}
}

// RecordTemplate sets the resource gauges from a synthesized template.
func (r *Recorder) RecordTemplate(tmpl *cfn.Template) {
	r.templateResources.Reset()
	for typ, n := range tmpl.ResourceCounts() {
		r.templateResources.WithLabelValues(typ).Set(float64(n))
	}
}

// RecordPublish counts published artifacts. A failed publish counts every
// artifact of the attempt as failed.
func (r *Recorder) RecordPublish(count int, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.publishedArtifacts.WithLabelValues(result).Add(float64(count))
}

// WriteTextfile writes all collected series to path in the text exposition
// format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

func (r *Recorder) record(event provisioning.Event) {
	phase := phaseLabel(event.Phase)
	r.eventsTotal.WithLabelValues(string(event.Type), phase).Inc()

	if event.Type != provisioning.EventPhaseCompleted {
		return
	}
	seconds, err := strconv.ParseFloat(event.Fields[provisioning.FieldDurationSeconds], 64)
	if err != nil {
		return
	}
	r.phaseDuration.WithLabelValues(phase).Observe(seconds)
}

// phaseLabel drops the "(i/n)" position suffix the pipeline adds to phase names.
func phaseLabel(phase string) string {
	if i := strings.Index(phase, " ("); i >= 0 {
		return phase[:i]
	}
	return phase
}

type observer struct {
	next     provisioning.Observer
	recorder *Recorder
}

func (o *observer) Printf(format string, v ...interface{}) {
	o.next.Printf(format, v...)
}

func (o *observer) Event(event provisioning.Event) {
	o.recorder.record(event)
	o.next.Event(event)
}

func (o *observer) WithFields(fields map[string]string) provisioning.Observer {
	return &observer{next: o.next.WithFields(fields), recorder: o.recorder}
}
