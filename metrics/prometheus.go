// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/posvault/posvault/log"
)

const namespace = "posvault"

var logger = log.WithContext("pkg", "metrics")

// EnablePrometheus switches the backend to prometheus meters registered on
// the default registry. Calling it again is a no-op.
func EnablePrometheus() {
	for {
		old := backend.Load()
		if _, ok := (*old).(*promMetrics); ok {
			return
		}
		var m Metrics = &promMetrics{}
		if backend.CompareAndSwap(old, &m) {
			return
		}
	}
}

type promMetrics struct {
	meters sync.Map
}

func meter[T any](p *promMetrics, name string, create func() (prometheus.Collector, T)) T {
	if m, ok := p.meters.Load(name); ok {
		return m.(T)
	}
	c, m := create()
	actual, loaded := p.meters.LoadOrStore(name, m)
	if !loaded {
		if err := prometheus.Register(c); err != nil {
			logger.Warn("unable to register metric", "name", name, "err", err)
		}
	}
	return actual.(T)
}

func (p *promMetrics) Counter(name string) CountMeter {
	return meter(p, name, func() (prometheus.Collector, CountMeter) {
		c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
		return c, &promCounter{c}
	})
}

func (p *promMetrics) CounterVec(name string, labels []string) CountVecMeter {
	return meter(p, name, func() (prometheus.Collector, CountVecMeter) {
		c := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
		return c, &promCounterVec{c}
	})
}

func (p *promMetrics) Histogram(name string, buckets []int64) HistogramMeter {
	return meter(p, name, func() (prometheus.Collector, HistogramMeter) {
		fb := make([]float64, len(buckets))
		for i, b := range buckets {
			fb[i] = float64(b)
		}
		h := prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: name, Buckets: fb})
		return h, &promHistogram{h}
	})
}

// Handler serves the default registry in the prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Dump writes the default registry to w in the prometheus text format.
func Dump(w io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, f := range families {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	return nil
}

type promCounter struct{ prometheus.Counter }

func (c *promCounter) Add(i int64) { c.Counter.Add(float64(i)) }

type promCounterVec struct{ *prometheus.CounterVec }

func (c *promCounterVec) AddWithLabel(i int64, labels map[string]string) {
	c.With(labels).Add(float64(i))
}

type promHistogram struct{ prometheus.Histogram }

func (h *promHistogram) Observe(i int64) { h.Histogram.Observe(float64(i)) }
