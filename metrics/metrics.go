// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics exposes counters and histograms through a process wide
// backend. The backend is a no-op until EnablePrometheus is called.
package metrics

import (
	"sync"
	"sync/atomic"
)

var backend atomic.Pointer[Metrics]

func init() {
	var m Metrics = noop{}
	backend.Store(&m)
}

func current() Metrics { return *backend.Load() }

// Metrics creates or returns meters by name.
type Metrics interface {
	Counter(name string) CountMeter
	CounterVec(name string, labels []string) CountVecMeter
	Histogram(name string, buckets []int64) HistogramMeter
}

// BucketExecTime buckets execution time in microseconds.
var BucketExecTime = []int64{0, 50, 100, 250, 500, 1000, 2500, 5000, 10_000, 50_000}

// CountMeter only goes up.
type CountMeter interface {
	Add(int64)
}

// CountVecMeter is a CountMeter partitioned by labels.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// HistogramMeter aggregates observations into buckets.
type HistogramMeter interface {
	Observe(int64)
}

func Counter(name string) CountMeter { return current().Counter(name) }

func CounterVec(name string, labels []string) CountVecMeter {
	return current().CounterVec(name, labels)
}

func Histogram(name string, buckets []int64) HistogramMeter {
	return current().Histogram(name, buckets)
}

// Lazy defers creating a meter to its first use, so package level meters
// bind to whichever backend is enabled by then.
func Lazy[T any](create func() T) func() T {
	var (
		once  sync.Once
		meter T
	)
	return func() T {
		once.Do(func() { meter = create() })
		return meter
	}
}

func LazyCounter(name string) func() CountMeter {
	return Lazy(func() CountMeter { return Counter(name) })
}

func LazyCounterVec(name string, labels []string) func() CountVecMeter {
	return Lazy(func() CountVecMeter { return CounterVec(name, labels) })
}

func LazyHistogram(name string, buckets []int64) func() HistogramMeter {
	return Lazy(func() HistogramMeter { return Histogram(name, buckets) })
}
