// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usePrometheus(t *testing.T) {
	old := backend.Load()
	EnablePrometheus()
	t.Cleanup(func() { backend.Store(old) })
}

func TestNoop(t *testing.T) {
	assert.IsType(t, noop{}, current())

	// none of these may panic
	Counter("count1").Add(1)
	CounterVec("countVec1", []string{"zeroOrOne"}).AddWithLabel(1, map[string]string{"thisIsNonsense": "butDoesntBreak"})
	Histogram("hist1", nil).Observe(3)
}

func TestPrometheus(t *testing.T) {
	usePrometheus(t)
	prev := current()
	EnablePrometheus()
	assert.Same(t, prev, current(), "enabling twice keeps the meters")

	lazy := LazyCounterVec("instructions_count", []string{"name", "status"})
	lazy().AddWithLabel(2, map[string]string{"name": "stake", "status": "ok"})
	assert.Same(t, lazy(), lazy())
	// a meter created again by name shares the collector
	CounterVec("instructions_count", []string{"name", "status"}).AddWithLabel(3, map[string]string{"name": "stake", "status": "ok"})

	LazyHistogram("exec_time", BucketExecTime)().Observe(120)
	LazyCounter("tx_count")().Add(1)
	assert.Same(t, Counter("tx_count"), Counter("tx_count"))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf))
	out := buf.String()
	assert.Contains(t, out, `posvault_instructions_count{name="stake",status="ok"} 5`)
	assert.Contains(t, out, "posvault_tx_count 1")
	assert.Contains(t, out, `posvault_exec_time_bucket{le="250"} 1`)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "posvault_tx_count 1")
}

func TestLazyBindsOnFirstUse(t *testing.T) {
	lazy := LazyCounter("late_count")
	usePrometheus(t)

	lazy().Add(3)
	assert.IsType(t, &promCounter{}, lazy())

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf))
	assert.Contains(t, buf.String(), "posvault_late_count 3")
}
