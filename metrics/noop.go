// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

type noop struct{}

func (noop) Counter(string) CountMeter                 { return noop{} }
func (noop) CounterVec(string, []string) CountVecMeter { return noop{} }
func (noop) Histogram(string, []int64) HistogramMeter  { return noop{} }

func (noop) Add(int64)                             {}
func (noop) AddWithLabel(int64, map[string]string) {}
func (noop) Observe(int64)                         {}
