/*
	Copyright 2025 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

package stats

import (
	"math"
	"sort"

	mstats "github.com/aclements/go-moremath/stats"
)

// Quantile returns the q-quantile of sorted by linear interpolation
// between closest ranks (Hyndman and Fan type 7).  sorted must be
// non-empty and in increasing order.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := float64(len(sorted)-1) * q
	lo := math.Floor(h)
	i := int(lo)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	if i < 0 {
		return sorted[0]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Box summarizes a sample for a box plot.
type Box struct {
	N            int
	Min, Max     float64
	Mean         float64
	Q1, Q2, Q3   float64
	IQR          float64
	Lower, Upper float64
	Outliers     []float64
}

// WhiskerFactor scales the interquartile range to place the fences.
const WhiskerFactor = 1.5

// NewBox summarizes the finite values of xs.  The fences lie
// WhiskerFactor interquartile ranges beyond the outer quartiles; values
// strictly beyond them are outliers.  The reported fences are then clipped
// to the sample's extremes.
func NewBox(xs []float64) (Box, error) {
	vs := finite(xs)
	if len(vs) == 0 {
		return Box{}, ErrEmpty
	}
	sorted := append([]float64{}, vs...)
	sort.Float64s(sorted)
	b := Box{
		N:    len(sorted),
		Mean: mstats.Mean(sorted),
		Q1:   Quantile(sorted, 0.25),
		Q2:   Quantile(sorted, 0.5),
		Q3:   Quantile(sorted, 0.75),
	}
	b.Min, b.Max = mstats.Bounds(sorted)
	b.IQR = b.Q3 - b.Q1
	upper := b.Q3 + WhiskerFactor*b.IQR
	lower := b.Q1 - WhiskerFactor*b.IQR
	for _, v := range vs {
		if v > upper || v < lower {
			b.Outliers = append(b.Outliers, v)
		}
	}
	b.Upper = math.Min(b.Max, upper)
	b.Lower = math.Max(b.Min, lower)
	return b, nil
}

// Sum returns the sum of the finite values of xs.
func Sum(xs []float64) float64 {
	total := 0.0
	for _, x := range finite(xs) {
		total += x
	}
	return total
}
