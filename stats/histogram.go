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

// Package stats computes the summaries charts are drawn from: histograms
// and box plot statistics.
package stats

import (
	"errors"
	"fmt"
	"math"

	mstats "github.com/aclements/go-moremath/stats"
)

// ErrEmpty is returned when a summary is requested over no values.
var ErrEmpty = errors.New("no values to summarize")

// ErrTooManyBins is returned for histograms of more than MaxBins bins.
var ErrTooManyBins = errors.New("too many histogram bins")

// MaxBins bounds the bins of a single histogram.
const MaxBins = 1 << 16

// finite returns the values of xs that are neither NaN nor infinite.
func finite(xs []float64) []float64 {
	ret := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			ret = append(ret, x)
		}
	}
	return ret
}

// Histogram is a set of adjacent bins.  Bin i spans [Edges[i], Edges[i+1]);
// the last bin also includes its upper edge.
type Histogram struct {
	Edges  []float64
	Counts []int
}

// Total returns the number of values counted.
func (h Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Bin returns the bounds and count of bin i.
func (h Histogram) Bin(i int) (left, right float64, count int) {
	return h.Edges[i], h.Edges[i+1], h.Counts[i]
}

// Bins returns a histogram of the finite values of xs in n equal-width bins
// spanning their minimum and maximum.  If all values are equal, the bins
// span that value ±0.5.  With no finite values the bins span [0, 1].
func Bins(xs []float64, n int) (Histogram, error) {
	if n < 1 {
		return Histogram{}, fmt.Errorf("bin count must be positive, got %d", n)
	}
	if n > MaxBins {
		return Histogram{}, fmt.Errorf("%d bins, at most %d allowed: %w", n, MaxBins, ErrTooManyBins)
	}
	vs := finite(xs)
	lo, hi := 0.0, 1.0
	if len(vs) > 0 {
		lo, hi = mstats.Bounds(vs)
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := make([]float64, n+1)
	for i := range edges {
		edges[i] = lo + (hi-lo)*float64(i)/float64(n)
	}
	edges[n] = hi
	return Histogram{Edges: edges, Counts: count(vs, lo, hi, n)}, nil
}

// FixedWidthEdges returns bin edges spaced width apart, starting at min and
// ending at the first edge strictly greater than max.
func FixedWidthEdges(min, max, width float64) ([]float64, error) {
	if !(width > 0) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("bin width must be positive and finite, got %v", width)
	}
	if min > max || math.IsNaN(min) || math.IsNaN(max) {
		return nil, fmt.Errorf("invalid range [%v, %v]", min, max)
	}
	nf := math.Floor((max-min)/width) + 1
	if nf > MaxBins {
		return nil, fmt.Errorf("width %v over [%v, %v] needs %v bins, at most %d allowed: %w",
			width, min, max, nf, MaxBins, ErrTooManyBins)
	}
	n := int(nf)
	edges := make([]float64, n+1, n+2)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	// The quotient can round either way across a whole number.
	for edges[len(edges)-1] <= max && len(edges) <= MaxBins+1 {
		edges = append(edges, min+float64(len(edges))*width)
	}
	for len(edges) > 2 && edges[len(edges)-2] > max {
		edges = edges[:len(edges)-1]
	}
	if len(edges)-1 > MaxBins {
		return nil, fmt.Errorf("width %v over [%v, %v] needs %d bins, at most %d allowed: %w",
			width, min, max, len(edges)-1, MaxBins, ErrTooManyBins)
	}
	return edges, nil
}

// WithWidth returns a histogram of the finite values of xs over
// FixedWidthEdges(min, max, width).  min and max are usually the bounds
// of several series plotted together, so that their bins align.
func WithWidth(xs []float64, min, max, width float64) (Histogram, error) {
	edges, err := FixedWidthEdges(min, max, width)
	if err != nil {
		return Histogram{}, err
	}
	n := len(edges) - 1
	return Histogram{Edges: edges, Counts: count(finite(xs), edges[0], edges[n], n)}, nil
}

// count bins vs into n equal bins over [lo, hi], with hi included in the
// last bin.  Values outside [lo, hi] are not counted.
func count(vs []float64, lo, hi float64, n int) []int {
	h := mstats.NewLinearHist(lo, hi, n)
	atHi := 0
	for _, v := range vs {
		switch {
		case v == hi:
			atHi++
		case v >= lo && v < hi:
			h.Add(v)
		}
	}
	_, bins, over := h.Counts()
	ret := make([]int, n)
	for i, c := range bins {
		ret[i] = int(c)
	}
	// Rounding can push values just below hi past the last bin.
	ret[n-1] += atHi + int(over)
	return ret
}
