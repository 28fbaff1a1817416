/*
	Copyright 2023 Google Inc.
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

package continuousaxis

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ilhamster/chartviz/category"
	testutil "github.com/ilhamster/chartviz/test_util"
	"github.com/ilhamster/chartviz/util"
)

const timeLayout = "Jan 2, 2006 at 3:04pm (MST)"

type testcase[T float64 | time.Time] struct {
	description string
	axis        *Axis[T]
	wantUpdates []util.PropertyUpdate
	wantValues  map[T]util.PropertyUpdate
}

func runTests[T float64 | time.Time](t *testing.T, testcases []testcase[T]) {
	for _, test := range testcases {
		t.Run(test.description, func(t *testing.T) {
			if msg, failed := testutil.NewUpdateComparator().
				WithTestUpdates(test.axis.Define()).
				WithWantUpdates(test.wantUpdates...).
				Compare(t); failed {
				t.Fatal(msg)
			}
			for val, want := range test.wantValues {
				if msg, failed := testutil.NewUpdateComparator().
					WithTestUpdates(test.axis.Value(test.axis.CategoryID(), val)).
					WithWantUpdates(want).
					Compare(t); failed {
					t.Fatalf("Unexpected value for '%v': %s", val, msg)
				}
			}
		})
	}
}

func TestAxis(t *testing.T) {
	refTime, err := time.Parse(timeLayout, "Jan 1, 2020 at 1:00am (PST)")
	if err != nil {
		t.Fatalf("failed to parse reference time: %s", err)
	}
	ts := func(offset time.Duration) time.Time {
		return refTime.Add(offset)
	}
	cat := category.New("x_axis", "Date", "Observation date")
	runTests(t, []testcase[time.Time]{{
		description: "timestamp",
		axis:        NewTimestampAxis(cat, ts(100), ts(0), ts(50)),
		wantUpdates: []util.PropertyUpdate{
			cat.Define(),
			util.StringProperty(axisTypeKey, timestampAxisType),
			util.TimestampProperty(axisMinKey, ts(0)),
			util.TimestampProperty(axisMaxKey, ts(100)),
		},
		wantValues: map[time.Time]util.PropertyUpdate{
			ts(10): util.TimestampProperty("x_axis", ts(10)),
		},
	}})
	runTests(t, []testcase[float64]{{
		description: "double",
		axis:        NewDoubleAxis(cat, 0, math.NaN(), 100),
		wantUpdates: []util.PropertyUpdate{
			cat.Define(),
			util.StringProperty(axisTypeKey, doubleAxisType),
			util.DoubleProperty(axisMinKey, 0),
			util.DoubleProperty(axisMaxKey, 100),
		},
		wantValues: map[float64]util.PropertyUpdate{
			5.5: util.DoubleProperty("x_axis", 5.5),
		},
	}, {
		description: "double with ticks",
		axis:        NewDoubleAxis(cat, 0, 10).WithTicks(0, 5, 10),
		wantUpdates: []util.PropertyUpdate{
			cat.Define(),
			util.StringProperty(axisTypeKey, doubleAxisType),
			util.DoubleProperty(axisMinKey, 0),
			util.DoubleProperty(axisMaxKey, 10),
			util.IntegerProperty(axisTicksKey, 3),
			util.DoubleProperty(axisTicksKey+"_0", 0),
			util.DoubleProperty(axisTicksKey+"_1", 5),
			util.DoubleProperty(axisTicksKey+"_2", 10),
		},
	}})
}

func TestRange(t *testing.T) {
	r := EmptyRange()
	if !r.Empty() {
		t.Fatalf("EmptyRange() is not empty")
	}
	r = r.Extend(3, math.NaN(), -1, math.Inf(1))
	if diff := cmp.Diff(Range{Min: -1, Max: 3}, r); diff != "" {
		t.Errorf("Extend() diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Range{Min: -1.4, Max: 3.4}, r.Pad(0.1), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Pad(0.1) diff (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Range{Min: 1.5, Max: 2.5}, Range{Min: 2, Max: 2}.Pad(0)); diff != "" {
		t.Errorf("Pad() of a degenerate range diff (-want +got):\n%s", diff)
	}
	if got := (Range{Min: 0, Max: 10}).Pixel(2.5, 100, 500); got != 200 {
		t.Errorf("Pixel(2.5) = %v, want 200", got)
	}
	if got := (Range{Min: 0, Max: 10}).Pixel(2.5, 500, 100); got != 400 {
		t.Errorf("Pixel(2.5) on a flipped range = %v, want 400", got)
	}
}

func TestTicks(t *testing.T) {
	ticks := Range{Min: 0, Max: 100}.Ticks(6)
	if len(ticks) == 0 || len(ticks) > 6 {
		t.Fatalf("Ticks(6) = %v, want between 1 and 6 ticks", ticks)
	}
	for idx, tick := range ticks {
		if tick < 0 || tick > 100 {
			t.Errorf("tick %v lies outside [0, 100]", tick)
		}
		if idx > 0 && tick <= ticks[idx-1] {
			t.Errorf("ticks %v are not increasing", ticks)
		}
	}
	if got := (Range{Min: 1, Max: 1}).Ticks(5); got != nil {
		t.Errorf("Ticks() of a degenerate range = %v, want none", got)
	}
}

func TestFormatNumber(t *testing.T) {
	for _, test := range []struct {
		description string
		v           float64
		step        float64
		scientific  bool
		want        string
	}{
		{"zero", 0, 0, true, "0"},
		{"float noise", 0.1 + 0.2, 0, true, "0.3"},
		{"integer", 250, 0, true, "250"},
		{"scientific", 100000, 0, true, "1e5"},
		{"scientific rounding", 123456, 0, true, "1.235e5"},
		{"large without scientific", 123456, 0, false, "123456"},
		{"small scientific", 0.0005, 0, true, "5e-4"},
		{"negative scientific", -2500000, 0, true, "-2.5e6"},
		{"beyond float32 precision", 16777217, 0, false, "16777217"},
		{"beyond float32 precision on a unit step", 16777217, 1, false, "16777217"},
		{"large with fraction", 123456789.25, 0, false, "123456789.25"},
		{"tick step decimals", 0.1 + 0.2, 0.1, false, "0.3"},
		{"half step", 1, 0.5, false, "1.0"},
		{"quarter step", 0.75, 0.25, false, "0.75"},
		{"near-zero noise", -5.551115123125783e-17, 0.2, false, "0.0"},
		{"coarse step", 2000, 500, false, "2000"},
	} {
		t.Run(test.description, func(t *testing.T) {
			if got := FormatNumber(test.v, test.step, test.scientific); got != test.want {
				t.Errorf("FormatNumber(%v, %v, %v) = %q, want %q", test.v, test.step, test.scientific, got, test.want)
			}
		})
	}
}

func TestTickStep(t *testing.T) {
	if got := TickStep([]float64{0, 0.2, 0.4}); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("TickStep() = %v, want 0.2", got)
	}
	if got := TickStep([]float64{3}); got != 0 {
		t.Errorf("TickStep() of one tick = %v, want 0", got)
	}
}

func TestFormatTime(t *testing.T) {
	secs := float64(time.Date(2024, time.July, 4, 12, 0, 0, 0, time.UTC).Unix())
	for _, test := range []struct {
		pattern string
		want    string
	}{
		{"", "2024-07-04"},
		{"%d %b %Y", "04 Jul 2024"},
		{"%H:%M", "12:00"},
	} {
		if got := FormatTime(secs, test.pattern); got != test.want {
			t.Errorf("FormatTime(%q) = %q, want %q", test.pattern, got, test.want)
		}
	}
}
