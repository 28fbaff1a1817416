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

// Package testutil provides helpers for testing chart data exports.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/chartviz/util"
)

// UpdateComparator checks that a set of PropertyUpdates under test yields
// the same datum as a set of wanted PropertyUpdates.
type UpdateComparator struct {
	got  []util.PropertyUpdate
	want []util.PropertyUpdate
}

// NewUpdateComparator returns a new, empty UpdateComparator.
func NewUpdateComparator() *UpdateComparator {
	return &UpdateComparator{}
}

// WithTestUpdates specifies the receiver's PropertyUpdates under test.
func (uc *UpdateComparator) WithTestUpdates(got ...util.PropertyUpdate) *UpdateComparator {
	uc.got = got
	return uc
}

// WithWantUpdates specifies the PropertyUpdates the test updates should be
// equivalent to.
func (uc *UpdateComparator) WithWantUpdates(want ...util.PropertyUpdate) *UpdateComparator {
	uc.want = want
	return uc
}

// Compare returns a difference message and true if the receiver's test and
// want updates differ, or "" and false if they do not.  Repeated-field order
// matters; string table order does not.
func (uc *UpdateComparator) Compare(t *testing.T) (string, bool) {
	t.Helper()
	drb := util.NewDataResponseBuilder()
	series := drb.DataSeries(&util.DataSeriesRequest{})
	series.Child().With(uc.got...)
	series.Child().With(uc.want...)
	data, err := drb.Data()
	if err != nil {
		t.Fatalf("failed to build data: %s", err)
	}
	st := data.StringTable
	children := data.DataSeries[0].Root.Children
	if diff := cmp.Diff(children[1].PrettyPrint("", st), children[0].PrettyPrint("", st)); diff != "" {
		return fmt.Sprintf("Got series %s, diff (-want +got):\n%s",
			data.DataSeries[0].PrettyPrint("", st), diff), true
	}
	return "", false
}

// TestDataBuilder fluently assembles expected responses in tests.
type TestDataBuilder interface {
	With(updates ...util.PropertyUpdate) TestDataBuilder
	Child() TestDataBuilder
	AndChild() TestDataBuilder
	Parent() TestDataBuilder
}

type testDataBuilder struct {
	db     util.DataBuilder
	parent *testDataBuilder
}

// With applies the provided PropertyUpdates to the receiver in order.
func (tdb *testDataBuilder) With(updates ...util.PropertyUpdate) TestDataBuilder {
	tdb.db.With(updates...)
	return tdb
}

// Child adds a child datum to the receiver and returns a builder for it.
func (tdb *testDataBuilder) Child() TestDataBuilder {
	return &testDataBuilder{
		db:     tdb.db.Child(),
		parent: tdb,
	}
}

// AndChild adds a sibling of the receiver, or a child if the receiver has
// no parent.
func (tdb *testDataBuilder) AndChild() TestDataBuilder {
	if tdb.parent == nil {
		return tdb.Child()
	}
	return tdb.parent.Child()
}

// Parent returns the receiver's parent, or the receiver if it has none.
func (tdb *testDataBuilder) Parent() TestDataBuilder {
	if tdb.parent == nil {
		return tdb
	}
	return tdb.parent
}

func dataOf(d any) (*util.Data, error) {
	switch v := d.(type) {
	case *util.DataResponseBuilder:
		return v.Data()
	case *util.Data:
		return v, nil
	default:
		return nil, fmt.Errorf("argument must be a *util.DataResponseBuilder or a *util.Data, got %T", d)
	}
}

// CompareDataResponses compares got and want, each a
// *util.DataResponseBuilder or a *util.Data, reporting any difference on t.
// Problems other than a difference are returned.
func CompareDataResponses(t *testing.T, got, want any) error {
	t.Helper()
	gotData, err := dataOf(got)
	if err != nil {
		return err
	}
	wantData, err := dataOf(want)
	if err != nil {
		return err
	}
	gotPP, wantPP := gotData.PrettyPrint(), wantData.PrettyPrint()
	if diff := cmp.Diff(wantPP, gotPP); diff != "" {
		t.Errorf("Got data %s, diff (-want, +got) %s", gotPP, diff)
	}
	return nil
}

func build(t *testing.T, drb *util.DataResponseBuilder, fn any) {
	t.Helper()
	series := drb.DataSeries(&util.DataSeriesRequest{})
	switch buildFn := fn.(type) {
	case func(util.DataBuilder):
		buildFn(series)
	case func(TestDataBuilder):
		buildFn(&testDataBuilder{db: series})
	default:
		t.Fatalf("expected func(util.DataBuilder) or func(testutil.TestDataBuilder), got %T", fn)
	}
}

// CompareResponses compares the response built by buildGot with the one
// built by buildWant.  Each is a func(util.DataBuilder) or a
// func(TestDataBuilder).
func CompareResponses(t *testing.T, buildGot, buildWant any) error {
	t.Helper()
	gotDrb, wantDrb := util.NewDataResponseBuilder(), util.NewDataResponseBuilder()
	build(t, gotDrb, buildGot)
	build(t, wantDrb, buildWant)
	return CompareDataResponses(t, gotDrb, wantDrb)
}
