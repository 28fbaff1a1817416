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

package color

import (
	"testing"

	testutil "github.com/ilhamster/chartviz/test_util"
	"github.com/ilhamster/chartviz/util"
)

func TestColorSpaceDefinition(t *testing.T) {
	for _, test := range []struct {
		description string
		spaces      []*Space
		wantUpdates []util.PropertyUpdate
	}{{
		description: "single color space",
		spaces: []*Space{
			NewSpace("outline", "#020B13"),
		},
		wantUpdates: []util.PropertyUpdate{
			util.StringsProperty(colorSpaceNamePrefix+"outline", "#020B13"),
		},
	}, {
		description: "multiple color spaces",
		spaces: []*Space{
			NewSpace("heat", "#F8DA00", "#E72D34"),
			NewSpace("blues", "#084594", "#9ECAE1"),
		},
		wantUpdates: []util.PropertyUpdate{
			util.StringsProperty(colorSpaceNamePrefix+"heat", "#F8DA00", "#E72D34"),
			util.StringsProperty(colorSpaceNamePrefix+"blues", "#084594", "#9ECAE1"),
		},
	}, {
		description: "redefinition overwrites",
		spaces: []*Space{
			NewSpace("blues", "#084594", "#9ECAE1"),
			NewSpace("blues", "#9ECAE1", "#084594"),
		},
		wantUpdates: []util.PropertyUpdate{
			util.StringsProperty(colorSpaceNamePrefix+"blues", "#9ECAE1", "#084594"),
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			testUpdates := []util.PropertyUpdate{}
			for _, space := range test.spaces {
				testUpdates = append(testUpdates, space.Define())
			}
			if msg, failed := testutil.NewUpdateComparator().
				WithTestUpdates(testUpdates...).
				WithWantUpdates(test.wantUpdates...).
				Compare(t); failed {
				t.Fatal(msg)
			}
		})
	}
}

func TestColorDeclarations(t *testing.T) {
	redToBlue := NewSpace("red_to_blue", "red", "#C0C0C0", "blue")
	whiteToBlack := NewSpace("white_to_black", "white", "black")
	for _, test := range []struct {
		description  string
		buildUpdates func() util.PropertyUpdate
		wantUpdates  []util.PropertyUpdate
	}{{
		description: "primary from color space",
		buildUpdates: func() util.PropertyUpdate {
			return redToBlue.PrimaryColor(.5)
		},
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty(primaryColorSpaceKey, colorSpaceNamePrefix+"red_to_blue"),
			util.DoubleProperty(primaryColorSpaceValueKey, .5),
		},
	}, {
		description: "all defined",
		buildUpdates: func() util.PropertyUpdate {
			return util.Chain(
				redToBlue.PrimaryColor(.3),
				Secondary("silver"),
				whiteToBlack.StrokeColor(.7),
				Alpha(0.6),
			)
		},
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty(primaryColorSpaceKey, colorSpaceNamePrefix+"red_to_blue"),
			util.DoubleProperty(primaryColorSpaceValueKey, .3),
			util.StringProperty(secondaryColorKey, "silver"),
			util.StringProperty(strokeColorSpaceKey, colorSpaceNamePrefix+"white_to_black"),
			util.DoubleProperty(strokeColorSpaceValueKey, .7),
			util.DoubleProperty(alphaKey, 0.6),
		},
	}, {
		description: "raw colors",
		buildUpdates: func() util.PropertyUpdate {
			return util.Chain(Primary("#0097AC"), Stroke("#020B13"))
		},
		wantUpdates: []util.PropertyUpdate{
			util.StringProperty(primaryColorKey, "#0097AC"),
			util.StringProperty(strokeColorKey, "#020B13"),
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			testUpdates := test.buildUpdates()
			if msg, failed := testutil.NewUpdateComparator().
				WithTestUpdates(testUpdates).
				WithWantUpdates(test.wantUpdates...).
				Compare(t); failed {
				t.Fatal(msg)
			}
		})
	}
}
