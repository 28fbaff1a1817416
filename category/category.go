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

// Package category declares data categories: the series of a line chart,
// the factors of a bar chart, the columns of a statistics table.  A
// DataBuilder may Define one Category and hold that category's data in its
// children; items elsewhere may be Tagged as belonging to categories.
package category

import (
	"github.com/ilhamster/chartviz/util"
)

const (
	categoryDefinedIDKey   = "category_defined_id"
	categoryDescriptionKey = "category_description"
	categoryDisplayNameKey = "category_display_name"
	categoryIDsKey         = "category_ids"
)

// Category is a named data category.
type Category struct {
	id, description, displayName string
}

// New returns a new Category with the provided ID, display name, and
// description.
func New(id, displayName, description string) *Category {
	return &Category{
		id:          id,
		description: description,
		displayName: displayName,
	}
}

// Define defines a category.  If multiple categories are Defined on the same
// DataBuilder, only the last takes effect.
func (c *Category) Define() util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(categoryDefinedIDKey, c.id),
		util.StringProperty(categoryDisplayNameKey, c.displayName),
		util.StringProperty(categoryDescriptionKey, c.description),
	)
}

// FromName returns a Category whose ID and display name are both name, as
// used for series named by the values of a data column.
func FromName(name string) *Category {
	return New(name, name, "")
}

// DisplayName returns the category's display name.
func (c *Category) DisplayName() string {
	return c.displayName
}

// ID returns the category's ID.
func (c *Category) ID() string {
	return c.id
}

// Tag annotates an item as belonging to a category.  Multiple Categories may
// Tag the same item in succession.
func (c *Category) Tag() util.PropertyUpdate {
	return util.StringsPropertyExtended(categoryIDsKey, c.id)
}

// Tag annotates with the provided set of Categories.
func Tag(cats ...*Category) util.PropertyUpdate {
	categoryIDs := make([]string, len(cats))
	for idx, cat := range cats {
		categoryIDs[idx] = cat.id
	}
	return util.StringsPropertyExtended(categoryIDsKey, categoryIDs...)
}

// Distinct returns the distinct values in first-seen order.
func Distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	ret := []string{}
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		ret = append(ret, v)
	}
	return ret
}

// Index maps each of the provided values to its rank among the distinct
// values, in first-seen order.
func Index(values []string) map[string]int {
	ret := map[string]int{}
	for _, v := range values {
		if _, ok := ret[v]; !ok {
			ret[v] = len(ret)
		}
	}
	return ret
}
