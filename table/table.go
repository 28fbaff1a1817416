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

// Package table exports tabular chart summaries, such as per-category
// statistics, as response data.  A table is built in a DataBuilder
// dedicated to it:
//
//	t := table.New(db, renderSettings, columns...)
//	t.Row(table.Cell(column, value), ...)
//
// Rows and cells may carry typed payloads holding data too bulky for a
// cell, such as a category's outlier values:
//
//	t.Row(...).Payload("outliers").With(...)
//
// The exported structure is:
//
//	table
//	  properties: render settings and decorators
//	  children: the column group, then one child per row
//
//	column group
//	  children: one column definition (a category definition plus
//	  decorators) per column
//
//	row
//	  properties: decorators
//	  children: cells, then payloads
//
//	cell
//	  properties: column tag, and either cellKey holding the value or
//	  formattedCellKey holding a format string over the cell's properties
//	  children: payloads
//
//	payload
//	  properties: payloadTypeKey naming the payload's type, and anything
//	  else
package table

import (
	"github.com/ilhamster/chartviz/category"
	"github.com/ilhamster/chartviz/util"
)

const (
	cellKey          = "table_cell"
	formattedCellKey = "table_formatted_cell"
	payloadTypeKey   = "table_payload_type"

	rowHeightPxKey = "table_row_height_px"
	fontSizePxKey  = "table_font_size_px"
)

// RenderSettings configures how a table is drawn.
type RenderSettings struct {
	RowHeightPx int64
	FontSizePx  int64
}

func (rs *RenderSettings) define() util.PropertyUpdate {
	if rs == nil {
		return util.EmptyUpdate
	}
	return util.Chain(
		util.IntegerProperty(rowHeightPxKey, rs.RowHeightPx),
		util.IntegerProperty(fontSizePxKey, rs.FontSizePx),
	)
}

// ColumnUpdate is a table column: a category naming it, and any column
// decorators.
type ColumnUpdate struct {
	cat        *category.Category
	properties []util.PropertyUpdate
}

// Column returns a new column with the provided category and decorators.
func Column(cat *category.Category, properties ...util.PropertyUpdate) *ColumnUpdate {
	return &ColumnUpdate{
		cat:        cat,
		properties: append(properties, cat.Define()),
	}
}

// With decorates the receiving column.
func (cu *ColumnUpdate) With(properties ...util.PropertyUpdate) *ColumnUpdate {
	cu.properties = append(cu.properties, properties...)
	return cu
}

// Category returns the receiver's category.
func (cu *ColumnUpdate) Category() *category.Category {
	return cu.cat
}

// CellUpdate annotates a datum as a table cell.
type CellUpdate util.PropertyUpdate

// Cell returns a cell in the provided column holding value, with any
// additional properties.
func Cell(column *ColumnUpdate, value util.Value, properties ...util.PropertyUpdate) CellUpdate {
	return CellUpdate(util.Chain(append(properties,
		column.cat.Tag(),
		value(cellKey),
	)...))
}

// FormattedCell returns a cell in the provided column displaying format,
// whose references are resolved from the provided properties.
func FormattedCell(column *ColumnUpdate, format string, properties ...util.PropertyUpdate) CellUpdate {
	return CellUpdate(util.Chain(append(properties,
		column.cat.Tag(),
		util.StringProperty(formattedCellKey, format),
	)...))
}

// payload adds a typed payload child to db.
func payload(db util.DataBuilder, kind string) util.DataBuilder {
	return db.Child().With(util.StringProperty(payloadTypeKey, kind))
}

// Node is a table under construction.
type Node struct {
	db util.DataBuilder
}

// New defines a table with the provided columns in db.
func New(db util.DataBuilder, renderSettings *RenderSettings, columns ...*ColumnUpdate) *Node {
	colGroup := db.Child()
	for _, column := range columns {
		colGroup.Child().With(column.properties...)
	}
	db.With(renderSettings.define())
	return &Node{db: db}
}

// With decorates the receiving table.
func (n *Node) With(properties ...util.PropertyUpdate) *Node {
	n.db.With(properties...)
	return n
}

// RowNode is a table row under construction.
type RowNode struct {
	db util.DataBuilder
}

// Row adds a row holding the provided cells.  Cells added this way cannot
// take payloads; use AddCell for those.
func (n *Node) Row(cells ...CellUpdate) *RowNode {
	db := n.db.Child()
	for _, cell := range cells {
		db.Child().With(util.PropertyUpdate(cell))
	}
	return &RowNode{db: db}
}

// With decorates the receiving row.
func (rn *RowNode) With(properties ...util.PropertyUpdate) *RowNode {
	rn.db.With(properties...)
	return rn
}

// Payload adds a payload of the provided type to the receiving row.
func (rn *RowNode) Payload(kind string) util.DataBuilder {
	return payload(rn.db, kind)
}

// CellNode is a table cell under construction.
type CellNode struct {
	db util.DataBuilder
}

// AddCell adds the provided cell to the receiving row.
func (rn *RowNode) AddCell(cell CellUpdate) *CellNode {
	return &CellNode{
		db: rn.db.Child().With(util.PropertyUpdate(cell)),
	}
}

// With decorates the receiving cell.
func (cn *CellNode) With(properties ...util.PropertyUpdate) *CellNode {
	cn.db.With(properties...)
	return cn
}

// Payload adds a payload of the provided type to the receiving cell.
func (cn *CellNode) Payload(kind string) util.DataBuilder {
	return payload(cn.db, kind)
}
