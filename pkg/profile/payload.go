// Package profile defines the typed officer records and the normalizers
// that shape the report API's column/label-keyed payloads into them.
package profile

import (
	"encoding/json"
	"errors"
)

// ErrMalformedList indicates a list payload without the expected
// top-level shape.
var ErrMalformedList = errors.New("malformed list payload")

// Cell is a single column or item value keyed by the upstream's opaque id.
type Cell struct {
	ID    string `json:"Id"`
	Value string `json:"Value"`
}

// Row is one record in a report payload. List rows carry Columns plus the
// taxid in RowValue; summary rows carry Items; discipline child rows also
// carry a GroupName composite label.
type Row struct {
	RowValue  string `json:"RowValue"`
	GroupName string `json:"GroupName"`
	Columns   []Cell `json:"Columns"`
	Items     []Cell `json:"Items"`
}

// ListPayload is the paginated list response shape.
type ListPayload struct {
	Total int   `json:"Total"`
	Data  []Row `json:"Data"`
}

// RowExtractable exposes the labeled cells of a report row. Report kinds
// diverge in which cell list they populate, so each variant picks its own.
type RowExtractable interface {
	Cells() []Cell
}

// ColumnRow reads the Columns cells of a row (list and report rows).
type ColumnRow Row

// Cells implements RowExtractable.
func (r ColumnRow) Cells() []Cell { return r.Columns }

// ItemRow reads the Items cells of a row (summary rows).
type ItemRow Row

// Cells implements RowExtractable.
func (r ItemRow) Cells() []Cell { return r.Items }

// DecodeList decodes a paginated list payload. A payload without a Data
// list is malformed; the partition must be retried wholesale.
func DecodeList(payload []byte) (ListPayload, error) {
	var list ListPayload
	if err := json.Unmarshal(payload, &list); err != nil {
		return ListPayload{}, errors.Join(ErrMalformedList, err)
	}
	if list.Data == nil {
		return ListPayload{}, ErrMalformedList
	}
	return list, nil
}

// DecodeReport decodes a report payload into its rows. Null, absent, or
// non-list payloads yield (nil, false): "no report" rather than an error,
// which is a distinguishable state from "fetched but empty".
func DecodeReport(payload []byte) ([]Row, bool) {
	if len(payload) == 0 {
		return nil, false
	}
	var rows []Row
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, false
	}
	if rows == nil {
		return nil, false
	}
	return rows, true
}
