// Package view derives table state from a raw collection: the filtered,
// sorted, paginated rows plus the overview metrics. Everything here is a pure
// function of its inputs.
package view

import "sort"

// FilterKind selects how a filter predicate compares.
type FilterKind int

const (
	// FilterEquality matches records whose field equals the filter value.
	// An empty value (or the sentinel "all") matches everything.
	FilterEquality FilterKind = iota
	// FilterRange matches records whose numeric field lies in [Min, Max].
	FilterRange
)

// Filter is one tagged predicate over a named field.
type Filter struct {
	Kind   FilterKind
	Field  string
	Equals string
	Min    float64
	Max    float64
}

// Sort orders rows by one column; ties keep their input order.
type Sort struct {
	Field      string
	Descending bool
}

// Page is a 1-based page request. A Size of 0 falls back to DefaultPageSize.
type Page struct {
	Index int
	Size  int
}

const DefaultPageSize = 10

// Criteria bundles the user-selected table state.
type Criteria struct {
	Filters []Filter
	Sort    *Sort
	Page    Page
}

// Value is one comparable field value: either a string or a number.
type Value struct {
	Str   string
	Num   float64
	IsNum bool
}

func StringValue(s string) Value  { return Value{Str: s} }
func NumberValue(n float64) Value { return Value{Num: n, IsNum: true} }

// Accessor resolves a named field of a record to a comparable value. It
// reports false for fields the record type does not expose; filters on such
// fields match nothing and sorts on them leave the order unchanged.
type Accessor[T any] func(rec T, field string) (Value, bool)

// Result is the visible window over the filtered and sorted collection.
type Result[T any] struct {
	Rows      []T `json:"data"`
	Total     int `json:"total"`
	Page      int `json:"page"`
	PerPage   int `json:"perPage"`
	PageCount int `json:"pageCount"`
}

func (f Filter) matches(v Value, ok bool) bool {
	switch f.Kind {
	case FilterEquality:
		if f.Equals == "" || f.Equals == "all" {
			return true
		}
		return ok && v.Str == f.Equals
	case FilterRange:
		return ok && v.IsNum && v.Num >= f.Min && v.Num <= f.Max
	}
	return false
}

// ApplyFilters returns the subset of rows matching every filter. Filters
// compose conjunctively and applying the same criteria twice is a no-op.
func ApplyFilters[T any](rows []T, acc Accessor[T], filters []Filter) []T {
	if len(filters) == 0 {
		out := make([]T, len(rows))
		copy(out, rows)
		return out
	}
	out := make([]T, 0, len(rows))
	for _, rec := range rows {
		keep := true
		for _, f := range filters {
			v, ok := acc(rec, f.Field)
			if !f.matches(v, ok) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out
}

func less(a, b Value) bool {
	if a.IsNum && b.IsNum {
		return a.Num < b.Num
	}
	return a.Str < b.Str
}

// ApplySort sorts rows in place by the sort column. The sort is stable:
// records with equal keys keep their relative order from the input.
func ApplySort[T any](rows []T, acc Accessor[T], s *Sort) {
	if s == nil || s.Field == "" {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := acc(rows[i], s.Field)
		b, bok := acc(rows[j], s.Field)
		if !aok || !bok {
			return false
		}
		if s.Descending {
			return less(b, a)
		}
		return less(a, b)
	})
}

// ClampPage normalizes a page request against the row count: the size falls
// back to the default, and an out-of-range index clamps to the nearest valid
// page instead of erroring.
func ClampPage(total int, p Page) (index, size, pageCount int) {
	size = p.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	pageCount = (total + size - 1) / size
	if pageCount < 1 {
		pageCount = 1
	}
	index = p.Index
	if index < 1 {
		index = 1
	}
	if index > pageCount {
		index = pageCount
	}
	return index, size, pageCount
}

// Apply derives the visible window: filter, sort, then paginate.
func Apply[T any](rows []T, acc Accessor[T], c Criteria) Result[T] {
	filtered := ApplyFilters(rows, acc, c.Filters)
	ApplySort(filtered, acc, c.Sort)

	index, size, pageCount := ClampPage(len(filtered), c.Page)
	start := (index - 1) * size
	end := start + size
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result[T]{
		Rows:      filtered[start:end],
		Total:     len(filtered),
		Page:      index,
		PerPage:   size,
		PageCount: pageCount,
	}
}
