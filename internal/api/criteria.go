package api

import (
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/wathera-admin/internal/view"
)

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

// filterParam maps one query parameter to an equality filter on a field.
type filterParam struct {
	param string
	field string
}

// rangeParam maps a min/max query parameter pair to a range filter.
type rangeParam struct {
	minParam string
	maxParam string
	field    string
}

// parseCriteria builds the view criteria from the listing query parameters.
// Pagination accepts both perPage and the legacy pageSize name; sort order is
// asc unless order says desc.
func parseCriteria(r *http.Request, equalities []filterParam, ranged rangeParam) view.Criteria {
	q := r.URL.Query()
	var c view.Criteria

	for _, eq := range equalities {
		value := strings.TrimSpace(q.Get(eq.param))
		if value == "" || value == "all" {
			continue
		}
		c.Filters = append(c.Filters, view.Filter{
			Kind:   view.FilterEquality,
			Field:  eq.field,
			Equals: value,
		})
	}

	minStr, maxStr := q.Get(ranged.minParam), q.Get(ranged.maxParam)
	if minStr != "" || maxStr != "" {
		f := view.Filter{Kind: view.FilterRange, Field: ranged.field, Min: 0, Max: math.MaxFloat64}
		if n, err := strconv.ParseFloat(minStr, 64); err == nil {
			f.Min = n
		}
		if n, err := strconv.ParseFloat(maxStr, 64); err == nil {
			f.Max = n
		}
		c.Filters = append(c.Filters, f)
	}

	if field := strings.TrimSpace(q.Get("sort")); field != "" {
		c.Sort = &view.Sort{
			Field:      field,
			Descending: strings.EqualFold(q.Get("order"), "desc"),
		}
	}

	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		c.Page.Index = n
	}
	perPage := q.Get("perPage")
	if perPage == "" {
		perPage = q.Get("pageSize")
	}
	if n, err := strconv.Atoi(perPage); err == nil && n > 0 && n <= 500 {
		c.Page.Size = n
	}
	return c
}
