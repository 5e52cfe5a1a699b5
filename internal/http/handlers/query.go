package handlers

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/shubham23mamgain/bringit/domain"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	// keeps (page-1)*limit far from int overflow
	maxPage = 1_000_000
)

// productFields maps the JSON names clients use onto product columns
var productFields = map[string]string{
	"_id":          "id",
	"title":        "title",
	"slug":         "slug",
	"description":  "description",
	"price":        "price",
	"category":     "category",
	"brand":        "brand",
	"quantity":     "quantity",
	"sold":         "sold",
	"color":        "color",
	"totalRatings": "total_ratings",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}

var numericProductColumns = map[string]bool{
	"price":         true,
	"quantity":      true,
	"sold":          true,
	"total_ratings": true,
}

var reservedQueryKeys = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

var filterOps = map[string]domain.FilterOp{
	"gt":  domain.OpGt,
	"gte": domain.OpGte,
	"lt":  domain.OpLt,
	"lte": domain.OpLte,
}

// ParseProductQuery turns listing query parameters into a ProductQuery.
//
//	?brand=Apple&price[gte]=100&sort=-price,title&fields=title,price&page=2&limit=5
func ParseProductQuery(values url.Values) (domain.ProductQuery, error) {
	var q domain.ProductQuery

	keys := make([]string, 0, len(values))
	for k := range values {
		if !reservedQueryKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, raw := range values[key] {
			f, err := parseFilter(key, raw)
			if err != nil {
				return q, err
			}
			q.Filters = append(q.Filters, f)
		}
	}

	sortFields, err := parseSort(values.Get("sort"))
	if err != nil {
		return q, err
	}
	q.Sort = sortFields

	columns, err := parseFields(values.Get("fields"))
	if err != nil {
		return q, err
	}
	q.Columns = columns

	if q.Page, err = positiveInt(values, "page", maxPage); err != nil {
		return q, err
	}
	if q.Limit, err = positiveInt(values, "limit", maxPageLimit); err != nil {
		return q, err
	}
	switch {
	case q.Page > 0 && q.Limit == 0:
		q.Limit = defaultPageLimit
	case q.Page == 0 && q.Limit > 0:
		q.Page = 1
	}
	return q, nil
}

func parseFilter(key, raw string) (domain.Filter, error) {
	name, op := key, domain.OpEq
	if i := strings.IndexByte(key, '['); i >= 0 {
		if !strings.HasSuffix(key, "]") {
			return domain.Filter{}, &domain.ValidationError{Field: key, Reason: "malformed filter"}
		}
		var ok bool
		name = key[:i]
		if op, ok = filterOps[key[i+1:len(key)-1]]; !ok {
			return domain.Filter{}, &domain.ValidationError{Field: key, Reason: "unsupported operator"}
		}
	}

	column, ok := productFields[name]
	if !ok {
		return domain.Filter{}, &domain.ValidationError{Field: name, Reason: "not a filterable field"}
	}

	var value any = raw
	if numericProductColumns[column] {
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Filter{}, &domain.ValidationError{Field: name, Reason: "must be a number"}
		}
		value = n
	}
	return domain.Filter{Column: column, Op: op, Value: value}, nil
}

func parseSort(raw string) ([]domain.SortField, error) {
	if strings.TrimSpace(raw) == "" {
		return []domain.SortField{{Column: "created_at", Desc: true}}, nil
	}
	var out []domain.SortField
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		column, ok := productFields[name]
		if !ok {
			return nil, &domain.ValidationError{Field: "sort", Reason: name + " is not a sortable field"}
		}
		out = append(out, domain.SortField{Column: column, Desc: desc})
	}
	return out, nil
}

// parseFields always keeps the id column so results stay addressable
func parseFields(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	columns := []string{"id"}
	seen := map[string]bool{"id": true}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		column, ok := productFields[part]
		if !ok {
			return nil, &domain.ValidationError{Field: "fields", Reason: part + " is not a selectable field"}
		}
		if !seen[column] {
			seen[column] = true
			columns = append(columns, column)
		}
	}
	return columns, nil
}

func positiveInt(values url.Values, key string, upper int) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, &domain.ValidationError{Field: key, Reason: "must be a positive integer"}
	}
	if n > upper {
		return 0, &domain.ValidationError{Field: key, Reason: fmt.Sprintf("must be at most %d", upper)}
	}
	return n, nil
}
