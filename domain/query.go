package domain

import "math"

// FilterOp is a comparison operator accepted by the product query builder
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
)

// Filter is one column predicate
type Filter struct {
	Column string
	Op     FilterOp
	Value  any
}

// SortField orders results by one column
type SortField struct {
	Column string
	Desc   bool
}

// ProductQuery is the storage-neutral form of a product listing request
type ProductQuery struct {
	Filters []Filter
	Sort    []SortField
	Columns []string
	Page    int
	Limit   int
}

// Offset returns the number of rows to skip, zero when unpaginated. It
// saturates at math.MaxInt instead of overflowing.
func (q ProductQuery) Offset() int {
	if q.Page <= 0 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// Paginated reports whether a page was requested
func (q ProductQuery) Paginated() bool {
	return q.Page > 0
}
