package query

import (
	"math"
	"strings"

	"gorm.io/gorm"
)

// Kind selects the comparison a Filter applies to its column.
type Kind int

const (
	Equals Kind = iota
	GreaterOrEqual
	LessOrEqual
	// ContainsFold matches substrings case-insensitively.
	ContainsFold
)

// Filter is one declared filter field bound to a concrete value.
type Filter struct {
	Column string
	Kind   Kind
	Value  interface{}
}

// Options are the caller-supplied paging and sorting knobs, usually parsed
// straight from query-string parameters.
type Options struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Definition declares per-entity defaults and the allowlist of sortable
// columns. Unknown sort fields or orders fall back to the defaults rather
// than failing.
type Definition struct {
	DefaultLimit     int
	DefaultSortBy    string
	DefaultSortOrder string
	SortColumns      map[string]string
}

// Pagination is the metadata derived from a total row count and page size.
type Pagination struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// Normalize clamps page and limit and resolves the sort clause against the
// definition's allowlist.
func (d Definition) Normalize(opts Options) Options {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = d.DefaultLimit
	}

	column, ok := d.SortColumns[opts.SortBy]
	if !ok {
		column = d.SortColumns[d.DefaultSortBy]
	}
	opts.SortBy = column

	switch strings.ToLower(opts.SortOrder) {
	case "asc":
		opts.SortOrder = "asc"
	case "desc":
		opts.SortOrder = "desc"
	default:
		opts.SortOrder = d.DefaultSortOrder
	}
	return opts
}

// Apply ANDs every filter onto the query.
func Apply(db *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		db = where(db, f)
	}
	return db
}

// Any ORs the filters together as one grouped condition. Used for predicates
// that span columns, like the score-range filter matching either team's
// score.
func Any(db *gorm.DB, filters []Filter) *gorm.DB {
	if len(filters) == 0 {
		return db
	}
	group := where(db.Session(&gorm.Session{NewDB: true}), filters[0])
	for _, f := range filters[1:] {
		group = group.Or(whereClause(f), f.Value)
	}
	return db.Where(group)
}

func where(db *gorm.DB, f Filter) *gorm.DB {
	return db.Where(whereClause(f), f.Value)
}

func whereClause(f Filter) string {
	switch f.Kind {
	case GreaterOrEqual:
		return f.Column + " >= ?"
	case LessOrEqual:
		return f.Column + " <= ?"
	case ContainsFold:
		return "LOWER(" + f.Column + ") LIKE LOWER('%' || ? || '%')"
	default:
		return f.Column + " = ?"
	}
}

// Paginate runs one count query and one bounded sorted scan, filling dest
// with the page of rows and returning the derived pagination metadata. The
// two queries are not snapshot-consistent with each other under concurrent
// writes; for this workload that is an accepted limitation.
func Paginate(db *gorm.DB, d Definition, opts Options, dest interface{}) (Pagination, error) {
	opts = d.Normalize(opts)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (opts.Page - 1) * opts.Limit
	err := db.
		Order(opts.SortBy + " " + opts.SortOrder).
		Offset(offset).
		Limit(opts.Limit).
		Find(dest).Error
	if err != nil {
		return Pagination{}, err
	}

	return Paging(total, opts.Page, opts.Limit), nil
}

// Paging computes pagination metadata from a total count. An empty result
// set yields zero total pages and no next page.
func Paging(total int64, page, limit int) Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return Pagination{
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    limit,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
