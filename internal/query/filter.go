// internal/query/filter.go
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidFilter = errors.New("invalid filter value")

// Op is the comparison a filter key applies to its column.
type Op int

const (
	// Contains is a case-insensitive substring match.
	Contains Op = iota
	Equals
	AtLeast
	AtMost
)

// Kind describes how a filter value is checked before binding.
type Kind int

const (
	Text Kind = iota
	Integer
	Decimal
)

// Field maps one query parameter onto one column predicate.
type Field struct {
	Key    string
	Column string
	Op     Op
	Kind   Kind
}

// Criteria holds the filter values of a single request, keyed by parameter name.
type Criteria map[string]string

// CriteriaFromValues keeps the first value of every query parameter.
func CriteriaFromValues(values url.Values) Criteria {
	criteria := make(Criteria, len(values))
	for key, v := range values {
		if len(v) > 0 {
			criteria[key] = v[0]
		}
	}
	return criteria
}

// Filter is a fixed base query plus the ordered set of keys it recognizes.
type Filter struct {
	// Base is the unfiltered SELECT.
	Base string
	// Prefiltered is set when Base already has a WHERE clause, so extra
	// predicates are attached with AND.
	Prefiltered bool
	OrderBy     string
	Fields      []Field
}

// CarParts filters the products table.
var CarParts = Filter{
	Base:    "SELECT * FROM products",
	OrderBy: "id",
	Fields: []Field{
		{Key: "name", Column: "name", Op: Contains},
		{Key: "car", Column: "car", Op: Contains},
		{Key: "condition", Column: "condition", Op: Equals},
		{Key: "stock_status", Column: "stock_status", Op: Equals},
		{Key: "part", Column: "part", Op: Contains},
		{Key: "category", Column: "category", Op: Equals},
	},
}

// UsedCars filters the used_cars table, pre-scoped to the used_car discriminator.
var UsedCars = Filter{
	Base:        "SELECT * FROM used_cars WHERE type = 'used_car'",
	Prefiltered: true,
	OrderBy:     "id",
	Fields: []Field{
		{Key: "make", Column: "make", Op: Contains},
		{Key: "model", Column: "model", Op: Contains},
		{Key: "year_from", Column: "year", Op: AtLeast, Kind: Integer},
		{Key: "year_to", Column: "year", Op: AtMost, Kind: Integer},
		{Key: "price_from", Column: "price", Op: AtLeast, Kind: Decimal},
		{Key: "price_to", Column: "price", Op: AtMost, Kind: Decimal},
	},
}

// Build renders the filtered query and its positional parameters. Keys not
// listed in f.Fields are ignored, as are blank values.
func (f Filter) Build(criteria Criteria) (string, []any, error) {
	var b Builder
	for _, field := range f.Fields {
		raw := strings.TrimSpace(criteria[field.Key])
		if raw == "" {
			continue
		}

		value, err := field.value(raw)
		if err != nil {
			return "", nil, err
		}
		b.Where(field.predicate(), value)
	}

	where, args := b.Render()

	var sb strings.Builder
	sb.WriteString(f.Base)
	if where != "" {
		if f.Prefiltered {
			sb.WriteString(" AND ")
		} else {
			sb.WriteString(" WHERE ")
		}
		sb.WriteString(where)
	}
	if f.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(f.OrderBy)
	}

	if args == nil {
		args = []any{}
	}
	return sb.String(), args, nil
}

func (fd Field) predicate() string {
	switch fd.Op {
	case Contains:
		return fd.Column + " ILIKE ?"
	case AtLeast:
		return fd.Column + " >= ?"
	case AtMost:
		return fd.Column + " <= ?"
	default:
		return fd.Column + " = ?"
	}
}

func (fd Field) value(raw string) (any, error) {
	switch fd.Kind {
	case Integer:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a whole number", ErrInvalidFilter, fd.Key)
		}
		return n, nil
	case Decimal:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidFilter, fd.Key)
		}
		return d.String(), nil
	}

	if fd.Op == Contains {
		return "%" + raw + "%", nil
	}
	return raw, nil
}
