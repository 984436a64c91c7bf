// Package query builds parameterized predicate queries and paginated
// result envelopes shared by every resource listing.
package query

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Match selects how a filter field compares against its column.
type Match int

const (
	// MatchEquals compares with plain equality.
	MatchEquals Match = iota
	// MatchSubstring matches a case-insensitive substring.
	MatchSubstring
	// MatchRangeStart keeps rows with column >= value.
	MatchRangeStart
	// MatchRangeEnd keeps rows with column <= value.
	MatchRangeEnd
)

// Condition is a single predicate. Column names come from the typed filter
// structs, never from request input; values are always bound parameters.
type Condition struct {
	Column string
	Match  Match
	Value  any
}

// Filter is implemented by the per-resource filter structs. Only defined
// fields yield conditions; an empty filter matches everything.
type Filter interface {
	Conditions() []Condition
}

// Where compiles conditions into an AND-joined clause with bound values.
// LOWER(...) LIKE is used instead of ILIKE so the clause runs on both the
// postgres driver and the sqlite driver used in tests.
func Where(conds []Condition) (string, []any) {
	if len(conds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	for _, c := range conds {
		switch c.Match {
		case MatchSubstring:
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", c.Column))
			args = append(args, "%"+strings.ToLower(fmt.Sprintf("%v", c.Value))+"%")
		case MatchRangeStart:
			parts = append(parts, fmt.Sprintf("%s >= ?", c.Column))
			args = append(args, c.Value)
		case MatchRangeEnd:
			parts = append(parts, fmt.Sprintf("%s <= ?", c.Column))
			args = append(args, c.Value)
		default:
			parts = append(parts, fmt.Sprintf("%s = ?", c.Column))
			args = append(args, c.Value)
		}
	}
	return strings.Join(parts, " AND "), args
}

// Apply attaches the filter's predicate to a gorm chain. Used for reads
// and for conditional updates/deletes alike.
func Apply(tx *gorm.DB, f Filter) *gorm.DB {
	clause, args := Where(f.Conditions())
	if clause == "" {
		return tx
	}
	return tx.Where(clause, args...)
}

// SelectOne fetches the first row matching the filter, reporting whether
// one exists. Existence checks in the services go through here.
func SelectOne[T any](db *gorm.DB, f Filter) (T, bool, error) {
	var rows []T
	var zero T
	if err := Apply(db.Model(&zero), f).Limit(1).Find(&rows).Error; err != nil {
		return zero, false, err
	}
	if len(rows) == 0 {
		return zero, false, nil
	}
	return rows[0], true, nil
}
