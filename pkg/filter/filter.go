// Package filter provides a small composable predicate AST used to scope
// database queries. Predicates render to parameterized SQL fragments, so
// merging scopes is a pure operation independent of the storage layer.
package filter

import "strings"

// Predicate is a composable query restriction.
type Predicate interface {
	// SQL renders the predicate as a parameterized WHERE fragment.
	SQL() (string, []interface{})
}

type all struct{}

func (all) SQL() (string, []interface{}) { return "", nil }

// All matches every row. It is the identity for And.
func All() Predicate { return all{} }

type eq struct {
	column string
	value  interface{}
}

func (p eq) SQL() (string, []interface{}) {
	return p.column + " = ?", []interface{}{p.value}
}

// Eq restricts a scalar column to a single value.
func Eq(column string, value interface{}) Predicate {
	return eq{column: column, value: value}
}

type contains struct {
	column string
	value  interface{}
}

func (p contains) SQL() (string, []interface{}) {
	return "? = ANY(" + p.column + ")", []interface{}{p.value}
}

// Contains restricts an array-valued column to rows whose array holds value.
func Contains(column string, value interface{}) Predicate {
	return contains{column: column, value: value}
}

type junction struct {
	op    string
	parts []Predicate
}

func (p junction) SQL() (string, []interface{}) {
	var frags []string
	var args []interface{}
	for _, part := range p.parts {
		sql, partArgs := part.SQL()
		if sql == "" {
			continue
		}
		frags = append(frags, "("+sql+")")
		args = append(args, partArgs...)
	}
	if len(frags) == 0 {
		return "", nil
	}
	if len(frags) == 1 {
		// Strip the redundant parens for a single surviving part.
		return frags[0][1 : len(frags[0])-1], args
	}
	return strings.Join(frags, " "+p.op+" "), args
}

// And conjoins predicates. All() is the identity and is dropped; with no
// restrictive parts the result is All().
func And(parts ...Predicate) Predicate {
	kept := restrictive(parts)
	if len(kept) == 0 {
		return All()
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return junction{op: "AND", parts: kept}
}

// Or disjoins predicates. All() absorbs the whole disjunction.
func Or(parts ...Predicate) Predicate {
	kept := restrictive(parts)
	if len(kept) < len(parts) {
		// One part matched everything, so the disjunction does too.
		return All()
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return junction{op: "OR", parts: kept}
}

func restrictive(parts []Predicate) []Predicate {
	kept := make([]Predicate, 0, len(parts))
	for _, p := range parts {
		if sql, _ := p.SQL(); sql == "" {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
