package sqlquery

import "strings"

// Predicate is a boolean SQL expression. It is an Expr whose SQL() always
// renders something usable directly after WHERE.
type Predicate interface {
	Expr
}

// rawPredicate adapts a rendered boolean expression into a Predicate.
type rawPredicate struct {
	text string
	cols []string
}

func (p rawPredicate) SQL() string       { return p.text }
func (p rawPredicate) Columns() []string { return p.cols }

// IsBetween renders `col BETWEEN lo AND hi`, the predicate generator named
// in spec §4.2 for a single active bin column.
func IsBetween(column string, lo, hi float64) Predicate {
	text := Col(column).SQL() + " BETWEEN " + Number(lo).SQL() + " AND " + Number(hi).SQL()
	return rawPredicate{text: text, cols: []string{column}}
}

// And conjoins predicates, skipping any nil/empty members so callers don't
// need to special-case a single-child clause.
func And(preds ...Predicate) Predicate {
	var parts []string
	var cols []string
	for _, p := range preds {
		if p == nil {
			continue
		}
		s := p.SQL()
		if s == "" {
			continue
		}
		parts = append(parts, s)
		cols = append(cols, p.Columns()...)
	}
	if len(parts) == 0 {
		return rawPredicate{}
	}
	if len(parts) == 1 {
		return rawPredicate{text: parts[0], cols: cols}
	}
	return rawPredicate{text: "(" + strings.Join(parts, " AND ") + ")", cols: cols}
}

// Empty is the always-true, no-op predicate: rendering it yields "", which
// Query.Where treats as "no WHERE clause".
func Empty() Predicate { return rawPredicate{} }

// Verbatim wraps an already-computed predicate (e.g. one handed in by the
// Selection capability) so it composes with And.
func Verbatim(text string, cols ...string) Predicate {
	return rawPredicate{text: text, cols: cols}
}
