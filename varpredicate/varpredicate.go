// Package varpredicate implements the small expression language used to
// evaluate route predicates over a string-keyed variable map: equality,
// inequality, ordering, set membership, negation, and pre-compiled
// regular expressions.
package varpredicate

import (
	"regexp"
	"strconv"
)

// Op identifies the operator of an Expr. The set is closed; evaluation
// dispatches on it with a plain switch rather than open polymorphism.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
	In
	NotIn
	Regex
	Not
)

// Expr is a single predicate expression: either a (name, operator,
// operand) triple, or a Not wrapping an inner Expr.
type Expr struct {
	Op      Op
	Name    string
	Operand string
	Set     []string
	Regexp  *regexp.Regexp
	Inner   *Expr
}

func NewEq(name, value string) *Expr    { return &Expr{Op: Eq, Name: name, Operand: value} }
func NewNe(name, value string) *Expr    { return &Expr{Op: Ne, Name: name, Operand: value} }
func NewLt(name, value string) *Expr    { return &Expr{Op: Lt, Name: name, Operand: value} }
func NewLe(name, value string) *Expr    { return &Expr{Op: Le, Name: name, Operand: value} }
func NewGt(name, value string) *Expr    { return &Expr{Op: Gt, Name: name, Operand: value} }
func NewGe(name, value string) *Expr    { return &Expr{Op: Ge, Name: name, Operand: value} }
func NewIn(name string, set []string) *Expr {
	return &Expr{Op: In, Name: name, Set: append([]string(nil), set...)}
}
func NewNotIn(name string, set []string) *Expr {
	return &Expr{Op: NotIn, Name: name, Set: append([]string(nil), set...)}
}
func NewNot(inner *Expr) *Expr { return &Expr{Op: Not, Inner: inner} }

// NewRegex compiles pattern once, when the expression is built, and
// returns an Expr sharing the compiled *regexp.Regexp by reference for
// all subsequent, concurrent evaluations. The regexp uses leftmost-longest
// matching so that matchFull finds a full-string match whenever one exists.
func NewRegex(name, pattern string) (*Expr, error) {
	rx, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	rx.Longest()
	return &Expr{Op: Regex, Name: name, Regexp: rx}, nil
}

// EvalAll evaluates the conjunction of exprs against vars: every
// expression must hold. An empty list is vacuously true.
func EvalAll(exprs []*Expr, vars map[string]string) bool {
	for _, e := range exprs {
		if !eval(e, vars) {
			return false
		}
	}
	return true
}

func eval(e *Expr, vars map[string]string) bool {
	if e.Op == Not {
		return !eval(e.Inner, vars)
	}

	v, ok := vars[e.Name]
	if !ok {
		// a missing variable makes any comparison false (§4.3)
		return false
	}

	switch e.Op {
	case Eq:
		return v == e.Operand
	case Ne:
		return v != e.Operand
	case Lt:
		return compare(v, e.Operand) < 0
	case Le:
		return compare(v, e.Operand) <= 0
	case Gt:
		return compare(v, e.Operand) > 0
	case Ge:
		return compare(v, e.Operand) >= 0
	case In:
		return contains(e.Set, v)
	case NotIn:
		return !contains(e.Set, v)
	case Regex:
		return matchFull(e.Regexp, v)
	default:
		return false
	}
}

// compare orders a and b numerically if both parse as decimal numbers,
// falling back to lexicographic order otherwise.
func compare(a, b string) int {
	af, aerr := strconv.ParseFloat(a, 64)
	bf, berr := strconv.ParseFloat(b, 64)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// matchFull requires the regular expression to match the entire value,
// not just a substring (§4.3: "full-string regex match").
func matchFull(rx *regexp.Regexp, v string) bool {
	loc := rx.FindStringIndex(v)
	return loc != nil && loc[0] == 0 && loc[1] == len(v)
}
