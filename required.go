package checkdp

import (
	"fmt"
	"sort"
	"strings"
)

type exprOp int

const (
	opUnion exprOp = iota
	opIntersection
)

// FieldSet names properties that must all be present and non-null at a base
// location for the set to be satisfied.
type FieldSet []string

// Fields builds a FieldSet.
func Fields(names ...string) FieldSet { return FieldSet(names) }

// RequiredExpr is a set-algebra expression over field sets.
type RequiredExpr struct {
	op   exprOp
	sets []FieldSet
}

// AnyOf expresses a union of alternatives: at least one of the given field
// sets must be fully satisfied.
func AnyOf(sets ...FieldSet) RequiredExpr {
	return RequiredExpr{op: opUnion, sets: sets}
}

// AllOf expresses an intersection of alternatives. Intersections over
// alternative required sets proved ambiguous in practice, so a RequiredCheck
// carrying one is rejected at configuration-build time.
func AllOf(sets ...FieldSet) RequiredExpr {
	return RequiredExpr{op: opIntersection, sets: sets}
}

// RequiredCheck requires fields to be present at every location matched by
// the base pattern. Expr is a union of alternative field sets; the check
// fails at a location only when every alternative fails there.
type RequiredCheck struct {
	// Base is a pattern locating the objects to inspect, for example
	// "$.contributors[*]" or "$" for the document root.
	Base string
	Expr RequiredExpr
	// Message optionally replaces the synthesized issue message.
	Message string
}

// Require is shorthand for a single-alternative RequiredCheck.
func Require(base string, fields ...string) RequiredCheck {
	return RequiredCheck{Base: base, Expr: AnyOf(Fields(fields...))}
}

type compiledRequired struct {
	base    Pattern
	sets    []FieldSet
	message string
}

func (rc RequiredCheck) compile() (compiledRequired, error) {
	if rc.Expr.op == opIntersection {
		return compiledRequired{}, fmt.Errorf("intersection (AllOf) over required sets is not supported; use AnyOf alternatives or separate checks")
	}
	if len(rc.Expr.sets) == 0 {
		return compiledRequired{}, fmt.Errorf("required check needs at least one field set")
	}
	for _, set := range rc.Expr.sets {
		if len(set) == 0 {
			return compiledRequired{}, fmt.Errorf("required check has an empty field set")
		}
	}
	pat, err := CompilePattern(rc.Base)
	if err != nil {
		return compiledRequired{}, err
	}
	return compiledRequired{base: pat, sets: rc.Expr.sets, message: rc.Message}, nil
}

// requiredIssues evaluates every compiled RequiredCheck against the
// descriptor. One issue is emitted per failing base location, naming the
// closest-matching alternative: the one with the fewest missing fields, ties
// broken by comparing the alphabetically sorted missing lists.
func requiredIssues(d Descriptor, checks []compiledRequired) Issues {
	var out Issues
	for _, rc := range checks {
		for _, loc := range resolve(d, rc.base) {
			missing, ok := closestMissing(loc.value, rc.sets)
			if ok {
				continue
			}
			msg := rc.message
			if msg == "" {
				msg = requiredMessage(missing)
			}
			out = append(out, Issue{
				Path:    loc.path,
				Kind:    KindRequired,
				Message: msg,
				Params:  map[string]any{"missing": missing},
			})
		}
	}
	return out
}

// closestMissing returns the missing fields of the closest-matching
// alternative, or ok=true when some alternative is fully satisfied.
func closestMissing(v any, sets []FieldSet) (missing []string, ok bool) {
	obj, _ := v.(map[string]any)
	var best []string
	for _, set := range sets {
		var m []string
		for _, name := range set {
			if val, present := obj[name]; !present || val == nil {
				m = append(m, name)
			}
		}
		if len(m) == 0 {
			return nil, true
		}
		sort.Strings(m)
		if best == nil || lessMissing(m, best) {
			best = m
		}
	}
	return best, false
}

func lessMissing(a, b []string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func requiredMessage(missing []string) string {
	quoted := make([]string, len(missing))
	for i, m := range missing {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	if len(quoted) == 1 {
		return fmt.Sprintf("required field %s is missing or null", quoted[0])
	}
	return fmt.Sprintf("required fields %s are missing or null", strings.Join(quoted, ", "))
}
