package checkdp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Issue kinds (exported consts for IDE completion and type safety by convention)
const (
	KindRequired       = "required"
	KindType           = "type"
	KindFormat         = "format"
	KindPattern        = "pattern"
	KindEnum           = "enum"
	KindLicense        = "license"
	KindPrimaryKey     = "primary-key"
	KindForeignKey     = "foreign-key"
	KindRecommendation = "recommendation"
	KindCheckFailure   = "check-failure"

	// Kinds of collapsed compound-construct violations that are neither
	// license- nor enum-shaped.
	KindAnyOf = "any-of"
	KindOneOf = "one-of"
	KindAllOf = "all-of"
)

// builtinKinds are reserved; custom checks may not reuse them as names.
var builtinKinds = map[string]struct{}{
	KindRequired:       {},
	KindType:           {},
	KindFormat:         {},
	KindPattern:        {},
	KindEnum:           {},
	KindLicense:        {},
	KindPrimaryKey:     {},
	KindForeignKey:     {},
	KindRecommendation: {},
	KindCheckFailure:   {},
	KindAnyOf:          {},
	KindOneOf:          {},
	KindAllOf:          {},
}

// Issue represents a single finding from checking a descriptor.
type Issue struct {
	Path    Path   // Location in the descriptor (for example: $.resources[0].name).
	Kind    string // One of the kinds listed above, or a custom check name.
	Message string
	// Rule optionally records the custom check that produced this issue.
	Rule string
	// Params carries structured auxiliary data (e.g., {"allowed": [...], "got": "x"})
	// for explanation and observability. It never participates in issue identity.
	Params map[string]any
}

// duplicates reports whether two issues describe the same defect. Kind and
// Params are deliberately excluded: different rules may legitimately report
// the same defect identically.
func (is Issue) duplicates(o Issue) bool {
	return is.Path.Equal(o.Path) && is.Message == o.Message
}

// compare orders issues by (path, message) for deterministic output.
func (is Issue) compare(o Issue) int {
	if c := is.Path.Compare(o.Path); c != 0 {
		return c
	}
	return strings.Compare(is.Message, o.Message)
}

// Issues is a collection of findings that implements error. A non-empty
// Issues value is the aggregate error raised by Validate.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at $.resources
		fmt.Fprintf(b, "%s at %s", it.Kind, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// sortAndDedupe imposes the total (path, message) order and drops duplicate
// findings. The first occurrence in sorted order wins, so the result does not
// depend on which evaluator ran first.
func sortAndDedupe(iss Issues) Issues {
	sort.SliceStable(iss, func(i, j int) bool { return iss[i].compare(iss[j]) < 0 })
	out := iss[:0]
	for _, is := range iss {
		if len(out) > 0 && is.duplicates(out[len(out)-1]) {
			continue
		}
		out = append(out, is)
	}
	return out
}
