package checkdp

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ExplainedIssue augments an Issue with a longer-form explanation, an
// optional "did you mean" suggestion and a pointer into the standard.
type ExplainedIssue struct {
	Issue
	Explanation string
	// Suggestion proposes the nearest accepted value, when one can be
	// derived from the issue's own data.
	Suggestion string
	// Docs links the relevant section of the Data Package standard.
	Docs string
}

// kindDocs maps issue kinds to explanation text and standard sections.
// Entries interpret the issue structurally; nothing here consults the
// descriptor the issue came from.
var kindDocs = map[string]struct {
	explanation string
	docs        string
}{
	KindRequired: {
		explanation: "The standard (or a configured required check) marks this field as required: it must be present and not null at the given location.",
		docs:        "https://datapackage.org/standard/data-package/#properties",
	},
	KindType: {
		explanation: "The value at this location has the wrong type for the field the standard defines here.",
		docs:        "https://datapackage.org/standard/data-package/#properties",
	},
	KindFormat: {
		explanation: "The value does not conform to the string format the standard prescribes for this field (for example a URI, email address or RFC 3339 timestamp).",
		docs:        "https://datapackage.org/standard/data-package/#properties",
	},
	KindPattern: {
		explanation: "The value does not match the regular expression the standard prescribes for this field.",
		docs:        "https://datapackage.org/standard/data-package/#properties",
	},
	KindEnum: {
		explanation: "The value is not one of the closed set of values the standard accepts for this field.",
		docs:        "https://datapackage.org/standard/table-schema/#field-types",
	},
	KindLicense: {
		explanation: "Each license entry must identify the license, either by an Open Definition license name or by a path to the license text.",
		docs:        "https://datapackage.org/standard/data-package/#licenses",
	},
	KindPrimaryKey: {
		explanation: "Every field named by a primary key must be declared in the same table schema's fields.",
		docs:        "https://datapackage.org/standard/table-schema/#primaryKey",
	},
	KindForeignKey: {
		explanation: "Every field named by a foreign key, and by the reference it points at, must be declared in the corresponding table schema's fields; a referenced resource must exist in the package.",
		docs:        "https://datapackage.org/standard/table-schema/#foreignKeys",
	},
	KindAnyOf: {
		explanation: "The value must match at least one of the variants the standard accepts at this location, and it matches none of them.",
		docs:        "https://datapackage.org/standard/data-package/#properties",
	},
	KindOneOf: {
		explanation: "The value must match exactly one of the variants the standard accepts at this location.",
		docs:        "https://datapackage.org/standard/data-package/#properties",
	},
	KindAllOf: {
		explanation: "The value must satisfy every constraint the standard combines at this location, and at least one is violated.",
		docs:        "https://datapackage.org/standard/data-package/#properties",
	},
	KindRecommendation: {
		explanation: "The standard does not require this, but recommends it; strict mode reports such omissions so they can be fixed before publication.",
		docs:        "https://datapackage.org/standard/data-package/#properties",
	},
	KindCheckFailure: {
		explanation: "A custom check failed while running and was skipped; its findings for this descriptor are unknown. The other checks were not affected.",
		docs:        "",
	},
}

// Explain returns an augmented view of an issue previously produced by
// Check. It is pure and idempotent: the issue is interpreted structurally,
// without re-running validation and without consulting any descriptor, so
// explaining an issue from an unrelated descriptor is well-defined.
func Explain(is Issue) ExplainedIssue {
	out := ExplainedIssue{Issue: is}
	if e, ok := kindDocs[is.Kind]; ok {
		out.Explanation = e.explanation
		out.Docs = e.docs
	} else {
		name := is.Kind
		if is.Rule != "" {
			name = is.Rule
		}
		out.Explanation = fmt.Sprintf("The custom check %q configured for this run reported the value at this location as invalid.", name)
	}
	if allowed := paramStrings(is.Params, "allowed"); len(allowed) > 0 {
		out.Explanation += " Accepted values: " + strings.Join(allowed, ", ") + "."
		if got, ok := is.Params["got"].(string); ok && got != "" {
			if near := nearest(got, allowed); near != "" {
				out.Suggestion = fmt.Sprintf("did you mean %q?", near)
			}
		}
	}
	return out
}

// nearest picks the allowed value with the smallest edit distance, within a
// distance bound so wildly different values get no suggestion.
func nearest(got string, allowed []string) string {
	best, bestDist := "", -1
	for _, a := range allowed {
		d := levenshtein.ComputeDistance(strings.ToLower(got), strings.ToLower(a))
		if bestDist < 0 || d < bestDist {
			best, bestDist = a, d
		}
	}
	if bestDist < 0 || bestDist > len(got)/2+1 {
		return ""
	}
	return best
}

func paramStrings(params map[string]any, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	}
	return nil
}
