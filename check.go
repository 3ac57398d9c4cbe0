package checkdp

import "github.com/xeipuuv/gojsonschema"

// Check validates a Data Package descriptor against the standard schema plus
// the configured rules and returns the findings, deduplicated and in
// deterministic (path, message) order. The returned error is non-nil only
// for invalid configuration (*ConfigError) or an internal validator failure;
// validation findings never surface as an error here.
//
// The pipeline: standard schema validation (plus recommendation checks in
// strict mode), built-in rule evaluators, custom checks, grouping of
// compound-construct violations, dedup and sort, then exclusion filtering.
func Check(d Descriptor, cfg Config) (Issues, error) {
	cc, err := cfg.compile()
	if err != nil {
		return nil, err
	}
	schema, err := packageSchema(cc.version)
	if err != nil {
		return nil, err
	}
	return run(d, cc, schema)
}

// CheckResource validates a lone resource fragment against the resource
// profile of the configured standard version, with the same configuration
// semantics as Check.
func CheckResource(resource map[string]any, cfg Config) (Issues, error) {
	cc, err := cfg.compile()
	if err != nil {
		return nil, err
	}
	schema, err := resourceSchema(cc.version)
	if err != nil {
		return nil, err
	}
	return run(resource, cc, schema)
}

func run(d Descriptor, cc *compiledConfig, schema *gojsonschema.Schema) (Issues, error) {
	raw, err := standardIssues(d, schema)
	if err != nil {
		return nil, err
	}
	if cc.strict {
		raw = append(raw, recommendationIssues(d)...)
	}
	raw = append(raw, requiredIssues(d, cc.required)...)
	raw = append(raw, primaryKeyIssues(d)...)
	raw = append(raw, foreignKeyIssues(d)...)
	raw = append(raw, runCustomChecks(d, cc.customs)...)

	out := sortAndDedupe(groupIssues(raw))
	return applyExclusions(out, cc.exclusions), nil
}

// Validate is Check in error-raising mode: it returns the Issues value as
// the error when any findings remain, and nil when the descriptor is clean.
// The issues inside the error are exactly Check's output, order included.
func Validate(d Descriptor, cfg Config) error {
	iss, err := Check(d, cfg)
	if err != nil {
		return err
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// applyExclusions drops issues whose path matches a configured exclusion.
// ScopeWhole removes the issue regardless of kind; ScopeRequired removes
// only required-field issues, leaving other kinds at that path intact.
func applyExclusions(iss Issues, exclusions []compiledExclusion) Issues {
	if len(exclusions) == 0 {
		return iss
	}
	out := make(Issues, 0, len(iss))
	for _, is := range iss {
		if !excluded(is, exclusions) {
			out = append(out, is)
		}
	}
	return out
}

func excluded(is Issue, exclusions []compiledExclusion) bool {
	for _, ex := range exclusions {
		if ex.scope == ScopeRequired && is.Kind != KindRequired {
			continue
		}
		if ex.pattern.Matches(is.Path) {
			return true
		}
	}
	return false
}
