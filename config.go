package checkdp

import "fmt"

// Supported Data Package standard versions.
const (
	VersionV1 = "v1"
	VersionV2 = "v2"
)

// Scope selects which issues an Exclusion suppresses at matching paths.
type Scope int

const (
	// ScopeWhole suppresses every issue at matching paths, regardless of kind.
	ScopeWhole Scope = iota
	// ScopeRequired suppresses only required-field issues at matching paths,
	// whether they come from the standard schema or from a RequiredCheck.
	ScopeRequired
)

// Exclusion suppresses issues whose path matches the pattern. Patterns may
// use wildcards, recursive descent and the union combinator; see Pattern.
type Exclusion struct {
	Pattern string
	Scope   Scope
}

// Config bundles everything that parameterizes a check run. It is read-only
// for the duration of a call; one Config may be reused across many checks and
// across concurrent goroutines.
type Config struct {
	// Exclusions are applied last: any issue whose path matches one is
	// removed from the result.
	Exclusions []Exclusion
	// RequiredChecks add user-defined presence requirements on top of the
	// standard's own.
	RequiredChecks []RequiredCheck
	// CustomChecks run after the built-in rules. Names must be pairwise
	// distinct and must not collide with built-in kind names.
	CustomChecks []CustomCheck
	// Strict additionally reports recommended-but-optional omissions as
	// recommendation issues.
	Strict bool
	// Version of the Data Package standard to check against ("v1" or "v2").
	// Defaults to v2.
	Version string
}

// ConfigError reports invalid configuration. It is detected eagerly when a
// check run starts, before any evaluator executes, and is never folded into
// the issue sequence.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "invalid config: " + e.Reason
	}
	return fmt.Sprintf("invalid config (%s): %s", e.Field, e.Reason)
}

func configErrf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

type compiledExclusion struct {
	pattern Pattern
	scope   Scope
}

type compiledConfig struct {
	version    string
	strict     bool
	exclusions []compiledExclusion
	required   []compiledRequired
	customs    []CustomCheck
}

// compile validates the configuration and resolves every pattern expression.
// All configuration errors surface here, before any check runs.
func (c Config) compile() (*compiledConfig, error) {
	cc := &compiledConfig{version: c.Version, strict: c.Strict}
	switch c.Version {
	case "":
		cc.version = VersionV2
	case VersionV1, VersionV2:
	default:
		return nil, configErrf("version", "unknown standard version %q (want %q or %q)", c.Version, VersionV1, VersionV2)
	}

	for i, ex := range c.Exclusions {
		pat, err := CompilePattern(ex.Pattern)
		if err != nil {
			return nil, configErrf(fmt.Sprintf("exclusions[%d]", i), "%v", err)
		}
		if ex.Scope != ScopeWhole && ex.Scope != ScopeRequired {
			return nil, configErrf(fmt.Sprintf("exclusions[%d]", i), "unknown scope %d", ex.Scope)
		}
		cc.exclusions = append(cc.exclusions, compiledExclusion{pattern: pat, scope: ex.Scope})
	}

	for i, rc := range c.RequiredChecks {
		cr, err := rc.compile()
		if err != nil {
			return nil, configErrf(fmt.Sprintf("requiredChecks[%d]", i), "%v", err)
		}
		cc.required = append(cc.required, cr)
	}

	seen := map[string]struct{}{}
	for i, ck := range c.CustomChecks {
		if ck.Name == "" {
			return nil, configErrf(fmt.Sprintf("customChecks[%d]", i), "name must not be empty")
		}
		if ck.Check == nil {
			return nil, configErrf(fmt.Sprintf("customChecks[%d]", i), "check %q has no check function", ck.Name)
		}
		if _, reserved := builtinKinds[ck.Name]; reserved {
			return nil, configErrf(fmt.Sprintf("customChecks[%d]", i), "name %q collides with a built-in check", ck.Name)
		}
		if _, dup := seen[ck.Name]; dup {
			return nil, configErrf(fmt.Sprintf("customChecks[%d]", i), "duplicate check name %q", ck.Name)
		}
		seen[ck.Name] = struct{}{}
		cc.customs = append(cc.customs, ck)
	}
	return cc, nil
}
