package checkdp

import "fmt"

// CustomCheck is a user-supplied check run against the whole descriptor. A
// check is stateless; it must not mutate the descriptor. Issues it returns
// are stamped with the check's name before entering the pipeline.
type CustomCheck struct {
	// Name identifies the check. It must be unique within a Config and must
	// not collide with a built-in kind name.
	Name string
	// Check inspects the descriptor and reports findings. A panic inside the
	// check is isolated: it becomes a single check-failure issue at the
	// document root and the remaining checks still run.
	Check func(Descriptor) Issues
}

// NewRule builds a CustomCheck from a target pattern and a value predicate,
// the common shape for simple rules: every descriptor field matched by
// target whose value fails ok yields one issue with the given message.
// Pattern errors (including the rejected intersection combinator) surface
// here, at configuration-build time.
func NewRule(name, target, message string, ok func(value any) bool) (CustomCheck, error) {
	pat, err := CompilePattern(target)
	if err != nil {
		return CustomCheck{}, err
	}
	return CustomCheck{
		Name: name,
		Check: func(d Descriptor) Issues {
			var out Issues
			for _, f := range resolve(d, pat) {
				if ok(f.value) {
					continue
				}
				out = append(out, Issue{Path: f.path, Kind: name, Message: message})
			}
			return out
		},
	}, nil
}

// runCustomChecks invokes each check in order, isolating failures. One
// broken extension must not blind the run to unrelated defects, so a panic
// is captured as a check-failure issue and the offending check is skipped
// for the remainder of the call.
func runCustomChecks(d Descriptor, checks []CustomCheck) Issues {
	var out Issues
	for _, ck := range checks {
		out = append(out, runCustomCheck(d, ck)...)
	}
	return out
}

func runCustomCheck(d Descriptor, ck CustomCheck) (out Issues) {
	defer func() {
		if r := recover(); r != nil {
			out = Issues{{
				Path:    Root(),
				Kind:    KindCheckFailure,
				Message: fmt.Sprintf("custom check %q failed: %v", ck.Name, r),
				Rule:    ck.Name,
			}}
		}
	}()
	found := ck.Check(d)
	out = make(Issues, 0, len(found))
	for _, is := range found {
		if is.Kind == "" {
			is.Kind = ck.Name
		}
		is.Rule = ck.Name
		out = append(out, is)
	}
	return out
}
