package checkdp

import (
	"fmt"
	"strconv"
	"strings"
)

type tokKind int

const (
	tokKey tokKind = iota
	tokIndex
	tokWildcard      // .* matches exactly one segment of any shape
	tokIndexWildcard // [*] matches exactly one array index
	tokDeep          // .. matches zero or more segments
)

type token struct {
	kind  tokKind
	name  string
	index int
}

// tokenize parses one JSONPath-style expression (no combinators) into tokens.
func tokenize(expr string) ([]token, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return nil, fmt.Errorf("empty path expression")
	}
	if s[0] != '$' {
		return nil, fmt.Errorf("path %q must start with $", expr)
	}
	var toks []token
	i := 1
	readName := func() string {
		start := i
		for i < len(s) && s[i] != '.' && s[i] != '[' {
			i++
		}
		return s[start:i]
	}
	for i < len(s) {
		switch s[i] {
		case '.':
			if i+1 < len(s) && s[i+1] == '.' {
				i += 2
				toks = append(toks, token{kind: tokDeep})
				if i < len(s) && s[i] != '.' && s[i] != '[' {
					name := readName()
					if name == "*" {
						toks = append(toks, token{kind: tokWildcard})
					} else {
						toks = append(toks, token{kind: tokKey, name: name})
					}
				}
				continue
			}
			i++
			name := readName()
			if name == "" {
				return nil, fmt.Errorf("path %q: empty key segment", expr)
			}
			if name == "*" {
				toks = append(toks, token{kind: tokWildcard})
			} else {
				toks = append(toks, token{kind: tokKey, name: name})
			}
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("path %q: unclosed bracket", expr)
			}
			inner := strings.TrimSpace(s[i+1 : i+end])
			i += end + 1
			switch {
			case inner == "*":
				toks = append(toks, token{kind: tokIndexWildcard})
			case len(inner) >= 2 && (inner[0] == '\'' || inner[0] == '"'):
				if inner[len(inner)-1] != inner[0] {
					return nil, fmt.Errorf("path %q: malformed quoted key", expr)
				}
				toks = append(toks, token{kind: tokKey, name: inner[1 : len(inner)-1]})
			default:
				n, err := strconv.Atoi(inner)
				if err != nil || n < 0 {
					return nil, fmt.Errorf("path %q: invalid index %q", expr, inner)
				}
				toks = append(toks, token{kind: tokIndex, index: n})
			}
		default:
			return nil, fmt.Errorf("path %q: unexpected character %q", expr, s[i])
		}
	}
	return toks, nil
}

// Pattern matches descriptor paths structurally. A pattern is one or more
// alternatives joined by the union combinator "|"; each alternative is a
// JSONPath-style sequence of literals, single-segment wildcards (".*",
// "[*]") and the recursive descent operator ("..") matching zero or more
// segments. The intersection combinator "&" is rejected: intersecting
// alternative path sets has no useful exclusion semantics, so it fails at
// configuration-build time instead of silently matching nothing.
type Pattern struct {
	raw  string
	alts [][]token
}

// CompilePattern parses a pattern expression such as
// "$.resources[*].name | $.name".
func CompilePattern(expr string) (Pattern, error) {
	if strings.Contains(expr, "&") {
		return Pattern{}, fmt.Errorf("pattern %q: intersection combinator (&) is not supported; use separate patterns or the union combinator (|)", expr)
	}
	parts := strings.Split(expr, "|")
	alts := make([][]token, 0, len(parts))
	for _, part := range parts {
		toks, err := tokenize(part)
		if err != nil {
			return Pattern{}, err
		}
		alts = append(alts, toks)
	}
	return Pattern{raw: strings.TrimSpace(expr), alts: alts}, nil
}

// MustCompilePattern is CompilePattern for trusted literals.
func MustCompilePattern(expr string) Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original expression.
func (p Pattern) String() string { return p.raw }

// Matches reports whether any alternative of the pattern matches the path.
// Matching is purely structural; the descriptor is never consulted.
func (p Pattern) Matches(path Path) bool {
	for _, alt := range p.alts {
		if matchTokens(alt, path.segs) {
			return true
		}
	}
	return false
}

func matchTokens(toks []token, segs []Segment) bool {
	if len(toks) == 0 {
		return len(segs) == 0
	}
	t := toks[0]
	if t.kind == tokDeep {
		for skip := 0; skip <= len(segs); skip++ {
			if matchTokens(toks[1:], segs[skip:]) {
				return true
			}
		}
		return false
	}
	if len(segs) == 0 {
		return false
	}
	s := segs[0]
	ok := false
	switch t.kind {
	case tokKey:
		ok = !s.isIndex && s.name == t.name
	case tokIndex:
		ok = s.isIndex && s.index == t.index
	case tokWildcard:
		ok = true
	case tokIndexWildcard:
		ok = s.isIndex
	}
	return ok && matchTokens(toks[1:], segs[1:])
}
