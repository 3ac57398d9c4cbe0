package checkdp

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is a single step in a descriptor path: either an object key or an
// array index.
type Segment struct {
	name    string
	index   int
	isIndex bool
}

// Key creates an object-key segment.
func Key(name string) Segment { return Segment{name: name} }

// Index creates an array-index segment.
func Index(i int) Segment { return Segment{index: i, isIndex: true} }

// IsIndex reports whether the segment addresses an array element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Name returns the object key, or "" for index segments.
func (s Segment) Name() string { return s.name }

// Int returns the array index, or 0 for key segments.
func (s Segment) Int() int { return s.index }

func (s Segment) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.name
}

// Path identifies a location inside a descriptor as an ordered segment
// sequence. The zero value is the document root. Paths render in JSONPath
// style (for example: $.resources[0].name) to match how the Data Package
// standard and its tooling address descriptor fields.
type Path struct {
	segs []Segment
}

// Root returns the document root path, rendered as "$".
func Root() Path { return Path{} }

// NewPath builds a path from segments.
func NewPath(segs ...Segment) Path {
	return Path{segs: append([]Segment(nil), segs...)}
}

// Field returns a copy of p extended with an object-key segment.
func (p Path) Field(name string) Path {
	if name == "" {
		return p
	}
	return Path{segs: append(append([]Segment(nil), p.segs...), Key(name))}
}

// Index returns a copy of p extended with an array-index segment.
func (p Path) Index(i int) Path {
	return Path{segs: append(append([]Segment(nil), p.segs...), Index(i))}
}

// Segments returns a copy of the segment sequence.
func (p Path) Segments() []Segment { return append([]Segment(nil), p.segs...) }

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segs) }

// IsRoot reports whether p addresses the document root.
func (p Path) IsRoot() bool { return len(p.segs) == 0 }

// String renders the path in JSONPath style.
func (p Path) String() string {
	if len(p.segs) == 0 {
		return "$"
	}
	b := &strings.Builder{}
	b.WriteString("$")
	for _, s := range p.segs {
		if s.isIndex {
			fmt.Fprintf(b, "[%d]", s.index)
		} else {
			b.WriteString(".")
			b.WriteString(s.name)
		}
	}
	return b.String()
}

// Equal reports whether two paths have identical segment sequences.
func (p Path) Equal(o Path) bool {
	if len(p.segs) != len(o.segs) {
		return false
	}
	for i, s := range p.segs {
		if s != o.segs[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is an ancestor of (or equal to) p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.segs) > len(p.segs) {
		return false
	}
	for i, s := range prefix.segs {
		if s != p.segs[i] {
			return false
		}
	}
	return true
}

// Contains reports whether any segment is an object key equal to name.
func (p Path) Contains(name string) bool {
	for _, s := range p.segs {
		if !s.isIndex && s.name == name {
			return true
		}
	}
	return false
}

// Compare imposes a total order over paths: segments are compared pairwise,
// indices numerically, keys lexicographically, with index segments ordering
// before key segments and shorter paths before their extensions.
func (p Path) Compare(o Path) int {
	for i := 0; i < len(p.segs) && i < len(o.segs); i++ {
		if c := compareSegments(p.segs[i], o.segs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(p.segs) < len(o.segs):
		return -1
	case len(p.segs) > len(o.segs):
		return 1
	}
	return 0
}

func compareSegments(a, b Segment) int {
	if a.isIndex != b.isIndex {
		if a.isIndex {
			return -1
		}
		return 1
	}
	if a.isIndex {
		switch {
		case a.index < b.index:
			return -1
		case a.index > b.index:
			return 1
		}
		return 0
	}
	return strings.Compare(a.name, b.name)
}

// ParsePath parses a concrete JSONPath-style location such as
// "$.resources[0].name". Wildcards and combinators are not allowed here; use
// patterns for matching.
func ParsePath(expr string) (Path, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return Path{}, err
	}
	segs := make([]Segment, 0, len(toks))
	for _, t := range toks {
		switch t.kind {
		case tokKey:
			segs = append(segs, Key(t.name))
		case tokIndex:
			segs = append(segs, Index(t.index))
		default:
			return Path{}, fmt.Errorf("path %q: wildcards are not allowed in a concrete path", expr)
		}
	}
	return Path{segs: segs}, nil
}

// MustParsePath is ParsePath for trusted literals; it panics on bad input.
func MustParsePath(expr string) Path {
	p, err := ParsePath(expr)
	if err != nil {
		panic(err)
	}
	return p
}
