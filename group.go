package checkdp

import (
	"sort"
	"strings"
)

// Compound-construct markers emitted by the keyword validator when a
// disjunctive sub-schema fails, mapped to the kind their group collapses
// into. The validator reports one violation per failing branch alongside the
// marker; ungrouped, that raw output is unreadable for any anyOf/oneOf
// construct.
var compoundMarkers = map[string]string{
	"number_any_of": KindAnyOf,
	"number_one_of": KindOneOf,
	"number_all_of": KindAllOf,
}

var groupLeads = map[string]string{
	KindLicense: "license entry is invalid",
	KindEnum:    "value is not one of the allowed values",
	KindAnyOf:   "value does not match any accepted variant",
	KindOneOf:   "value must match exactly one accepted variant",
	KindAllOf:   "value does not satisfy all required constraints",
}

// groupableKinds are the keyword-validator kinds a compound marker may
// absorb. Issues from rule evaluators and custom checks never join a group.
var groupableKinds = map[string]struct{}{
	KindRequired: {},
	KindType:     {},
	KindFormat:   {},
	KindPattern:  {},
	KindEnum:     {},
}

func groupable(is Issue) bool {
	if _, ok := compoundMarkers[is.Kind]; ok {
		return true
	}
	_, ok := groupableKinds[is.Kind]
	return ok
}

// groupIssues collapses each compound construct's branch violations into a
// single semantic issue at the marker's path. Shallower markers absorb
// deeper ones, so nested disjunctions still produce one issue per offending
// value. Ungrouped issues pass through unchanged.
func groupIssues(iss Issues) Issues {
	var markers []int
	for i, is := range iss {
		if _, ok := compoundMarkers[is.Kind]; ok {
			markers = append(markers, i)
		}
	}
	if len(markers) == 0 {
		return iss
	}
	sort.SliceStable(markers, func(a, b int) bool {
		pa, pb := iss[markers[a]].Path, iss[markers[b]].Path
		if pa.Len() != pb.Len() {
			return pa.Len() < pb.Len()
		}
		return pa.Compare(pb) < 0
	})

	used := make([]bool, len(iss))
	var out Issues
	for _, mi := range markers {
		if used[mi] {
			continue
		}
		marker := iss[mi]
		var members Issues
		for i, is := range iss {
			if used[i] || !groupable(is) || !is.Path.HasPrefix(marker.Path) {
				continue
			}
			used[i] = true
			members = append(members, is)
		}
		out = append(out, collapseGroup(marker, members))
	}
	for i, is := range iss {
		if !used[i] {
			out = append(out, is)
		}
	}
	return out
}

// collapseGroup synthesizes the representative issue for one compound
// construct failure.
func collapseGroup(marker Issue, members Issues) Issue {
	kind := compoundMarkers[marker.Kind]
	switch {
	case marker.Path.Contains("licenses"):
		kind = KindLicense
	default:
		for _, m := range members {
			if m.Kind == KindEnum {
				kind = KindEnum
				break
			}
		}
	}

	detailSet := map[string]struct{}{}
	params := map[string]any{}
	for _, m := range members {
		if _, isMarker := compoundMarkers[m.Kind]; isMarker {
			continue
		}
		detail := m.Message
		if !m.Path.Equal(marker.Path) {
			rel := strings.TrimPrefix(m.Path.String(), marker.Path.String())
			detail = strings.TrimPrefix(rel, ".") + ": " + m.Message
		}
		detailSet[detail] = struct{}{}
		for _, k := range []string{"allowed", "got"} {
			if v, ok := m.Params[k]; ok {
				params[k] = v
			}
		}
	}
	details := make([]string, 0, len(detailSet))
	for d := range detailSet {
		details = append(details, d)
	}
	sort.Strings(details)

	msg := groupLeads[kind]
	if msg == "" {
		msg = marker.Message
	}
	if len(details) > 0 {
		msg += ": " + strings.Join(details, "; ")
		params["causes"] = details
	}
	return Issue{Path: marker.Path, Kind: kind, Message: msg, Params: params}
}
