package checkdp

import (
	"fmt"
	"strings"
)

// primaryKeyIssues verifies that every field named by a resource's primary
// key is declared among the resource's schema fields. One issue is emitted
// per offending resource, naming all missing references at once.
func primaryKeyIssues(d Descriptor) Issues {
	var out Issues
	eachResource(d, func(i int, res map[string]any) {
		schema, _ := res["schema"].(map[string]any)
		if schema == nil {
			return
		}
		pk := stringList(schema["primaryKey"])
		if len(pk) == 0 {
			return
		}
		declared := schemaFieldNames(schema)
		missing := missingFrom(pk, declared)
		if len(missing) == 0 {
			return
		}
		out = append(out, Issue{
			Path:    Root().Field("resources").Index(i).Field("schema").Field("primaryKey"),
			Kind:    KindPrimaryKey,
			Message: fmt.Sprintf("primary key references %s not defined in the schema fields", quoteJoin(missing)),
			Params:  map[string]any{"missing": missing, "resource": resourceName(res, i)},
		})
	})
	return out
}

// foreignKeyIssues verifies foreign key references: the local fields must be
// declared in the resource's own schema, and the referenced fields must be
// declared in the referenced resource (the resource itself when the
// reference names none or an empty one). One issue per offending resource.
func foreignKeyIssues(d Descriptor) Issues {
	resources, _ := d["resources"].([]any)
	var out Issues
	eachResource(d, func(i int, res map[string]any) {
		schema, _ := res["schema"].(map[string]any)
		if schema == nil {
			return
		}
		fks, _ := schema["foreignKeys"].([]any)
		if len(fks) == 0 {
			return
		}
		declared := schemaFieldNames(schema)
		var missing []string
		for _, raw := range fks {
			fk, _ := raw.(map[string]any)
			if fk == nil {
				continue
			}
			for _, name := range missingFrom(stringList(fk["fields"]), declared) {
				missing = append(missing, fmt.Sprintf("field %q", name))
			}
			ref, _ := fk["reference"].(map[string]any)
			if ref == nil {
				continue
			}
			refName, _ := ref["resource"].(string)
			target := res
			if refName != "" {
				target = findResource(resources, refName)
				if target == nil {
					missing = append(missing, fmt.Sprintf("resource %q", refName))
					continue
				}
			}
			targetSchema, _ := target["schema"].(map[string]any)
			targetDeclared := schemaFieldNames(targetSchema)
			for _, name := range missingFrom(stringList(ref["fields"]), targetDeclared) {
				if refName != "" {
					missing = append(missing, fmt.Sprintf("field %q in resource %q", name, refName))
				} else {
					missing = append(missing, fmt.Sprintf("field %q", name))
				}
			}
		}
		if len(missing) == 0 {
			return
		}
		out = append(out, Issue{
			Path:    Root().Field("resources").Index(i).Field("schema").Field("foreignKeys"),
			Kind:    KindForeignKey,
			Message: "foreign key references " + strings.Join(missing, ", ") + " not defined in the schema fields",
			Params:  map[string]any{"missing": missing, "resource": resourceName(res, i)},
		})
	})
	return out
}

func eachResource(d Descriptor, fn func(i int, res map[string]any)) {
	resources, _ := d["resources"].([]any)
	for i, raw := range resources {
		if res, ok := raw.(map[string]any); ok {
			fn(i, res)
		}
	}
}

func findResource(resources []any, name string) map[string]any {
	for _, raw := range resources {
		res, _ := raw.(map[string]any)
		if res != nil && res["name"] == name {
			return res
		}
	}
	return nil
}

func resourceName(res map[string]any, i int) string {
	if name, ok := res["name"].(string); ok && name != "" {
		return name
	}
	return fmt.Sprintf("resources[%d]", i)
}

func schemaFieldNames(schema map[string]any) map[string]struct{} {
	out := map[string]struct{}{}
	if schema == nil {
		return out
	}
	fields, _ := schema["fields"].([]any)
	for _, raw := range fields {
		f, _ := raw.(map[string]any)
		if f == nil {
			continue
		}
		if name, ok := f["name"].(string); ok {
			out[name] = struct{}{}
		}
	}
	return out
}

// stringList accepts the standard's string-or-array-of-strings shape.
func stringList(v any) []string {
	switch vv := v.(type) {
	case string:
		if vv == "" {
			return nil
		}
		return []string{vv}
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func missingFrom(names []string, declared map[string]struct{}) []string {
	var missing []string
	for _, n := range names {
		if _, ok := declared[n]; !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
