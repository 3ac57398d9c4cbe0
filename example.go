package checkdp

// ExampleField returns a field descriptor that passes the standard checks.
// Handy as a starting point in tests and documentation.
func ExampleField() map[string]any {
	return map[string]any{
		"name":  "eye-colour",
		"type":  "string",
		"title": "Woolly dormouse eye colour",
	}
}

// ExampleResource returns a resource descriptor that passes the standard
// checks.
func ExampleResource() map[string]any {
	return map[string]any{
		"name":        "woolly-dormice-2015",
		"title":       "Body fat percentage in the hibernating woolly dormouse",
		"description": "Body fat percentage measurements collected each winter between 2005 and 2015.",
		"path":        "resources/woolly-dormice-2015/data.parquet",
		"schema": map[string]any{
			"fields": []any{ExampleField()},
		},
	}
}

// ExamplePackage returns a package descriptor that passes the standard
// checks, strict mode included.
func ExamplePackage() Descriptor {
	return Descriptor{
		"name":        "woolly-dormice",
		"title":       "Hibernation Physiology of the Woolly Dormouse: A Scoping Review.",
		"description": "A scoping review of hibernation physiology in the woolly dormouse, drawing on data collected over a 10-year period along the Taurus Mountain range.",
		"id":          "123e4567-e89b-12d3-a456-426614174000",
		"created":     "2014-05-14T05:00:01+00:00",
		"version":     "1.0.0",
		"licenses":    []any{map[string]any{"name": "odc-pddl"}},
		"resources":   []any{ExampleResource()},
	}
}
