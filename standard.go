package checkdp

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
)

// Condensed Data Package standard profiles, evaluated by the external
// keyword validator.
var (
	//go:embed schemas/data-package-v1.json
	packageSchemaV1 []byte
	//go:embed schemas/data-package-v2.json
	packageSchemaV2 []byte
	//go:embed schemas/data-resource-v1.json
	resourceSchemaV1 []byte
	//go:embed schemas/data-resource-v2.json
	resourceSchemaV2 []byte
)

// schemaCache compiles each profile at most once per process. Compiled
// schemas are read-only and shared across concurrent check calls.
var schemaCache struct {
	mu       sync.Mutex
	compiled map[string]*gojsonschema.Schema
}

func compiledSchema(key string, raw []byte) (*gojsonschema.Schema, error) {
	schemaCache.mu.Lock()
	defer schemaCache.mu.Unlock()
	if s, ok := schemaCache.compiled[key]; ok {
		return s, nil
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("compile %s standard schema: %w", key, err)
	}
	if schemaCache.compiled == nil {
		schemaCache.compiled = map[string]*gojsonschema.Schema{}
	}
	schemaCache.compiled[key] = s
	return s, nil
}

func packageSchema(version string) (*gojsonschema.Schema, error) {
	if version == VersionV1 {
		return compiledSchema("package-v1", packageSchemaV1)
	}
	return compiledSchema("package-v2", packageSchemaV2)
}

func resourceSchema(version string) (*gojsonschema.Schema, error) {
	if version == VersionV1 {
		return compiledSchema("resource-v1", resourceSchemaV1)
	}
	return compiledSchema("resource-v2", resourceSchemaV2)
}

// standardIssues runs the keyword validator over the descriptor and converts
// its raw keyword-level violations into issues. The output is deliberately
// left ungrouped; compound-construct markers (anyOf/oneOf/allOf) pass
// through for the grouping stage to collapse.
func standardIssues(d Descriptor, schema *gojsonschema.Schema) (Issues, error) {
	result, err := schema.Validate(gojsonschema.NewGoLoader(map[string]any(d)))
	if err != nil {
		return nil, fmt.Errorf("standard schema validation: %w", err)
	}
	var out Issues
	for _, re := range result.Errors() {
		out = append(out, convertKeywordViolation(re))
	}
	return out, nil
}

// keywordKinds maps the validator's keyword identifiers onto issue kinds.
// Unknown keywords pass through untouched; grouping recognizes the compound
// markers among them.
var keywordKinds = map[string]string{
	"required":     KindRequired,
	"invalid_type": KindType,
	"format":       KindFormat,
	"pattern":      KindPattern,
	"enum":         KindEnum,
	"const":        KindEnum,
}

func convertKeywordViolation(re gojsonschema.ResultError) Issue {
	path := pathFromField(re.Field())
	details := re.Details()
	if re.Type() == "required" {
		// The validator reports required at the parent; point at the
		// missing property itself.
		if prop, ok := details["property"].(string); ok && !strings.HasSuffix(re.Field(), "."+prop) && re.Field() != prop {
			path = path.Field(prop)
		}
	}
	kind := re.Type()
	if mapped, ok := keywordKinds[kind]; ok {
		kind = mapped
	}
	params := map[string]any{}
	for k, v := range details {
		switch k {
		case "context", "field":
			// Validator-internal bookkeeping, already captured by Path.
			continue
		}
		params[k] = v
	}
	if kind == KindEnum {
		if allowed := allowedValues(re); len(allowed) > 0 {
			params["allowed"] = allowed
		}
		if re.Value() != nil {
			params["got"] = fmt.Sprint(re.Value())
		}
	}
	return Issue{Path: path, Kind: kind, Message: trimFieldPrefix(re.Description(), re.Field()), Params: params}
}

// trimFieldPrefix drops the validator's dotted field notation from the front
// of a description. The location is carried by Path in JSONPath notation;
// repeating it dotted inside the message only confuses.
func trimFieldPrefix(desc, field string) string {
	if field == "" {
		return desc
	}
	for _, sep := range []string{": ", " "} {
		if rest, ok := strings.CutPrefix(desc, field+sep); ok {
			return rest
		}
	}
	return desc
}

// allowedValues recovers the accepted values of an enum violation from the
// validator's description ("must be one of the following: ...").
func allowedValues(re gojsonschema.ResultError) []string {
	const marker = "must be one of the following: "
	desc := re.Description()
	i := strings.Index(desc, marker)
	if i < 0 {
		return nil
	}
	parts := strings.Split(desc[i+len(marker):], ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.Trim(strings.TrimSpace(p), `"`))
	}
	return out
}

// pathFromField converts the validator's dotted field notation
// ("resources.0.name", "(root)") into a Path.
func pathFromField(field string) Path {
	if field == "" || field == "(root)" {
		return Root()
	}
	p := Root()
	for _, part := range strings.Split(field, ".") {
		if n, err := strconv.Atoi(part); err == nil {
			p = p.Index(n)
			continue
		}
		p = p.Field(part)
	}
	return p
}

// Recommended-but-optional fields, reported only in strict mode.
var (
	packageRecommendedFields  = []string{"name", "id", "licenses", "title", "description"}
	resourceRecommendedFields = []string{"title", "description"}
)

// recommendationIssues evaluates the standard's "should" clauses: presence
// of recommended fields, a semver-shaped version and a UUID- or DOI-shaped
// id.
func recommendationIssues(d Descriptor) Issues {
	var out Issues
	for _, name := range packageRecommendedFields {
		if v, ok := d[name]; !ok || v == nil {
			out = append(out, Issue{
				Path:    Root().Field(name),
				Kind:    KindRecommendation,
				Message: fmt.Sprintf("the package should have a %q field", name),
			})
		}
	}
	if v, ok := d["version"].(string); ok && v != "" {
		if _, err := semver.NewVersion(v); err != nil {
			out = append(out, Issue{
				Path:    Root().Field("version"),
				Kind:    KindRecommendation,
				Message: "the \"version\" field should follow semantic versioning",
				Params:  map[string]any{"got": v},
			})
		}
	}
	if v, ok := d["id"].(string); ok && v != "" && !isUUIDOrDOI(v) {
		out = append(out, Issue{
			Path:    Root().Field("id"),
			Kind:    KindRecommendation,
			Message: "the \"id\" field should be a UUID or a DOI",
			Params:  map[string]any{"got": v},
		})
	}
	eachResource(d, func(i int, res map[string]any) {
		for _, name := range resourceRecommendedFields {
			if v, ok := res[name]; !ok || v == nil {
				out = append(out, Issue{
					Path:    Root().Field("resources").Index(i).Field(name),
					Kind:    KindRecommendation,
					Message: fmt.Sprintf("the resource should have a %q field", name),
				})
			}
		}
	})
	return out
}

func isUUIDOrDOI(s string) bool {
	if _, err := uuid.Parse(s); err == nil {
		return true
	}
	return strings.HasPrefix(s, "10.") || strings.HasPrefix(s, "doi:") || strings.HasPrefix(s, "https://doi.org/")
}
