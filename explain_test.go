package checkdp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	checkdp "github.com/reoring/checkdp"
)

func enumIssue() checkdp.Issue {
	return checkdp.Issue{
		Path:    checkdp.MustParsePath("$.resources[0].schema.fields[0].type"),
		Kind:    checkdp.KindEnum,
		Message: `value is not one of the allowed values`,
		Params: map[string]any{
			"allowed": []string{"string", "integer", "date"},
			"got":     "strng",
		},
	}
}

func TestExplainEnumSuggestsNearestValue(t *testing.T) {
	ex := checkdp.Explain(enumIssue())
	require.Contains(t, ex.Explanation, "Accepted values")
	require.Contains(t, ex.Explanation, "string")
	require.Equal(t, `did you mean "string"?`, ex.Suggestion)
	require.Contains(t, ex.Docs, "datapackage.org")
}

func TestExplainSkipsFarfetchedSuggestions(t *testing.T) {
	is := enumIssue()
	is.Params["got"] = "zzzzz"
	ex := checkdp.Explain(is)
	require.Empty(t, ex.Suggestion)
}

func TestExplainIsIdempotent(t *testing.T) {
	first := checkdp.Explain(enumIssue())
	second := checkdp.Explain(first.Issue)
	require.Equal(t, first, second)
}

func TestExplainBuiltinKinds(t *testing.T) {
	pk := checkdp.Explain(checkdp.Issue{
		Path: checkdp.MustParsePath("$.resources[0].schema.primaryKey"),
		Kind: checkdp.KindPrimaryKey,
	})
	require.Contains(t, pk.Explanation, "primary key")
	require.Contains(t, pk.Docs, "primaryKey")

	req := checkdp.Explain(checkdp.Issue{Path: checkdp.Root().Field("resources"), Kind: checkdp.KindRequired})
	require.Contains(t, req.Explanation, "required")
}

func TestExplainCollapsedVariantKinds(t *testing.T) {
	for _, kind := range []string{checkdp.KindAnyOf, checkdp.KindOneOf, checkdp.KindAllOf} {
		ex := checkdp.Explain(checkdp.Issue{
			Path: checkdp.MustParsePath("$.resources[0].schema.primaryKey"),
			Kind: kind,
		})
		require.Contains(t, ex.Docs, "datapackage.org", "kind %s", kind)
		require.NotContains(t, ex.Explanation, "custom check", "kind %s", kind)
	}
}

func TestExplainCustomKind(t *testing.T) {
	ex := checkdp.Explain(checkdp.Issue{
		Path:    checkdp.Root().Field("licenses").Index(0).Field("name"),
		Kind:    "only-mit",
		Rule:    "only-mit",
		Message: "Data Packages may only be licensed under MIT.",
	})
	require.Contains(t, ex.Explanation, "only-mit")
	require.Empty(t, ex.Docs)
}

func TestExplainDoesNotNeedTheDescriptor(t *testing.T) {
	// An issue from some other descriptor is still explainable: Explain
	// interprets the issue structurally.
	ex := checkdp.Explain(checkdp.Issue{
		Path: checkdp.MustParsePath("$.somewhere[9].else"),
		Kind: checkdp.KindLicense,
	})
	require.NotEmpty(t, ex.Explanation)
}
