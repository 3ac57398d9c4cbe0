package checkdp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	checkdp "github.com/reoring/checkdp"
)

func lowercaseRule(t *testing.T) checkdp.CustomCheck {
	t.Helper()
	ck, err := checkdp.NewRule("lowercase", "$.name", "Name must be lowercase.", func(v any) bool {
		s, ok := v.(string)
		return ok && s == strings.ToLower(s)
	})
	require.NoError(t, err)
	return ck
}

func TestRuleDirectPath(t *testing.T) {
	d := checkdp.ExamplePackage()
	d["name"] = "ALLCAPS"

	issues, err := checkdp.Check(d, checkdp.Config{CustomChecks: []checkdp.CustomCheck{lowercaseRule(t)}})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	is := issues[0]
	require.Equal(t, "$.name", is.Path.String())
	require.Equal(t, "lowercase", is.Kind)
	require.Equal(t, "lowercase", is.Rule)
	require.Equal(t, "Name must be lowercase.", is.Message)
}

func TestRuleIndirectPath(t *testing.T) {
	d := checkdp.ExamplePackage()
	second := checkdp.ExampleResource()
	second["name"] = "mice-2016"
	d["resources"] = append(d["resources"].([]any), second)

	ck, err := checkdp.NewRule("resource-name", "$.resources[*].name",
		"Resource name must start with 'woolly'.", func(v any) bool {
			s, _ := v.(string)
			return strings.HasPrefix(s, "woolly")
		})
	require.NoError(t, err)

	issues, err := checkdp.Check(d, checkdp.Config{CustomChecks: []checkdp.CustomCheck{ck}})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	require.Equal(t, "$.resources[1].name", issues[0].Path.String())
}

func TestRulePassesWhenSatisfied(t *testing.T) {
	d := checkdp.ExamplePackage()
	issues, err := checkdp.Check(d, checkdp.Config{CustomChecks: []checkdp.CustomCheck{lowercaseRule(t)}})
	require.NoError(t, err)
	require.Empty(t, issues)
}

func TestCustomCheckKindStamping(t *testing.T) {
	d := checkdp.ExamplePackage()
	ck := checkdp.CustomCheck{
		Name: "has-keywords",
		Check: func(d checkdp.Descriptor) checkdp.Issues {
			if _, ok := d["keywords"]; ok {
				return nil
			}
			return checkdp.Issues{{Path: checkdp.Root(), Message: "keywords help discovery"}}
		},
	}
	issues, err := checkdp.Check(d, checkdp.Config{CustomChecks: []checkdp.CustomCheck{ck}})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	require.Equal(t, "has-keywords", issues[0].Kind)
	require.Equal(t, "has-keywords", issues[0].Rule)
}

func TestCustomCheckPanicIsIsolated(t *testing.T) {
	d := checkdp.ExamplePackage()
	d["name"] = "ALLCAPS"

	boom := checkdp.CustomCheck{
		Name:  "boom",
		Check: func(checkdp.Descriptor) checkdp.Issues { panic("kaboom") },
	}
	cfg := checkdp.Config{CustomChecks: []checkdp.CustomCheck{boom, lowercaseRule(t)}}

	issues, err := checkdp.Check(d, cfg)
	require.NoError(t, err)
	require.Len(t, issues, 2, "the broken check must not blind the run to other defects")

	var failure, finding *checkdp.Issue
	for i := range issues {
		switch issues[i].Kind {
		case checkdp.KindCheckFailure:
			failure = &issues[i]
		case "lowercase":
			finding = &issues[i]
		}
	}
	require.NotNil(t, failure)
	require.NotNil(t, finding)
	require.Equal(t, "$", failure.Path.String())
	require.Equal(t, "boom", failure.Rule)
	require.Contains(t, failure.Message, "kaboom")
}

func TestNewRuleRejectsIntersectionTarget(t *testing.T) {
	_, err := checkdp.NewRule("x", "$.name & $.title", "msg", func(any) bool { return true })
	require.Error(t, err)
	require.Contains(t, err.Error(), "intersection")
}
