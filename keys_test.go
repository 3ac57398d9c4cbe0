package checkdp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	checkdp "github.com/reoring/checkdp"
)

func peoplePackage() checkdp.Descriptor {
	return checkdp.Descriptor{
		"name": "people-data",
		"resources": []any{
			map[string]any{
				"name": "people",
				"path": "data/people.csv",
				"schema": map[string]any{
					"fields": []any{
						map[string]any{"name": "name", "type": "string"},
						map[string]any{"name": "group", "type": "string"},
					},
				},
			},
		},
	}
}

func TestPrimaryKeyMissingField(t *testing.T) {
	d := peoplePackage()
	res := d["resources"].([]any)[0].(map[string]any)
	res["schema"].(map[string]any)["primaryKey"] = "id"

	issues, err := checkdp.Check(d, checkdp.Config{})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	is := issues[0]
	require.Equal(t, checkdp.KindPrimaryKey, is.Kind)
	require.Equal(t, "$.resources[0].schema.primaryKey", is.Path.String())
	require.Contains(t, is.Message, `"id"`)
}

func TestPrimaryKeyListsAllMissingFieldsAtOnce(t *testing.T) {
	d := peoplePackage()
	res := d["resources"].([]any)[0].(map[string]any)
	res["schema"].(map[string]any)["primaryKey"] = []any{"id", "name", "email"}

	issues, err := checkdp.Check(d, checkdp.Config{})
	require.NoError(t, err)
	require.Len(t, issues, 1, "one issue per resource, not one per missing field")
	require.Contains(t, issues[0].Message, `"id"`)
	require.Contains(t, issues[0].Message, `"email"`)
	require.NotContains(t, issues[0].Message, `"name"`)
}

func TestPrimaryKeyPresentFieldsPass(t *testing.T) {
	d := peoplePackage()
	res := d["resources"].([]any)[0].(map[string]any)
	res["schema"].(map[string]any)["primaryKey"] = []any{"name", "group"}

	issues, err := checkdp.Check(d, checkdp.Config{})
	require.NoError(t, err)
	require.Empty(t, issues)
}

func TestForeignKeyMissingLocalAndReferencedFields(t *testing.T) {
	d := peoplePackage()
	res := d["resources"].([]any)[0].(map[string]any)
	res["schema"].(map[string]any)["foreignKeys"] = []any{
		map[string]any{
			"fields": "tag",
			"reference": map[string]any{
				"resource": "groups",
				"fields":   "id",
			},
		},
	}

	issues, err := checkdp.Check(d, checkdp.Config{})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	is := issues[0]
	require.Equal(t, checkdp.KindForeignKey, is.Kind)
	require.Equal(t, "$.resources[0].schema.foreignKeys", is.Path.String())
	require.Contains(t, is.Message, `field "tag"`)
	require.Contains(t, is.Message, `resource "groups"`)
}

func TestForeignKeySelfReference(t *testing.T) {
	d := peoplePackage()
	res := d["resources"].([]any)[0].(map[string]any)
	res["schema"].(map[string]any)["foreignKeys"] = []any{
		map[string]any{
			"fields":    "group",
			"reference": map[string]any{"resource": "", "fields": "name"},
		},
	}

	issues, err := checkdp.Check(d, checkdp.Config{})
	require.NoError(t, err)
	require.Empty(t, issues)
}

func TestForeignKeyToOtherResource(t *testing.T) {
	d := peoplePackage()
	d["resources"] = append(d["resources"].([]any), map[string]any{
		"name": "groups",
		"path": "data/groups.csv",
		"schema": map[string]any{
			"fields": []any{map[string]any{"name": "id", "type": "string"}},
		},
	})
	people := d["resources"].([]any)[0].(map[string]any)
	people["schema"].(map[string]any)["foreignKeys"] = []any{
		map[string]any{
			"fields":    "group",
			"reference": map[string]any{"resource": "groups", "fields": "id"},
		},
	}

	issues, err := checkdp.Check(d, checkdp.Config{})
	require.NoError(t, err)
	require.Empty(t, issues)
}
