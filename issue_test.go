package checkdp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSortAndDedupeOrdersByPathThenMessage(t *testing.T) {
	iss := Issues{
		{Path: MustParsePath("$.resources[10]"), Message: "b"},
		{Path: MustParsePath("$.name"), Message: "z"},
		{Path: MustParsePath("$.resources[2]"), Message: "a"},
		{Path: MustParsePath("$.name"), Message: "a"},
	}
	got := sortAndDedupe(iss)
	var order []string
	for _, is := range got {
		order = append(order, is.Path.String()+" "+is.Message)
	}
	require.Equal(t, []string{
		"$.name a",
		"$.name z",
		"$.resources[2] a",
		"$.resources[10] b",
	}, order)
}

func TestSortAndDedupeDropsDuplicates(t *testing.T) {
	// Same path and message from two different sources is one defect.
	iss := Issues{
		{Path: MustParsePath("$.name"), Kind: KindType, Message: "bad"},
		{Path: MustParsePath("$.name"), Kind: "custom-x", Message: "bad"},
		{Path: MustParsePath("$.name"), Kind: KindType, Message: "other"},
	}
	got := sortAndDedupe(iss)
	require.Len(t, got, 2)
}

func TestSortIsIndependentOfEvaluatorOrder(t *testing.T) {
	a := Issues{
		{Path: MustParsePath("$.b"), Message: "1"},
		{Path: MustParsePath("$.a"), Message: "2"},
		{Path: MustParsePath("$.a"), Message: "1"},
	}
	b := Issues{a[2], a[0], a[1]}
	require.Equal(t, sortAndDedupe(a), sortAndDedupe(b))
}

func TestIssuesErrorSummary(t *testing.T) {
	var iss Issues
	for i := 0; i < 5; i++ {
		iss = append(iss, Issue{Path: Root().Field(fmt.Sprintf("f%d", i)), Kind: KindRequired, Message: "m"})
	}
	s := iss.Error()
	require.Contains(t, s, "required at $.f0")
	require.Contains(t, s, "(total 5)")
	require.Empty(t, Issues{}.Error())
}

func TestAsIssues(t *testing.T) {
	var err error = Issues{{Path: Root(), Kind: KindRequired, Message: "m"}}
	got, ok := AsIssues(err)
	require.True(t, ok)
	require.Len(t, got, 1)

	_, ok = AsIssues(nil)
	require.False(t, ok)
	_, ok = AsIssues(fmt.Errorf("plain"))
	require.False(t, ok)
}
