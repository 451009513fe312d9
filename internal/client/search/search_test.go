package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dantsyura/nexus-cli/internal/client/models"
)

func person(id int64, first, jobTitle string) models.Connection {
	c := models.Connection{User: models.User{Id: id}}
	if first != "" {
		c.FirstName = models.StrPtr(first)
	}
	if jobTitle != "" {
		c.JobTitle = models.StrPtr(jobTitle)
	}
	return c
}

func TestApply_IdentityOnEmptyInputs(t *testing.T) {
	cs := []models.Connection{
		person(1, "Alice", ""),
		person(2, "Bob", ""),
		person(3, "Carol", ""),
	}

	got := Apply(cs, "", nil)

	require.Equal(t, cs, got)
	require.Equal(t, int64(1), got[0].Id)
	require.Equal(t, int64(2), got[1].Id)
	require.Equal(t, int64(3), got[2].Id)
}

func TestApply_SubstringAcrossFields(t *testing.T) {
	engineer := person(1, "Alice", "Engineer")
	designer := person(2, "Bob", "Designer")

	got := Apply([]models.Connection{engineer, designer}, "eng", nil)

	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].Id)
}

func TestApply_CaseInsensitive(t *testing.T) {
	cs := []models.Connection{person(1, "Alice", "ENGINEER")}

	require.Len(t, Apply(cs, "engineer", nil), 1)
	require.Len(t, Apply(cs, "ALICE", nil), 1)
}

func TestApply_MatchesRelationshipFields(t *testing.T) {
	c := person(1, "Alice", "")
	c.RelationshipDescription = "met at a hackathon"
	c.Notes = "loves chess"

	require.Len(t, Apply([]models.Connection{c}, "hackathon", nil), 1)
	require.Len(t, Apply([]models.Connection{c}, "chess", nil), 1)
	require.Empty(t, Apply([]models.Connection{c}, "tennis", nil))
}

func TestApply_ComposesTextAndTags(t *testing.T) {
	a := person(1, "Alice", "Engineer")
	a.Tags = []string{"Work"}
	b := person(2, "Albert", "Engineer")
	b.Tags = []string{"School"}

	got := Apply([]models.Connection{a, b}, "engineer", []string{"Work"})

	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].Id)
}

func TestApply_TagsOnlyNoQuery(t *testing.T) {
	a := person(1, "Alice", "")
	a.Tags = []string{"Work", "NYC"}
	b := person(2, "Bob", "")
	b.Tags = []string{"Work"}

	got := Apply([]models.Connection{a, b}, "", []string{"Work", "NYC"})

	require.Len(t, got, 1)
	require.Equal(t, int64(1), got[0].Id)
}

func TestApply_PreservesRelativeOrder(t *testing.T) {
	cs := []models.Connection{
		person(1, "Anna", "Engineer"),
		person(2, "Ben", "Engineer"),
		person(3, "Cleo", "Engineer"),
	}

	got := Apply(cs, "engineer", nil)

	require.Len(t, got, 3)
	require.Equal(t, int64(1), got[0].Id)
	require.Equal(t, int64(2), got[1].Id)
	require.Equal(t, int64(3), got[2].Id)
}

func TestApply_MissingFieldsDoNotMatch(t *testing.T) {
	empty := models.Connection{User: models.User{Id: 1}}
	require.Empty(t, Apply([]models.Connection{empty}, "anything", nil))
}
