package repository

import (
	"testing"

	"github.com/noreyni/webhook-api/internal/project/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func statusPtr(s domain.Status) *domain.Status             { return &s }
func visibilityPtr(v domain.Visibility) *domain.Visibility { return &v }
func typePtr(t domain.Type) *domain.Type                   { return &t }

func TestSearchFilterQueryEmpty(t *testing.T) {
	query := searchFilterQuery(domain.SearchFilter{})
	assert.Empty(t, query)
}

func TestSearchFilterQueryBlankValuesOmitted(t *testing.T) {
	query := searchFilterQuery(domain.SearchFilter{Name: "   ", OwnerID: "  "})
	assert.Empty(t, query)
}

func TestSearchFilterQueryNameSubstring(t *testing.T) {
	query := searchFilterQuery(domain.SearchFilter{Name: " Web "})
	require.Len(t, query, 1)
	assert.Equal(t, "name", query[0].Key)
	assert.Equal(t, bson.D{{Key: "$regex", Value: "Web"}}, query[0].Value)
}

func TestSearchFilterQueryNameEscapesRegexMeta(t *testing.T) {
	query := searchFilterQuery(domain.SearchFilter{Name: "a.b*"})
	require.Len(t, query, 1)
	assert.Equal(t, bson.D{{Key: "$regex", Value: `a\.b\*`}}, query[0].Value)
}

func TestSearchFilterQueryConjunction(t *testing.T) {
	query := searchFilterQuery(domain.SearchFilter{
		Name:       "api",
		Status:     statusPtr(domain.StatusActive),
		Visibility: visibilityPtr(domain.VisibilityPublic),
		Type:       typePtr(domain.TypeSoftware),
		OwnerID:    " owner-1 ",
	})
	require.Len(t, query, 5)
	assert.Equal(t, "name", query[0].Key)
	assert.Equal(t, bson.E{Key: "status", Value: domain.StatusActive}, query[1])
	assert.Equal(t, bson.E{Key: "visibility", Value: domain.VisibilityPublic}, query[2])
	assert.Equal(t, bson.E{Key: "type", Value: domain.TypeSoftware}, query[3])
	assert.Equal(t, bson.E{Key: "owner_id", Value: "owner-1"}, query[4])
}

func TestSearchSort(t *testing.T) {
	cases := []struct {
		name      string
		sortBy    string
		direction string
		want      bson.D
	}{
		{"default field", "", "", bson.D{{Key: "name", Value: 1}}},
		{"unknown field falls back", "bogus", "", bson.D{{Key: "name", Value: 1}}},
		{"camelCase mapped", "createdAt", "", bson.D{{Key: "created_at", Value: 1}}},
		{"ownerId mapped", "ownerId", "", bson.D{{Key: "owner_id", Value: 1}}},
		{"desc", "status", "desc", bson.D{{Key: "status", Value: -1}}},
		{"desc case-insensitive", "name", "DESC", bson.D{{Key: "name", Value: -1}}},
		{"anything else is asc", "name", "descending", bson.D{{Key: "name", Value: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, searchSort(tc.sortBy, tc.direction))
		})
	}
}

func TestAccessibleQuery(t *testing.T) {
	query := accessibleQuery("u1")
	require.Len(t, query, 1)
	assert.Equal(t, "$or", query[0].Key)
	clauses, ok := query[0].Value.(bson.A)
	require.True(t, ok)
	assert.Len(t, clauses, 3)
}

func TestFoldStats(t *testing.T) {
	projects := []domain.Project{
		{Status: domain.StatusActive},
		{Status: domain.StatusActive},
		{Status: domain.StatusDraft},
		{Status: domain.StatusCompleted},
		{Status: domain.StatusArchived},
	}
	stats := foldStats(projects)
	assert.Equal(t, domain.Stats{
		TotalProjects:     5,
		ActiveProjects:    2,
		DraftProjects:     1,
		CompletedProjects: 1,
	}, stats)
}

func TestFoldStatsEmpty(t *testing.T) {
	assert.Equal(t, domain.Stats{}, foldStats(nil))
}
