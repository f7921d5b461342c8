package handlers

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
)

func TestParseListQueryDefaults(t *testing.T) {
	q, fields, err := parseListQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Empty(t, q.Filters)
	assert.Empty(t, q.Sort)
	assert.Empty(t, fields)
}

func TestParseListQueryClampsPagination(t *testing.T) {
	q, _, err := parseListQuery(url.Values{"page": {"0"}, "limit": {"1000"}})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 100, q.Limit)

	// non-numeric values fall back to defaults
	q, _, err = parseListQuery(url.Values{"page": {"abc"}, "limit": {"-"}})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
}

func TestParseListQueryEqualityFilter(t *testing.T) {
	q, _, err := parseListQuery(url.Values{"role": {"admin"}})
	require.NoError(t, err)
	require.Len(t, q.Filters, 1)
	assert.Equal(t, repo.Filter{Field: "role", Op: repo.OpEq, Value: "admin"}, q.Filters[0])
}

func TestParseListQueryComparisonFilters(t *testing.T) {
	q, _, err := parseListQuery(url.Values{
		"age[gte]": {"18"},
		"age[lt]":  {"65"},
	})
	require.NoError(t, err)
	require.Len(t, q.Filters, 2)

	byOp := map[repo.FilterOp]any{}
	for _, f := range q.Filters {
		assert.Equal(t, "age", f.Field)
		byOp[f.Op] = f.Value
	}
	assert.Equal(t, 18, byOp[repo.OpGte])
	assert.Equal(t, 65, byOp[repo.OpLt])
}

func TestParseListQueryBoolAndTimeCoercion(t *testing.T) {
	q, _, err := parseListQuery(url.Values{"isActive": {"true"}})
	require.NoError(t, err)
	assert.Equal(t, true, q.Filters[0].Value)

	q, _, err = parseListQuery(url.Values{"createdAt[gte]": {"2024-01-02"}})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), q.Filters[0].Value)
}

func TestParseListQueryRejectsUnknownKeys(t *testing.T) {
	_, _, err := parseListQuery(url.Values{"passwordHash": {"x"}})
	assert.ErrorContains(t, err, "unknown filter field")

	_, _, err = parseListQuery(url.Values{"age[like]": {"1"}})
	assert.ErrorContains(t, err, "unknown filter field")

	_, _, err = parseListQuery(url.Values{"age": {"abc"}})
	assert.ErrorContains(t, err, "invalid value")

	_, _, err = parseListQuery(url.Values{"role": {"superuser"}})
	assert.ErrorContains(t, err, "invalid value")
}

func TestParseListQuerySort(t *testing.T) {
	q, _, err := parseListQuery(url.Values{"sort": {"name,-createdAt"}})
	require.NoError(t, err)
	require.Len(t, q.Sort, 2)
	assert.Equal(t, repo.SortField{Field: "name"}, q.Sort[0])
	assert.Equal(t, repo.SortField{Field: "createdAt", Desc: true}, q.Sort[1])

	_, _, err = parseListQuery(url.Values{"sort": {"passwordHash"}})
	assert.ErrorContains(t, err, "invalid sort field")
}

func TestParseListQueryFields(t *testing.T) {
	_, fields, err := parseListQuery(url.Values{"fields": {"name,email"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "email"}, fields)

	_, _, err = parseListQuery(url.Values{"fields": {"passwordHash"}})
	assert.ErrorContains(t, err, "invalid field")
}

func TestParseListQuerySearchIsControlKey(t *testing.T) {
	q, _, err := parseListQuery(url.Values{"search": {"john"}})
	require.NoError(t, err)
	assert.Equal(t, "john", q.Search)
	assert.Empty(t, q.Filters)
}
