package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/user-management-api/internal/domain/repository"
)

func TestBuildListSQLDefaults(t *testing.T) {
	q := repository.ListQuery{Page: 1, Limit: 10}

	sql, args, err := buildListSQL(q)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT "+selectUserCols+" FROM users ORDER BY created_at DESC, id ASC LIMIT $1 OFFSET $2",
		sql)
	assert.Equal(t, []any{10, 0}, args)
}

func TestBuildListSQLFiltersAndOps(t *testing.T) {
	q := repository.ListQuery{
		Page:  2,
		Limit: 25,
		Filters: []repository.Filter{
			{Field: "age", Op: repository.OpGte, Value: 18},
			{Field: "role", Op: repository.OpEq, Value: "user"},
			{Field: "isActive", Op: repository.OpEq, Value: true},
		},
	}

	sql, args, err := buildListSQL(q)
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE age >= $1 AND role = $2 AND is_active = $3")
	assert.Contains(t, sql, "LIMIT $4 OFFSET $5")
	assert.Equal(t, []any{18, "user", true, 25, 25}, args)
}

func TestBuildListSQLSearch(t *testing.T) {
	q := repository.ListQuery{Page: 1, Limit: 10, Search: "john"}

	sql, args, err := buildListSQL(q)
	require.NoError(t, err)
	assert.Contains(t, sql, "(name ILIKE $1 OR email ILIKE $1)")
	assert.Equal(t, "%john%", args[0])
}

func TestBuildListSQLSearchEscapesLikeMeta(t *testing.T) {
	q := repository.ListQuery{Page: 1, Limit: 10, Search: "50%_off"}

	_, args, err := buildListSQL(q)
	require.NoError(t, err)
	assert.Equal(t, `%50\%\_off%`, args[0])
}

func TestBuildListSQLSort(t *testing.T) {
	q := repository.ListQuery{
		Page:  1,
		Limit: 10,
		Sort: []repository.SortField{
			{Field: "name"},
			{Field: "createdAt", Desc: true},
		},
	}

	sql, _, err := buildListSQL(q)
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY name ASC, created_at DESC, id ASC")
}

func TestBuildListSQLUnknownFieldRejected(t *testing.T) {
	_, _, err := buildListSQL(repository.ListQuery{
		Page:    1,
		Limit:   10,
		Filters: []repository.Filter{{Field: "passwordHash", Op: repository.OpEq, Value: "x"}},
	})
	assert.ErrorContains(t, err, "unknown filter field")

	_, _, err = buildListSQL(repository.ListQuery{
		Page:  1,
		Limit: 10,
		Sort:  []repository.SortField{{Field: "passwordHash"}},
	})
	assert.ErrorContains(t, err, "unknown sort field")
}

func TestBuildListSQLUnknownOpRejected(t *testing.T) {
	_, _, err := buildListSQL(repository.ListQuery{
		Page:    1,
		Limit:   10,
		Filters: []repository.Filter{{Field: "age", Op: "like", Value: 1}},
	})
	assert.ErrorContains(t, err, "unknown filter operator")
}

func TestBuildCountSQLIgnoresPagination(t *testing.T) {
	q := repository.ListQuery{
		Page:    7,
		Limit:   50,
		Search:  "doe",
		Filters: []repository.Filter{{Field: "age", Op: repository.OpLt, Value: 30}},
	}

	sql, args, err := buildCountSQL(q)
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM users WHERE age < $1 AND (name ILIKE $2 OR email ILIKE $2)", sql)
	assert.Equal(t, []any{30, "%doe%"}, args)
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "OFFSET")
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, repository.ListQuery{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, repository.ListQuery{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 99, repository.ListQuery{Page: 100, Limit: 1}.Offset())
}
