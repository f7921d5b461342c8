package postgres

import (
	"fmt"
	"strings"

	"github.com/oksasatya/user-management-api/internal/domain/repository"
)

// userColumns maps domain attribute names to storage columns. Attributes not
// listed here cannot be filtered or sorted on; the handler layer enforces the
// same allow-list before a query ever reaches this package.
var userColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"age":       "age",
	"role":      "role",
	"isActive":  "is_active",
	"createdAt": "created_at",
	"lastLogin": "last_login",
}

var filterOps = map[repository.FilterOp]string{
	repository.OpEq:  "=",
	repository.OpGt:  ">",
	repository.OpGte: ">=",
	repository.OpLt:  "<",
	repository.OpLte: "<=",
}

const selectUserCols = "id, name, email, password_hash, age, role, is_active, last_login, created_at, updated_at"

// buildWhere renders the filter set and search constraint as a WHERE clause
// with positional args. Filters are ANDed; search matches name OR email
// case-insensitively and is ANDed with the filter group.
func buildWhere(q repository.ListQuery) (string, []any, error) {
	var conds []string
	var args []any

	for _, f := range q.Filters {
		col, ok := userColumns[f.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown filter field: %s", f.Field)
		}
		op, ok := filterOps[f.Op]
		if !ok {
			return "", nil, fmt.Errorf("unknown filter operator: %s", f.Op)
		}
		args = append(args, f.Value)
		conds = append(conds, fmt.Sprintf("%s %s $%d", col, op, len(args)))
	}

	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", n, n))
	}

	if len(conds) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// buildListSQL renders the full bounded SELECT for a listing request.
func buildListSQL(q repository.ListQuery) (string, []any, error) {
	where, args, err := buildWhere(q)
	if err != nil {
		return "", nil, err
	}

	order := make([]string, 0, len(q.Sort)+1)
	for _, s := range q.Sort {
		col, ok := userColumns[s.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown sort field: %s", s.Field)
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		order = append(order, col+" "+dir)
	}
	if len(order) == 0 {
		order = append(order, "created_at DESC")
	}
	// id tie-break keeps ordering stable across identical sort keys
	order = append(order, "id ASC")

	args = append(args, q.Limit)
	limitPos := len(args)
	args = append(args, q.Offset())
	offsetPos := len(args)

	sql := fmt.Sprintf("SELECT %s FROM users%s ORDER BY %s LIMIT $%d OFFSET $%d",
		selectUserCols, where, strings.Join(order, ", "), limitPos, offsetPos)
	return sql, args, nil
}

// buildCountSQL renders the companion COUNT over all matching rows,
// ignoring pagination.
func buildCountSQL(q repository.ListQuery) (string, []any, error) {
	where, args, err := buildWhere(q)
	if err != nil {
		return "", nil, err
	}
	return "SELECT COUNT(*) FROM users" + where, args, nil
}

// escapeLike escapes LIKE metacharacters so search strings match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
