package repository

// FilterOp is a comparison operator applied to a single attribute.
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpGt  FilterOp = "gt"
	OpGte FilterOp = "gte"
	OpLt  FilterOp = "lt"
	OpLte FilterOp = "lte"
)

// Filter constrains one user attribute. Field names are domain attribute
// names (name, email, age, role, isActive, createdAt), not storage columns.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// SortField orders results by one attribute.
type SortField struct {
	Field string
	Desc  bool
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListQuery is a validated, bounded listing request. Page and Limit are
// expected to already be clamped to [1, MaxLimit] by the caller.
type ListQuery struct {
	Filters []Filter
	Search  string // case-insensitive substring match on name OR email
	Sort    []SortField
	Page    int
	Limit   int
}

// Offset returns the number of rows to skip for the requested page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
