package handlers

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
)

// Reserved control keys; everything else in the query string is a filter.
var controlKeys = map[string]struct{}{
	"page":   {},
	"limit":  {},
	"sort":   {},
	"fields": {},
	"search": {},
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindBool
	kindTime
	kindRole
)

// filterableFields is the explicit allow-list of attributes a caller may
// filter on. Unknown keys are rejected, not forwarded to the store.
var filterableFields = map[string]fieldKind{
	"name":      kindString,
	"email":     kindString,
	"age":       kindInt,
	"role":      kindRole,
	"isActive":  kindBool,
	"createdAt": kindTime,
}

var sortableFields = map[string]struct{}{
	"name":      {},
	"email":     {},
	"age":       {},
	"role":      {},
	"createdAt": {},
	"lastLogin": {},
}

var projectableFields = map[string]struct{}{
	"id":        {},
	"name":      {},
	"email":     {},
	"age":       {},
	"role":      {},
	"isActive":  {},
	"lastLogin": {},
	"createdAt": {},
	"updatedAt": {},
}

// Filter keys are either a bare field name or field[op], op in gte|gt|lte|lt.
var filterKeyRe = regexp.MustCompile(`^([A-Za-z]+)\[(gte|gt|lte|lt)\]$`)

// parseListQuery validates raw query parameters into a bounded ListQuery
// plus an optional projection field list.
func parseListQuery(values url.Values) (repo.ListQuery, []string, error) {
	q := repo.ListQuery{
		Page:   clamp(atoiDefault(values.Get("page"), repo.DefaultPage), 1, repo.MaxLimit),
		Limit:  clamp(atoiDefault(values.Get("limit"), repo.DefaultLimit), 1, repo.MaxLimit),
		Search: strings.TrimSpace(values.Get("search")),
	}

	for key := range values {
		if _, ok := controlKeys[key]; ok {
			continue
		}
		field, op := key, repo.OpEq
		if m := filterKeyRe.FindStringSubmatch(key); m != nil {
			field, op = m[1], repo.FilterOp(m[2])
		}
		kind, ok := filterableFields[field]
		if !ok {
			return repo.ListQuery{}, nil, fmt.Errorf("unknown filter field: %s", field)
		}
		val, err := coerce(values.Get(key), kind)
		if err != nil {
			return repo.ListQuery{}, nil, fmt.Errorf("invalid value for filter %s", field)
		}
		q.Filters = append(q.Filters, repo.Filter{Field: field, Op: op, Value: val})
	}

	if raw := values.Get("sort"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			sf := repo.SortField{Field: part}
			if strings.HasPrefix(part, "-") {
				sf = repo.SortField{Field: part[1:], Desc: true}
			}
			if _, ok := sortableFields[sf.Field]; !ok {
				return repo.ListQuery{}, nil, fmt.Errorf("invalid sort field: %s", sf.Field)
			}
			q.Sort = append(q.Sort, sf)
		}
	}

	var fields []string
	if raw := values.Get("fields"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := projectableFields[part]; !ok {
				return repo.ListQuery{}, nil, fmt.Errorf("invalid field: %s", part)
			}
			fields = append(fields, part)
		}
	}

	return q, fields, nil
}

func coerce(raw string, kind fieldKind) (any, error) {
	switch kind {
	case kindInt:
		return strconv.Atoi(raw)
	case kindBool:
		return strconv.ParseBool(raw)
	case kindTime:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02", raw)
	case kindRole:
		r := entity.Role(raw)
		if !r.Valid() {
			return nil, fmt.Errorf("unknown role %q", raw)
		}
		return string(r), nil
	default:
		return raw, nil
	}
}

func atoiDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
