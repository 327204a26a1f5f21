package database

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

const projectSearchVector = "to_tsvector('english', title || ' ' || description)"

// QueryBuilder helps build WHERE clauses safely
type QueryBuilder struct {
	conditions []string
	args       []interface{}
	argCount   int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		conditions: []string{},
		args:       []interface{}{},
		argCount:   1,
	}
}

// AddCondition adds "column = $n". column must be a trusted identifier.
func (qb *QueryBuilder) AddCondition(column string, value interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf("%s = $%d", column, qb.argCount))
	qb.args = append(qb.args, value)
	qb.argCount++
}

// AddFullTextSearch matches vector against an already parsed tsquery.
func (qb *QueryBuilder) AddFullTextSearch(vector, tsQuery string) {
	qb.conditions = append(qb.conditions,
		fmt.Sprintf("%s @@ to_tsquery('english', $%d)", vector, qb.argCount))
	qb.args = append(qb.args, tsQuery)
	qb.argCount++
}

func (qb *QueryBuilder) WhereClause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}

func (qb *QueryBuilder) NextArgNum() int {
	return qb.argCount
}

// Paginate appends "LIMIT $n OFFSET $m" bound to the clamped page.
// A non-positive limit means def; anything above ceiling is capped.
func (qb *QueryBuilder) Paginate(limit, offset, def, ceiling int) string {
	limit, offset = clampPage(limit, offset, def, ceiling)
	clause := fmt.Sprintf("LIMIT $%d OFFSET $%d", qb.argCount, qb.argCount+1)
	qb.args = append(qb.args, limit, offset)
	qb.argCount += 2
	return clause
}

func clampPage(limit, offset, def, ceiling int) (int, int) {
	switch {
	case limit <= 0:
		limit = def
	case limit > ceiling:
		limit = ceiling
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
