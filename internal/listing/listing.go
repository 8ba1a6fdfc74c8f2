package listing

import (
	"fmt"
	"strings"
)

const DefaultPageSize = 10

type Order string

const (
	Asc  Order = "ASC"
	Desc Order = "DESC"
)

// ParseOrder restricts a raw sort_order value to asc/desc, falling back to
// the provided default for anything else.
func ParseOrder(raw string, fallback Order) Order {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "asc":
		return Asc
	case "desc":
		return Desc
	}
	return fallback
}

// Sortable is the allow-list of sort keys a list page exposes. Keys map to
// real SQL expressions; anything outside the list resolves to the default,
// so raw query-string values never reach the ORDER BY clause.
type Sortable struct {
	columns      map[string]string
	defaultKey   string
	defaultOrder Order
}

func NewSortable(defaultKey, defaultExpr string, defaultOrder Order) *Sortable {
	return &Sortable{
		columns:      map[string]string{defaultKey: defaultExpr},
		defaultKey:   defaultKey,
		defaultOrder: defaultOrder,
	}
}

func (s *Sortable) Add(key, expr string) *Sortable {
	s.columns[key] = expr
	return s
}

// Resolve returns the SQL sort expression and order for raw query values.
func (s *Sortable) Resolve(sortBy, sortOrder string) (string, Order) {
	expr, ok := s.columns[strings.TrimSpace(sortBy)]
	if !ok {
		return s.columns[s.defaultKey], s.defaultOrder
	}
	return expr, ParseOrder(sortOrder, s.defaultOrder)
}

// Key echoes back the effective sort key for rendering links.
func (s *Sortable) Key(sortBy string) string {
	if _, ok := s.columns[strings.TrimSpace(sortBy)]; ok {
		return strings.TrimSpace(sortBy)
	}
	return s.defaultKey
}

// Query accumulates optional AND-combined filters and pagination state and
// renders them as parameterized SQL. Conditions are written with `?`
// placeholders and rebased to $n when built.
type Query struct {
	conds    []string
	args     []interface{}
	orderBy  string
	page     int
	pageSize int
}

func NewQuery(pageSize int) *Query {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Query{page: 1, pageSize: pageSize}
}

// Where adds one condition; empty conditions are ignored.
func (q *Query) Where(cond string, args ...interface{}) *Query {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return q
	}
	q.conds = append(q.conds, cond)
	q.args = append(q.args, args...)
	return q
}

// WhereEq adds `expr = value` when value is non-empty.
func (q *Query) WhereEq(expr, value string) *Query {
	if strings.TrimSpace(value) == "" {
		return q
	}
	return q.Where(expr+" = ?", value)
}

// likeEscaper neutralizes LIKE wildcards in user input so a search for
// "100%" matches that literal text instead of everything.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// WhereSearch adds a case-insensitive substring match over the given columns.
// An empty term means "no filter", not "match empty string".
func (q *Query) WhereSearch(term string, columns ...string) *Query {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return q
	}
	like := "%" + likeEscaper.Replace(term) + "%"
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, col+" ILIKE ?")
		q.args = append(q.args, like)
	}
	q.conds = append(q.conds, "("+strings.Join(parts, " OR ")+")")
	return q
}

func (q *Query) OrderBy(expr string, order Order) *Query {
	q.orderBy = expr + " " + string(order)
	return q
}

// OrderByRaw sets a multi-column order clause verbatim. Only call with
// trusted expressions, never with request input.
func (q *Query) OrderByRaw(clause string) *Query {
	q.orderBy = clause
	return q
}

// Page sets the 1-based page number; values below 1 clamp to 1.
func (q *Query) Page(page int) *Query {
	if page < 1 {
		page = 1
	}
	q.page = page
	return q
}

func (q *Query) PageNum() int  { return q.page }
func (q *Query) PageSize() int { return q.pageSize }

func (q *Query) whereClause() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

// rebase replaces ? placeholders with sequential $n markers.
func rebase(sql string) string {
	var b strings.Builder
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BuildCount renders the total-count query for the accumulated filters.
// base is a SELECT COUNT(*) over the page's FROM/JOIN clause.
func (q *Query) BuildCount(base string) (string, []interface{}) {
	return rebase(base + q.whereClause()), append([]interface{}{}, q.args...)
}

// BuildSelect renders one page of results: filters, order, LIMIT/OFFSET.
func (q *Query) BuildSelect(base string) (string, []interface{}) {
	sql := base + q.whereClause()
	if q.orderBy != "" {
		sql += " ORDER BY " + q.orderBy
	}
	sql += " LIMIT ? OFFSET ?"
	args := append([]interface{}{}, q.args...)
	args = append(args, q.pageSize, (q.page-1)*q.pageSize)
	return rebase(sql), args
}

// Meta describes one rendered page window for pagination controls.
type Meta struct {
	TotalCount int
	Page       int
	PageSize   int
	TotalPages int
	From       int
	To         int
	HasPrev    bool
	HasNext    bool
}

func NewMeta(totalCount, page, pageSize int) Meta {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := (totalCount + pageSize - 1) / pageSize
	m := Meta{
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
	if totalCount > 0 && page <= totalPages {
		m.From = (page-1)*pageSize + 1
		m.To = page * pageSize
		if m.To > totalCount {
			m.To = totalCount
		}
	}
	m.HasPrev = page > 1
	m.HasNext = page < totalPages
	return m
}

func (m Meta) PrevPage() int {
	if m.Page <= 1 {
		return 1
	}
	return m.Page - 1
}

func (m Meta) NextPage() int {
	if m.Page >= m.TotalPages {
		return m.TotalPages
	}
	return m.Page + 1
}

// Caption renders the "Showing X-Y of Z" line shown under every table.
func (m Meta) Caption() string {
	if m.TotalCount == 0 {
		return "Showing 0 of 0"
	}
	return fmt.Sprintf("Showing %d-%d of %d", m.From, m.To, m.TotalCount)
}
