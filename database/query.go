package database

import (
	"strconv"
	"strings"
)

const (
	// MaxPageSize caps every paginated listing.
	MaxPageSize = 100
)

// Predicate is one AND-ed condition of a SelectQuery.
type Predicate interface {
	write(sb *strings.Builder, d Dialect, args *[]any)
}

type equals struct {
	column string
	value  any
}

// Equals matches rows whose column equals v.
func Equals(column string, v any) Predicate {
	return equals{column: column, value: v}
}

func (p equals) write(sb *strings.Builder, d Dialect, args *[]any) {
	*args = append(*args, p.value)
	sb.WriteString(p.column)
	sb.WriteString(" = ")
	sb.WriteString(d.Placeholder(len(*args)))
}

type flag struct {
	column string
	value  bool
}

// Flag matches rows whose boolean column equals v.
func Flag(column string, v bool) Predicate {
	return flag{column: column, value: v}
}

func (p flag) write(sb *strings.Builder, d Dialect, args *[]any) {
	equals{column: p.column, value: d.Bool(p.value)}.write(sb, d, args)
}

type search struct {
	term    string
	columns []string
}

// Search matches rows where any of columns contains term, ignoring case.
// Wildcards in term are matched literally.
func Search(term string, columns ...string) Predicate {
	return search{term: term, columns: columns}
}

func (p search) write(sb *strings.Builder, d Dialect, args *[]any) {
	pattern := "%" + escapeLike(p.term) + "%"
	sb.WriteString("(")
	for i, column := range p.columns {
		if i > 0 {
			sb.WriteString(" OR ")
		}
		*args = append(*args, pattern)
		sb.WriteString(d.ContainsCI(column, d.Placeholder(len(*args))))
	}
	sb.WriteString(")")
}

type hasTag struct {
	column string
	tag    string
}

// HasTag matches rows whose JSON array column contains tag.
func HasTag(column, tag string) Predicate {
	return hasTag{column: column, tag: tag}
}

func (p hasTag) write(sb *strings.Builder, d Dialect, args *[]any) {
	*args = append(*args, p.tag)
	sb.WriteString(d.JSONArrayContains(p.column, d.Placeholder(len(*args))))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// SelectQuery describes a filtered, ordered, optionally paginated read of a
// single table.
type SelectQuery struct {
	Table   string
	Columns []string
	Where   []Predicate
	OrderBy string
	// Page and PageSize are applied only when PageSize is positive.
	Page     int
	PageSize int
}

// Build renders the page query.
func (q SelectQuery) Build(d Dialect) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(q.Where))

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(q.Columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(q.Table)
	q.writeWhere(&sb, d, &args)

	if q.OrderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(q.OrderBy)
	}
	if q.PageSize > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(q.PageSize))
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.Itoa((page - 1) * q.PageSize))
	}
	return sb.String(), args
}

// BuildCount renders a COUNT(*) over the same filters, ignoring order and
// pagination.
func (q SelectQuery) BuildCount(d Dialect) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, len(q.Where))

	sb.WriteString("SELECT COUNT(*) FROM ")
	sb.WriteString(q.Table)
	q.writeWhere(&sb, d, &args)
	return sb.String(), args
}

func (q SelectQuery) writeWhere(sb *strings.Builder, d Dialect, args *[]any) {
	for i, p := range q.Where {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		p.write(sb, d, args)
	}
}

// NormalizePage clamps caller supplied paging values. A page below 1 becomes
// 1, a missing page size becomes def, and sizes are capped at MaxPageSize.
func NormalizePage(page, pageSize, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = def
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// TotalPages returns ceil(count / pageSize).
func TotalPages(count int64, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 0
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}
