// Package pipeline builds read-model queries as an ordered list of validated
// stages and compiles them into a single SELECT plus a COUNT statement.
package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalid = errors.New("pipeline: invalid")

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// 用户表中永远不能投影的列；email 只在 AllowColumns 显式放行后可见
var sensitiveUserColumns = map[string]bool{
	"password":      true,
	"refresh_token": true,
	"email":         true,
}

var hiddenSuffixes = []string{"_public_id", "_image_id"}

const usersTable = "users"

type source struct {
	table string
	alias string
}

type join struct {
	source
	left bool
	on   []Cond
}

type Pipeline struct {
	root    source
	joins   []join
	matches []Cond
	search  *search
	derived []Derived
	fields  []Field
	sorts   []SortKey
	page    Pagination
	allowed map[string]bool
}

type search struct {
	alias string
	query string
}

// From 指定根表与别名
func From(table, alias string) *Pipeline {
	return &Pipeline{
		root:    source{table: table, alias: alias},
		page:    DefaultPagination(),
		allowed: map[string]bool{},
	}
}

func (p *Pipeline) Match(conds ...Cond) *Pipeline {
	p.matches = append(p.matches, conds...)
	return p
}

// Search 全文检索 alias 表的 title + description，空串不生效
func (p *Pipeline) Search(alias, query string) *Pipeline {
	q := strings.TrimSpace(query)
	if q == "" {
		return p
	}
	p.search = &search{alias: alias, query: q}
	return p
}

// Lookup LEFT JOIN
func (p *Pipeline) Lookup(table, alias string, on ...Cond) *Pipeline {
	p.joins = append(p.joins, join{source: source{table: table, alias: alias}, left: true, on: on})
	return p
}

// Join INNER JOIN
func (p *Pipeline) Join(table, alias string, on ...Cond) *Pipeline {
	p.joins = append(p.joins, join{source: source{table: table, alias: alias}, on: on})
	return p
}

func (p *Pipeline) Derive(d ...Derived) *Pipeline {
	p.derived = append(p.derived, d...)
	return p
}

func (p *Pipeline) Project(fields ...Field) *Pipeline {
	p.fields = append(p.fields, fields...)
	return p
}

// AllowColumns 放行默认被拒绝的用户列（如本人视图中的 u.email）
func (p *Pipeline) AllowColumns(refs ...string) *Pipeline {
	for _, r := range refs {
		p.allowed[r] = true
	}
	return p
}

func (p *Pipeline) Sort(keys ...SortKey) *Pipeline {
	p.sorts = append(p.sorts, keys...)
	return p
}

func (p *Pipeline) Paginate(pg Pagination) *Pipeline {
	p.page = pg
	return p
}

func (p *Pipeline) Pagination() Pagination {
	return p.page
}

// Validate 在执行前做静态检查
func (p *Pipeline) Validate() error {
	scope, err := p.scope()
	if err != nil {
		return err
	}

	for _, j := range p.joins {
		for _, c := range j.on {
			if err := c.check(scope); err != nil {
				return err
			}
		}
	}
	for _, c := range p.matches {
		if err := c.check(scope); err != nil {
			return err
		}
	}
	if p.search != nil {
		if _, ok := scope[p.search.alias]; !ok {
			return errors.Wrapf(ErrInvalid, "search: unknown alias %q", p.search.alias)
		}
	}

	if len(p.fields) == 0 {
		return errors.Wrap(ErrInvalid, "projection is required")
	}
	names := map[string]bool{}
	for _, f := range p.fields {
		r, err := parseRef(f.Ref, scope)
		if err != nil {
			return err
		}
		if err := p.checkVisible(r, scope[r.alias]); err != nil {
			return err
		}
		name := f.name()
		if !identRe.MatchString(name) {
			return errors.Wrapf(ErrInvalid, "invalid field name %q", name)
		}
		if names[name] {
			return errors.Wrapf(ErrInvalid, "duplicate field %q", name)
		}
		names[name] = true
	}
	for _, d := range p.derived {
		if !identRe.MatchString(d.as) {
			return errors.Wrapf(ErrInvalid, "invalid derived name %q", d.as)
		}
		if names[d.as] {
			return errors.Wrapf(ErrInvalid, "duplicate field %q", d.as)
		}
		names[d.as] = true
		if err := d.check(scope); err != nil {
			return err
		}
	}

	for _, s := range p.sorts {
		if _, err := parseRef(s.Ref, scope); err != nil {
			return err
		}
	}

	return p.page.validate()
}

func (p *Pipeline) scope() (map[string]string, error) {
	scope := map[string]string{}
	if err := addSource(scope, p.root); err != nil {
		return nil, err
	}
	for _, j := range p.joins {
		if err := addSource(scope, j.source); err != nil {
			return nil, err
		}
	}
	return scope, nil
}

func addSource(scope map[string]string, s source) error {
	if !identRe.MatchString(s.table) || !identRe.MatchString(s.alias) {
		return errors.Wrapf(ErrInvalid, "invalid source %q AS %q", s.table, s.alias)
	}
	if _, dup := scope[s.alias]; dup {
		return errors.Wrapf(ErrInvalid, "duplicate alias %q", s.alias)
	}
	scope[s.alias] = s.table
	return nil
}

func (p *Pipeline) checkVisible(r ref, table string) error {
	if p.allowed[r.String()] {
		return nil
	}
	if table == usersTable && sensitiveUserColumns[r.column] {
		return errors.Wrapf(ErrInvalid, "column %s is not projectable", r)
	}
	for _, suffix := range hiddenSuffixes {
		if strings.HasSuffix(r.column, suffix) {
			return errors.Wrapf(ErrInvalid, "column %s is not projectable", r)
		}
	}
	return nil
}

type ref struct {
	alias  string
	column string
}

func (r ref) String() string {
	return r.alias + "." + r.column
}

func (r ref) sql() string {
	return quote(r.alias) + "." + quote(r.column)
}

func parseRef(s string, scope map[string]string) (ref, error) {
	alias, column, ok := strings.Cut(s, ".")
	if !ok || !identRe.MatchString(alias) || !identRe.MatchString(column) {
		return ref{}, errors.Wrapf(ErrInvalid, "invalid column reference %q", s)
	}
	if _, known := scope[alias]; !known {
		return ref{}, errors.Wrapf(ErrInvalid, "unknown alias in %q", s)
	}
	return ref{alias: alias, column: column}, nil
}

func quote(ident string) string {
	return "`" + ident + "`"
}

// Field 投影字段，默认以列名输出
type Field struct {
	Ref   string
	Alias string
}

func Col(ref string) Field {
	return Field{Ref: ref}
}

func (f Field) As(name string) Field {
	f.Alias = name
	return f
}

func (f Field) name() string {
	if f.Alias != "" {
		return f.Alias
	}
	_, column, _ := strings.Cut(f.Ref, ".")
	return column
}

// Cols 同一别名下的多个列
func Cols(alias string, columns ...string) []Field {
	fields := make([]Field, 0, len(columns))
	for _, c := range columns {
		fields = append(fields, Col(fmt.Sprintf("%s.%s", alias, c)))
	}
	return fields
}
