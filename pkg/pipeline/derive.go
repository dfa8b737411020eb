package pipeline

import (
	"strings"

	"github.com/pkg/errors"
)

type aggregate string

const (
	aggCount  aggregate = "count"
	aggSum    aggregate = "sum"
	aggExists aggregate = "exists"
)

// Sub 关联子查询，Where 中可以引用外层别名
type Sub struct {
	root  source
	joins []join
	where []Cond
}

func Subquery(table, alias string) Sub {
	return Sub{root: source{table: table, alias: alias}}
}

func (s Sub) Join(table, alias string, on ...Cond) Sub {
	s.joins = append(append([]join(nil), s.joins...), join{source: source{table: table, alias: alias}, on: on})
	return s
}

func (s Sub) Where(conds ...Cond) Sub {
	s.where = append(append([]Cond(nil), s.where...), conds...)
	return s
}

// Derived 由子查询计算出的字段
type Derived struct {
	as     string
	agg    aggregate
	column string
	sub    Sub
}

func Count(as string, sub Sub) Derived {
	return Derived{as: as, agg: aggCount, sub: sub}
}

// Sum 对子查询中的 column 求和，无行时为 0
func Sum(as, column string, sub Sub) Derived {
	return Derived{as: as, agg: aggSum, column: column, sub: sub}
}

func Exists(as string, sub Sub) Derived {
	return Derived{as: as, agg: aggExists, sub: sub}
}

func (d Derived) scope(outer map[string]string) (map[string]string, error) {
	scope := make(map[string]string, len(outer)+1+len(d.sub.joins))
	for k, v := range outer {
		scope[k] = v
	}
	// 子查询别名不能遮蔽外层别名
	if err := addSource(scope, d.sub.root); err != nil {
		return nil, err
	}
	for _, j := range d.sub.joins {
		if err := addSource(scope, j.source); err != nil {
			return nil, err
		}
	}
	return scope, nil
}

func (d Derived) check(outer map[string]string) error {
	scope, err := d.scope(outer)
	if err != nil {
		return err
	}
	if len(d.sub.where) == 0 {
		return errors.Wrapf(ErrInvalid, "derived %q must be correlated", d.as)
	}
	for _, j := range d.sub.joins {
		for _, c := range j.on {
			if err := c.check(scope); err != nil {
				return err
			}
		}
	}
	for _, c := range d.sub.where {
		if err := c.check(scope); err != nil {
			return err
		}
	}
	if d.agg == aggSum {
		if _, err := parseRef(d.column, scope); err != nil {
			return err
		}
	}
	return nil
}

func (d Derived) build(outer map[string]string, sb *strings.Builder, args *[]any) error {
	scope, err := d.scope(outer)
	if err != nil {
		return err
	}

	switch d.agg {
	case aggCount:
		sb.WriteString("(SELECT COUNT(*)")
	case aggSum:
		col, err := parseRef(d.column, scope)
		if err != nil {
			return err
		}
		sb.WriteString("(SELECT COALESCE(SUM(" + col.sql() + "), 0)")
	case aggExists:
		sb.WriteString("EXISTS(SELECT 1")
	}

	sb.WriteString(" FROM " + quote(d.sub.root.table) + " AS " + quote(d.sub.root.alias))
	if err := buildJoins(d.sub.joins, scope, sb, args); err != nil {
		return err
	}
	sb.WriteString(" WHERE ")
	if err := buildConds(d.sub.where, scope, sb, args); err != nil {
		return err
	}
	sb.WriteString(") AS " + quote(d.as))
	return nil
}
