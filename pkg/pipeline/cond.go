package pipeline

import (
	"strings"

	"github.com/pkg/errors"
)

type op string

const (
	opEq  op = "="
	opNe  op = "<>"
	opGt  op = ">"
	opGte op = ">="
	opLt  op = "<"
	opLte op = "<="
	opIn  op = "IN"
)

// Cond 形如 alias.column <op> value 或 alias.column = alias.column 的谓词
type Cond struct {
	left  string
	op    op
	right string
	value any
	isRef bool
}

func Eq(col string, v any) Cond  { return Cond{left: col, op: opEq, value: v} }
func Ne(col string, v any) Cond  { return Cond{left: col, op: opNe, value: v} }
func Gt(col string, v any) Cond  { return Cond{left: col, op: opGt, value: v} }
func Gte(col string, v any) Cond { return Cond{left: col, op: opGte, value: v} }
func Lt(col string, v any) Cond  { return Cond{left: col, op: opLt, value: v} }
func Lte(col string, v any) Cond { return Cond{left: col, op: opLte, value: v} }

// In values 必须是切片，空切片匹配不到任何行
func In(col string, values any) Cond { return Cond{left: col, op: opIn, value: values} }

// On 两列相等，用于 join 条件和关联子查询
func On(col, other string) Cond { return Cond{left: col, op: opEq, right: other, isRef: true} }

func (c Cond) check(scope map[string]string) error {
	if _, err := parseRef(c.left, scope); err != nil {
		return err
	}
	if c.isRef {
		if _, err := parseRef(c.right, scope); err != nil {
			return err
		}
		return nil
	}
	if c.value == nil {
		return errors.Wrapf(ErrInvalid, "nil value for %s", c.left)
	}
	return nil
}

func (c Cond) build(scope map[string]string, sb *strings.Builder, args *[]any) error {
	l, err := parseRef(c.left, scope)
	if err != nil {
		return err
	}
	sb.WriteString(l.sql())
	sb.WriteByte(' ')
	sb.WriteString(string(c.op))
	sb.WriteByte(' ')
	if c.isRef {
		r, err := parseRef(c.right, scope)
		if err != nil {
			return err
		}
		sb.WriteString(r.sql())
		return nil
	}
	sb.WriteByte('?')
	*args = append(*args, c.value)
	return nil
}

func buildConds(conds []Cond, scope map[string]string, sb *strings.Builder, args *[]any) error {
	for i, c := range conds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		if err := c.build(scope, sb, args); err != nil {
			return err
		}
	}
	return nil
}
