package pipeline

import (
	"strings"
)

// Query 编译结果
type Query struct {
	SQL       string
	Args      []any
	CountSQL  string
	CountArgs []any
}

// Compile 校验并生成 SQL；分页参数以占位符形式追加在 Args 末尾
func (p *Pipeline) Compile() (*Query, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	scope, _ := p.scope()

	var (
		sel   strings.Builder
		from  strings.Builder
		order strings.Builder
		q     = &Query{}
	)

	// SELECT 字段 + 派生字段
	sel.WriteString("SELECT ")
	for i, f := range p.fields {
		if i > 0 {
			sel.WriteString(", ")
		}
		r, _ := parseRef(f.Ref, scope)
		sel.WriteString(r.sql() + " AS " + quote(f.name()))
	}
	var selectArgs []any
	for _, d := range p.derived {
		sel.WriteString(", ")
		if err := d.build(scope, &sel, &selectArgs); err != nil {
			return nil, err
		}
	}

	// FROM + JOIN + WHERE，查询与计数共用
	var fromArgs []any
	from.WriteString(" FROM " + quote(p.root.table) + " AS " + quote(p.root.alias))
	if err := buildJoins(p.joins, scope, &from, &fromArgs); err != nil {
		return nil, err
	}
	if len(p.matches) > 0 || p.search != nil {
		from.WriteString(" WHERE ")
		if err := buildConds(p.matches, scope, &from, &fromArgs); err != nil {
			return nil, err
		}
		if p.search != nil {
			if len(p.matches) > 0 {
				from.WriteString(" AND ")
			}
			a := quote(p.search.alias)
			from.WriteString("MATCH(" + a + ".`title`, " + a + ".`description`) AGAINST (? IN NATURAL LANGUAGE MODE)")
			fromArgs = append(fromArgs, p.search.query)
		}
	}

	// ORDER BY，最后按根表 id 兜底保证分页稳定
	rootID := p.root.alias + ".id"
	keys := p.sorts
	tie := true
	for _, k := range keys {
		if k.Ref == rootID {
			tie = false
		}
	}
	if tie {
		desc := true
		if len(keys) > 0 {
			desc = keys[len(keys)-1].Desc
		}
		keys = append(append([]SortKey(nil), keys...), SortKey{Ref: rootID, Desc: desc})
	}
	order.WriteString(" ORDER BY ")
	for i, k := range keys {
		if i > 0 {
			order.WriteString(", ")
		}
		if err := k.build(scope, &order); err != nil {
			return nil, err
		}
	}

	q.SQL = sel.String() + from.String() + order.String() + " LIMIT ? OFFSET ?"
	q.Args = append(append(append([]any{}, selectArgs...), fromArgs...), p.page.Limit, p.page.Offset())
	q.CountSQL = "SELECT COUNT(*)" + from.String()
	q.CountArgs = append([]any{}, fromArgs...)
	return q, nil
}

func buildJoins(joins []join, scope map[string]string, sb *strings.Builder, args *[]any) error {
	for _, j := range joins {
		if j.left {
			sb.WriteString(" LEFT JOIN ")
		} else {
			sb.WriteString(" INNER JOIN ")
		}
		sb.WriteString(quote(j.table) + " AS " + quote(j.alias))
		if len(j.on) > 0 {
			sb.WriteString(" ON ")
			if err := buildConds(j.on, scope, sb, args); err != nil {
				return err
			}
		}
	}
	return nil
}
