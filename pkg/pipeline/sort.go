package pipeline

import (
	"Streamify/pkg/response"
	"strings"
)

type SortKey struct {
	Ref  string
	Desc bool
}

func Asc(ref string) SortKey  { return SortKey{Ref: ref} }
func Desc(ref string) SortKey { return SortKey{Ref: ref, Desc: true} }

// 对外开放的排序字段
var sortable = map[string]string{
	"views":     "views",
	"createdAt": "created_at",
	"duration":  "duration",
}

// ParseSort 解析 sortBy/sortType 查询参数，默认 createdAt desc
func ParseSort(alias, sortBy, sortType string) (SortKey, error) {
	if sortBy == "" {
		sortBy = "createdAt"
	}
	column, ok := sortable[sortBy]
	if !ok {
		return SortKey{}, response.Validation("Invalid sortBy %q, expected one of views, createdAt, duration", sortBy)
	}

	key := SortKey{Ref: alias + "." + column, Desc: true}
	switch strings.ToLower(sortType) {
	case "", "desc":
	case "asc":
		key.Desc = false
	default:
		return SortKey{}, response.Validation("Invalid sortType %q, expected asc or desc", sortType)
	}
	return key, nil
}

func (s SortKey) build(scope map[string]string, sb *strings.Builder) error {
	r, err := parseRef(s.Ref, scope)
	if err != nil {
		return err
	}
	sb.WriteString(r.sql())
	if s.Desc {
		sb.WriteString(" DESC")
	} else {
		sb.WriteString(" ASC")
	}
	return nil
}
