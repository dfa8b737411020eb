package pipeline

import (
	"Streamify/pkg/response"
	"strconv"

	"github.com/pkg/errors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Pagination struct {
	Page  int
	Limit int
}

func DefaultPagination() Pagination {
	return Pagination{Page: DefaultPage, Limit: DefaultLimit}
}

// NewPagination page/limit 必须为正整数，limit 超过上限时截断
func NewPagination(page, limit int) (Pagination, error) {
	if page < 1 {
		return Pagination{}, response.Validation("page must be a positive integer")
	}
	if limit < 1 {
		return Pagination{}, response.Validation("limit must be a positive integer")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit}, nil
}

// ParsePagination 解析查询参数，空串使用默认值
func ParsePagination(page, limit string) (Pagination, error) {
	p, l := DefaultPage, DefaultLimit
	var err error
	if page != "" {
		if p, err = strconv.Atoi(page); err != nil {
			return Pagination{}, response.Validation("page must be a positive integer")
		}
	}
	if limit != "" {
		if l, err = strconv.Atoi(limit); err != nil {
			return Pagination{}, response.Validation("limit must be a positive integer")
		}
	}
	return NewPagination(p, l)
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Pagination) validate() error {
	if p.Page < 1 || p.Limit < 1 || p.Limit > MaxLimit {
		return errors.Wrapf(ErrInvalid, "pagination page=%d limit=%d", p.Page, p.Limit)
	}
	return nil
}

// Page 分页结果
type Page[T any] struct {
	Docs          []T   `json:"docs"`
	TotalDocs     int64 `json:"totalDocs"`
	Limit         int   `json:"limit"`
	Page          int   `json:"page"`
	TotalPages    int   `json:"totalPages"`
	PagingCounter int   `json:"pagingCounter"`
	HasPrevPage   bool  `json:"hasPrevPage"`
	HasNextPage   bool  `json:"hasNextPage"`
	PrevPage      *int  `json:"prevPage"`
	NextPage      *int  `json:"nextPage"`
}

func NewPage[T any](docs []T, total int64, p Pagination) *Page[T] {
	if docs == nil {
		docs = []T{}
	}
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	if pages < 1 {
		pages = 1
	}

	page := &Page[T]{
		Docs:          docs,
		TotalDocs:     total,
		Limit:         p.Limit,
		Page:          p.Page,
		TotalPages:    pages,
		PagingCounter: p.Offset() + 1,
		HasPrevPage:   p.Page > 1,
		HasNextPage:   p.Page < pages,
	}
	if page.HasPrevPage {
		prev := p.Page - 1
		page.PrevPage = &prev
	}
	if page.HasNextPage {
		next := p.Page + 1
		page.NextPage = &next
	}
	return page
}
