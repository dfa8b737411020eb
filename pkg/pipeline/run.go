package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Run 执行分页查询：计数与取数并发进行
func Run[T any](ctx context.Context, db *gorm.DB, p *Pipeline) (*Page[T], error) {
	q, err := p.Compile()
	if err != nil {
		return nil, err
	}

	var (
		total int64
		docs  []T
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return db.WithContext(ctx).Raw(q.CountSQL, q.CountArgs...).Scan(&total).Error
	})
	eg.Go(func() error {
		return db.WithContext(ctx).Raw(q.SQL, q.Args...).Scan(&docs).Error
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return NewPage(docs, total, p.page), nil
}

// One 取单行，没有结果时返回 gorm.ErrRecordNotFound
func One[T any](ctx context.Context, db *gorm.DB, p *Pipeline) (*T, error) {
	p.page = Pagination{Page: 1, Limit: 1}
	q, err := p.Compile()
	if err != nil {
		return nil, err
	}

	var docs []T
	if err := db.WithContext(ctx).Raw(q.SQL, q.Args...).Scan(&docs).Error; err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &docs[0], nil
}

// All 不分页取全部结果，limit 取上限
func All[T any](ctx context.Context, db *gorm.DB, p *Pipeline) ([]T, error) {
	p.page = Pagination{Page: 1, Limit: MaxLimit}
	q, err := p.Compile()
	if err != nil {
		return nil, err
	}

	docs := []T{}
	if err := db.WithContext(ctx).Raw(q.SQL, q.Args...).Scan(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}
