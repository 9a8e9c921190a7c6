package entity

import "context"

// Row is one line of an admin table.
type Row struct {
	ID     uint64
	Label  string
	Detail string
}

// Collection is the type erased view of a Resource used by routing and admin pages.
type Collection interface {
	Slug() string
	Name() string
	Title() string
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint64) error
	ListAny(ctx context.Context) (any, error)
	GetAny(ctx context.Context, id uint64) (any, error)
	CreateAny(ctx context.Context, body []byte) (any, error)
	UpdateAny(ctx context.Context, id uint64, body []byte) (any, error)
	Rows(ctx context.Context) ([]Row, error)
}

type keyed interface {
	PrimaryKey() uint64
}

// Slug implements Collection.
func (r *Resource[T]) Slug() string { return r.opts.Slug }

// Name implements Collection.
func (r *Resource[T]) Name() string { return r.opts.Name }

// Title implements Collection.
func (r *Resource[T]) Title() string { return r.opts.Title }

// ListAny implements Collection.
func (r *Resource[T]) ListAny(ctx context.Context) (any, error) {
	return r.List(ctx)
}

// GetAny implements Collection.
func (r *Resource[T]) GetAny(ctx context.Context, id uint64) (any, error) {
	return r.Get(ctx, id)
}

// CreateAny implements Collection.
func (r *Resource[T]) CreateAny(ctx context.Context, body []byte) (any, error) {
	return r.Create(ctx, body)
}

// UpdateAny implements Collection.
func (r *Resource[T]) UpdateAny(ctx context.Context, id uint64, body []byte) (any, error) {
	return r.Update(ctx, id, body)
}

// Rows implements Collection.
func (r *Resource[T]) Rows(ctx context.Context) ([]Row, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(list))

	for i := range list {
		row := Row{Label: r.opts.Label(&list[i])}

		if k, ok := any(list[i]).(keyed); ok {
			row.ID = k.PrimaryKey()
		}

		if r.opts.Detail != nil {
			row.Detail = r.opts.Detail(&list[i])
		}

		rows = append(rows, row)
	}

	return rows, nil
}
