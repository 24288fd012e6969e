package defined

import (
	"context"
	"errors"
)

// ErrNoMoreItems is returned by PageIterator.Next when iteration is
// exhausted.
var ErrNoMoreItems = errors.New("no more items")

// PageFetcher fetches one page for the given cursor. An empty cursor
// requests the first page.
type PageFetcher[T any] func(ctx context.Context, cursor string) (*ListResponse[T], error)

// PageIterator walks a cursor-paginated list item by item, resubmitting
// each page's NextCursor while HasNextPage is true.
type PageIterator[T any] struct {
	ctx     context.Context
	fetch   PageFetcher[T]
	current []T
	index   int
	cursor  string
	done    bool
}

// NewPageIterator creates an iterator over a cursor-paginated list
// operation:
//
//	it := defined.NewPageIterator(ctx, func(ctx context.Context, cursor string) (*defined.ListResponse[defined.Host], error) {
//		return client.Hosts().List(ctx, &defined.HostListOptions{
//			ListOptions: defined.ListOptions{Cursor: cursor},
//		})
//	})
//	for it.HasNext() {
//		host, err := it.Next()
//		...
//	}
func NewPageIterator[T any](ctx context.Context, fetch PageFetcher[T]) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:   ctx,
		fetch: fetch,
	}
}

// HasNext reports whether another item may be available. The first page is
// not fetched until Next is called, so HasNext is optimistic before any
// fetch.
func (it *PageIterator[T]) HasNext() bool {
	if it.index < len(it.current) {
		return true
	}

	return !it.done
}

// Next returns the next item, fetching pages on demand. It returns
// ErrNoMoreItems once iteration is exhausted.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	for it.index >= len(it.current) {
		if it.done {
			return zero, ErrNoMoreItems
		}

		err := it.fetchPage()
		if err != nil {
			return zero, err
		}
	}

	item := it.current[it.index]
	it.index++

	return item, nil
}

func (it *PageIterator[T]) fetchPage() error {
	page, err := it.fetch(it.ctx, it.cursor)
	if err != nil {
		return err
	}

	it.current = page.Data
	it.index = 0
	it.cursor = page.Metadata.NextCursor

	if !page.Metadata.HasNextPage {
		it.done = true
	}

	return nil
}

// CollectAll drains the iterator into a slice.
func CollectAll[T any](it *PageIterator[T]) ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				break
			}

			return nil, err
		}

		all = append(all, item)
	}

	return all, nil
}
