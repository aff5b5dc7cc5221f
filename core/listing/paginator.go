package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rados-compare/core/storage"
)

// DefaultMaxKeys is the page size requested from a backend. Gateways clamp it to their own
// limit; asking for more keeps round-trips low on buckets holding millions of objects.
const DefaultMaxKeys = 5_000_000

// ErrTransport marks a failed listing request. It is never retried.
var ErrTransport = errors.New("listing request failed")

// PageObserver is notified of every page received, before it is handed to the caller.
type PageObserver func(bucket string, page *storage.Page)

// Paginator walks a bucket listing of one backend to completion.
type Paginator struct {
	Client   storage.Client
	MaxKeys  int
	Observer PageObserver
}

// NewPaginator creates a paginator requesting maxKeys objects per page.
// A non-positive maxKeys selects DefaultMaxKeys.
func NewPaginator(client storage.Client, maxKeys int) *Paginator {
	return &Paginator{Client: client, MaxKeys: maxKeys}
}

func (p *Paginator) maxKeys() int {
	if p.MaxKeys <= 0 {
		return DefaultMaxKeys
	}
	return p.MaxKeys
}

// Walk requests pages starting without a continuation token and calls fn for each of them,
// in listing order, until the backend returns no further token.
// An error returned by fn stops the walk and is returned unchanged. A page whose object
// timestamps cannot be parsed fails with ErrMalformedTimestamp, any other failure with ErrTransport.
func (p *Paginator) Walk(ctx context.Context, bucket string, fn func(storage.Page) error) error {
	token := ""
	for pageNum := 1; ; pageNum++ {
		page, err := p.Client.ListPage(ctx, bucket, storage.ListPageOptions{
			ContinuationToken: token,
			MaxKeys:           p.maxKeys(),
		})
		if err != nil {
			var parseErr *time.ParseError
			if errors.As(err, &parseErr) {
				return fmt.Errorf("%w: bucket %q page %d: %w", ErrMalformedTimestamp, bucket, pageNum, err)
			}
			return fmt.Errorf("%w: bucket %q page %d: %w", ErrTransport, bucket, pageNum, err)
		}
		if page == nil {
			return fmt.Errorf("%w: bucket %q page %d: empty response", ErrTransport, bucket, pageNum)
		}
		if page.NextToken != "" && page.NextToken == token {
			return fmt.Errorf("%w: bucket %q page %d: continuation token did not advance", ErrTransport, bucket, pageNum)
		}

		if p.Observer != nil {
			p.Observer(bucket, page)
		}

		if err := fn(*page); err != nil {
			return err
		}

		if page.NextToken == "" {
			return nil
		}
		token = page.NextToken
	}
}

// ListAll returns the complete, unfiltered listing of a bucket.
func (p *Paginator) ListAll(ctx context.Context, bucket string) ([]storage.Object, error) {
	var objects []storage.Object
	err := p.Walk(ctx, bucket, func(page storage.Page) error {
		objects = append(objects, page.Objects...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return objects, nil
}
