package mocks

import (
	"context"

	"rados-compare/core/storage"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) ListPage(ctx context.Context, bucketName string, opts storage.ListPageOptions) (*storage.Page, error) {
	args := m.Called(ctx, bucketName, opts)
	if page, ok := args.Get(0).(*storage.Page); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}
