package storage

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrMalformedListing is returned when a listing response is internally inconsistent.
var ErrMalformedListing = errors.New("malformed listing response")

// Object is a single listed object.
type Object struct {
	Key          string
	Size         uint64
	LastModified time.Time
}

// Page is one batch of a bucket listing.
// NextToken is empty on the final page.
type Page struct {
	Objects   []Object
	NextToken string
}

// ListPageOptions controls a single listing request.
type ListPageOptions struct {
	// ContinuationToken resumes a previous listing. Empty starts from the beginning.
	ContinuationToken string
	// MaxKeys caps the number of objects requested for this page.
	MaxKeys int
}

// Client defines the interface for storage operations.
type Client interface {
	// ListPage requests one page of the flat (non-delimited) listing of a bucket.
	ListPage(ctx context.Context, bucketName string, opts ListPageOptions) (*Page, error)
}

// NewClient creates a new Minio client based on the configuration.
func NewClient(cfg Config) (Client, error) {
	endpoint, secure := splitAddress(cfg.Address, cfg.UseSSL)
	if endpoint == "" {
		return nil, errors.New("storage address is empty")
	}

	// Ensure timeout defaults if not set
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 900
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		// Large listing pages can take minutes before the first byte arrives.
		ResponseHeaderTimeout: timeoutDuration,
	}

	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}

	core, err := minio.NewCore(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		Transport:    transport,
		BucketLookup: minio.BucketLookupPath,
		MaxRetries:   retries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioClientWrapper{core: core}, nil
}

// splitAddress strips the scheme from an address. Minio expects a bare host[:port].
func splitAddress(address string, useSSL bool) (string, bool) {
	address = strings.TrimSpace(address)
	switch {
	case strings.HasPrefix(address, "https://"):
		address = strings.TrimPrefix(address, "https://")
		useSSL = true
	case strings.HasPrefix(address, "http://"):
		address = strings.TrimPrefix(address, "http://")
	}
	return strings.TrimSuffix(address, "/"), useSSL
}

type minioClientWrapper struct {
	core *minio.Core
}

func (c *minioClientWrapper) ListPage(ctx context.Context, bucketName string, opts ListPageOptions) (*Page, error) {
	// Core.ListObjectsV2 carries no context; honour cancellation between pages at least.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := c.core.ListObjectsV2(bucketName, "", "", opts.ContinuationToken, "", opts.MaxKeys)
	if err != nil {
		return nil, err
	}

	return convertPage(result)
}

func convertPage(result minio.ListBucketV2Result) (*Page, error) {
	page := &Page{
		Objects:   make([]Object, 0, len(result.Contents)),
		NextToken: result.NextContinuationToken,
	}

	for _, obj := range result.Contents {
		if obj.Size < 0 {
			return nil, fmt.Errorf("%w: object %q has negative size %d", ErrMalformedListing, obj.Key, obj.Size)
		}
		page.Objects = append(page.Objects, Object{
			Key:          obj.Key,
			Size:         uint64(obj.Size),
			LastModified: obj.LastModified,
		})
	}

	// A truncated page without a token would silently cut the listing short.
	if result.IsTruncated && result.NextContinuationToken == "" {
		return nil, fmt.Errorf("%w: truncated page without continuation token", ErrMalformedListing)
	}

	return page, nil
}
