package storage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"rados-compare/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Address:         "localhost:9000",
			AccessKeyID:     "testkey",
			SecretAccessKey: "testsecret",
			UseSSL:          false,
			Region:          "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Address:         "http://ceph-a.internal:7480",
			AccessKeyID:     "testkey",
			SecretAccessKey: "testsecret",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Address:         "https://s3.amazonaws.com/",
			AccessKeyID:     "testkey",
			SecretAccessKey: "testsecret",
			Region:          "us-east-1",
			TimeoutSeconds:  5,
			MaxRetries:      3,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EmptyAddress", func(t *testing.T) {
		client, err := storage.NewClient(storage.Config{Address: "  "})
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}

const listPage1 = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>photos</Name><Prefix></Prefix><KeyCount>2</KeyCount><MaxKeys>2</MaxKeys>
  <IsTruncated>true</IsTruncated><NextContinuationToken>token-1</NextContinuationToken>
  <Contents><Key>a.jpg</Key><LastModified>2023-07-21T12:28:10.490Z</LastModified><ETag>"1"</ETag><Size>10</Size><StorageClass>STANDARD</StorageClass></Contents>
  <Contents><Key>b.jpg</Key><LastModified>2023-07-21T12:28:11.000Z</LastModified><ETag>"2"</ETag><Size>0</Size><StorageClass>STANDARD</StorageClass></Contents>
</ListBucketResult>`

const listPage2 = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>photos</Name><Prefix></Prefix><KeyCount>1</KeyCount><MaxKeys>2</MaxKeys>
  <IsTruncated>false</IsTruncated>
  <Contents><Key>c.jpg</Key><LastModified>2023-07-22T00:00:00.000Z</LastModified><ETag>"3"</ETag><Size>30</Size><StorageClass>STANDARD</StorageClass></Contents>
</ListBucketResult>`

func TestClient_ListPage(t *testing.T) {
	var requests []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		requests = append(requests, query)

		if r.URL.Path != "/photos" && r.URL.Path != "/photos/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/xml")
		if query.Get("continuation-token") == "token-1" {
			_, _ = w.Write([]byte(listPage2))
			return
		}
		_, _ = w.Write([]byte(listPage1))
	}))
	defer server.Close()

	client, err := storage.NewClient(storage.Config{
		Address:         server.URL,
		AccessKeyID:     "testkey",
		SecretAccessKey: "testsecret",
		Region:          "us-east-1",
		TimeoutSeconds:  5,
	})
	require.NoError(t, err)

	first, err := client.ListPage(context.Background(), "photos", storage.ListPageOptions{MaxKeys: 2})
	require.NoError(t, err)
	assert.Equal(t, "token-1", first.NextToken)
	require.Len(t, first.Objects, 2)
	assert.Equal(t, "a.jpg", first.Objects[0].Key)
	assert.Equal(t, uint64(10), first.Objects[0].Size)
	assert.True(t, first.Objects[0].LastModified.Equal(time.Date(2023, 7, 21, 12, 28, 10, 490_000_000, time.UTC)))
	assert.Equal(t, uint64(0), first.Objects[1].Size)

	second, err := client.ListPage(context.Background(), "photos", storage.ListPageOptions{ContinuationToken: first.NextToken, MaxKeys: 2})
	require.NoError(t, err)
	assert.Empty(t, second.NextToken)
	require.Len(t, second.Objects, 1)
	assert.Equal(t, "c.jpg", second.Objects[0].Key)

	require.Len(t, requests, 2)
	assert.Equal(t, "2", requests[0].Get("list-type"))
	assert.Equal(t, "2", requests[0].Get("max-keys"))
	assert.Empty(t, requests[0].Get("prefix"))
	assert.Empty(t, requests[0].Get("delimiter"))
	assert.Equal(t, "token-1", requests[1].Get("continuation-token"))
}

func TestClient_ListPageCancelled(t *testing.T) {
	client, err := storage.NewClient(storage.Config{Address: "localhost:9000", Region: "us-east-1"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.ListPage(ctx, "photos", storage.ListPageOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
