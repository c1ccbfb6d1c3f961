package archive

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// DirSink writes objects into a local directory.
type DirSink struct {
	Dir string
}

// Put writes data to Dir/name through a temporary file so a partial object
// is never visible.
func (s DirSink) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, "."+name+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.Dir, name))
}

// Location implements Sink.
func (s DirSink) Location() string {
	return s.Dir
}

// BlobSink uploads objects to an Azure Blob Storage container.
type BlobSink struct {
	client    *azblob.Client
	endpoint  string
	container string
}

// NewBlobSink connects to the storage account at accountURL. A URL that
// carries a SAS token is used as is. Otherwise a nil cred falls back to
// DefaultAzureCredential (environment, managed identity, az login).
func NewBlobSink(accountURL, container string, cred azcore.TokenCredential) (*BlobSink, error) {
	if accountURL == "" {
		return nil, fmt.Errorf("archive account URL is required")
	}
	u, err := url.Parse(accountURL)
	if err != nil {
		return nil, fmt.Errorf("invalid archive account URL: %w", err)
	}

	var client *azblob.Client
	switch {
	case cred == nil && u.Query().Has("sig"):
		client, err = azblob.NewClientWithNoCredential(accountURL, clientOptions())
	default:
		if cred == nil {
			cred, err = azidentity.NewDefaultAzureCredential(nil)
			if err != nil {
				return nil, fmt.Errorf("failed to create Azure credential: %w", err)
			}
		}
		client, err = azblob.NewClient(accountURL, cred, clientOptions())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	u.RawQuery = ""
	return &BlobSink{client: client, endpoint: strings.TrimSuffix(u.String(), "/"), container: container}, nil
}

func clientOptions() *azblob.ClientOptions {
	return &azblob.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: 3},
		},
	}
}

// Put uploads data as a block blob named name.
func (s *BlobSink) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.UploadBuffer(ctx, s.container, name, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: to.Ptr("application/zstd"),
		},
		Metadata: map[string]*string{
			"source": to.Ptr("vitta"),
		},
	})
	return err
}

// Location implements Sink.
func (s *BlobSink) Location() string {
	return s.endpoint + "/" + s.container
}
