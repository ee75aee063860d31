package featureclust

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"google.golang.org/api/option"
)

// NewStorageClient returns a Google Storage client if any of paths lives on
// Google Storage, and nil otherwise. When credentialsFile is empty, the
// application default credentials are used.
func NewStorageClient(ctx context.Context, credentialsFile string, paths ...string) (*storage.Client, error) {
	needed := false
	for _, path := range paths {
		if IsGoogleStoragePath(path) {
			needed = true
			break
		}
	}
	if !needed {
		return nil, nil
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(ExpandHome(credentialsFile)))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return client, nil
}

// OpenInput opens a local or gs:// path and transparently decompresses it.
func OpenInput(path string, client *storage.Client) (io.ReadCloser, error) {
	f, _, err := MaybeOpenSeekerFromGoogleStorage(ExpandHome(path), client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	rc, err := MaybeDecompressReadCloser(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return rc, nil
}

// CreateOutput creates a local file, or a gs:// object when client is set.
// Objects on Google Storage are only committed when Close returns nil.
func CreateOutput(ctx context.Context, path string, client *storage.Client) (io.WriteCloser, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, pfx.Err(fmt.Errorf("%s: a Google Storage client is required to write this path", path))
		}

		bucketName, pathName, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, err
		}

		return client.Bucket(bucketName).Object(pathName).NewWriter(ctx), nil
	}

	f, err := os.Create(ExpandHome(path))
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}
