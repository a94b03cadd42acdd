// Package s3 reads a console catalog document from an S3-compatible object store.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/catalog"
)

// MaxDocumentSize bounds how much of the object is read.
const MaxDocumentSize = 4 << 20

var ErrBucketNotFound = errors.New("s3: bucket does not exist")

// S3Source loads a single catalog document; the object key extension
// (.yaml, .yml, .toml or .json) selects the format.
type S3Source struct {
	client     *minio.Client
	bucketName string
	objectKey  string
}

func NewS3Source(endpoint, bucketName, objectKey, accessKey, secretKey string, useSsl bool) (*S3Source, error) {
	if _, err := catalog.FormatFromPath(objectKey); err != nil {
		return nil, err
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSsl,
	})
	if err != nil {
		return nil, err
	}

	return &S3Source{
		client:     client,
		bucketName: bucketName,
		objectKey:  objectKey,
	}, nil
}

func (ss *S3Source) Name() string {
	return fmt.Sprintf("s3:%s/%s", ss.bucketName, ss.objectKey)
}

// Check verifies that the bucket exists.
func (ss *S3Source) Check(ctx context.Context) error {
	exists, err := ss.client.BucketExists(ctx, ss.bucketName)
	if err != nil {
		return err
	}
	if !exists {
		return ErrBucketNotFound
	}
	return nil
}

// Document fetches and decodes the catalog object.
func (ss *S3Source) Document(ctx context.Context) (*catalog.Document, error) {
	obj, err := ss.client.GetObject(ctx, ss.bucketName, ss.objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(io.LimitReader(obj, MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDocumentSize {
		return nil, fmt.Errorf("s3: catalog object %s exceeds %d bytes", ss.objectKey, MaxDocumentSize)
	}

	format, _ := catalog.FormatFromPath(ss.objectKey)
	return catalog.Decode(bytes.NewReader(data), format)
}

// Upload encodes doc and replaces the catalog object.
func (ss *S3Source) Upload(ctx context.Context, doc *catalog.Document) error {
	format, _ := catalog.FormatFromPath(ss.objectKey)

	var buf bytes.Buffer
	if err := catalog.Encode(&buf, format, doc); err != nil {
		return err
	}

	_, err := ss.client.PutObject(ctx, ss.bucketName, ss.objectKey, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: contentType(format),
	})
	return err
}

func (ss *S3Source) Load(ctx context.Context) ([]*codeconsole.CommandDefinition, error) {
	doc, err := ss.Document(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Definitions()
}

func contentType(format catalog.Format) string {
	switch format {
	case catalog.FormatJSON:
		return "application/json"
	case catalog.FormatTOML:
		return "application/toml"
	default:
		return "application/yaml"
	}
}
