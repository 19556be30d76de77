package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mwantia/vshell/data/errors"
)

// S3StoreConfig contains configuration options for the S3 store
type S3StoreConfig struct {
	Endpoint  string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
	UseSSL    bool

	// CreateMiss creates the bucket on Open when it does not exist yet
	CreateMiss bool
}

// S3Store keeps every snapshot slot as a single object.
type S3Store struct {
	mu sync.RWMutex

	client *minio.Client
	config *S3StoreConfig
}

func NewS3Store(config *S3StoreConfig) (*S3Store, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &S3Store{
		client: client,
		config: config,
	}, nil
}

// Returns the identifier name defined for this store
func (*S3Store) Name() string {
	return "s3"
}

func (ss *S3Store) Open(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	exists, err := ss.client.BucketExists(ctx, ss.config.Bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if !ss.config.CreateMiss {
		return fmt.Errorf("bucket '%s' does not exist", ss.config.Bucket)
	}

	return ss.client.MakeBucket(ctx, ss.config.Bucket, minio.MakeBucketOptions{})
}

func (ss *S3Store) Close(ctx context.Context) error {
	return nil
}

func (ss *S3Store) Write(ctx context.Context, slot string, content []byte) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	_, err := ss.client.PutObject(ctx, ss.config.Bucket, ss.key(slot), bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "application/octet-stream",
	})
	return err
}

func (ss *S3Store) Read(ctx context.Context, slot string) ([]byte, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	object, err := ss.client.GetObject(ctx, ss.config.Bucket, ss.key(slot), minio.GetObjectOptions{})
	if err != nil {
		return nil, ss.translate(err, slot)
	}
	defer object.Close()

	content, err := io.ReadAll(object)
	if err != nil {
		return nil, ss.translate(err, slot)
	}
	return content, nil
}

func (ss *S3Store) translate(err error, slot string) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return errors.SnapshotNotExist(err, slot)
	}
	return err
}

func (ss *S3Store) key(slot string) string {
	return path.Join(ss.config.Prefix, slot+".save")
}
