package snapshot

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mwantia/vshell/data/errors"
	"github.com/mwantia/vshell/snapshot/backend/consul"
	"github.com/mwantia/vshell/snapshot/backend/file"
	"github.com/mwantia/vshell/snapshot/backend/memory"
	"github.com/mwantia/vshell/snapshot/backend/postgres"
	"github.com/mwantia/vshell/snapshot/backend/s3"
	"github.com/mwantia/vshell/snapshot/backend/sqlite"
)

// Store persists whole snapshots under a slot name. Every Write replaces
// the previous snapshot of that slot; there is no incremental format.
type Store interface {
	// Name returns the identifier name defined for this store
	Name() string
	// Open is part of the lifecycle behaviour and gets called before first use.
	Open(ctx context.Context) error
	// Close releases all resources held by the store.
	Close(ctx context.Context) error

	// Write atomically replaces the snapshot stored under slot.
	Write(ctx context.Context, slot string, content []byte) error
	// Read returns the snapshot stored under slot or data.ErrSnapshotNotExist.
	Read(ctx context.Context, slot string) ([]byte, error)
}

// Save encodes rec and writes it into slot.
func Save(ctx context.Context, store Store, slot string, rec *Record) (int, error) {
	encoded, err := rec.Marshal()
	if err != nil {
		return 0, err
	}
	if err := store.Write(ctx, slot, encoded); err != nil {
		return 0, fmt.Errorf("failed to write snapshot '%s' to %s: %w", slot, store.Name(), err)
	}
	return len(encoded), nil
}

// Load reads and decodes the snapshot in slot.
func Load(ctx context.Context, store Store, slot string) (*Record, int, error) {
	content, err := store.Read(ctx, slot)
	if err != nil {
		return nil, 0, err
	}
	rec, err := Unmarshal(content)
	if err != nil {
		return nil, 0, err
	}
	return rec, len(content), nil
}

// ParseAddress creates a store from an address.
//
//	memory://
//	file://<directory>
//	sqlite://<path|:memory:>
//	postgres://<user>:<password>@<host>:<port>/<database>
//	consul://<host>:<port>/<prefix>?token=<token>&datacenter=<dc>
//	s3://<access_key>:<secret_key>@<host>:<port>/<bucket>/<prefix>?ssl=<bool>
func ParseAddress(address string) (Store, error) {
	address = strings.TrimSpace(address)

	switch {
	case address == "memory://" || address == ":memory:":
		return memory.NewMemoryStore(), nil

	case strings.HasPrefix(address, "file://"):
		return file.NewFileStore(strings.TrimPrefix(address, "file://"))

	case strings.HasPrefix(address, "sqlite://"):
		return sqlite.NewSQLiteStore(strings.TrimPrefix(address, "sqlite://"))

	case strings.HasPrefix(address, "postgres://"), strings.HasPrefix(address, "postgresql://"):
		return postgres.NewPostgresStore(address), nil

	case strings.HasPrefix(address, "consul://"):
		return parseConsulAddress(address)

	case strings.HasPrefix(address, "s3://"), strings.HasPrefix(address, "minio://"):
		return parseS3Address(address)
	}

	return nil, errors.UnknownStore(nil, address)
}

func parseConsulAddress(address string) (Store, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, errors.UnknownStore(err, address)
	}

	query := u.Query()
	return consul.NewConsulStore(&consul.ConsulStoreConfig{
		Address:    u.Host,
		Token:      query.Get("token"),
		Datacenter: query.Get("datacenter"),
		Namespace:  query.Get("namespace"),
		Prefix:     strings.TrimPrefix(u.Path, "/"),
	})
}

func parseS3Address(address string) (Store, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, errors.UnknownStore(err, address)
	}

	bucket, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if bucket == "" {
		return nil, errors.UnknownStore(fmt.Errorf("missing bucket"), address)
	}

	accessKey := u.User.Username()
	secretKey, _ := u.User.Password()

	return s3.NewS3Store(&s3.S3StoreConfig{
		Endpoint:   u.Host,
		Bucket:     bucket,
		Prefix:     prefix,
		AccessKey:  accessKey,
		SecretKey:  secretKey,
		UseSSL:     u.Query().Get("ssl") == "true",
		CreateMiss: u.Query().Get("create") != "false",
	})
}
