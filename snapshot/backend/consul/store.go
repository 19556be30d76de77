package consul

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/vshell/data/errors"
)

// MaxValueSize is the largest value Consul KV accepts.
const MaxValueSize = 512 * 1024

// ConsulStore keeps every snapshot slot as a single Consul KV entry.
//
// Limitations:
// - Consul KV has a 512KB limit per value
type ConsulStore struct {
	mu     sync.RWMutex
	client *api.Client
	kv     *api.KV

	config *ConsulStoreConfig
}

// ConsulStoreConfig contains configuration options for the Consul store
type ConsulStoreConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Namespace for Consul Enterprise (optional)
	Namespace string

	// Prefix for all keys in Consul KV (default: "vshell")
	Prefix string
}

// NewConsulStore creates a new Consul-backed snapshot store
func NewConsulStore(config *ConsulStoreConfig) (*ConsulStore, error) {
	if config == nil {
		config = &ConsulStoreConfig{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}
	if config.Prefix == "" {
		config.Prefix = "vshell"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}
	if config.Namespace != "" {
		clientConfig.Namespace = config.Namespace
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulStore{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Returns the identifier name defined for this store
func (*ConsulStore) Name() string {
	return "consul"
}

func (cs *ConsulStore) Open(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	_, err := cs.client.Status().Leader()
	return err
}

func (cs *ConsulStore) Close(ctx context.Context) error {
	return nil
}

func (cs *ConsulStore) Write(ctx context.Context, slot string, content []byte) error {
	if len(content) > MaxValueSize {
		return fmt.Errorf("snapshot of %d bytes exceeds consul value limit", len(content))
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	pair := &api.KVPair{
		Key:   cs.buildKey(slot),
		Value: content,
	}

	_, err := cs.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

func (cs *ConsulStore) Read(ctx context.Context, slot string) ([]byte, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	pair, _, err := cs.kv.Get(cs.buildKey(slot), (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, errors.SnapshotNotExist(nil, slot)
	}
	return pair.Value, nil
}

func (cs *ConsulStore) buildKey(slot string) string {
	return path.Join(cs.config.Prefix, slot)
}
