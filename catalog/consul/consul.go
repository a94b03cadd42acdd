// Package consul reads console command schemas from the HashiCorp Consul KV store.
package consul

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/codeconsole"
	"github.com/mwantia/codeconsole/catalog"
)

// ConsulSource stores one command per key below Prefix, e.g.
//
//	console/commands/cl.yaml
//	console/commands/ping.json
//
// The key extension selects the format; keys without a known extension are read as YAML.
type ConsulSource struct {
	client *api.Client
	kv     *api.KV

	config *ConsulSourceConfig
}

// ConsulSourceConfig contains configuration options for the Consul source
type ConsulSourceConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Scheme used to reach Consul (default: "http")
	Scheme string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Namespace for Consul Enterprise (optional)
	Namespace string

	// Prefix for all command keys (default: "console/commands")
	Prefix string
}

func NewConsulSource(config *ConsulSourceConfig) (*ConsulSource, error) {
	if config == nil {
		config = &ConsulSourceConfig{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}
	if config.Scheme == "" {
		config.Scheme = "http"
	}
	if config.Prefix == "" {
		config.Prefix = "console/commands"
	}
	config.Prefix = strings.Trim(config.Prefix, "/")

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	clientConfig.Scheme = config.Scheme
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

	return &ConsulSource{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

func (cs *ConsulSource) Name() string {
	return "consul:" + cs.config.Prefix
}

// Put writes cmd to <prefix>/<name>.yaml.
func (cs *ConsulSource) Put(ctx context.Context, cmd catalog.Command) error {
	var buf bytes.Buffer
	if err := catalog.Encode(&buf, catalog.FormatYAML, cmd); err != nil {
		return err
	}

	pair := &api.KVPair{
		Key:   cs.buildKey(cmd.Name + ".yaml"),
		Value: buf.Bytes(),
	}

	_, err := cs.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

// Commands lists and decodes every key below the prefix, sorted by key. Keys
// that fail to decode are skipped and reported in the joined error.
func (cs *ConsulSource) Commands(ctx context.Context) ([]catalog.Command, error) {
	pairs, _, err := cs.kv.List(cs.config.Prefix+"/", (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}

	var errs []error
	cmds := make([]catalog.Command, 0, len(pairs))
	for _, pair := range pairs {
		// Folder placeholders end with a slash and carry no value
		if strings.HasSuffix(pair.Key, "/") || len(pair.Value) == 0 {
			continue
		}

		format, err := catalog.FormatFromPath(pair.Key)
		if err != nil {
			format = catalog.FormatYAML
		}

		cmd, err := catalog.DecodeCommand(bytes.NewReader(pair.Value), format)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", pair.Key, err))
			continue
		}
		cmds = append(cmds, *cmd)
	}

	return cmds, errors.Join(errs...)
}

func (cs *ConsulSource) Load(ctx context.Context) ([]*codeconsole.CommandDefinition, error) {
	cmds, err := cs.Commands(ctx)
	if cmds == nil {
		return nil, err
	}

	doc := catalog.Document{Commands: cmds}
	defs, derr := doc.Definitions()
	return defs, errors.Join(err, derr)
}

func (cs *ConsulSource) buildKey(name string) string {
	return path.Join(cs.config.Prefix, name)
}
