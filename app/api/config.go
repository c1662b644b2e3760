package main

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/x-xyz/artgallery/base/validator"
)

const (
	ipfsSourceGateway = "gateway"
	ipfsSourceNode    = "node"
)

var errInvalidConfig = errors.New("invalid config")

type serverConfig struct {
	Address      string
	AllowOrigins []string
}

type chainConfig struct {
	RpcUrl          string
	ContractAddress string
	CallTimeout     time.Duration
	MaxConcurrency  int
}

type ipfsConfig struct {
	Source  string
	Gateway string
	NodeUrl string
	Timeout time.Duration
}

type pinataConfig struct {
	ApiKey    string
	ApiSecret string
	Endpoint  string
	Timeout   time.Duration
}

type resolverConfig struct {
	Workers      int
	MaxAttempts  int
	Backoff      time.Duration
	BackoffLimit time.Duration
}

type redisConfig struct {
	Uri       string
	Password  string
	MaxIdle   int
	MaxActive int
}

type metadataCacheConfig struct {
	Backend string
	// SizeMB only bounds the freecache backend
	SizeMB  int
	Ttl     time.Duration
	Redis   redisConfig
}

type config struct {
	Debug         bool
	Server        serverConfig
	Chain         chainConfig
	Ipfs          ipfsConfig
	Pinata        pinataConfig
	Resolver      resolverConfig
	MetadataCache metadataCacheConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.allowOrigins", []string{"http://127.0.0.1:3000", "http://localhost:3000"})
	v.SetDefault("chain.callTimeout", 10*time.Second)
	v.SetDefault("chain.maxConcurrency", 16)
	v.SetDefault("ipfs.source", ipfsSourceGateway)
	v.SetDefault("ipfs.gateway", "https://gateway.pinata.cloud/ipfs")
	v.SetDefault("ipfs.timeout", 10*time.Second)
	v.SetDefault("pinata.timeout", 30*time.Second)
	v.SetDefault("resolver.workers", 8)
	v.SetDefault("resolver.maxAttempts", 2)
	v.SetDefault("resolver.backoff", 200*time.Millisecond)
	v.SetDefault("resolver.backoffLimit", 2*time.Second)
	v.SetDefault("metadataCache.backend", cacheBackendMemory)
	v.SetDefault("metadataCache.sizeMB", 32)
	v.SetDefault("metadataCache.redis.maxIdle", 16)
	v.SetDefault("metadataCache.redis.maxActive", 64)
}

// bindEnv lets CHAIN_RPCURL style variables override any key, plus the
// variable names the deployment already uses
func bindEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("chain.rpcUrl", "CHAIN_RPCURL", "ETHEREUM_RPC_URL")
	_ = v.BindEnv("chain.contractAddress", "CHAIN_CONTRACTADDRESS", "CONTRACT_ADDRESS")
	_ = v.BindEnv("pinata.apiKey", "PINATA_APIKEY", "PINATA_API_KEY")
	_ = v.BindEnv("pinata.apiSecret", "PINATA_APISECRET", "PINATA_API_SECRET")
	_ = v.BindEnv("metadataCache.redis.uri", "METADATACACHE_REDIS_URI", "REDIS_URI")
}

func loadConfig(v *viper.Viper) (*config, error) {
	cfg := &config{
		Debug: v.GetBool("debug"),
		Server: serverConfig{
			Address:      v.GetString("server.address"),
			AllowOrigins: v.GetStringSlice("server.allowOrigins"),
		},
		Chain: chainConfig{
			RpcUrl:          v.GetString("chain.rpcUrl"),
			ContractAddress: v.GetString("chain.contractAddress"),
			CallTimeout:     v.GetDuration("chain.callTimeout"),
			MaxConcurrency:  v.GetInt("chain.maxConcurrency"),
		},
		Ipfs: ipfsConfig{
			Source:  v.GetString("ipfs.source"),
			Gateway: v.GetString("ipfs.gateway"),
			NodeUrl: v.GetString("ipfs.nodeUrl"),
			Timeout: v.GetDuration("ipfs.timeout"),
		},
		Pinata: pinataConfig{
			ApiKey:    v.GetString("pinata.apiKey"),
			ApiSecret: v.GetString("pinata.apiSecret"),
			Endpoint:  v.GetString("pinata.endpoint"),
			Timeout:   v.GetDuration("pinata.timeout"),
		},
		Resolver: resolverConfig{
			Workers:      v.GetInt("resolver.workers"),
			MaxAttempts:  v.GetInt("resolver.maxAttempts"),
			Backoff:      v.GetDuration("resolver.backoff"),
			BackoffLimit: v.GetDuration("resolver.backoffLimit"),
		},
		MetadataCache: metadataCacheConfig{
			Backend: v.GetString("metadataCache.backend"),
			SizeMB:  v.GetInt("metadataCache.sizeMB"),
			Ttl:     v.GetDuration("metadataCache.ttl"),
			Redis: redisConfig{
				Uri:       v.GetString("metadataCache.redis.uri"),
				Password:  v.GetString("metadataCache.redis.password"),
				MaxIdle:   v.GetInt("metadataCache.redis.maxIdle"),
				MaxActive: v.GetInt("metadataCache.redis.maxActive"),
			},
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *config) validate() error {
	switch {
	case cfg.Chain.RpcUrl == "":
		return xerrors.Errorf("chain.rpcUrl is required: %w", errInvalidConfig)
	case cfg.Chain.ContractAddress == "":
		return xerrors.Errorf("chain.contractAddress is required: %w", errInvalidConfig)
	case !validator.IsValidAddress(cfg.Chain.ContractAddress):
		return xerrors.Errorf("chain.contractAddress %q is not an address: %w", cfg.Chain.ContractAddress, errInvalidConfig)
	case cfg.Pinata.ApiKey == "" || cfg.Pinata.ApiSecret == "":
		return xerrors.Errorf("pinata.apiKey and pinata.apiSecret are required: %w", errInvalidConfig)
	case cfg.Ipfs.Source != ipfsSourceGateway && cfg.Ipfs.Source != ipfsSourceNode:
		return xerrors.Errorf("ipfs.source must be %s or %s: %w", ipfsSourceGateway, ipfsSourceNode, errInvalidConfig)
	case cfg.Ipfs.Source == ipfsSourceNode && cfg.Ipfs.NodeUrl == "":
		return xerrors.Errorf("ipfs.nodeUrl is required for the node source: %w", errInvalidConfig)
	case cfg.Ipfs.Gateway == "":
		return xerrors.Errorf("ipfs.gateway is required: %w", errInvalidConfig)
	case cfg.MetadataCache.Backend != cacheBackendMemory && cfg.MetadataCache.Backend != cacheBackendFreecache:
		return xerrors.Errorf("metadataCache.backend must be %s or %s: %w", cacheBackendMemory, cacheBackendFreecache, errInvalidConfig)
	case cfg.MetadataCache.Backend == cacheBackendFreecache && cfg.MetadataCache.SizeMB < 1:
		return xerrors.Errorf("metadataCache.sizeMB must be positive for freecache: %w", errInvalidConfig)
	case cfg.Resolver.Workers < 1 || cfg.Resolver.MaxAttempts < 1:
		return xerrors.Errorf("resolver.workers and resolver.maxAttempts must be positive: %w", errInvalidConfig)
	}
	return nil
}
