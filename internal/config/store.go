package config

import (
	"os"
	"strings"
)

const (
	storeBackendEnv = "STORE_BACKEND"

	defaultStoreBackend = StoreBackendRedis
)

type StoreBackend string

const (
	StoreBackendRedis  StoreBackend = "redis"
	StoreBackendMemory StoreBackend = "memory"
)

type StoreConfig struct {
	Backend StoreBackend
}

func LoadStoreConfig() *StoreConfig {
	backend := StoreBackend(strings.ToLower(os.Getenv(storeBackendEnv)))
	if backend == "" {
		backend = defaultStoreBackend
	}

	return &StoreConfig{
		Backend: backend,
	}
}

func (c *StoreConfig) Validate() error {
	if c == nil {
		return ErrInvalidStore
	}
	switch c.Backend {
	case StoreBackendRedis, StoreBackendMemory:
		return nil
	default:
		return ErrInvalidStore
	}
}
