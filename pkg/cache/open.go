package cache

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Backends lists the accepted backend names.
var Backends = []string{BackendNone, BackendFile, BackendRedis, BackendMongo}

// Options selects and configures a backend.
type Options struct {
	Backend    string `toml:"backend" json:"backend" validate:"omitempty,oneof=none file redis mongo"`
	Dir        string `toml:"dir" json:"dir,omitempty"`
	URL        string `toml:"url" json:"url,omitempty" validate:"required_if=Backend redis,required_if=Backend mongo"`
	Database   string `toml:"database" json:"database,omitempty"`
	Collection string `toml:"collection" json:"collection,omitempty"`
	Prefix     string `toml:"prefix" json:"prefix,omitempty"`
}

// Open constructs the backend named by opts.Backend. An empty backend
// means file.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch strings.ToLower(opts.Backend) {
	case BackendNone:
		return NewNullCache(), nil
	case "", BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		return NewFileCache(opts.Dir)
	case BackendRedis:
		prefix := opts.Prefix
		if prefix == "" {
			prefix = "cascade:"
		}
		return NewRedisCache(ctx, opts.URL, prefix)
	case BackendMongo:
		db, coll := opts.Database, opts.Collection
		if db == "" {
			db = "cascade"
		}
		if coll == "" {
			coll = "cache"
		}
		return NewMongoCache(ctx, opts.URL, db, coll)
	}
	return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
}
