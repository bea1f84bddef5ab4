// Package kv is the string key-value capability ProjectStorage persists
// through, with in-memory, JSON file, SQLite and Redis backends.
package kv

import (
	"context"
	"fmt"
	"io"
)

// Backend type names accepted by Open.
const (
	TypeMemory = "memory"
	TypeFile   = "file"
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"
)

// Types lists every backend Open understands.
var Types = []string{TypeMemory, TypeFile, TypeSQLite, TypeRedis}

// Store reads and writes opaque string values by key. GetItem reports
// ok=false for a key that was never set.
type Store interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
}

// Backend is a Store that holds resources until closed.
type Backend interface {
	Store
	io.Closer
}

// Options selects and configures a backend.
type Options struct {
	Type string
	// Path is the JSON file for TypeFile or the database file for TypeSQLite.
	Path  string
	Redis RedisOptions
}

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr     string
	DB       int
	Password string
}

// Open returns the backend described by opts.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Type {
	case TypeMemory:
		return NewMemory(), nil
	case TypeFile:
		return NewFile(opts.Path)
	case TypeSQLite:
		return OpenSQLite(ctx, opts.Path)
	case TypeRedis:
		return OpenRedis(ctx, opts.Redis)
	default:
		return nil, fmt.Errorf("unknown store type %q", opts.Type)
	}
}
