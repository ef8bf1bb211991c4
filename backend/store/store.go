// Package store is the persistence gateway. Every value is a JSON document
// under a string key; backends only need exact-key get, set and delete.
package store

import (
	"context"
	"strings"
)

// Entry is a stored value together with the schema version it was written at.
type Entry struct {
	Value   []byte
	Version int
}

// KV is the key-value gateway the rest of the application persists through.
type KV interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type namespaced struct {
	kv     KV
	prefix string
}

// Namespace returns a view of kv whose keys are all prefixed with prefix.
// Closing the view does not close kv.
func Namespace(kv KV, prefix string) KV {
	return &namespaced{kv: kv, prefix: prefix}
}

func (n *namespaced) key(k string) string { return n.prefix + k }

func (n *namespaced) Get(ctx context.Context, key string) (Entry, bool, error) {
	return n.kv.Get(ctx, n.key(key))
}

func (n *namespaced) Set(ctx context.Context, key string, e Entry) error {
	return n.kv.Set(ctx, n.key(key), e)
}

func (n *namespaced) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = n.key(k)
	}
	return n.kv.Delete(ctx, full...)
}

func (n *namespaced) Close() error { return nil }

// ProfilePrefix is the namespace every per-user key lives under.
func ProfilePrefix(userID string) string {
	return "profile/" + strings.TrimSpace(userID) + "/"
}
