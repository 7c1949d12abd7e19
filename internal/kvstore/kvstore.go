// Package kvstore is a small namespaced key-value cache. Values are strings,
// usually JSON arrays of one logical collection (contracts, notifications,
// buyers, sellers).
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("key not found")

// Backend is the raw storage under every namespace.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetEx stores value for at most ttl.
	SetEx(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// Keys returns every key starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Namespace scopes keys of a Backend with a "<name>:" prefix.
type Namespace struct {
	name    string
	backend Backend
}

func NewNamespace(backend Backend, name string) *Namespace {
	return &Namespace{name: name, backend: backend}
}

func (n *Namespace) Name() string { return n.name }

func (n *Namespace) key(k string) string {
	return n.name + ":" + k
}

func (n *Namespace) Get(ctx context.Context, key string) (string, error) {
	return n.backend.Get(ctx, n.key(key))
}

func (n *Namespace) Set(ctx context.Context, key, value string) error {
	return n.backend.Set(ctx, n.key(key), value)
}

func (n *Namespace) Delete(ctx context.Context, key string) error {
	return n.backend.Del(ctx, n.key(key))
}

// Clear removes every key of this namespace and nothing else.
func (n *Namespace) Clear(ctx context.Context) error {
	keys, err := n.backend.Keys(ctx, n.name+":")
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return n.backend.Del(ctx, keys...)
}

// Keys lists the keys of this namespace without the prefix.
func (n *Namespace) Keys(ctx context.Context) ([]string, error) {
	prefix := n.name + ":"
	keys, err := n.backend.Keys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, prefix))
	}
	return out, nil
}

// GetJSON decodes the value at key into T. A missing or unparsable value
// yields def; only backend failures are returned as errors.
func GetJSON[T any](ctx context.Context, n *Namespace, key string, def T) (T, error) {
	raw, err := n.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return def, nil
		}
		return def, err
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def, nil
	}
	return v, nil
}

// SetJSON stores v encoded as JSON.
func SetJSON[T any](ctx context.Context, n *Namespace, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return n.Set(ctx, key, string(b))
}

const CRMPrefix = "crm"

// ForUser returns the CRM namespace of one authenticated user.
func ForUser(backend Backend, userID string) *Namespace {
	return NewNamespace(backend, CRMPrefix+":"+userID)
}
