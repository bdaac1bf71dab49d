// Package storage is the durable key/value substrate shared by the
// credential store and the cart store. Each component owns its own keys;
// nothing here interprets values.
package storage

import "context"

// Repository is a byte-valued key/value store.
//
// Get returns (nil, nil) for an absent key. Delete of an absent key is not an
// error. SetMany writes all pairs or none.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
