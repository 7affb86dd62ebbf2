package types

import (
	"context"

	corestore "cosmossdk.io/core/store"
	storetypes "cosmossdk.io/store/types"
)

type storeContextKey struct{}

// WithKVStore returns a context carrying the session's keyed record
// store. The host router injects the store before every module call;
// modules never hold a store across calls.
func WithKVStore(ctx context.Context, kv storetypes.KVStore) context.Context {
	return context.WithValue(ctx, storeContextKey{}, kv)
}

// KVStoreFrom extracts the session store from the context. It panics if
// the context was not prepared with WithKVStore, which indicates a call
// made outside the host router.
func KVStoreFrom(ctx context.Context) storetypes.KVStore {
	kv, ok := ctx.Value(storeContextKey{}).(storetypes.KVStore)
	if !ok {
		panic("no kv store in context; module called outside a simulation session")
	}
	return kv
}

// KVStoreService returns a store service that resolves the session
// store from the call context, letting module keepers build
// collections schemas over a store that is handed in per call.
func KVStoreService() corestore.KVStoreService {
	return contextStoreService{}
}

type contextStoreService struct{}

func (contextStoreService) OpenKVStore(ctx context.Context) corestore.KVStore {
	return coreKVStore{kv: KVStoreFrom(ctx)}
}

// coreKVStore adapts the panic-style sdk store to the error-returning
// core store interface collections expects. The sdk iterator already
// satisfies the core iterator contract.
type coreKVStore struct {
	kv storetypes.KVStore
}

func (s coreKVStore) Get(key []byte) ([]byte, error) {
	return s.kv.Get(key), nil
}

func (s coreKVStore) Has(key []byte) (bool, error) {
	return s.kv.Has(key), nil
}

func (s coreKVStore) Set(key, value []byte) error {
	s.kv.Set(key, value)
	return nil
}

func (s coreKVStore) Delete(key []byte) error {
	s.kv.Delete(key)
	return nil
}

func (s coreKVStore) Iterator(start, end []byte) (corestore.Iterator, error) {
	return s.kv.Iterator(start, end), nil
}

func (s coreKVStore) ReverseIterator(start, end []byte) (corestore.Iterator, error) {
	return s.kv.ReverseIterator(start, end), nil
}
