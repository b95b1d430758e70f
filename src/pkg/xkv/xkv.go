package xkv

import (
	"github.com/zeromicro/go-zero/core/stores/kv"
)

// Store wraps the go-zero kv store so callers depend on one local type.
type Store struct {
	kv.Store
}

func NewStore(c kv.KvConf) *Store {
	return &Store{Store: kv.NewStore(c)}
}
