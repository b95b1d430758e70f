package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xkv"
)

// Dao owns all database and key-value access. Service code goes through it
// instead of touching gorm directly.
type Dao struct {
	ctx context.Context

	DB      *gorm.DB
	KvStore *xkv.Store
}

func New(ctx context.Context, db *gorm.DB, kvStore *xkv.Store) *Dao {
	return &Dao{
		ctx:     ctx,
		DB:      db,
		KvStore: kvStore,
	}
}
