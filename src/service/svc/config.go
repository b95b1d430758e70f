package svc

import (
	"gorm.io/gorm"

	"github.com/Pratik-jagdale/AgentDashBackend/src/dao"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xkv"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/nft"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/registrar"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/session"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/wallet"
)

type CtxConfig struct {
	db        *gorm.DB
	dao       *dao.Dao
	KvStore   *xkv.Store
	wallet    *wallet.Adapter
	engine    *nft.Engine
	session   *session.Manager
	registrar *registrar.Client
}

type CtxOption func(conf *CtxConfig)

func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		DB:        c.db,
		KvStore:   c.KvStore,
		Dao:       c.dao,
		Wallet:    c.wallet,
		Engine:    c.engine,
		Session:   c.session,
		Registrar: c.registrar,
	}
}

func WithKv(kv *xkv.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.KvStore = kv
	}
}

func WithDB(db *gorm.DB) CtxOption {
	return func(conf *CtxConfig) {
		conf.db = db
	}
}

func WithDao(dao *dao.Dao) CtxOption {
	return func(conf *CtxConfig) {
		conf.dao = dao
	}
}

func WithWallet(adapter *wallet.Adapter) CtxOption {
	return func(conf *CtxConfig) {
		conf.wallet = adapter
	}
}

func WithEngine(engine *nft.Engine) CtxOption {
	return func(conf *CtxConfig) {
		conf.engine = engine
	}
}

func WithSession(manager *session.Manager) CtxOption {
	return func(conf *CtxConfig) {
		conf.session = manager
	}
}

func WithRegistrar(client *registrar.Client) CtxOption {
	return func(conf *CtxConfig) {
		conf.registrar = client
	}
}
