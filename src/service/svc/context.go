package svc

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"gorm.io/gorm"

	"github.com/Pratik-jagdale/AgentDashBackend/src/config"
	"github.com/Pratik-jagdale/AgentDashBackend/src/dao"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/gdb"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xkv"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/nft"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/registrar"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/session"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/wallet"
)

type ServerCtx struct {
	C  *config.Config
	DB *gorm.DB

	Dao     *dao.Dao
	KvStore *xkv.Store

	Wallet    *wallet.Adapter
	Engine    *nft.Engine
	Session   *session.Manager
	Registrar *registrar.Client
}

// NewServiceContext wires the infrastructure the dashboard backend needs:
// redis, database, the wallet adapter, the collection engine, the session
// manager and the bot registrar client.
func NewServiceContext(ctx context.Context, c *config.Config) (*ServerCtx, error) {
	var kvConf kv.KvConf
	for _, con := range c.Kv.Redis {
		kvConf = append(kvConf, cache.NodeConf{
			RedisConf: redis.RedisConf{
				Host: con.Host,
				Type: con.Type,
				Pass: con.Pass,
			},
			Weight: 1,
		})
	}
	store := xkv.NewStore(kvConf)

	db, err := gdb.NewDB(&c.DB)
	if err != nil {
		return nil, err
	}

	adapter := wallet.NewAdapter(wallet.Config{
		ClientID:   c.Wallet.ClientID,
		Endpoint:   c.ChainCfg.Endpoint,
		ChainID:    c.ChainCfg.ID,
		AccountKey: c.Wallet.AccountKey,
		Profile: wallet.UserInfo{
			Name:         c.Wallet.Name,
			Email:        c.Wallet.Email,
			ProfileImage: c.Wallet.AvatarUrl,
		},
	})

	reader, err := nft.NewERC721Reader(adapter, c.Contract.AgentNftAddress)
	if err != nil {
		return nil, errors.Wrap(err, "failed on create collection reader")
	}
	engine := nft.NewEngine(reader, store, nft.EngineConfig{
		ContractAddress: c.Contract.AgentNftAddress,
		CollectionName:  c.Contract.CollectionName,
		ImageUrlFormat:  c.Contract.ImageUrlFormat,
	})

	serverCtx := NewServerCtx(
		WithDB(db),
		WithKv(store),
		WithDao(dao.New(ctx, db, store)),
		WithWallet(adapter),
		WithEngine(engine),
		WithSession(session.NewManager(adapter, engine)),
		WithRegistrar(registrar.NewClient(c.BotApi.Url, time.Duration(c.BotApi.TimeoutSeconds)*time.Second)),
	)
	serverCtx.C = c

	return serverCtx, nil
}
