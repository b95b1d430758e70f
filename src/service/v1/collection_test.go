package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pratik-jagdale/AgentDashBackend/src/config"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/nft"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/session"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/svc"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/wallet"
	types "github.com/Pratik-jagdale/AgentDashBackend/src/types/v1"
)

type stubProvider struct{}

func (p *stubProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	switch method {
	case "eth_accounts":
		return json.Marshal([]string{"0xfeed000000000000000000000000000000000001"})
	case "eth_sendTransaction":
		return json.Marshal("0xmintedtx")
	}
	return nil, errors.Errorf("unexpected method %s", method)
}

func (p *stubProvider) Connected() bool { return true }

func (p *stubProvider) GetUserInfo(ctx context.Context) (*wallet.UserInfo, error) {
	return &wallet.UserInfo{Name: "agent"}, nil
}

type countingReader struct {
	mu           sync.Mutex
	balanceCalls int
}

func (r *countingReader) BalanceOf(ctx context.Context, owner string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balanceCalls++
	return 0, nil
}

func (r *countingReader) TokenOfOwnerByIndex(ctx context.Context, owner string, index int64) (string, error) {
	return "", errors.New("no tokens")
}

func (r *countingReader) OwnerOf(ctx context.Context, tokenID string) (string, error) {
	return "", errors.New("no tokens")
}

func (r *countingReader) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.balanceCalls
}

type nopStore struct{}

func (nopStore) Get(key string) (string, error) { return "", nil }
func (nopStore) Set(key, value string) error    { return nil }

func newMintTestCtx(t *testing.T) (*svc.ServerCtx, *countingReader) {
	t.Helper()
	adapter := wallet.NewAdapterWithDialer("test-client", func(ctx context.Context) (wallet.Provider, error) {
		return &stubProvider{}, nil
	})
	reader := &countingReader{}
	engine := nft.NewEngine(reader, nopStore{}, nft.EngineConfig{
		ContractAddress: "0x00000000000000000000000000000000000000aa",
		CollectionName:  "Agent NFT",
	})
	return &svc.ServerCtx{
		C: &config.Config{
			Contract: config.ContractCfg{
				MinterAddress: "0x00000000000000000000000000000000000000bb",
			},
		},
		Session: session.NewManager(adapter, engine),
	}, reader
}

func TestMintKicksCollectionRefresh(t *testing.T) {
	svcCtx, reader := newMintTestCtx(t)

	_, err := svcCtx.Session.Login(context.Background())
	require.NoError(t, err)

	// Let the login-time warm-up settle before counting.
	require.Eventually(t, func() bool {
		return reader.calls() >= 1
	}, time.Second, 10*time.Millisecond)
	before := reader.calls()

	res, err := Mint(context.Background(), svcCtx, types.MintReq{Value: "0x1"})
	require.NoError(t, err)
	assert.Equal(t, "0xmintedtx", res.TxHash)

	assert.Eventually(t, func() bool {
		return reader.calls() > before
	}, time.Second, 10*time.Millisecond, "mint should re-run acquisition")
}

func TestMintRequiresConfiguredMinter(t *testing.T) {
	svcCtx, _ := newMintTestCtx(t)
	svcCtx.C.Contract.MinterAddress = ""

	_, err := svcCtx.Session.Login(context.Background())
	require.NoError(t, err)

	_, err = Mint(context.Background(), svcCtx, types.MintReq{Value: "0x1"})
	assert.Error(t, err)
}
