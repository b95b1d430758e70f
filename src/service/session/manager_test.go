package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pratik-jagdale/AgentDashBackend/src/service/nft"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/wallet"
)

const testAddress = "0xabc0000000000000000000000000000000000abc"

type fakeProvider struct {
	connected bool
	closeErr  error
}

func (p *fakeProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	switch method {
	case "eth_accounts":
		return json.Marshal([]string{"0xABC0000000000000000000000000000000000ABC"})
	case "personal_sign":
		return json.Marshal("0xdeadbeefsignature")
	case "eth_getBalance":
		return json.Marshal("0xde0b6b3a7640000") // 1 ether
	}
	return nil, errors.Errorf("unexpected method %s", method)
}

func (p *fakeProvider) Connected() bool { return p.connected }

func (p *fakeProvider) GetUserInfo(ctx context.Context) (*wallet.UserInfo, error) {
	return &wallet.UserInfo{Name: "agent"}, nil
}

func (p *fakeProvider) Close() error { return p.closeErr }

type stubReader struct {
	mu      sync.Mutex
	tokens  []string
	blocked chan struct{} // when set, BalanceOf waits for it
	calls   int
}

func (r *stubReader) BalanceOf(ctx context.Context, owner string) (int64, error) {
	if r.blocked != nil {
		<-r.blocked
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return int64(len(r.tokens)), nil
}

func (r *stubReader) TokenOfOwnerByIndex(ctx context.Context, owner string, index int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens[index], nil
}

func (r *stubReader) OwnerOf(ctx context.Context, tokenID string) (string, error) {
	return testAddress, nil
}

type mapStore struct {
	mu   sync.Mutex
	data map[string]string
}

func (s *mapStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *mapStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func newTestManager(provider *fakeProvider, reader nft.ChainReader) *Manager {
	adapter := wallet.NewAdapterWithDialer("test-client", func(ctx context.Context) (wallet.Provider, error) {
		provider.connected = true
		return provider, nil
	})
	engine := nft.NewEngine(reader, &mapStore{data: map[string]string{}}, nft.EngineConfig{
		ContractAddress: "0x00000000000000000000000000000000000000aa",
		CollectionName:  "Agent NFT",
	})
	return NewManager(adapter, engine)
}

func TestLoginResolvesIdentity(t *testing.T) {
	m := newTestManager(&fakeProvider{}, &stubReader{tokens: []string{"1"}})

	identity, err := m.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testAddress, identity.Address)
	assert.Equal(t, "agent", identity.DisplayName)
	assert.Equal(t, StateAuthenticated, m.State())

	assert.Eventually(t, func() bool {
		return len(m.Collections()) == 1
	}, time.Second, 10*time.Millisecond, "login should warm collections in the background")
}

func TestGuardsRejectUnauthenticatedCalls(t *testing.T) {
	m := newTestManager(&fakeProvider{}, &stubReader{})

	_, err := m.SignMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = m.GetBalance(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = m.SendTransaction(context.Background(), testAddress, "0x1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = m.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSignMessageAfterLogin(t *testing.T) {
	m := newTestManager(&fakeProvider{}, &stubReader{})
	_, err := m.Login(context.Background())
	require.NoError(t, err)

	sig, err := m.SignMessage(context.Background(), "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, sig)
}

func TestGetBalanceFormatsEther(t *testing.T) {
	m := newTestManager(&fakeProvider{}, &stubReader{})
	_, err := m.Login(context.Background())
	require.NoError(t, err)

	balance, err := m.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", balance)
}

func TestLogoutIsBestEffort(t *testing.T) {
	provider := &fakeProvider{closeErr: errors.New("teardown failed")}
	m := newTestManager(provider, &stubReader{})
	_, err := m.Login(context.Background())
	require.NoError(t, err)

	m.Logout(context.Background())

	assert.Equal(t, StateUnauthenticated, m.State())
	assert.Nil(t, m.Identity())
	assert.Nil(t, m.Collections())
}

func TestRehydratePicksUpExistingSession(t *testing.T) {
	m := newTestManager(&fakeProvider{}, &stubReader{tokens: []string{"1"}})

	require.NoError(t, m.Rehydrate(context.Background()))

	assert.Equal(t, StateAuthenticated, m.State())
	require.NotNil(t, m.Identity())
	assert.Equal(t, testAddress, m.Identity().Address)
	assert.Len(t, m.Collections(), 1, "rehydrate warms collections synchronously")
}

func TestRehydrateSurfacesInitFailure(t *testing.T) {
	adapter := wallet.NewAdapterWithDialer("", func(ctx context.Context) (wallet.Provider, error) {
		return &fakeProvider{connected: true}, nil
	})
	engine := nft.NewEngine(&stubReader{}, &mapStore{data: map[string]string{}}, nft.EngineConfig{})
	m := NewManager(adapter, engine)

	err := m.Rehydrate(context.Background())
	assert.ErrorIs(t, err, wallet.ErrProviderInit)
	assert.Equal(t, StateUnauthenticated, m.State())
}

func TestStaleRefreshIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	reader := &stubReader{tokens: []string{"1"}, blocked: release}
	m := newTestManager(&fakeProvider{}, reader)

	_, err := m.Login(context.Background())
	require.NoError(t, err)

	// End the session while the refresh is still in flight, then let the
	// refresh complete; its snapshot must not resurrect the collections.
	m.Logout(context.Background())
	close(release)

	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, m.Collections())
	assert.Equal(t, StateUnauthenticated, m.State())
}
