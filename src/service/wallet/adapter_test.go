package wallet

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	connected bool
	closeErr  error
	requests  []string
}

func (p *stubProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	p.requests = append(p.requests, method)
	switch method {
	case "eth_accounts":
		return json.Marshal([]string{"0xfeed000000000000000000000000000000000001"})
	case "personal_sign":
		return json.Marshal("0xsigned")
	case "eth_getBalance":
		return json.Marshal("0x10")
	case "eth_sendTransaction":
		return json.Marshal("0xtxhash")
	}
	return nil, errors.Errorf("unexpected method %s", method)
}

func (p *stubProvider) Connected() bool { return p.connected }

func (p *stubProvider) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	return &UserInfo{Name: "stub"}, nil
}

func (p *stubProvider) Close() error { return p.closeErr }

func dialerFor(p *stubProvider) Dialer {
	return func(ctx context.Context) (Provider, error) {
		p.connected = true
		return p, nil
	}
}

func TestInitializeRequiresClientID(t *testing.T) {
	a := NewAdapterWithDialer("", dialerFor(&stubProvider{}))
	err := a.Initialize(context.Background())
	assert.ErrorIs(t, err, ErrProviderInit)
}

func TestLoginWrapsDialFailure(t *testing.T) {
	a := NewAdapterWithDialer("client", func(ctx context.Context) (Provider, error) {
		return nil, errors.New("user rejected")
	})
	_, err := a.Login(context.Background())
	assert.ErrorIs(t, err, ErrLogin)
	assert.False(t, a.IsConnected())
}

func TestAccountOperationsRequireProvider(t *testing.T) {
	a := &Adapter{clientID: "client"}

	_, err := a.GetAddress(context.Background())
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = a.SignMessage(context.Background(), "msg")
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = a.GetBalance(context.Background())
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestAccountOperationsUseFirstAccount(t *testing.T) {
	p := &stubProvider{}
	a := NewAdapterWithDialer("client", dialerFor(p))

	_, err := a.Login(context.Background())
	require.NoError(t, err)

	addr, err := a.GetAddress(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xfeed000000000000000000000000000000000001", addr)

	sig, err := a.SignMessage(context.Background(), "msg")
	require.NoError(t, err)
	assert.Equal(t, "0xsigned", sig)

	balance, err := a.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0x10", balance)

	txHash, err := a.SendTransaction(context.Background(), "0xto", "0x1")
	require.NoError(t, err)
	assert.Equal(t, "0xtxhash", txHash)
}

func TestLoginReusesConnectedProvider(t *testing.T) {
	p := &stubProvider{}
	dials := 0
	a := NewAdapterWithDialer("client", func(ctx context.Context) (Provider, error) {
		dials++
		p.connected = true
		return p, nil
	})

	_, err := a.Login(context.Background())
	require.NoError(t, err)
	_, err = a.Login(context.Background())
	require.NoError(t, err)

	// One dial for the rehydration attempt during Initialize, none after.
	assert.Equal(t, 1, dials)
}

func TestLogoutWithoutProviderIsNoop(t *testing.T) {
	a := &Adapter{clientID: "client"}
	assert.NoError(t, a.Logout(context.Background()))
}

func TestLogoutClearsProviderEvenOnTeardownFailure(t *testing.T) {
	p := &stubProvider{closeErr: errors.New("teardown failed")}
	a := NewAdapterWithDialer("client", dialerFor(p))
	_, err := a.Login(context.Background())
	require.NoError(t, err)

	err = a.Logout(context.Background())
	assert.ErrorIs(t, err, ErrLogout)
	assert.False(t, a.IsConnected())

	_, err = a.GetAddress(context.Background())
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
