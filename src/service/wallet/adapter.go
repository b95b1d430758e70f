package wallet

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// Config carries everything the adapter needs to establish a provider.
type Config struct {
	ClientID   string
	Endpoint   string
	ChainID    int64
	AccountKey string
	Profile    UserInfo
}

// Dialer opens the provider connect flow and yields a live provider handle.
type Dialer func(ctx context.Context) (Provider, error)

// Adapter wraps the wallet login provider SDK: it owns the provider handle
// and exposes the account operations the session layer builds on. All
// account operations resolve the current account as the first entry of the
// provider's account list.
type Adapter struct {
	mu          sync.Mutex
	clientID    string
	dial        Dialer
	initialized bool
	provider    Provider
}

// NewAdapter builds an adapter that dials the configured chain endpoint with
// the configured custodial account key.
func NewAdapter(cfg Config) *Adapter {
	return &Adapter{
		clientID: cfg.ClientID,
		dial: func(ctx context.Context) (Provider, error) {
			return DialProvider(ctx, cfg.Endpoint, cfg.AccountKey, cfg.ChainID, cfg.Profile)
		},
	}
}

// NewAdapterWithDialer is the injection point used by tests and alternative
// provider implementations.
func NewAdapterWithDialer(clientID string, dial Dialer) *Adapter {
	return &Adapter{clientID: clientID, dial: dial}
}

// Initialize establishes the login SDK. Idempotent.
func (a *Adapter) Initialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return nil
	}
	if a.clientID == "" {
		return errors.Wrap(ErrProviderInit, "client id is not set")
	}
	a.initialized = true

	// Pick up an existing session so a restart does not force a re-login.
	if a.provider == nil {
		if p, err := a.dial(ctx); err == nil {
			a.provider = p
		}
	}
	return nil
}

// IsConnected reports current connectedness without side effects.
func (a *Adapter) IsConnected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.provider != nil && a.provider.Connected()
}

// Login opens the provider connect flow and returns the provider handle.
func (a *Adapter) Login(ctx context.Context) (Provider, error) {
	if err := a.Initialize(ctx); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.provider != nil && a.provider.Connected() {
		return a.provider, nil
	}

	p, err := a.dial(ctx)
	if err != nil {
		return nil, errors.Wrapf(ErrLogin, "connect flow failed: %v", err)
	}
	a.provider = p
	return p, nil
}

// Logout tears down the connected session. Local provider state is cleared
// before the teardown call, so callers can treat logout as best effort.
func (a *Adapter) Logout(ctx context.Context) error {
	a.mu.Lock()
	p := a.provider
	a.provider = nil
	a.mu.Unlock()

	if p == nil {
		return nil
	}
	if closer, ok := p.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return errors.Wrapf(ErrLogout, "provider teardown failed: %v", err)
		}
	}
	return nil
}

// GetUserInfo returns the login provider's profile for the connected user.
func (a *Adapter) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	a.mu.Lock()
	p := a.provider
	a.mu.Unlock()
	if p == nil || !p.Connected() {
		return nil, ErrNotConnected
	}
	return p.GetUserInfo(ctx)
}

// Request forwards an RPC request to the live provider, letting the adapter
// itself act as a Provider that survives re-logins.
func (a *Adapter) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	p, err := a.currentProvider()
	if err != nil {
		return nil, err
	}
	return p.Request(ctx, method, params...)
}

// Connected reports current connectedness.
func (a *Adapter) Connected() bool {
	return a.IsConnected()
}

func (a *Adapter) currentProvider() (Provider, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.provider == nil {
		return nil, ErrProviderUnavailable
	}
	return a.provider, nil
}

func (a *Adapter) accounts(ctx context.Context, p Provider) ([]string, error) {
	raw, err := p.Request(ctx, "eth_accounts")
	if err != nil {
		return nil, err
	}
	var accounts []string
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, errors.Wrap(err, "failed on decode accounts")
	}
	if len(accounts) == 0 {
		return nil, errors.New("wallet: provider returned no accounts")
	}
	return accounts, nil
}

// GetAddress returns the current account address.
func (a *Adapter) GetAddress(ctx context.Context) (string, error) {
	p, err := a.currentProvider()
	if err != nil {
		return "", err
	}
	accounts, err := a.accounts(ctx, p)
	if err != nil {
		return "", err
	}
	return accounts[0], nil
}

// SignMessage signs message with the current account via personal_sign.
func (a *Adapter) SignMessage(ctx context.Context, message string) (string, error) {
	p, err := a.currentProvider()
	if err != nil {
		return "", err
	}
	accounts, err := a.accounts(ctx, p)
	if err != nil {
		return "", err
	}

	raw, err := p.Request(ctx, "personal_sign", message, accounts[0])
	if err != nil {
		return "", err
	}
	var signature string
	if err := json.Unmarshal(raw, &signature); err != nil {
		return "", errors.Wrap(err, "failed on decode signature")
	}
	return signature, nil
}

// GetBalance returns the current account balance as a hex wei quantity.
func (a *Adapter) GetBalance(ctx context.Context) (string, error) {
	p, err := a.currentProvider()
	if err != nil {
		return "", err
	}
	accounts, err := a.accounts(ctx, p)
	if err != nil {
		return "", err
	}

	raw, err := p.Request(ctx, "eth_getBalance", accounts[0], "latest")
	if err != nil {
		return "", err
	}
	var balance string
	if err := json.Unmarshal(raw, &balance); err != nil {
		return "", errors.Wrap(err, "failed on decode balance")
	}
	return balance, nil
}

// SendTransaction submits a value transfer from the current account.
func (a *Adapter) SendTransaction(ctx context.Context, to, value string) (string, error) {
	p, err := a.currentProvider()
	if err != nil {
		return "", err
	}
	accounts, err := a.accounts(ctx, p)
	if err != nil {
		return "", err
	}

	raw, err := p.Request(ctx, "eth_sendTransaction", sendTxArgs{
		From:     accounts[0],
		To:       to,
		Value:    value,
		GasLimit: "0x5208",
	})
	if err != nil {
		return "", err
	}
	var txHash string
	if err := json.Unmarshal(raw, &txHash); err != nil {
		return "", errors.Wrap(err, "failed on decode tx hash")
	}
	return txHash, nil
}
