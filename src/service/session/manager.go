package session

import (
	"context"
	"math/big"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/threading"
	"go.uber.org/zap"

	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xzap"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/nft"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/wallet"
)

// State is the session lifecycle phase.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
)

var ErrNotAuthenticated = errors.New("session: not authenticated")

const weiPerEther = 18

// Identity is the resolved profile of the signed-in wallet.
type Identity struct {
	Address     string `json:"address"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// Manager drives the wallet session lifecycle and keeps the signed-in user's
// collections warm. Collection refreshes triggered by a login run in the
// background; an epoch counter ties each refresh to the login that started it
// so results landing after a logout or re-login are discarded.
type Manager struct {
	adapter *wallet.Adapter
	engine  *nft.Engine

	mu          sync.Mutex
	state       State
	identity    *Identity
	collections []nft.Collection
	epoch       uint64
}

func NewManager(adapter *wallet.Adapter, engine *nft.Engine) *Manager {
	return &Manager{
		adapter: adapter,
		engine:  engine,
		state:   StateUnauthenticated,
	}
}

// State returns the current lifecycle phase.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the signed-in identity, or nil.
func (m *Manager) Identity() *Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// Collections returns the most recent collection snapshot for the session.
func (m *Manager) Collections() []nft.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collections
}

// Login runs the connect flow, resolves the identity and kicks off a
// background collection refresh. Any failure leaves the session
// unauthenticated.
func (m *Manager) Login(ctx context.Context) (*Identity, error) {
	m.mu.Lock()
	m.state = StateAuthenticating
	m.mu.Unlock()

	identity, err := m.establish(ctx)
	if err != nil {
		m.mu.Lock()
		m.state = StateUnauthenticated
		m.identity = nil
		m.mu.Unlock()
		return nil, err
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.identity = identity
	m.epoch++
	epoch := m.epoch
	m.mu.Unlock()

	m.refreshAsync(epoch, identity.Address)
	return identity, nil
}

func (m *Manager) establish(ctx context.Context) (*Identity, error) {
	if _, err := m.adapter.Login(ctx); err != nil {
		return nil, err
	}
	return m.resolveIdentity(ctx)
}

func (m *Manager) resolveIdentity(ctx context.Context) (*Identity, error) {
	address, err := m.adapter.GetAddress(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed on resolve account address")
	}

	identity := &Identity{Address: strings.ToLower(address)}
	if info, err := m.adapter.GetUserInfo(ctx); err == nil && info != nil {
		identity.DisplayName = info.Name
		identity.Email = info.Email
		identity.AvatarURL = info.ProfileImage
	}
	return identity, nil
}

// refreshAsync loads the collections off the request path. A stale epoch at
// publish time means the session changed underneath the refresh and the
// snapshot is dropped.
func (m *Manager) refreshAsync(epoch uint64, address string) {
	threading.GoSafe(func() {
		ctx := context.Background()
		collections := m.engine.Collections(ctx, address)

		m.mu.Lock()
		defer m.mu.Unlock()
		if m.epoch != epoch {
			xzap.WithContext(ctx).Info("discarding stale collection refresh",
				zap.String("address", address))
			return
		}
		m.collections = collections
	})
}

// Logout clears the session. Provider teardown is best effort: a failing
// remote teardown never keeps the local session alive.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.adapter.Logout(ctx); err != nil {
		xzap.WithContext(ctx).Warn("wallet logout failed, clearing session anyway",
			zap.Error(err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateUnauthenticated
	m.identity = nil
	m.collections = nil
	m.epoch++
}

// Rehydrate picks up a surviving provider session after a restart and warms
// the collections synchronously. A missing session is not an error.
func (m *Manager) Rehydrate(ctx context.Context) error {
	if err := m.adapter.Initialize(ctx); err != nil {
		return err
	}
	if !m.adapter.IsConnected() {
		return nil
	}

	identity, err := m.resolveIdentity(ctx)
	if err != nil {
		xzap.WithContext(ctx).Warn("failed on rehydrate wallet session", zap.Error(err))
		return nil
	}

	collections := m.engine.Collections(ctx, identity.Address)

	m.mu.Lock()
	m.state = StateAuthenticated
	m.identity = identity
	m.collections = collections
	m.epoch++
	m.mu.Unlock()

	return nil
}

// RefreshAsync kicks a background collection refresh for the signed-in
// address, the same fire-and-forget path a login uses. No-op when signed
// out.
func (m *Manager) RefreshAsync() {
	m.mu.Lock()
	if m.state != StateAuthenticated || m.identity == nil {
		m.mu.Unlock()
		return
	}
	epoch := m.epoch
	address := m.identity.Address
	m.mu.Unlock()

	m.refreshAsync(epoch, address)
}

// Refresh re-runs collection acquisition for the signed-in address and
// returns the new snapshot.
func (m *Manager) Refresh(ctx context.Context) ([]nft.Collection, error) {
	m.mu.Lock()
	if m.state != StateAuthenticated || m.identity == nil {
		m.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	address := m.identity.Address
	epoch := m.epoch
	m.mu.Unlock()

	collections := m.engine.Collections(ctx, address)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch == epoch {
		m.collections = collections
	}
	return collections, nil
}

func (m *Manager) requireAuthenticated() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return ErrNotAuthenticated
	}
	return nil
}

// SignMessage signs message with the session account.
func (m *Manager) SignMessage(ctx context.Context, message string) (string, error) {
	if err := m.requireAuthenticated(); err != nil {
		return "", err
	}
	return m.adapter.SignMessage(ctx, message)
}

// GetBalance returns the session account balance as a decimal ether string.
func (m *Manager) GetBalance(ctx context.Context) (string, error) {
	if err := m.requireAuthenticated(); err != nil {
		return "", err
	}

	raw, err := m.adapter.GetBalance(ctx)
	if err != nil {
		return "", err
	}
	wei, ok := new(big.Int).SetString(strings.TrimPrefix(raw, "0x"), 16)
	if !ok {
		return "", errors.Errorf("session: invalid balance quantity %q", raw)
	}
	return decimal.NewFromBigInt(wei, -weiPerEther).String(), nil
}

// SendTransaction submits a value transfer from the session account.
func (m *Manager) SendTransaction(ctx context.Context, to, value string) (string, error) {
	if err := m.requireAuthenticated(); err != nil {
		return "", err
	}
	return m.adapter.SendTransaction(ctx, to, value)
}

// SelectedToken returns the persisted selected token id for the session
// address, or empty when signed out.
func (m *Manager) SelectedToken() string {
	m.mu.Lock()
	identity := m.identity
	m.mu.Unlock()
	if identity == nil {
		return ""
	}
	return m.engine.SelectedToken(identity.Address)
}
