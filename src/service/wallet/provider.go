package wallet

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// Provider is the capability surface of a connected wallet: a JSON-RPC style
// request method plus connection state and the login provider's user profile.
type Provider interface {
	Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)
	Connected() bool
	GetUserInfo(ctx context.Context) (*UserInfo, error)
}

// UserInfo is the profile metadata reported by the login provider.
type UserInfo struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
}

var (
	ErrProviderInit        = errors.New("wallet: provider init failed")
	ErrNotConnected        = errors.New("wallet: user not connected")
	ErrProviderUnavailable = errors.New("wallet: provider not available")
	ErrLogin               = errors.New("wallet: login failed")
	ErrLogout              = errors.New("wallet: logout failed")
)
