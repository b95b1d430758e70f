package types

import "github.com/Pratik-jagdale/AgentDashBackend/src/service/session"

// SessionResp describes the current wallet session.
type SessionResp struct {
	State    session.State     `json:"state"`
	Identity *session.Identity `json:"identity,omitempty"`
}

// LoginResp is returned after a successful connect flow.
type LoginResp struct {
	Identity *session.Identity `json:"identity"`
}

// SignMessageReq asks the session account to sign an arbitrary message.
type SignMessageReq struct {
	Message string `json:"message" validate:"required"`
}

// SignMessageResp carries the hex encoded signature.
type SignMessageResp struct {
	Signature string `json:"signature"`
}

// BalanceResp carries the session account balance in ether.
type BalanceResp struct {
	Balance string `json:"balance"`
}
