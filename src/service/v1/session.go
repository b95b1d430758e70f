package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Pratik-jagdale/AgentDashBackend/src/service/svc"
	types "github.com/Pratik-jagdale/AgentDashBackend/src/types/v1"
)

// Login runs the wallet connect flow and returns the resolved identity.
func Login(ctx context.Context, svcCtx *svc.ServerCtx) (*types.LoginResp, error) {
	identity, err := svcCtx.Session.Login(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed on wallet login")
	}
	return &types.LoginResp{Identity: identity}, nil
}

// Logout tears down the wallet session.
func Logout(ctx context.Context, svcCtx *svc.ServerCtx) {
	svcCtx.Session.Logout(ctx)
}

// GetSession reports the current session state and identity.
func GetSession(ctx context.Context, svcCtx *svc.ServerCtx) *types.SessionResp {
	return &types.SessionResp{
		State:    svcCtx.Session.State(),
		Identity: svcCtx.Session.Identity(),
	}
}

// SignMessage signs an arbitrary message with the session account.
func SignMessage(ctx context.Context, svcCtx *svc.ServerCtx, req types.SignMessageReq) (*types.SignMessageResp, error) {
	signature, err := svcCtx.Session.SignMessage(ctx, req.Message)
	if err != nil {
		return nil, err
	}
	return &types.SignMessageResp{Signature: signature}, nil
}

// GetBalance returns the session account balance in ether.
func GetBalance(ctx context.Context, svcCtx *svc.ServerCtx) (*types.BalanceResp, error) {
	balance, err := svcCtx.Session.GetBalance(ctx)
	if err != nil {
		return nil, err
	}
	return &types.BalanceResp{Balance: balance}, nil
}
