package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Pratik-jagdale/AgentDashBackend/src/service/session"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/svc"
	types "github.com/Pratik-jagdale/AgentDashBackend/src/types/v1"
)

// GetCollections returns the cached collection snapshot for the session
// address without touching the chain.
func GetCollections(ctx context.Context, svcCtx *svc.ServerCtx) (*types.CollectionsResp, error) {
	if svcCtx.Session.State() != session.StateAuthenticated {
		return nil, session.ErrNotAuthenticated
	}
	return &types.CollectionsResp{
		Collections: svcCtx.Session.Collections(),
		SelectedID:  svcCtx.Session.SelectedToken(),
	}, nil
}

// RefreshCollections re-runs collection acquisition and returns the fresh
// snapshot.
func RefreshCollections(ctx context.Context, svcCtx *svc.ServerCtx) (*types.CollectionsResp, error) {
	collections, err := svcCtx.Session.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return &types.CollectionsResp{
		Collections: collections,
		SelectedID:  svcCtx.Session.SelectedToken(),
	}, nil
}

// Mint submits a mint transfer to the configured minter contract from the
// session account.
func Mint(ctx context.Context, svcCtx *svc.ServerCtx, req types.MintReq) (*types.MintResp, error) {
	minter := svcCtx.C.Contract.MinterAddress
	if minter == "" {
		return nil, errors.New("minter address is not configured")
	}

	txHash, err := svcCtx.Session.SendTransaction(ctx, minter, req.Value)
	if err != nil {
		return nil, errors.Wrap(err, "failed on submit mint transaction")
	}

	// Re-run acquisition so the minted token shows up without a manual
	// refresh call.
	svcCtx.Session.RefreshAsync()

	return &types.MintResp{TxHash: txHash}, nil
}
