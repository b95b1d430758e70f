package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Pratik-jagdale/AgentDashBackend/src/common/utils"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/gdb/model"
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/xzap"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/registrar"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/session"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/svc"
	types "github.com/Pratik-jagdale/AgentDashBackend/src/types/v1"
)

// signedRegistration builds the canonical registration message, signs it
// with the session account and assembles the payload the bot verifies.
func signedRegistration(ctx context.Context, svcCtx *svc.ServerCtx, req types.RegisterServerReq) (*registrar.Registration, error) {
	identity := svcCtx.Session.Identity()
	if identity == nil {
		return nil, session.ErrNotAuthenticated
	}

	message := registrar.RegistrationMessage(req.ServerID, req.CollectionID, req.NftID)
	signature, err := svcCtx.Session.SignMessage(ctx, message)
	if err != nil {
		return nil, errors.Wrap(err, "failed on sign registration message")
	}

	return &registrar.Registration{
		ServerID: req.ServerID,
		// The bot displays the address; send the EIP-55 checksum form.
		UserAddress:  utils.ToValidateAddress(identity.Address),
		Signature:    signature,
		Message:      message,
		CollectionID: req.CollectionID,
		NftID:        req.NftID,
		AgentAddress: req.AgentAddress,
		AgentID:      req.AgentID,
	}, nil
}

// audit records a registration attempt; audit failures are logged, never
// surfaced to the caller.
func audit(ctx context.Context, svcCtx *svc.ServerCtx, action string, reg *registrar.Registration, result, detail string) {
	rec := &model.ServerRegistration{
		RequestID:    uuid.NewString(),
		Action:       action,
		ServerID:     reg.ServerID,
		UserAddress:  reg.UserAddress,
		CollectionID: reg.CollectionID,
		NftID:        reg.NftID,
		AgentAddress: reg.AgentAddress,
		AgentID:      reg.AgentID,
		Result:       result,
		Detail:       detail,
	}
	if err := svcCtx.Dao.SaveRegistration(ctx, rec); err != nil {
		xzap.WithContext(ctx).Error("failed on audit server registration",
			zap.String("server_id", reg.ServerID), zap.Error(err))
	}
}

// RegisterServer binds a Discord server to one of the session's tokens and
// returns the bot invite link.
func RegisterServer(ctx context.Context, svcCtx *svc.ServerCtx, req types.RegisterServerReq) (*types.RegisterServerResp, error) {
	reg, err := signedRegistration(ctx, svcCtx, req)
	if err != nil {
		return nil, err
	}

	result, err := svcCtx.Registrar.Register(ctx, reg)
	if err != nil {
		audit(ctx, svcCtx, model.RegistrationActionRegister, reg, model.RegistrationResultFailed, err.Error())
		return nil, err
	}

	audit(ctx, svcCtx, model.RegistrationActionRegister, reg, model.RegistrationResultOK, result.InviteLink)
	return &types.RegisterServerResp{InviteLink: result.InviteLink}, nil
}

// UpdateServer rebinds an already registered server to a different token.
func UpdateServer(ctx context.Context, svcCtx *svc.ServerCtx, req types.RegisterServerReq) error {
	reg, err := signedRegistration(ctx, svcCtx, req)
	if err != nil {
		return err
	}

	if err := svcCtx.Registrar.Update(ctx, req.ServerID, reg); err != nil {
		audit(ctx, svcCtx, model.RegistrationActionUpdate, reg, model.RegistrationResultFailed, err.Error())
		return err
	}

	audit(ctx, svcCtx, model.RegistrationActionUpdate, reg, model.RegistrationResultOK, "")
	return nil
}

// DeleteServer removes a server registration.
func DeleteServer(ctx context.Context, svcCtx *svc.ServerCtx, req types.RegisterServerReq) error {
	reg, err := signedRegistration(ctx, svcCtx, req)
	if err != nil {
		return err
	}

	if err := svcCtx.Registrar.Delete(ctx, req.ServerID, reg); err != nil {
		audit(ctx, svcCtx, model.RegistrationActionDelete, reg, model.RegistrationResultFailed, err.Error())
		return err
	}

	audit(ctx, svcCtx, model.RegistrationActionDelete, reg, model.RegistrationResultOK, "")
	return nil
}

// ListServers returns the caller's registered servers as the bot reports
// them.
func ListServers(ctx context.Context, svcCtx *svc.ServerCtx) (*types.ListServersResp, error) {
	identity := svcCtx.Session.Identity()
	if identity == nil {
		return nil, session.ErrNotAuthenticated
	}

	servers, err := svcCtx.Registrar.List(ctx, utils.ToValidateAddress(identity.Address))
	if err != nil {
		return nil, err
	}
	return &types.ListServersResp{Servers: servers}, nil
}

// ListRegistrationAudit returns the caller's registration audit trail.
func ListRegistrationAudit(ctx context.Context, svcCtx *svc.ServerCtx) (*types.RegistrationAuditResp, error) {
	identity := svcCtx.Session.Identity()
	if identity == nil {
		return nil, session.ErrNotAuthenticated
	}

	records, err := svcCtx.Dao.ListRegistrations(ctx, utils.ToValidateAddress(identity.Address))
	if err != nil {
		return nil, err
	}
	return &types.RegistrationAuditResp{Records: records}, nil
}
