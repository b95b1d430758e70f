package types

import (
	"github.com/Pratik-jagdale/AgentDashBackend/src/pkg/gdb/model"
	"github.com/Pratik-jagdale/AgentDashBackend/src/service/registrar"
)

// RegisterServerReq binds a Discord server to one of the session's
// collection tokens. The backend signs the canonical registration message on
// the caller's behalf.
type RegisterServerReq struct {
	ServerID     string `json:"serverId" validate:"required"`
	CollectionID string `json:"collectionId" validate:"required"`
	NftID        string `json:"nftId" validate:"required"`
	AgentAddress string `json:"agentAddress,omitempty" validate:"omitempty,eth_addr_hex"`
	AgentID      string `json:"agentID,omitempty"`
}

// RegisterServerResp returns the bot invite link for the registered server.
type RegisterServerResp struct {
	InviteLink string `json:"inviteLink"`
}

// ListServersResp lists the caller's registered servers.
type ListServersResp struct {
	Servers []registrar.Server `json:"servers"`
}

// RegistrationAuditResp lists the caller's registration attempts, newest
// first.
type RegistrationAuditResp struct {
	Records []model.ServerRegistration `json:"records"`
}
