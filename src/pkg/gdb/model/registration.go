package model

// Registration actions recorded in the audit trail.
const (
	RegistrationActionRegister = "register"
	RegistrationActionUpdate   = "update"
	RegistrationActionDelete   = "delete"
)

// Registration result states.
const (
	RegistrationResultOK     = "ok"
	RegistrationResultFailed = "failed"
)

// ServerRegistration is one audited Discord server registration request.
type ServerRegistration struct {
	Id           int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	RequestID    string `json:"request_id" gorm:"column:request_id;type:varchar(64);index;comment:request trace id"`
	Action       string `json:"action" gorm:"column:action;type:varchar(16);not null;comment:register/update/delete"`
	ServerID     string `json:"server_id" gorm:"column:server_id;type:varchar(64);index;not null;comment:discord server id"`
	UserAddress  string `json:"user_address" gorm:"column:user_address;type:varchar(64);index;not null;comment:wallet address"`
	CollectionID string `json:"collection_id" gorm:"column:collection_id;type:varchar(64);comment:collection contract address"`
	NftID        string `json:"nft_id" gorm:"column:nft_id;type:varchar(128);comment:bound token id"`
	AgentAddress string `json:"agent_address" gorm:"column:agent_address;type:varchar(64);comment:agent wallet address"`
	AgentID      string `json:"agent_id" gorm:"column:agent_id;type:varchar(64);comment:agent id"`
	Result       string `json:"result" gorm:"column:result;type:varchar(16);not null;comment:ok/failed"`
	Detail       string `json:"detail" gorm:"column:detail;type:varchar(512);comment:failure detail or invite link"`
	CreateTime   int64  `json:"create_time" gorm:"column:create_time;type:bigint;not null;autoCreateTime:milli"`
	UpdateTime   int64  `json:"update_time" gorm:"column:update_time;type:bigint;not null;autoUpdateTime:milli"`
}

func ServerRegistrationTableName() string {
	return "server_registrations"
}
