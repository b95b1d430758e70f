package types

import "github.com/Pratik-jagdale/AgentDashBackend/src/service/nft"

// CollectionsResp lists the owned collections of the session address plus
// the currently selected token.
type CollectionsResp struct {
	Collections []nft.Collection `json:"collections"`
	SelectedID  string           `json:"selectedId,omitempty"`
}

// MintReq submits a mint transfer to the collection minter.
type MintReq struct {
	Value string `json:"value" validate:"required"` // hex wei quantity
}

// MintResp carries the submitted transaction hash.
type MintResp struct {
	TxHash string `json:"txHash"`
}
