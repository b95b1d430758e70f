package nft

// NFT is one owned token mapped into a displayable record.
type NFT struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TokenID      string `json:"tokenId"`
	CollectionID string `json:"collectionId"`
	Image        string `json:"image,omitempty"`
}

// Collection groups the owned tokens of one contract. The engine models a
// single synthetic collection per address.
type Collection struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ContractAddress string `json:"contractAddress"`
	NFTs            []NFT  `json:"nfts"`
}

// Result is the outcome of one acquisition pass.
type Result struct {
	TokenIDs   []string `json:"tokenIds"`
	SelectedID string   `json:"selectedId"`
}
