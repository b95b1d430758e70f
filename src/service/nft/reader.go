package nft

import (
	"context"
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/Pratik-jagdale/AgentDashBackend/src/service/wallet"
)

// ChainReader is the slice of the ERC-721 enumerable surface the engine
// needs: an owned count, an index lookup and an owner lookup.
type ChainReader interface {
	BalanceOf(ctx context.Context, owner string) (int64, error)
	TokenOfOwnerByIndex(ctx context.Context, owner string, index int64) (string, error)
	OwnerOf(ctx context.Context, tokenID string) (string, error)
}

const erc721EnumerableABI = `[
	{"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],"name":"tokenOfOwnerByIndex","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
]`

// erc721Reader issues read calls through the wallet provider handle, so the
// engine sees the chain exactly the way the signed-in session does.
type erc721Reader struct {
	provider  wallet.Provider
	contract  common.Address
	parsedAbi abi.ABI
}

// NewERC721Reader builds a ChainReader for the given collection contract.
func NewERC721Reader(provider wallet.Provider, contractAddr string) (ChainReader, error) {
	parsedAbi, err := abi.JSON(strings.NewReader(erc721EnumerableABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed on parse erc721 abi")
	}
	return &erc721Reader{
		provider:  provider,
		contract:  common.HexToAddress(contractAddr),
		parsedAbi: parsedAbi,
	}, nil
}

func (r *erc721Reader) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := r.parsedAbi.Pack(method, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed on pack %s call", method)
	}

	raw, err := r.provider.Request(ctx, "eth_call", map[string]string{
		"to":   strings.ToLower(r.contract.Hex()),
		"data": hexutil.Encode(data),
	}, "latest")
	if err != nil {
		return nil, errors.Wrapf(err, "failed on eth_call %s", method)
	}

	var resultHex string
	if err := json.Unmarshal(raw, &resultHex); err != nil {
		return nil, errors.Wrapf(err, "failed on decode %s result", method)
	}
	resultBytes, err := hexutil.Decode(resultHex)
	if err != nil {
		return nil, errors.Wrapf(err, "failed on decode %s result bytes", method)
	}

	out, err := r.parsedAbi.Unpack(method, resultBytes)
	if err != nil {
		return nil, errors.Wrapf(err, "failed on unpack %s result", method)
	}
	return out, nil
}

func (r *erc721Reader) BalanceOf(ctx context.Context, owner string) (int64, error) {
	out, err := r.call(ctx, "balanceOf", common.HexToAddress(owner))
	if err != nil {
		return 0, err
	}
	count, ok := out[0].(*big.Int)
	if !ok {
		return 0, errors.New("balanceOf: unexpected result type")
	}
	return count.Int64(), nil
}

func (r *erc721Reader) TokenOfOwnerByIndex(ctx context.Context, owner string, index int64) (string, error) {
	out, err := r.call(ctx, "tokenOfOwnerByIndex", common.HexToAddress(owner), big.NewInt(index))
	if err != nil {
		return "", err
	}
	tokenID, ok := out[0].(*big.Int)
	if !ok {
		return "", errors.New("tokenOfOwnerByIndex: unexpected result type")
	}
	return tokenID.String(), nil
}

func (r *erc721Reader) OwnerOf(ctx context.Context, tokenID string) (string, error) {
	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return "", errors.Errorf("ownerOf: invalid token id %q", tokenID)
	}
	out, err := r.call(ctx, "ownerOf", id)
	if err != nil {
		return "", err
	}
	owner, ok := out[0].(common.Address)
	if !ok {
		return "", errors.New("ownerOf: unexpected result type")
	}
	return strings.ToLower(owner.Hex()), nil
}
