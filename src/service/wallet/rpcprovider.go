package wallet

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/Pratik-jagdale/AgentDashBackend/src/common/utils"
)

const (
	defaultTransferGas = 21000
	dialAttempts       = 3
	dialRetryDelay     = time.Second
)

// rpcProvider implements Provider over a go-ethereum RPC client with an
// in-process account key, the server side analogue of the browser SDK's
// private key provider: account listing and message signing are served
// locally, everything else is forwarded to the node.
type rpcProvider struct {
	mu        sync.Mutex
	client    *rpc.Client
	key       *ecdsa.PrivateKey
	address   common.Address
	chainID   int64
	profile   UserInfo
	connected bool
}

// DialProvider connects to the chain endpoint and derives the provider
// account from the hex encoded private key.
func DialProvider(ctx context.Context, endpoint, accountKey string, chainID int64, profile UserInfo) (Provider, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(accountKey, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "failed on parse account key")
	}

	var client *rpc.Client
	if err := utils.Retry("dial chain endpoint", dialAttempts, dialRetryDelay, func() error {
		client, err = rpc.DialContext(ctx, endpoint)
		return err
	}); err != nil {
		return nil, errors.Wrap(err, "failed on dial chain endpoint")
	}

	return &rpcProvider{
		client:    client,
		key:       key,
		address:   crypto.PubkeyToAddress(key.PublicKey),
		chainID:   chainID,
		profile:   profile,
		connected: true,
	}, nil
}

func (p *rpcProvider) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *rpcProvider) GetUserInfo(ctx context.Context) (*UserInfo, error) {
	if !p.Connected() {
		return nil, ErrNotConnected
	}
	info := p.profile
	return &info, nil
}

// Close tears down the node connection. Implements io.Closer so the adapter
// can treat logout as provider teardown.
func (p *rpcProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
	p.connected = false
	return nil
}

func (p *rpcProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	if !p.Connected() {
		return nil, ErrProviderUnavailable
	}

	switch method {
	case "eth_accounts":
		return json.Marshal([]string{strings.ToLower(p.address.Hex())})
	case "personal_sign":
		return p.personalSign(params)
	case "eth_sendTransaction":
		return p.sendTransaction(ctx, params)
	default:
		// Snapshot under the lock; a racing Close may nil the client out.
		p.mu.Lock()
		client := p.client
		p.mu.Unlock()
		if client == nil {
			return nil, ErrProviderUnavailable
		}

		var raw json.RawMessage
		if err := client.CallContext(ctx, &raw, method, params...); err != nil {
			return nil, errors.Wrapf(err, "failed on rpc call %s", method)
		}
		return raw, nil
	}
}

// personalSign signs params[0] with the account key using the EIP-191
// personal message digest. The account param is checked against the local key.
func (p *rpcProvider) personalSign(params []interface{}) (json.RawMessage, error) {
	if len(params) < 2 {
		return nil, errors.New("personal_sign: message and account required")
	}
	message, ok := params[0].(string)
	if !ok {
		return nil, errors.New("personal_sign: message must be a string")
	}
	account, ok := params[1].(string)
	if !ok || !strings.EqualFold(account, p.address.Hex()) {
		return nil, errors.New("personal_sign: unknown account")
	}

	data := []byte(message)
	if decoded, err := hexutil.Decode(message); err == nil {
		data = decoded
	}

	digest := crypto.Keccak256([]byte(fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(data), data)))
	sig, err := crypto.Sign(digest, p.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed on sign message")
	}
	sig[64] += 27

	return json.Marshal(hexutil.Encode(sig))
}

type sendTxArgs struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Value    string `json:"value"`
	GasLimit string `json:"gasLimit"`
}

// sendTransaction signs a legacy transfer locally and submits the raw bytes,
// since the node holds no account for us.
func (p *rpcProvider) sendTransaction(ctx context.Context, params []interface{}) (json.RawMessage, error) {
	p.mu.Lock()
	client := p.client
	p.mu.Unlock()
	if client == nil {
		return nil, ErrProviderUnavailable
	}

	if len(params) < 1 {
		return nil, errors.New("eth_sendTransaction: tx object required")
	}
	rawArgs, err := json.Marshal(params[0])
	if err != nil {
		return nil, errors.Wrap(err, "failed on encode tx args")
	}
	var args sendTxArgs
	if err := json.Unmarshal(rawArgs, &args); err != nil {
		return nil, errors.Wrap(err, "failed on decode tx args")
	}
	if args.From != "" && !strings.EqualFold(args.From, p.address.Hex()) {
		return nil, errors.New("eth_sendTransaction: unknown account")
	}

	value := new(big.Int)
	if args.Value != "" {
		v, err := hexutil.DecodeBig(args.Value)
		if err != nil {
			return nil, errors.Wrap(err, "failed on decode tx value")
		}
		value = v
	}

	gas := uint64(defaultTransferGas)
	if args.GasLimit != "" {
		g, err := hexutil.DecodeUint64(args.GasLimit)
		if err != nil {
			return nil, errors.Wrap(err, "failed on decode gas limit")
		}
		gas = g
	}

	var nonceHex string
	if err := client.CallContext(ctx, &nonceHex, "eth_getTransactionCount", strings.ToLower(p.address.Hex()), "pending"); err != nil {
		return nil, errors.Wrap(err, "failed on get account nonce")
	}
	nonce, err := hexutil.DecodeUint64(nonceHex)
	if err != nil {
		return nil, errors.Wrap(err, "failed on decode account nonce")
	}

	var gasPriceHex string
	if err := client.CallContext(ctx, &gasPriceHex, "eth_gasPrice"); err != nil {
		return nil, errors.Wrap(err, "failed on get gas price")
	}
	gasPrice, err := hexutil.DecodeBig(gasPriceHex)
	if err != nil {
		return nil, errors.Wrap(err, "failed on decode gas price")
	}

	tx := ethereumTypes.NewTransaction(nonce, common.HexToAddress(args.To), value, gas, gasPrice, nil)
	signed, err := ethereumTypes.SignTx(tx, ethereumTypes.NewEIP155Signer(big.NewInt(p.chainID)), p.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed on sign transaction")
	}

	rawTx, err := signed.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed on encode transaction")
	}

	var txHash string
	if err := client.CallContext(ctx, &txHash, "eth_sendRawTransaction", hexutil.Encode(rawTx)); err != nil {
		return nil, errors.Wrap(err, "failed on send raw transaction")
	}

	return json.Marshal(txHash)
}
