package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	bCtx "github.com/passethub/marketplace/base/ctx"
	"github.com/passethub/marketplace/base/log"
	"github.com/passethub/marketplace/domain"
)

var (
	ErrNoSigner = errors.New("no signing key loaded")
)

type ClientCfg struct {
	RpcUrl  string
	ChainId domain.ChainId
	// PrivateKey is a hex-encoded secp256k1 key. Leave empty for a
	// read-only client.
	PrivateKey string
}

// Client performs raw contract reads and signed state-changing calls.
// It holds no auction state, only the connection and signer handles.
type Client interface {
	Call(c bCtx.Ctx, to common.Address, contractAbi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	Transact(c bCtx.Ctx, to common.Address, value *big.Int, contractAbi abi.ABI, method string, params ...interface{}) (*types.Transaction, error)
	WaitMined(c bCtx.Ctx, tx *types.Transaction) (*types.Receipt, error)
	BalanceAt(c bCtx.Ctx, addr common.Address) (*big.Int, error)
	SignerAddress() (common.Address, error)
	HasSigner() bool
}

type clientImpl struct {
	client  *ethclient.Client
	chainId *big.Int
	key     *ecdsa.PrivateKey
	from    common.Address
}

func NewClient(c bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	client, err := ethclient.DialContext(c, cfg.RpcUrl)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"url": cfg.RpcUrl,
		}).Error("failed to dial rpc")
		return nil, err
	}

	im := &clientImpl{
		client:  client,
		chainId: big.NewInt(int64(cfg.ChainId)),
	}

	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(cfg.PrivateKey)
		if err != nil {
			c.WithField("err", err).Error("failed to parse private key")
			return nil, err
		}
		im.key = key
		im.from = crypto.PubkeyToAddress(key.PublicKey)
	}

	return im, nil
}

func (im *clientImpl) HasSigner() bool {
	return im.key != nil
}

func (im *clientImpl) SignerAddress() (common.Address, error) {
	if im.key == nil {
		return common.Address{}, ErrNoSigner
	}
	return im.from, nil
}

func (im *clientImpl) Call(c bCtx.Ctx, to common.Address, contractAbi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	data, err := contractAbi.Pack(method, params...)
	if err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &to,
		Data: data,
	}
	res, err := im.client.CallContract(c, msg, nil)
	if err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := contractAbi.Unpack(method, res)
	if err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (im *clientImpl) Transact(c bCtx.Ctx, to common.Address, value *big.Int, contractAbi abi.ABI, method string, params ...interface{}) (*types.Transaction, error) {
	if im.key == nil {
		return nil, ErrNoSigner
	}

	data, err := contractAbi.Pack(method, params...)
	if err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}

	nonce, err := im.client.PendingNonceAt(c, im.from)
	if err != nil {
		c.WithField("err", err).Error("client.PendingNonceAt failed")
		return nil, err
	}

	gasPrice, err := im.client.SuggestGasPrice(c)
	if err != nil {
		c.WithField("err", err).Error("client.SuggestGasPrice failed")
		return nil, err
	}

	if value == nil {
		value = big.NewInt(0)
	}

	gasLimit, err := im.client.EstimateGas(c, ethereum.CallMsg{
		From:     im.from,
		To:       &to,
		Value:    value,
		GasPrice: gasPrice,
		Data:     data,
	})
	if err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"err":    err,
		}).Error("client.EstimateGas failed")
		return nil, err
	}

	tx := types.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(im.chainId), im.key)
	if err != nil {
		c.WithField("err", err).Error("types.SignTx failed")
		return nil, err
	}

	if err := im.client.SendTransaction(c, signedTx); err != nil {
		c.WithFields(log.Fields{
			"method": method,
			"tx":     signedTx.Hash().Hex(),
			"err":    err,
		}).Error("client.SendTransaction failed")
		return nil, err
	}
	return signedTx, nil
}

// WaitMined blocks until the transaction is mined or ctx expires. Callers
// bound ctx with the configured confirmation timeout.
func (im *clientImpl) WaitMined(c bCtx.Ctx, tx *types.Transaction) (*types.Receipt, error) {
	return bind.WaitMined(c, im.client, tx)
}

func (im *clientImpl) BalanceAt(c bCtx.Ctx, addr common.Address) (*big.Int, error) {
	return im.client.BalanceAt(c, addr, nil)
}
