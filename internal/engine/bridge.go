package engine

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/utils"
	"github.com/MKhiriev/freedom-sidecar/models"
	"github.com/go-resty/resty/v2"
)

type initResponse struct {
	FeeTable models.FeeTable `json:"feeTable"`
}

type walletRequest struct {
	EncryptionKey string `json:"encryptionKey"`
	Mnemonic      string `json:"mnemonic,omitempty"`
}

type viewingKeyResponse struct {
	ShareableViewingKey string `json:"shareableViewingKey"`
}

type balanceResponse struct {
	BalanceWei string `json:"balanceWei"`
}

// bridge talks JSON over HTTP to the engine bridge process listening on
// loopback.
type bridge struct {
	client         *resty.Client
	requestTimeout time.Duration
	logger         *logger.Logger
}

// NewBridge returns an [Engine] backed by client, which must carry the
// bridge base URL and must be built on the egress guard. Each call except
// Init is bounded by requestTimeout; Init is bounded by the caller's
// context only.
func NewBridge(client *resty.Client, requestTimeout time.Duration, log *logger.Logger) Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &bridge{client: client, requestTimeout: requestTimeout, logger: log}
}

// Init implements [Engine]. It POSTs the bootstrap parameters to
// /engine/init.
func (b *bridge) Init(ctx context.Context, params models.EngineInitParams) (models.FeeTable, error) {
	var out initResponse

	resp, err := b.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(params).
		SetResult(&out).
		Post("/engine/init")
	if err = b.check("init", resp, err); err != nil {
		return nil, err
	}

	if out.FeeTable == nil {
		out.FeeTable = models.FeeTable{}
	}
	return out.FeeTable, nil
}

// CreateWallet implements [Engine]. POST /wallets.
func (b *bridge) CreateWallet(ctx context.Context, encryptionKey, mnemonic string) (models.WalletInfo, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	var info models.WalletInfo
	resp, err := b.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(walletRequest{EncryptionKey: encryptionKey, Mnemonic: mnemonic}).
		SetResult(&info).
		Post("/wallets")
	if err = b.check("create wallet", resp, err); err != nil {
		return models.WalletInfo{}, err
	}

	if info.ID == "" || info.Address == "" {
		return models.WalletInfo{}, fmt.Errorf("%w: wallet id or address missing", ErrInvalidEngineResponse)
	}
	return info, nil
}

// LoadWallet implements [Engine]. POST /wallets/{id}/load.
func (b *bridge) LoadWallet(ctx context.Context, encryptionKey, walletID string) (models.WalletInfo, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	var info models.WalletInfo
	resp, err := b.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", walletID).
		SetBody(walletRequest{EncryptionKey: encryptionKey}).
		SetResult(&info).
		Post("/wallets/{id}/load")
	if err = b.check("load wallet", resp, err); err != nil {
		return models.WalletInfo{}, err
	}

	if info.Address == "" {
		return models.WalletInfo{}, fmt.Errorf("%w: wallet address missing", ErrInvalidEngineResponse)
	}
	if info.ID == "" {
		info.ID = walletID
	}
	return info, nil
}

// ShareableViewingKey implements [Engine]. GET /wallets/{id}/viewing-key.
func (b *bridge) ShareableViewingKey(ctx context.Context, walletID string) (string, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	var out viewingKeyResponse
	resp, err := b.request(ctx).
		SetPathParam("id", walletID).
		SetResult(&out).
		Get("/wallets/{id}/viewing-key")
	if err = b.check("viewing key", resp, err); err != nil {
		return "", err
	}
	return out.ShareableViewingKey, nil
}

// SpendableBalance implements [Engine]. GET /wallets/{id}/balance.
func (b *bridge) SpendableBalance(ctx context.Context, walletID string) (*big.Int, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	var out balanceResponse
	resp, err := b.request(ctx).
		SetPathParam("id", walletID).
		SetResult(&out).
		Get("/wallets/{id}/balance")
	if err = b.check("balance", resp, err); err != nil {
		return nil, err
	}

	wei, ok := new(big.Int).SetString(out.BalanceWei, 10)
	if !ok || wei.Sign() < 0 {
		return nil, fmt.Errorf("%w: balance %q", ErrInvalidEngineResponse, out.BalanceWei)
	}
	return wei, nil
}

// Shutdown implements [Engine]. POST /engine/shutdown.
func (b *bridge) Shutdown(ctx context.Context) error {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	resp, err := b.request(ctx).
		Post("/engine/shutdown")
	return b.check("shutdown", resp, err)
}

// request starts a call bound to ctx. The API trace id, if any, is
// forwarded so bridge logs can be correlated.
func (b *bridge) request(ctx context.Context) *resty.Request {
	req := b.client.R().SetContext(ctx)
	if traceID, ok := utils.TraceIDFromContext(ctx); ok {
		req.SetHeader("X-Trace-ID", traceID)
	}
	return req
}

func (b *bridge) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.requestTimeout)
}

// check folds the transport error and the HTTP status into one error.
func (b *bridge) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		b.logger.Err(err).Str("op", op).Msg("engine bridge unreachable")
		return fmt.Errorf("engine %s: %w: %w", op, ErrEngineUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		b.logger.Warn().Err(err).Str("op", op).Msg("engine bridge returned an error")
		return fmt.Errorf("engine %s: %w", op, err)
	}
	return nil
}
