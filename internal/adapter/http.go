package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/models"
	"github.com/go-resty/resty/v2"
)

type httpSidecarAdapter struct {
	client *resty.Client
	logger *logger.Logger
}

// NewHTTPSidecarAdapter wraps client, which must already carry the sidecar
// base URL (normally a client built by the egress guard). The base URL is
// validated here.
func NewHTTPSidecarAdapter(client *resty.Client, logger *logger.Logger) (SidecarAdapter, error) {
	baseURL, err := normalizeBaseURL(client.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid sidecar api address: %w", err)
	}
	client.SetBaseURL(baseURL)

	return &httpSidecarAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpSidecarAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
}

// do runs req against path and decodes a 2xx JSON body into result when it
// is not nil.
func (h *httpSidecarAdapter) do(req *resty.Request, method, path string, result any) error {
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	h.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("sidecar api call")
	return mapHTTPError(resp)
}

func (h *httpSidecarAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var health models.HealthResponse
	err := h.do(h.request(ctx), resty.MethodGet, "/health", &health)
	return health, err
}

func (h *httpSidecarAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/version")
	if err != nil {
		return "", fmt.Errorf("GET /version: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

func (h *httpSidecarAdapter) EngineStatus(ctx context.Context) (models.EngineStatus, error) {
	var status models.EngineStatus
	err := h.do(h.request(ctx), resty.MethodGet, "/engine/status", &status)
	return status, err
}

func (h *httpSidecarAdapter) WalletExists(ctx context.Context) (bool, error) {
	var resp models.ExistsResponse
	err := h.do(h.request(ctx), resty.MethodGet, "/wallet/exists", &resp)
	return resp.Exists, err
}

func (h *httpSidecarAdapter) CreateWallet(ctx context.Context, password string) (string, error) {
	var resp models.AddressResponse
	req := h.request(ctx).SetBody(models.PasswordRequest{Password: password})
	err := h.do(req, resty.MethodPost, "/wallet/create", &resp)
	return resp.Address, err
}

func (h *httpSidecarAdapter) UnlockWallet(ctx context.Context, password string) (string, error) {
	var resp models.AddressResponse
	req := h.request(ctx).SetBody(models.PasswordRequest{Password: password})
	err := h.do(req, resty.MethodPost, "/wallet/unlock", &resp)
	return resp.Address, err
}

func (h *httpSidecarAdapter) LockWallet(ctx context.Context) error {
	return h.do(h.request(ctx), resty.MethodPost, "/wallet/lock", nil)
}

func (h *httpSidecarAdapter) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	req := h.request(ctx).SetBody(models.ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	return h.do(req, resty.MethodPost, "/wallet/password", nil)
}

func (h *httpSidecarAdapter) Address(ctx context.Context) (string, error) {
	var resp models.AddressResponse
	err := h.do(h.request(ctx), resty.MethodGet, "/wallet/address", &resp)
	return resp.Address, err
}

func (h *httpSidecarAdapter) Balance(ctx context.Context) (models.BalanceResponse, error) {
	var resp models.BalanceResponse
	err := h.do(h.request(ctx), resty.MethodGet, "/wallet/balance", &resp)
	return resp, err
}
