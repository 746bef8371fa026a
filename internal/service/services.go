package service

import (
	"github.com/MKhiriev/freedom-sidecar/internal/crypto"
	"github.com/MKhiriev/freedom-sidecar/internal/engine"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/session"
	"github.com/MKhiriev/freedom-sidecar/internal/vault"
	"github.com/MKhiriev/freedom-sidecar/models"
)

type Services struct {
	WalletService  WalletService
	EngineService  EngineService
	AppInfoService AppInfoService
}

// Deps are the collaborators the services are built from.
type Deps struct {
	Vault       vault.Vault
	KeyChain    crypto.KeyChainService
	Engine      engine.Engine
	Sessions    *session.Store
	Coordinator Coordinator
	BuildInfo   models.AppBuildInfo
}

func NewServices(deps Deps, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(deps.BuildInfo, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		WalletService:  NewWalletService(deps.Vault, deps.KeyChain, deps.Engine, deps.Sessions, deps.Coordinator, logger),
		EngineService:  NewEngineService(deps.Coordinator, logger),
		AppInfoService: appInfo,
	}, nil
}
