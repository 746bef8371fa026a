package service

import (
	"context"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/models"
)

type engineService struct {
	coordinator Coordinator
	logger      *logger.Logger
}

func NewEngineService(coordinator Coordinator, logger *logger.Logger) EngineService {
	return &engineService{
		coordinator: coordinator,
		logger:      logger,
	}
}

func (s *engineService) Status(ctx context.Context) models.EngineStatus {
	return s.coordinator.Status()
}

func (s *engineService) GetArtifact(ctx context.Context, path string) ([]byte, error) {
	artifacts, err := s.coordinator.Artifacts()
	if err != nil {
		return nil, err
	}
	return artifacts.Get(ctx, path)
}

func (s *engineService) StoreArtifact(ctx context.Context, path string, data []byte) error {
	artifacts, err := s.coordinator.Artifacts()
	if err != nil {
		return err
	}
	return artifacts.Store(ctx, path, data)
}
