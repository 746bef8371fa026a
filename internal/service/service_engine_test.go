// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/freedom-sidecar/internal/artifact"
	"github.com/MKhiriev/freedom-sidecar/internal/lifecycle"
	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/mock"
	"github.com/MKhiriev/freedom-sidecar/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEngineService_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	coord := mock.NewMockCoordinator(ctrl)
	svc := NewEngineService(coord, logger.Nop())

	want := models.EngineStatus{State: "engine_ready", EngineReady: true, FeeTable: models.FeeTable{"shield": 25}}
	coord.EXPECT().Status().Return(want)

	assert.Equal(t, want, svc.Status(context.Background()))
}

func TestEngineService_Artifacts(t *testing.T) {
	ctrl := gomock.NewController(t)
	coord := mock.NewMockCoordinator(ctrl)
	artifacts := mock.NewMockStore(ctrl)
	svc := NewEngineService(coord, logger.Nop())
	ctx := context.Background()

	coord.EXPECT().Artifacts().Return(artifacts, nil).Times(2)
	artifacts.EXPECT().Store(ctx, "v2/zkey", []byte("data")).Return(nil)
	artifacts.EXPECT().Get(ctx, "v2/zkey").Return([]byte("data"), nil)

	require.NoError(t, svc.StoreArtifact(ctx, "v2/zkey", []byte("data")))
	got, err := svc.GetArtifact(ctx, "v2/zkey")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)
}

func TestEngineService_Artifacts_EngineNotReady(t *testing.T) {
	ctrl := gomock.NewController(t)
	coord := mock.NewMockCoordinator(ctrl)
	svc := NewEngineService(coord, logger.Nop())
	ctx := context.Background()

	coord.EXPECT().Artifacts().Return(nil, lifecycle.ErrEngineNotInitialized).Times(2)

	_, err := svc.GetArtifact(ctx, "x")
	require.ErrorIs(t, err, lifecycle.ErrEngineNotInitialized)
	require.ErrorIs(t, svc.StoreArtifact(ctx, "x", nil), lifecycle.ErrEngineNotInitialized)
}

func TestEngineService_Artifacts_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	coord := mock.NewMockCoordinator(ctrl)
	artifacts := mock.NewMockStore(ctrl)
	svc := NewEngineService(coord, logger.Nop())
	ctx := context.Background()

	coord.EXPECT().Artifacts().Return(artifacts, nil)
	artifacts.EXPECT().Get(ctx, "missing").Return(nil, artifact.ErrArtifactNotFound)

	_, err := svc.GetArtifact(ctx, "missing")
	require.ErrorIs(t, err, artifact.ErrArtifactNotFound)
}
