package http

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/MKhiriev/freedom-sidecar/internal/artifact"
	"github.com/MKhiriev/freedom-sidecar/internal/lifecycle"
	"github.com/MKhiriev/freedom-sidecar/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// status
// ─────────────────────────────────────────────

func TestEngineStatus(t *testing.T) {
	d := newTestDeps(t)
	d.engine.EXPECT().Status(gomock.Any()).Return(models.EngineStatus{
		State:       "wallet_ready",
		EngineReady: true,
		WalletReady: true,
		FeeTable:    models.FeeTable{"shield": 25, "unshield": 25},
	})

	rec := d.serve(http.MethodGet, "/engine/status", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"state":"wallet_ready","engineReady":true,"walletReady":true,"feeTable":{"shield":25,"unshield":25}}`,
		rec.Body.String())
}

// ─────────────────────────────────────────────
// artifacts
// ─────────────────────────────────────────────

func TestGetArtifact(t *testing.T) {
	d := newTestDeps(t)
	payload := []byte{0x00, 0x61, 0x73, 0x6d}
	d.engine.EXPECT().GetArtifact(gomock.Any(), "v2/01x02/wasm").Return(payload, nil)

	rec := d.serve(http.MethodGet, "/engine/artifacts/v2/01x02/wasm", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, payload, rec.Body.Bytes())
}

func TestGetArtifact_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", artifact.ErrArtifactNotFound, http.StatusNotFound},
		{"invalid path", artifact.ErrInvalidArtifactPath, http.StatusBadRequest},
		{"engine not started", lifecycle.ErrEngineNotInitialized, http.StatusServiceUnavailable},
		{"corrupted", artifact.ErrCorruptedArtifact, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			d.engine.EXPECT().GetArtifact(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec := d.serve(http.MethodGet, "/engine/artifacts/zkey", nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestPutArtifact(t *testing.T) {
	d := newTestDeps(t)
	payload := bytes.Repeat([]byte{0xAB}, 1024)
	d.engine.EXPECT().StoreArtifact(gomock.Any(), "v2/01x02/zkey", payload).Return(nil)

	rec := d.serve(http.MethodPut, "/engine/artifacts/v2/01x02/zkey", bytes.NewReader(payload))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestPutArtifact_InvalidPath(t *testing.T) {
	d := newTestDeps(t)
	d.engine.EXPECT().StoreArtifact(gomock.Any(), gomock.Any(), gomock.Any()).Return(artifact.ErrInvalidArtifactPath)

	rec := d.serve(http.MethodPut, "/engine/artifacts/a%5Cb", bytes.NewReader([]byte("x")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid artifact path", decodeError(t, rec))
}
