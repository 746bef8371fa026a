package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/MKhiriev/freedom-sidecar/internal/logger"
	"github.com/MKhiriev/freedom-sidecar/internal/utils"
)

const (
	fileSuffix = ".zst"
	filePerm   = 0o600
	dirPerm    = 0o700

	// maxArtifactSize caps the decompressed size of a single artifact.
	maxArtifactSize = 512 << 20
)

type fileStore struct {
	root    string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	logger  *logger.Logger
}

// NewFileStore creates root if needed and returns a [Store] over it.
func NewFileStore(root string, log *logger.Logger) (Store, error) {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithZeroFrames(true))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxArtifactSize))
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}

	log.Debug().Str("root", root).Msg("artifact store ready")

	return &fileStore{
		root:    root,
		encoder: encoder,
		decoder: decoder,
		logger:  log,
	}, nil
}

// Get returns the decompressed artifact stored under path.
func (s *fileStore) Get(ctx context.Context, path string) ([]byte, error) {
	file, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	compressed, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	data, err := s.decoder.DecodeAll(compressed, nil)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("path", path).Msg("artifact failed to decompress")
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptedArtifact, path, err)
	}
	return data, nil
}

// Store compresses data and atomically replaces the artifact under path.
func (s *fileStore) Store(ctx context.Context, path string, data []byte) error {
	file, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(file), dirPerm); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if err = utils.WriteFileAtomic(file, s.encoder.EncodeAll(data, nil), filePerm); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("path", path).Int("size", len(data)).Msg("artifact stored")
	return nil
}

// Exists reports whether an artifact is stored under path.
func (s *fileStore) Exists(ctx context.Context, path string) (bool, error) {
	file, err := s.resolve(path)
	if err != nil {
		return false, err
	}
	if err = ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat artifact: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// resolve maps an artifact name to its file under root. Names that are
// absolute or escape root are rejected.
func (s *fileStore) resolve(path string) (string, error) {
	if path == "" || strings.ContainsRune(path, '\\') || strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidArtifactPath, path)
	}
	local := filepath.Clean(filepath.FromSlash(path))
	if !filepath.IsLocal(local) || local == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidArtifactPath, path)
	}
	return filepath.Join(s.root, local) + fileSuffix, nil
}
