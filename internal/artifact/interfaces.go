//go:generate mockgen -source=interfaces.go -destination=../mock/artifact_store_mock.go -package=mock

package artifact

import "context"

// Store is the artifact store handed to the wallet engine.
type Store interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Store(ctx context.Context, path string, data []byte) error
	Exists(ctx context.Context, path string) (bool, error)
}
