package kvstore

import "context"

// Store is the key-value persistence medium. Values are opaque JSON blobs
// and the last writer for a given key wins; there is no transactional
// isolation across keys.
type Store interface {
	// Get returns the value for key. The boolean reports whether the key
	// exists; a missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
