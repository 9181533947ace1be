package storage

import "context"

// Uploader writes one object to the store. Writes are assumed atomic per
// object by the backend; no partial-write cleanup happens above it.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
}
