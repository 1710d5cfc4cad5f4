package model

import (
	"context"
	"io"
)

// Storage stages uploaded files while they are fingerprinted and analyzed.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
}
