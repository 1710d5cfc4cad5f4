package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager carries the authenticated uploader through a request context.
type ContextManager interface {
	WithUploaderID(ctx context.Context, uploaderID uuid.UUID) context.Context
	UploaderIDFromContext(ctx context.Context) (uuid.UUID, bool)
}
