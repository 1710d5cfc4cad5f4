package context

import (
	"context"

	"github.com/google/uuid"

	"github.com/jurisai/contractvault/internal/model"
)

type uploaderIDKey struct{}

var _ model.ContextManager = (*Manager)(nil)

// Manager stores the authenticated uploader id in the request context.
// The value is set only by the authentication interceptor, never from
// client metadata.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) WithUploaderID(ctx context.Context, uploaderID uuid.UUID) context.Context {
	return context.WithValue(ctx, uploaderIDKey{}, uploaderID)
}

// UploaderIDFromContext reports false when no non-nil uploader id is present.
func (m *Manager) UploaderIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(uploaderIDKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
