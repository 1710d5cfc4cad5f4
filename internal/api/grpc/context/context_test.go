package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestManager_RoundTrip(t *testing.T) {
	t.Parallel()
	m := NewManager()
	id := uuid.New()

	got, ok := m.UploaderIDFromContext(m.WithUploaderID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestManager_Missing(t *testing.T) {
	t.Parallel()
	m := NewManager()

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{name: "empty", ctx: context.Background()},
		{name: "nil id", ctx: m.WithUploaderID(context.Background(), uuid.Nil)},
		{name: "client metadata is ignored", ctx: metadata.NewIncomingContext(context.Background(), metadata.Pairs("user_id", uuid.NewString()))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, ok := m.UploaderIDFromContext(tt.ctx)
			assert.False(t, ok)
			assert.Equal(t, uuid.Nil, id)
		})
	}
}
