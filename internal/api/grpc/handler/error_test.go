package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jurisai/contractvault/internal/cryptox"
	"github.com/jurisai/contractvault/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"analysis", &model.AnalysisError{Err: context.DeadlineExceeded}, codes.Unavailable},
		{"decryption", fmt.Errorf("open: %w", &cryptox.DecryptionError{Op: "open", Err: errors.New("bad tag")}), codes.DataLoss},
		{"fingerprint", &cryptox.FingerprintError{Op: "hash", Err: errors.New("empty")}, codes.InvalidArgument},
		{"invalid argument", fmt.Errorf("%w: uploader id is required", model.ErrInvalidArgument), codes.InvalidArgument},
		{"not found", fmt.Errorf("get: %w", model.ErrNotFound), codes.NotFound},
		{"ownership", model.ErrOwnershipViolation, codes.PermissionDenied},
		{"status conflict", model.ErrStatusConflict, codes.Aborted},
		{"duplicate", model.ErrDuplicateKey, codes.AlreadyExists},
		{"canceled", context.Canceled, codes.Canceled},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"unknown", errors.New("boom"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := handleError(tt.err)
			assert.Equal(t, tt.code, status.Code(got))
		})
	}
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	t.Parallel()

	err := handleError(errors.New("pq: password authentication failed"))
	st, ok := status.FromError(err)
	assert.True(t, ok)
	assert.Equal(t, "internal server error", st.Message())
}
