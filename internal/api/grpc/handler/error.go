package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jurisai/contractvault/internal/cryptox"
	"github.com/jurisai/contractvault/internal/model"
)

func handleError(err error) error {
	var (
		analysisErr    *model.AnalysisError
		decryptErr     *cryptox.DecryptionError
		fingerprintErr *cryptox.FingerprintError
	)

	switch {
	case errors.As(err, &analysisErr):
		return status.Error(codes.Unavailable, "analysis failed, please retry")
	case errors.As(err, &decryptErr):
		return status.Error(codes.DataLoss, "contract could not be decrypted")
	case errors.As(err, &fingerprintErr):
		return status.Error(codes.InvalidArgument, "upload is empty or unreadable")
	case errors.Is(err, model.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "record not found")
	case errors.Is(err, model.ErrOwnershipViolation):
		return status.Error(codes.PermissionDenied, "access to this record is denied")
	case errors.Is(err, model.ErrStatusConflict):
		return status.Error(codes.Aborted, "record status changed, please retry")
	case errors.Is(err, model.ErrDuplicateKey):
		return status.Error(codes.AlreadyExists, "an active record already exists for this upload")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request deadline exceeded")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
