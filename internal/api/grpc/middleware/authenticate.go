package middleware

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jurisai/contractvault/internal/logger"
	"github.com/jurisai/contractvault/internal/model"
)

const bearerScheme = "bearer"

var errInvalidToken = errors.New("invalid authorization token")

// Authenticate validates bearer tokens and binds the uploader to the request context.
type Authenticate struct {
	tokens         model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens model.TokenManager, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, contextManager: contextManager, logger: logger}
}

// AuthFunc reads the authorization header, validates the token and returns
// a context carrying the uploader id. It satisfies auth.AuthFunc.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	token, err := auth.AuthFromMD(ctx, bearerScheme)
	if err != nil {
		return nil, err
	}

	uploaderID, err := m.tokens.ParseAccessToken(token)
	if err != nil || uploaderID == uuid.Nil {
		m.logger.Debug("Authenticate: rejected token", "error", errString(err))
		return nil, status.Error(codes.Unauthenticated, errInvalidToken.Error())
	}

	return m.contextManager.WithUploaderID(ctx, uploaderID), nil
}

func errString(err error) string {
	if err == nil {
		return "empty subject"
	}
	return err.Error()
}
