// internal/app/features/login/handler.go
package login

import (
	"github.com/dalemusser/bughub/internal/app/system/auth"
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"github.com/dalemusser/bughub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the auth feature: the
// login endpoint and first-admin registration.
type Handler struct {
	DB     *mongo.Database
	Tokens *auth.Manager
	Limits *ratelimit.LoginLimiter
	Log    *zap.Logger
	Errors *httperr.ErrorLogger
}

// NewHandler constructs the auth Handler. Called from bootstrap
// BuildHandler once the token manager and DB are ready.
func NewHandler(db *mongo.Database, tokens *auth.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Tokens: tokens,
		Limits: ratelimit.NewLoginLimiter(),
		Log:    logger,
		Errors: httperr.NewErrorLogger(logger),
	}
}
