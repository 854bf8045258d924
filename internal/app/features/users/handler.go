// internal/app/features/users/handler.go
package users

import (
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for account management:
// admin-driven user creation, listing, role changes, deactivation,
// deletion and password resets.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Errors *httperr.ErrorLogger
}

// NewHandler constructs a users Handler. Called from the bootstrap
// BuildHandler function.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		Errors: httperr.NewErrorLogger(logger),
	}
}
