// internal/app/features/bugs/handler.go
package bugs

import (
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the bugs feature. The
// per-operation handlers (create, list, assign, status, delete) share
// the Mongo database and logger through it.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Errors *httperr.ErrorLogger
}

// NewHandler constructs a bugs Handler. Called from the bootstrap
// BuildHandler function.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		Errors: httperr.NewErrorLogger(logger),
	}
}
