// internal/app/features/projects/handler.go
package projects

import (
	"github.com/dalemusser/bughub/internal/app/system/httperr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the projects feature:
// project CRUD and team roster management.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Errors *httperr.ErrorLogger
}

// NewHandler constructs a projects Handler. Called from the bootstrap
// BuildHandler function.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		Errors: httperr.NewErrorLogger(logger),
	}
}
