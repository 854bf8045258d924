// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/bughub/internal/app/store/users"
	"github.com/dalemusser/bughub/internal/app/system/passwords"
	"github.com/dalemusser/bughub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
//
// BugHub uses it to make sure a fresh deployment has an admin account:
// when bootstrap_admin_email is configured, that account is created (or
// promoted to admin if it already exists with another role).
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.BootstrapAdminEmail == "" {
		return nil
	}
	return ensureBootstrapAdmin(ctx, deps,
		appCfg.BootstrapAdminName, appCfg.BootstrapAdminEmail, appCfg.BootstrapAdminPassword, logger)
}

// ensureBootstrapAdmin creates the configured admin account, or promotes
// an existing account with that email to admin. An existing admin is
// left untouched. Creation requires a password; promotion does not.
func ensureBootstrapAdmin(ctx context.Context, deps DBDeps, name, email, password string, logger *zap.Logger) error {
	store := userstore.New(deps.BugHubMongoDatabase)

	existing, err := store.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			return nil
		}
		if err := store.UpdateRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return err
		}
		logger.Info("promoted existing user to admin", zap.String("email", existing.Email))
		return nil

	case err == mongo.ErrNoDocuments:
		if password == "" {
			logger.Warn("bootstrap_admin_email set but account does not exist and no bootstrap_admin_password given; skipping",
				zap.String("email", email))
			return nil
		}
		hash, err := passwords.Hash(password)
		if err != nil {
			return err
		}
		u, err := store.Create(ctx, models.User{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			IsActive:     true,
		})
		if err != nil {
			return err
		}
		logger.Info("created bootstrap admin", zap.String("email", u.Email))
		return nil

	default:
		return err
	}
}
