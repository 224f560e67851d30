package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/tox-oncall/internal/config"
	"github.com/jakechorley/tox-oncall/pkg/core/services"
	"github.com/jakechorley/tox-oncall/pkg/db"
)

const (
	SourceConfig   = "config"
	SourcePostgres = "postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg *config.Config

	// Database is nil unless databaseURL is configured
	Database db.RosterStore

	Logger *zap.Logger
	Ctx    context.Context
}

// RosterSource resolves where fellows and blackouts are read from.
// An empty source means postgres when a database is configured, the config file otherwise.
func (app *AppContext) RosterSource(source string) (db.RosterReader, error) {
	switch source {
	case "":
		if app.Database != nil {
			return app.Database, nil
		}
		return services.NewConfigRoster(app.Cfg), nil
	case SourceConfig:
		return services.NewConfigRoster(app.Cfg), nil
	case SourcePostgres:
		return app.Store()
	default:
		return nil, fmt.Errorf("unknown source %q: expected %q or %q", source, SourceConfig, SourcePostgres)
	}
}

// Store returns the writable roster store, which requires a configured database
func (app *AppContext) Store() (db.RosterStore, error) {
	if app.Database == nil {
		return nil, fmt.Errorf("no database configured: set databaseURL in the config file")
	}
	return app.Database, nil
}
