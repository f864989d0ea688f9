package commands

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/hopehub/hopehub/internal/config"
	"github.com/hopehub/hopehub/pkg/db"
	"github.com/hopehub/hopehub/pkg/media"
)

// Migrator applies pending schema migrations, returning the files applied
type Migrator interface {
	RunMigrations(ctx context.Context) ([]string, error)
}

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Store    db.DocumentStore
	Uploader media.Uploader
	Migrator Migrator // nil when the store has no schema
	Logger   *zap.Logger
	Ctx      context.Context
	Stdin    io.Reader
}

func (app *AppContext) collections() db.Collections {
	return app.Cfg.DBCollections()
}
