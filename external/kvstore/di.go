package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/confbase/agendakit/internal/config"
	"github.com/confbase/agendakit/internal/preferences"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do/v2"
)

const databaseInitTimeout = 15 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (preferences.KV, error) {
		cfg := do.MustInvoke[*config.Config](i)
		switch cfg.StoreDriver {
		case config.StoreDriverPostgres:
			ctx, cancel := context.WithTimeout(context.Background(), databaseInitTimeout)
			defer cancel()

			p, err := pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return nil, fmt.Errorf("failed to connect database: %w", err)
			}
			if err := p.Ping(ctx); err != nil {
				p.Close()
				return nil, fmt.Errorf("failed to ping database: %w", err)
			}
			if err := RunMigration(ctx, p); err != nil {
				p.Close()
				return nil, fmt.Errorf("failed to run migration: %w", err)
			}
			return NewPostgres(p), nil
		case config.StoreDriverSQLite:
			return NewSQLite(cfg.SQLitePath)
		default:
			return NewMemory(), nil
		}
	})
}
