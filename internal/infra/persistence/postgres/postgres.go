package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"storeapi/config"
	"storeapi/internal/domain/lifecycle"
	"storeapi/internal/errors"
	"storeapi/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the PostgreSQL client. Replicas, when configured, serve reads through dbresolver.
func New(params Params) (*gorm.DB, error) {
	pgCfg := params.Config.Postgres

	db, err := gorm.Open(postgres.Open(pgCfg.MasterDSN()), &gorm.Config{
		// Disable GORM's per-statement implicit transaction.
		// We keep explicit transactions via txManager.Execute for multi-step atomic operations.
		SkipDefaultTransaction: true,
		// Driver errors such as unique violations surface as gorm.ErrDuplicatedKey.
		TranslateError:       true,
		DisableAutomaticPing: true,
		Logger:               newGormSlogLogger(params.Logger, params.Config),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	if err := registerReplicas(db, pgCfg); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	applyPoolSettings(sqlDB, pgCfg)

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	// Add lifecycle management
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if pgCfg.AutoMigrate {
				if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
					return errors.Wrap(err, "failed to migrate PostgreSQL schema")
				}
				params.Logger.Info("PostgreSQL schema migrated")
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

func registerReplicas(db *gorm.DB, pgCfg *config.PostgresConfig) error {
	if len(pgCfg.Replicas) == 0 {
		return nil
	}

	replicas := make([]gorm.Dialector, 0, len(pgCfg.Replicas))
	for _, replica := range pgCfg.Replicas {
		replicas = append(replicas, postgres.Open(pgCfg.BuildDSN(replica)))
	}

	resolver := dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	})
	if pgCfg.MaxIdleConns > 0 {
		resolver.SetMaxIdleConns(pgCfg.MaxIdleConns)
	}
	if pgCfg.MaxOpenConns > 0 {
		resolver.SetMaxOpenConns(pgCfg.MaxOpenConns)
	}
	if pgCfg.ConnMaxLifetime > 0 {
		resolver.SetConnMaxLifetime(pgCfg.ConnMaxLifetime)
	}

	if err := db.Use(resolver); err != nil {
		return errors.Wrap(err, "failed to register PostgreSQL replicas")
	}

	return nil
}

func applyPoolSettings(sqlDB *sql.DB, pgCfg *config.PostgresConfig) {
	if pgCfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pgCfg.MaxIdleConns)
	}
	if pgCfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pgCfg.MaxOpenConns)
	}
	if pgCfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pgCfg.ConnMaxLifetime)
	}
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Postgres pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Postgres pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
