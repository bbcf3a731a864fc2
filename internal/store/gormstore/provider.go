package gormstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go"
	_ "github.com/lib/pq"
	"github.com/shaibs3/bakery-api/internal/db_model"
	"github.com/shaibs3/bakery-api/internal/store/shared"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = 50 * time.Millisecond
)

// Provider implements the bakery stores on top of GORM. Each call runs on a
// fresh session bound to the caller's context.
type Provider struct {
	gormDB  *gorm.DB
	sqlDB   *sql.DB
	logger  *zap.Logger
	cb      *gobreaker.CircuitBreaker
	metrics *shared.StoreMetrics

	retryAttempts uint
	retryDelay    time.Duration
}

// NewPostgresProvider connects through lib/pq and hands the pool to GORM
func NewPostgresProvider(config shared.DbProviderConfig, logger *zap.Logger, meter metric.Meter) (*Provider, error) {
	pgLogger := logger.Named("postgres")

	connStr, ok := config.StringDetail("conn_str")
	if !ok {
		return nil, fmt.Errorf("conn_str is required for Postgres provider")
	}
	pgLogger.Info("initializing Postgres provider")

	sqlDB, err := sql.Open("postgres", connStr)
	if err != nil {
		pgLogger.Error("failed to open Postgres connection", zap.Error(err))
		return nil, fmt.Errorf("failed to open Postgres connection: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		pgLogger.Error("failed to ping Postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	return newProvider(postgres.New(postgres.Config{Conn: sqlDB}), shared.DbTypePostgres, pgLogger, meter)
}

// NewSQLiteProvider opens the database file named by extra_details.path
func NewSQLiteProvider(config shared.DbProviderConfig, logger *zap.Logger, meter metric.Meter) (*Provider, error) {
	liteLogger := logger.Named("sqlite")

	path, ok := config.StringDetail("path")
	if !ok {
		return nil, fmt.Errorf("path is required for SQLite provider")
	}
	liteLogger.Info("initializing SQLite provider", zap.String("path", path))

	p, err := newProvider(sqlite.Open(path), shared.DbTypeSQLite, liteLogger, meter)
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer
	p.sqlDB.SetMaxOpenConns(1)
	return p, nil
}

func newProvider(dialector gorm.Dialector, backend shared.DbType, logger *zap.Logger, meter metric.Meter) (*Provider, error) {
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: db_model.Now,
		Logger:  newZapGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open GORM connection: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying connection: %w", err)
	}

	metrics, err := shared.NewStoreMetrics(meter, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create store metrics: %w", err)
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        fmt.Sprintf("%sDB", backend),
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, shared.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
		},
	})

	logger.Info("provider initialized successfully", zap.String("backend", backend.String()))
	return &Provider{
		gormDB:        gormDB,
		sqlDB:         sqlDB,
		logger:        logger,
		cb:            cb,
		metrics:       metrics,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
	}, nil
}

func retryable(err error) bool {
	return !errors.Is(err, shared.ErrNotFound) &&
		!errors.Is(err, gobreaker.ErrOpenState) &&
		!errors.Is(err, gobreaker.ErrTooManyRequests) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

// read runs fn through the circuit breaker, retrying transient failures
func (p *Provider) read(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	return p.run(ctx, op, p.retryAttempts, fn)
}

// write runs fn through the circuit breaker once; inserts are not idempotent
func (p *Provider) write(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	return p.run(ctx, op, 1, fn)
}

func (p *Provider) run(ctx context.Context, op string, attempts uint, fn func(tx *gorm.DB) error) error {
	start := time.Now()
	err := retry.Do(
		func() error {
			_, err := p.cb.Execute(func() (interface{}, error) {
				return nil, fn(p.gormDB.WithContext(ctx))
			})
			return err
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(p.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			// retry-go also calls this after the final attempt
			if n+1 >= attempts {
				return
			}
			p.logger.Warn("retrying store operation", zap.String("operation", op), zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil && attempts > 1 && retryable(err) {
		p.logger.Warn("store operation failed after retries", zap.String("operation", op), zap.Uint("attempts", attempts), zap.Error(err))
	}
	p.metrics.Observe(ctx, op, start, err)
	return err
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, shared.ErrNotFound)
	}
	return err
}

func (p *Provider) CreateSchema(ctx context.Context) error {
	err := p.write(ctx, "create_schema", func(tx *gorm.DB) error {
		return tx.AutoMigrate(&GormBakery{}, &GormBakedGood{})
	})
	if err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}

func (p *Provider) DropSchema(ctx context.Context) error {
	err := p.write(ctx, "drop_schema", func(tx *gorm.DB) error {
		return tx.Migrator().DropTable(&GormBakedGood{}, &GormBakery{})
	})
	if err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return nil
}

func (p *Provider) Close() error {
	return p.sqlDB.Close()
}

func (p *Provider) ListBakeries(ctx context.Context) ([]db_model.Bakery, error) {
	var rows []GormBakery
	err := p.read(ctx, "list_bakeries", func(tx *gorm.DB) error {
		return tx.Order("id ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bakeries: %w", err)
	}
	return bakeriesFromGorm(rows), nil
}

func (p *Provider) GetBakery(ctx context.Context, id uint) (*db_model.Bakery, error) {
	var row GormBakery
	err := p.read(ctx, "get_bakery", func(tx *gorm.DB) error {
		return notFound(tx.First(&row, id).Error, fmt.Sprintf("bakery %d", id))
	})
	if err != nil {
		return nil, err
	}
	b := bakeryFromGorm(row)
	return &b, nil
}

func (p *Provider) FindBakeriesByName(ctx context.Context, name string) ([]db_model.Bakery, error) {
	var rows []GormBakery
	err := p.read(ctx, "find_bakeries", func(tx *gorm.DB) error {
		return tx.Where("name = ?", name).Order("id ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find bakeries: %w", err)
	}
	return bakeriesFromGorm(rows), nil
}

func (p *Provider) CreateBakery(ctx context.Context, bakery *db_model.Bakery) error {
	row := GormBakery{Name: bakery.Name}
	err := p.write(ctx, "create_bakery", func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create bakery: %w", err)
	}
	*bakery = bakeryFromGorm(row)
	return nil
}

func (p *Provider) DeleteBakery(ctx context.Context, id uint) error {
	return p.write(ctx, "delete_bakery", func(tx *gorm.DB) error {
		res := tx.Delete(&GormBakery{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("bakery %d: %w", id, shared.ErrNotFound)
		}
		return nil
	})
}

func (p *Provider) DeleteBakeriesByName(ctx context.Context, name string) (int64, error) {
	var n int64
	err := p.write(ctx, "delete_bakeries", func(tx *gorm.DB) error {
		res := tx.Where("name = ?", name).Delete(&GormBakery{})
		n = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete bakeries: %w", err)
	}
	return n, nil
}

func (p *Provider) ListBakedGoodsByPrice(ctx context.Context) ([]db_model.BakedGood, error) {
	var rows []GormBakedGood
	err := p.read(ctx, "list_baked_goods_by_price", func(tx *gorm.DB) error {
		// null prices sort last on every backend
		return tx.Order("price IS NULL, price ASC, id ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list baked goods: %w", err)
	}
	return bakedGoodsFromGorm(rows), nil
}

func (p *Provider) ListBakedGoodsByBakery(ctx context.Context, bakeryID uint) ([]db_model.BakedGood, error) {
	var rows []GormBakedGood
	err := p.read(ctx, "list_baked_goods_by_bakery", func(tx *gorm.DB) error {
		return tx.Where("bakery_id = ?", bakeryID).Order("id ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list baked goods for bakery %d: %w", bakeryID, err)
	}
	return bakedGoodsFromGorm(rows), nil
}

func (p *Provider) MostExpensiveBakedGood(ctx context.Context) (*db_model.BakedGood, error) {
	var row GormBakedGood
	err := p.read(ctx, "most_expensive_baked_good", func(tx *gorm.DB) error {
		err := tx.Where("price IS NOT NULL").Order("price DESC, id ASC").First(&row).Error
		return notFound(err, "priced baked good")
	})
	if err != nil {
		return nil, err
	}
	g := bakedGoodFromGorm(row)
	return &g, nil
}

func (p *Provider) FindBakedGoodsByName(ctx context.Context, name string) ([]db_model.BakedGood, error) {
	var rows []GormBakedGood
	err := p.read(ctx, "find_baked_goods", func(tx *gorm.DB) error {
		return tx.Where("name = ?", name).Order("id ASC").Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find baked goods: %w", err)
	}
	return bakedGoodsFromGorm(rows), nil
}

func (p *Provider) CreateBakedGood(ctx context.Context, good *db_model.BakedGood) error {
	row := GormBakedGood{Name: good.Name, Price: good.Price, BakeryID: good.BakeryID}
	err := p.write(ctx, "create_baked_good", func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create baked good: %w", err)
	}
	*good = bakedGoodFromGorm(row)
	return nil
}

func (p *Provider) DeleteBakedGood(ctx context.Context, id uint) error {
	return p.write(ctx, "delete_baked_good", func(tx *gorm.DB) error {
		res := tx.Delete(&GormBakedGood{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("baked good %d: %w", id, shared.ErrNotFound)
		}
		return nil
	})
}

func (p *Provider) DeleteBakedGoodsByName(ctx context.Context, name string) (int64, error) {
	var n int64
	err := p.write(ctx, "delete_baked_goods", func(tx *gorm.DB) error {
		res := tx.Where("name = ?", name).Delete(&GormBakedGood{})
		n = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete baked goods: %w", err)
	}
	return n, nil
}
