package store

import (
	"encoding/json"
	"fmt"

	"github.com/shaibs3/bakery-api/internal/store/gormstore"
	"github.com/shaibs3/bakery-api/internal/store/shared"
	"github.com/shaibs3/bakery-api/internal/telemetry"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

var (
	_ DbProvider = (*gormstore.Provider)(nil)
	_ DbProvider = (*InMemoryProvider)(nil)
)

// ProviderFactory defines the interface for creating database providers
type ProviderFactory interface {
	CreateProvider(configJSON string) (DbProvider, error)
}

// DbProviderFactory implements ProviderFactory for the supported backends
type DbProviderFactory struct {
	logger    *zap.Logger
	telemetry *telemetry.Telemetry
}

func NewDbProviderFactory(logger *zap.Logger, tel *telemetry.Telemetry) *DbProviderFactory {
	return &DbProviderFactory{
		logger:    logger.Named("factory"),
		telemetry: tel,
	}
}

func (f *DbProviderFactory) CreateProvider(configJSON string) (DbProvider, error) {
	var config shared.DbProviderConfig

	if err := json.Unmarshal([]byte(configJSON), &config); err != nil {
		return nil, fmt.Errorf("failed to parse database configuration JSON: %w", err)
	}

	// extra_details may carry credentials, so only the type is logged
	f.logger.Info("creating database provider", zap.String("db_type", config.DbType.String()))

	if !config.DbType.IsValid() {
		return nil, fmt.Errorf("unsupported database type: %s", config.DbType)
	}

	var telemetryMeter metric.Meter
	if f.telemetry != nil {
		telemetryMeter = f.telemetry.Meter
	}

	switch config.DbType {
	case shared.DbTypePostgres:
		p, err := gormstore.NewPostgresProvider(config, f.logger, telemetryMeter)
		if err != nil {
			return nil, err
		}
		return p, nil
	case shared.DbTypeSQLite:
		p, err := gormstore.NewSQLiteProvider(config, f.logger, telemetryMeter)
		if err != nil {
			return nil, err
		}
		return p, nil
	case shared.DbTypeMemory:
		f.logger.Info("using InMemoryProvider for DB")
		return NewInMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.DbType)
	}
}
