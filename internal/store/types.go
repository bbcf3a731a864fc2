package store

import "github.com/shaibs3/bakery-api/internal/store/shared"

// Re-export shared types for convenience
type DbType = shared.DbType
type DbProviderConfig = shared.DbProviderConfig

// Re-export constants
const (
	DbTypePostgres = shared.DbTypePostgres
	DbTypeSQLite   = shared.DbTypeSQLite
	DbTypeMemory   = shared.DbTypeMemory
)

var ErrNotFound = shared.ErrNotFound
