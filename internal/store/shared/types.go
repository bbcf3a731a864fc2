package shared

import "errors"

// DbType identifies a storage backend
type DbType string

const (
	DbTypePostgres DbType = "postgres"
	DbTypeSQLite   DbType = "sqlite"
	DbTypeMemory   DbType = "memory"
)

func (t DbType) String() string {
	return string(t)
}

// IsValid reports whether t names a supported backend
func (t DbType) IsValid() bool {
	switch t {
	case DbTypePostgres, DbTypeSQLite, DbTypeMemory:
		return true
	}
	return false
}

// DbProviderConfig is the JSON document that selects and configures a provider
type DbProviderConfig struct {
	DbType       DbType                 `json:"db_type"`
	ExtraDetails map[string]interface{} `json:"extra_details"`
}

// StringDetail returns a non-empty string value from ExtraDetails
func (c DbProviderConfig) StringDetail(key string) (string, bool) {
	v, ok := c.ExtraDetails[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// ErrNotFound is returned when a single-record lookup matches nothing
var ErrNotFound = errors.New("record not found")
