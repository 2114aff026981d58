// Package contract provides the validated runtime configuration and
// shared utilities for internal architecture.
package contract

import (
	"github.com/assiskamu/formula-menang/schema"
)

// OverridesStore defines the interface for override persistence.
// This allows the storage layer to be mocked for testing. Load must
// recover to a sanitized default on empty or corrupt storage; Save
// stamps the update time, sanitizes and returns the persisted value.
type OverridesStore interface {
	Load() (*schema.LocalOverrides, error)
	Save(overrides *schema.LocalOverrides) (*schema.LocalOverrides, error)
	Clear() error
	Close() error
}
