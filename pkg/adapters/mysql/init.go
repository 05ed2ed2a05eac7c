// Package mysql provides a MySQL/MariaDB database adapter for leaprecord.
//
// This file registers the MySQL adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/leaprecord/pkg/adapters/mysql"
package mysql

import (
	"log/slog"

	"github.com/leapstack-labs/leaprecord/pkg/adapter"

	// Import dialect to ensure it's registered
	_ "github.com/leapstack-labs/leaprecord/pkg/dialects/mysql"
)

func init() {
	adapter.Register("mysql", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
