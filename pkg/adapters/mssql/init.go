// Package mssql provides a Microsoft SQL Server database adapter for leaprecord.
//
// This file registers the SQL Server adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/leaprecord/pkg/adapters/mssql"
package mssql

import (
	"log/slog"

	"github.com/leapstack-labs/leaprecord/pkg/adapter"

	// Import dialect to ensure it's registered
	_ "github.com/leapstack-labs/leaprecord/pkg/dialects/mssql"
)

func init() {
	adapter.Register("mssql", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
