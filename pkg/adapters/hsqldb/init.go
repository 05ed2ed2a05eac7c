// Package hsqldb provides an HSQLDB adapter for leaprecord.
//
// This file registers the HSQLDB adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/leaprecord/pkg/adapters/hsqldb"
package hsqldb

import (
	"log/slog"

	"github.com/leapstack-labs/leaprecord/pkg/adapter"

	// Import dialect to ensure it's registered
	_ "github.com/leapstack-labs/leaprecord/pkg/dialects/hsqldb"
)

func init() {
	adapter.Register("hsqldb", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
