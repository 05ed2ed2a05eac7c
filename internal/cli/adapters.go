package cli

// Adapters register themselves and their dialect in init().
import (
	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/hsqldb"
	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/mssql"
	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/leaprecord/pkg/adapters/sqlite"
)
