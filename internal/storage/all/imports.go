// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each backend, which register their
// repository factories with storage and their DDL dialects with ddl.
//
// Importing this package makes the following kinds available at runtime:
//
//   - "mssql"    (bulkload/internal/storage/mssql)
//   - "postgres" (bulkload/internal/storage/postgres)
//   - "sqlite"   (bulkload/internal/storage/sqlite)
//   - "mysql"    (bulkload/internal/storage/mysql)
//
// Typical usage in a wiring layer such as cmd/bulkload:
//
//	import _ "bulkload/internal/storage/all"
package all

import (
	_ "bulkload/internal/storage/mssql"
	_ "bulkload/internal/storage/mysql"
	_ "bulkload/internal/storage/postgres"
	_ "bulkload/internal/storage/sqlite"
)
