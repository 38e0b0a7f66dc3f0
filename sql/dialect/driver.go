// Copyright 2021-present The Atlas Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package dialect

import (
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	mssql "github.com/microsoft/go-mssqldb"
)

// FromDriver resolves the dialect from a database/sql driver by its type.
// No connection is established.
func FromDriver(drv driver.Driver) (Dialect, error) {
	switch drv.(type) {
	case *mysql.MySQLDriver, mysql.MySQLDriver:
		return MySQL, nil
	case *mssql.Driver:
		return MSSQL, nil
	case *sqlite3.SQLiteDriver:
		return SQLite, nil
	case *pq.Driver, pq.Driver, *stdlib.Driver:
		return StandardAnsi, nil
	default:
		return 0, fmt.Errorf("%w: unsupported driver %T", ErrUnknown, drv)
	}
}

// FromDB resolves the dialect from the driver of the given database handle.
func FromDB(db *sql.DB) (Dialect, error) {
	return FromDriver(db.Driver())
}
