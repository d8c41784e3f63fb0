// Package store implements the repositories on PostgreSQL.
package store

import (
	sq "github.com/Masterminds/squirrel"
)

const schema = "bloodconnect"

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}
