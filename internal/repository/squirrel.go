package repository

import sq "github.com/Masterminds/squirrel"

// psql builds every statement in this package with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
