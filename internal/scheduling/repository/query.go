package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryStrings(ctx context.Context, q queryer, query string, args ...any) ([]string, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// dayRange appends optional inclusive bounds on column to args, which must
// already hold the query's leading parameters.
func dayRange(column, first, last string, args ...any) (string, []any) {
	where := ""
	if first != "" {
		args = append(args, first)
		where += fmt.Sprintf(" AND %s >= $%d::date", column, len(args))
	}
	if last != "" {
		args = append(args, last)
		where += fmt.Sprintf(" AND %s <= $%d::date", column, len(args))
	}
	return where, args
}
