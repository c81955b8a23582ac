package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/rowfilter/internal/translate"
)

// Row is one result row keyed by column name. TEXT and BLOB values are
// returned as strings.
type Row map[string]any

// ErrNoTable is returned when Select is called without a table name.
var ErrNoTable = errors.New("table name is required")

// SelectSQL returns the query Select runs for stmt against table.
func SelectSQL(table string, stmt *translate.Statement) string {
	return fmt.Sprintf("SELECT * FROM %s WHERE %s ORDER BY rowid", quoteIdentifier(table), stmt.QueryText())
}

// Select returns every row of table matching stmt, in rowid order.
//
// Returns an empty slice (not nil) if nothing matches.
func (s *Store) Select(ctx context.Context, table string, stmt *translate.Statement) ([]Row, error) {
	if table == "" {
		return nil, ErrNoTable
	}

	rows, err := s.db.QueryContext(ctx, SelectSQL(table, stmt), stmt.NamedArgs()...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", table, err)
	}

	result := []Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	return result, nil
}

// Tables returns the names of user tables in name order.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return names, nil
}

// quoteIdentifier wraps a table name in double quotes, doubling any embedded
// quote characters.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
