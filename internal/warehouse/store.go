package warehouse

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// store abstracts the warehouse connection. The reporter only ever needs
// catalog reads, query execution, rollback and close; tests substitute a
// fake.
type store interface {
	ListTables(ctx context.Context, schema string) ([]string, error)
	Columns(ctx context.Context, schema, table string) ([]Column, error)
	Query(ctx context.Context, sql string, args ...any) ([]string, []Row, error)
	Rollback(ctx context.Context) error
	Close(ctx context.Context) error
}

// pgxStore implements store over a single pgx connection. Redshift does
// not support the extended query protocol's prepared statements, so the
// connection runs in simple protocol mode.
type pgxStore struct {
	conn *pgx.Conn
}

func openStore(ctx context.Context, dsn string) (*pgxStore, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return &pgxStore{conn: conn}, nil
}

func (s *pgxStore) ListTables(ctx context.Context, schema string) ([]string, error) {
	rows, err := s.conn.Query(ctx, queryListTables, schema)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (s *pgxStore) Columns(ctx context.Context, schema, table string) ([]Column, error) {
	rows, err := s.conn.Query(ctx, queryListColumns, schema, table)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var col Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.DataType, &nullable); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}
	return columns, rows.Err()
}

func (s *pgxStore) Query(ctx context.Context, sql string, args ...any) ([]string, []Row, error) {
	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	var result []Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		row := make(Row, len(columns))
		for i, col := range columns {
			row[col] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return columns, result, nil
}

// Rollback clears any aborted transaction state so the connection stays
// usable after a failed query, mirroring connection-level rollback in
// the classic DB-API drivers.
func (s *pgxStore) Rollback(ctx context.Context) error {
	_, err := s.conn.Exec(ctx, "ROLLBACK")
	return err
}

func (s *pgxStore) Close(ctx context.Context) error {
	return s.conn.Close(ctx)
}
