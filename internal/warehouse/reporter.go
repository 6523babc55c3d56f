package warehouse

import (
	"context"
	"regexp"

	"github.com/google/uuid"
)

// DefaultSchema is the schema queried when callers do not name one.
// Existing callers depend on this exact value.
const DefaultSchema = "cc"

// Reporter owns a single warehouse connection and surfaces query context
// (available tables, columns of referenced tables) before executing
// user queries.
//
// Table and column listings are memoized per connection: the first call
// hits the catalog, later calls return the memo. The memo is never
// refreshed implicitly, so it goes stale if the warehouse schema changes
// during the session; call Invalidate to drop it. A Reporter is not safe
// for concurrent use.
type Reporter struct {
	st      store
	sink    Sink
	schema  string
	pattern *regexp.Regexp

	tables  map[string][]string // schema -> table names
	columns map[string][]Column // "<schema>.<table>" -> columns
	closed  bool
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithSink routes diagnostic events to the given sink instead of
// discarding them.
func WithSink(sink Sink) Option {
	return func(r *Reporter) { r.sink = sink }
}

// WithSchema overrides the default schema.
func WithSchema(schema string) Option {
	return func(r *Reporter) {
		if schema != "" {
			r.schema = schema
		}
	}
}

// Connect opens the warehouse connection and returns a Reporter owning
// it. A failure here is fatal for the session; there is no retry.
func Connect(ctx context.Context, dsn string, opts ...Option) (*Reporter, error) {
	r := &Reporter{
		sink:    NopSink{},
		schema:  DefaultSchema,
		tables:  make(map[string][]string),
		columns: make(map[string][]Column),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.pattern = newTablePattern(r.schema)

	st, err := openStore(ctx, dsn)
	if err != nil {
		return nil, &ConnectionError{Cause: err}
	}
	r.st = st
	return r, nil
}

// newReporter wires a Reporter over an existing store. Used by tests.
func newReporter(st store, opts ...Option) *Reporter {
	r := &Reporter{
		st:      st,
		sink:    NopSink{},
		schema:  DefaultSchema,
		tables:  make(map[string][]string),
		columns: make(map[string][]Column),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.pattern = newTablePattern(r.schema)
	return r
}

// Schema returns the schema queried by default.
func (r *Reporter) Schema() string {
	return r.schema
}

// ListTables returns the names of all base tables in the schema, ordered
// alphabetically. The empty string means the default schema. The result
// is memoized for the lifetime of the connection.
func (r *Reporter) ListTables(ctx context.Context, schema string) ([]string, error) {
	if schema == "" {
		schema = r.schema
	}
	if cached, ok := r.tables[schema]; ok {
		return cached, nil
	}
	tables, err := r.st.ListTables(ctx, schema)
	if err != nil {
		return nil, &CatalogError{Object: schema, Cause: err}
	}
	if tables == nil {
		tables = []string{}
	}
	r.tables[schema] = tables
	return tables, nil
}

// ColumnInfo returns column metadata for a table in ordinal position
// order, memoized per "<schema>.<table>". A table that does not exist
// yields an empty slice and no error.
func (r *Reporter) ColumnInfo(ctx context.Context, table, schema string) ([]Column, error) {
	if schema == "" {
		schema = r.schema
	}
	key := schema + "." + table
	if cached, ok := r.columns[key]; ok {
		return cached, nil
	}
	columns, err := r.st.Columns(ctx, schema, table)
	if err != nil {
		return nil, &CatalogError{Object: key, Cause: err}
	}
	if columns == nil {
		columns = []Column{}
	}
	r.columns[key] = columns
	return columns, nil
}

// Invalidate drops the table and column memos so the next lookup hits
// the catalog again. This is the only refresh trigger.
func (r *Reporter) Invalidate() {
	r.tables = make(map[string][]string)
	r.columns = make(map[string][]Column)
}

// Execute reports query context to the sink, runs the parameterized
// query and returns the result rows as column-name-to-value mappings.
//
// Context reporting is best-effort: a catalog failure is emitted as a
// diagnostic event and never aborts the query. A query failure rolls the
// connection's transaction back before returning a *QueryError; the
// connection stays usable.
func (r *Reporter) Execute(ctx context.Context, query string, args ...any) ([]Row, error) {
	_, rows, err := r.execute(ctx, query, args)
	return rows, err
}

// Frame runs Execute and shapes the rows into a single tabular frame.
// A zero-row result yields an empty frame with no columns.
func (r *Reporter) Frame(ctx context.Context, query string, args ...any) (*Frame, error) {
	columns, rows, err := r.execute(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return newFrame(columns, rows), nil
}

func (r *Reporter) execute(ctx context.Context, query string, args []any) ([]string, []Row, error) {
	id := uuid.NewString()
	r.sink.ExecutionStarted(id, query)

	if tables, err := r.ListTables(ctx, r.schema); err != nil {
		r.sink.DiagnosticError(id, err)
	} else {
		r.sink.TablesListed(id, r.schema, tables)
	}

	for _, table := range r.ExtractTables(query) {
		columns, err := r.ColumnInfo(ctx, table, r.schema)
		if err != nil {
			r.sink.DiagnosticError(id, err)
			continue
		}
		r.sink.ColumnsDescribed(id, r.schema, table, columns)
	}

	columns, rows, err := r.st.Query(ctx, query, args...)
	if err != nil {
		if rbErr := r.st.Rollback(ctx); rbErr != nil {
			r.sink.DiagnosticError(id, rbErr)
		}
		return nil, nil, &QueryError{Query: query, Cause: err}
	}
	return columns, rows, nil
}

// Close releases the connection. Safe to call more than once; the
// underlying connection is closed exactly once.
func (r *Reporter) Close(ctx context.Context) error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.st.Close(ctx)
}
