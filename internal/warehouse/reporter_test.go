package warehouse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore counts calls and can be told to fail.
type fakeStore struct {
	tables     map[string][]string
	columns    map[string][]Column
	queryCols  []string
	queryRows  []Row
	queryErr   error
	catalogErr error

	listCalls     int
	columnCalls   int
	queryCalls    int
	rollbackCalls int
	closeCalls    int
}

func (f *fakeStore) ListTables(ctx context.Context, schema string) ([]string, error) {
	f.listCalls++
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return f.tables[schema], nil
}

func (f *fakeStore) Columns(ctx context.Context, schema, table string) ([]Column, error) {
	f.columnCalls++
	if f.catalogErr != nil {
		return nil, f.catalogErr
	}
	return f.columns[schema+"."+table], nil
}

func (f *fakeStore) Query(ctx context.Context, sql string, args ...any) ([]string, []Row, error) {
	f.queryCalls++
	if f.queryErr != nil {
		err := f.queryErr
		f.queryErr = nil // next query succeeds
		return nil, nil, err
	}
	return f.queryCols, f.queryRows, nil
}

func (f *fakeStore) Rollback(ctx context.Context) error {
	f.rollbackCalls++
	return nil
}

func (f *fakeStore) Close(ctx context.Context) error {
	f.closeCalls++
	return nil
}

func TestListTablesMemoized(t *testing.T) {
	st := &fakeStore{tables: map[string][]string{"cc": {"customers", "orders"}}}
	r := newReporter(st)

	first, err := r.ListTables(context.Background(), "cc")
	require.NoError(t, err)
	second, err := r.ListTables(context.Background(), "cc")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"customers", "orders"}, second)
	assert.Equal(t, 1, st.listCalls, "second call must be a memo hit")
}

func TestListTablesDefaultSchema(t *testing.T) {
	st := &fakeStore{tables: map[string][]string{"cc": {"orders"}}}
	r := newReporter(st)

	tables, err := r.ListTables(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, tables)
}

func TestListTablesCatalogError(t *testing.T) {
	st := &fakeStore{catalogErr: errors.New("permission denied for schema information_schema")}
	r := newReporter(st)

	_, err := r.ListTables(context.Background(), "cc")
	var catErr *CatalogError
	require.ErrorAs(t, err, &catErr)
	assert.Equal(t, "cc", catErr.Object)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestColumnInfoUnknownTable(t *testing.T) {
	st := &fakeStore{columns: map[string][]Column{}}
	r := newReporter(st)

	columns, err := r.ColumnInfo(context.Background(), "nope", "")
	require.NoError(t, err, "a missing table is not an error")
	assert.Empty(t, columns)

	// The empty answer is memoized too.
	_, err = r.ColumnInfo(context.Background(), "nope", "")
	require.NoError(t, err)
	assert.Equal(t, 1, st.columnCalls)
}

func TestColumnInfoMemoizedPerTable(t *testing.T) {
	st := &fakeStore{columns: map[string][]Column{
		"cc.orders":    {{Name: "id", DataType: "integer"}},
		"cc.customers": {{Name: "name", DataType: "varchar", Nullable: true}},
	}}
	r := newReporter(st)

	orders, err := r.ColumnInfo(context.Background(), "orders", "cc")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "id", orders[0].Name)

	_, err = r.ColumnInfo(context.Background(), "customers", "cc")
	require.NoError(t, err)
	assert.Equal(t, 2, st.columnCalls)

	_, err = r.ColumnInfo(context.Background(), "orders", "cc")
	require.NoError(t, err)
	assert.Equal(t, 2, st.columnCalls, "repeat lookups hit the memo")
}

func TestInvalidateDropsMemos(t *testing.T) {
	st := &fakeStore{tables: map[string][]string{"cc": {"orders"}}}
	r := newReporter(st)

	_, err := r.ListTables(context.Background(), "cc")
	require.NoError(t, err)
	r.Invalidate()
	_, err = r.ListTables(context.Background(), "cc")
	require.NoError(t, err)
	assert.Equal(t, 2, st.listCalls)
}

func TestExecuteReturnsRows(t *testing.T) {
	st := &fakeStore{
		tables:    map[string][]string{"cc": {"orders"}},
		queryCols: []string{"id", "total"},
		queryRows: []Row{{"id": int64(1), "total": 9.5}},
	}
	r := newReporter(st)

	rows, err := r.Execute(context.Background(), "SELECT id, total FROM cc.orders")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0]["id"])
}

func TestExecuteFailureRollsBackAndRecovers(t *testing.T) {
	st := &fakeStore{
		queryCols: []string{"one"},
		queryRows: []Row{{"one": int64(1)}},
		queryErr:  errors.New(`syntax error at or near "SELEC"`),
	}
	r := newReporter(st)

	_, err := r.Execute(context.Background(), "SELEC 1")
	var qErr *QueryError
	require.ErrorAs(t, err, &qErr)
	assert.Contains(t, qErr.Error(), "syntax error")
	assert.Equal(t, 1, st.rollbackCalls, "failed query must roll back")

	// The connection stays usable for the next query.
	rows, err := r.Execute(context.Background(), "SELECT 1 AS one")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, st.rollbackCalls)
}

func TestExecuteDiagnosticFailureIsNonFatal(t *testing.T) {
	st := &fakeStore{
		catalogErr: errors.New("information_schema unavailable"),
		queryCols:  []string{"one"},
		queryRows:  []Row{{"one": int64(1)}},
	}
	sink := &MemorySink{}
	r := newReporter(st, WithSink(sink))

	rows, err := r.Execute(context.Background(), "SELECT * FROM cc.orders")
	require.NoError(t, err, "a broken catalog must not abort the query")
	require.Len(t, rows, 1)

	var sawDiagnostic bool
	for _, line := range sink.Lines() {
		if line == "diagnostic failed: catalog lookup for cc: information_schema unavailable" {
			sawDiagnostic = true
		}
	}
	assert.True(t, sawDiagnostic, "catalog failure should surface as a diagnostic event")
}

func TestExecuteEmitsContextEvents(t *testing.T) {
	st := &fakeStore{
		tables: map[string][]string{"cc": {"customers", "orders"}},
		columns: map[string][]Column{
			"cc.orders": {{Name: "id", DataType: "integer"}},
		},
		queryCols: []string{"id"},
		queryRows: []Row{{"id": int64(7)}},
	}
	sink := &MemorySink{}
	r := newReporter(st, WithSink(sink))

	_, err := r.Execute(context.Background(), "SELECT id FROM cc.orders")
	require.NoError(t, err)

	lines := sink.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "executing")
	assert.Equal(t, "tables in cc: customers, orders", lines[1])
	assert.Equal(t, "cc.orders (id integer)", lines[2])
}

func TestFrameShapesRows(t *testing.T) {
	st := &fakeStore{
		queryCols: []string{"id", "name"},
		queryRows: []Row{
			{"id": int64(1), "name": "ada"},
			{"id": int64(2), "name": "grace"},
		},
	}
	r := newReporter(st)

	frame, err := r.Frame(context.Background(), "SELECT id, name FROM cc.customers")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, frame.Columns)
	require.Len(t, frame.Rows, 2)
	assert.Equal(t, []any{int64(2), "grace"}, frame.Rows[1])
}

func TestFrameEmptyResult(t *testing.T) {
	st := &fakeStore{queryCols: []string{"id"}}
	r := newReporter(st)

	frame, err := r.Frame(context.Background(), "SELECT id FROM cc.orders WHERE false")
	require.NoError(t, err)
	assert.True(t, frame.Empty())
	assert.Empty(t, frame.Columns, "zero rows means zero columns")
}

func TestCloseExactlyOnce(t *testing.T) {
	st := &fakeStore{}
	r := newReporter(st)

	require.NoError(t, r.Close(context.Background()))
	require.NoError(t, r.Close(context.Background()))
	assert.Equal(t, 1, st.closeCalls)
}
