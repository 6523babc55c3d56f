package warehouse

// Column describes one column of a warehouse table.
type Column struct {
	Name     string
	DataType string
	Nullable bool
}

// Row is a single result row keyed by column name.
type Row map[string]any

// Frame is a tabular view of a query result: named columns and ordered
// rows. Column order follows the underlying result set.
type Frame struct {
	Columns []string
	Rows    [][]any
}

// Empty reports whether the frame holds no rows.
func (f *Frame) Empty() bool {
	return len(f.Rows) == 0
}

// newFrame builds a frame from row mappings. A zero-row result yields a
// frame with no columns, even when the result set described some.
func newFrame(columns []string, rows []Row) *Frame {
	if len(rows) == 0 {
		return &Frame{}
	}
	f := &Frame{Columns: columns, Rows: make([][]any, 0, len(rows))}
	for _, row := range rows {
		values := make([]any, len(columns))
		for i, col := range columns {
			values[i] = row[col]
		}
		f.Rows = append(f.Rows, values)
	}
	return f
}
