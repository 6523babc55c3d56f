package warehouse

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Sink receives diagnostic events emitted on the query path. The id is a
// per-execution identifier so events from interleaved executions can be
// told apart when routed to a shared log.
type Sink interface {
	ExecutionStarted(id, query string)
	TablesListed(id, schema string, tables []string)
	ColumnsDescribed(id, schema, table string, columns []Column)
	DiagnosticError(id string, err error)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) ExecutionStarted(string, string)                   {}
func (NopSink) TablesListed(string, string, []string)             {}
func (NopSink) ColumnsDescribed(string, string, string, []Column) {}
func (NopSink) DiagnosticError(string, error)                     {}

// WriterSink renders events as human-readable text, for printing the
// context report alongside query output.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) ExecutionStarted(id, query string) {
	fmt.Fprintf(s.W, "executing [%s]: %s\n", shortID(id), query)
}

func (s WriterSink) TablesListed(id, schema string, tables []string) {
	fmt.Fprintf(s.W, "tables in %s: %s\n", schema, strings.Join(tables, ", "))
}

func (s WriterSink) ColumnsDescribed(id, schema, table string, columns []Column) {
	fmt.Fprintf(s.W, "columns of %s.%s:\n", schema, table)
	for _, col := range columns {
		null := "not null"
		if col.Nullable {
			null = "nullable"
		}
		fmt.Fprintf(s.W, "  %-24s %-20s %s\n", col.Name, col.DataType, null)
	}
}

func (s WriterSink) DiagnosticError(id string, err error) {
	fmt.Fprintf(s.W, "diagnostic failed: %v\n", err)
}

// LogSink emits events as structured log entries.
type LogSink struct {
	Log *zap.Logger
}

func (s LogSink) ExecutionStarted(id, query string) {
	s.Log.Info("execution started", zap.String("query_id", id), zap.String("query", query))
}

func (s LogSink) TablesListed(id, schema string, tables []string) {
	s.Log.Info("tables listed",
		zap.String("query_id", id),
		zap.String("schema", schema),
		zap.Strings("tables", tables))
}

func (s LogSink) ColumnsDescribed(id, schema, table string, columns []Column) {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}
	s.Log.Info("columns described",
		zap.String("query_id", id),
		zap.String("table", schema+"."+table),
		zap.Strings("columns", names))
}

func (s LogSink) DiagnosticError(id string, err error) {
	s.Log.Warn("diagnostic failed", zap.String("query_id", id), zap.Error(err))
}

// MemorySink buffers rendered event lines for later display, e.g. in the
// console's context pane. Safe for use from bubbletea command goroutines.
type MemorySink struct {
	mu    sync.Mutex
	lines []string
}

func (s *MemorySink) append(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

func (s *MemorySink) ExecutionStarted(id, query string) {
	s.append(fmt.Sprintf("executing [%s]", shortID(id)))
}

func (s *MemorySink) TablesListed(id, schema string, tables []string) {
	s.append(fmt.Sprintf("tables in %s: %s", schema, strings.Join(tables, ", ")))
}

func (s *MemorySink) ColumnsDescribed(id, schema, table string, columns []Column) {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = col.Name + " " + col.DataType
	}
	s.append(fmt.Sprintf("%s.%s (%s)", schema, table, strings.Join(parts, ", ")))
}

func (s *MemorySink) DiagnosticError(id string, err error) {
	s.append("diagnostic failed: " + err.Error())
}

// Lines returns a copy of the buffered lines.
func (s *MemorySink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Reset discards buffered lines.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
