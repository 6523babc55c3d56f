package warehouse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterSink(t *testing.T) {
	var buf strings.Builder
	sink := WriterSink{W: &buf}

	sink.ExecutionStarted("0196ab12-dead-beef-0000-000000000000", "SELECT 1")
	sink.TablesListed("id", "cc", []string{"customers", "orders"})
	sink.ColumnsDescribed("id", "cc", "orders", []Column{
		{Name: "id", DataType: "integer"},
		{Name: "note", DataType: "varchar", Nullable: true},
	})

	out := buf.String()
	assert.Contains(t, out, "executing [0196ab12]: SELECT 1")
	assert.Contains(t, out, "tables in cc: customers, orders")
	assert.Contains(t, out, "columns of cc.orders:")
	assert.Contains(t, out, "not null")
	assert.Contains(t, out, "nullable")
}

func TestMemorySinkResetAndCopy(t *testing.T) {
	sink := &MemorySink{}
	sink.TablesListed("id", "cc", []string{"orders"})

	lines := sink.Lines()
	assert.Equal(t, []string{"tables in cc: orders"}, lines)

	// Lines returns a copy, not the live buffer.
	lines[0] = "mutated"
	assert.Equal(t, []string{"tables in cc: orders"}, sink.Lines())

	sink.Reset()
	assert.Empty(t, sink.Lines())
}
