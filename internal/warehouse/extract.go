package warehouse

import (
	"regexp"
	"sort"
)

// newTablePattern matches `FROM <ident>` or `JOIN <ident>`, with an
// optional `<schema>.` prefix that is stripped from the capture.
func newTablePattern(schema string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:FROM|JOIN)\s+(?:` + regexp.QuoteMeta(schema) + `\s*\.\s*)?([A-Za-z_][A-Za-z0-9_]*)`)
}

// ExtractTables scans the query text for table names referenced after
// FROM or JOIN and returns them de-duplicated, in sorted order.
//
// This is a best-effort identifier scanner, not a SQL parser. It does
// not understand CTEs, subqueries, quoted identifiers or aliases: a CTE
// name will be reported as if it were a table, and a table referenced
// only through a quoted identifier will be missed. Callers must tolerate
// both false positives and false negatives.
func (r *Reporter) ExtractTables(query string) []string {
	seen := make(map[string]struct{})
	for _, match := range r.pattern.FindAllStringSubmatch(query, -1) {
		seen[match[1]] = struct{}{}
	}
	tables := make([]string, 0, len(seen))
	for name := range seen {
		tables = append(tables, name)
	}
	sort.Strings(tables)
	return tables
}
