// Package output shapes results into the CLI's output formats: indented
// JSON, flat "key: value" text and a bordered table for tabular frames.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Format names accepted by the CLI.
const (
	FormatJSON  = "json"
	FormatText  = "text"
	FormatTable = "table"
)

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Text writes v as flat text: maps become sorted "key: value" lines,
// slices become items separated by "---" lines, everything else prints
// with its default formatting. v is round-tripped through JSON first so
// any struct with json tags renders uniformly.
func Text(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("flatten: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("flatten: %w", err)
	}
	renderText(w, generic)
	return nil
}

func renderText(w io.Writer, v any) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s: %s\n", k, scalar(val[k]))
		}
	case []any:
		for i, item := range val {
			if i > 0 {
				fmt.Fprintln(w, "---")
			}
			renderText(w, item)
		}
	default:
		fmt.Fprintln(w, scalar(val))
	}
}

func scalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		// Nested structures stay JSON-encoded on one line.
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", val)
	}
}
