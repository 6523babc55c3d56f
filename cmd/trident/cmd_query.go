package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joacominatel/trident/internal/output"
	"github.com/joacominatel/trident/internal/tui"
	"github.com/joacominatel/trident/internal/warehouse"
)

var (
	queryFormat      string
	querySchema      string
	queryParams      []string
	queryQuiet       bool
	queryInteractive bool
)

var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Run a Redshift query with schema context",
	Long: `Run a SQL query against the warehouse. Before execution the
available tables in the schema and the columns of every table the query
references are reported, then the query runs and the results print in
the chosen format.

With --interactive an editor console opens instead; the SQL argument is
then optional.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryFormat, "format", "f", output.FormatTable, "result format: table, json or text")
	queryCmd.Flags().StringVar(&querySchema, "schema", "", "warehouse schema (default from config)")
	queryCmd.Flags().StringArrayVarP(&queryParams, "param", "p", nil, "positional query parameter ($1, $2, ...); repeatable")
	queryCmd.Flags().BoolVarP(&queryQuiet, "quiet", "q", false, "suppress the schema context report")
	queryCmd.Flags().BoolVarP(&queryInteractive, "interactive", "i", false, "open the interactive console")
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := cfg.Redshift.Validate(); err != nil {
		return err
	}

	schema := cfg.Schema
	if querySchema != "" {
		schema = querySchema
	}

	ctx := cmd.Context()

	if queryInteractive {
		sink := &warehouse.MemorySink{}
		reporter, err := warehouse.Connect(ctx, cfg.Redshift.DSN(),
			warehouse.WithSchema(schema),
			warehouse.WithSink(sink))
		if err != nil {
			return err
		}
		defer reporter.Close(ctx)
		return tui.Run(reporter, sink, cfg.Redshift.Database)
	}

	if len(args) == 0 {
		return fmt.Errorf("a SQL argument is required (or use --interactive)")
	}
	sql := args[0]

	var sink warehouse.Sink = warehouse.WriterSink{W: os.Stdout}
	if queryQuiet {
		sink = warehouse.NopSink{}
	} else if verbose {
		sink = warehouse.LogSink{Log: logger}
	}

	reporter, err := warehouse.Connect(ctx, cfg.Redshift.DSN(),
		warehouse.WithSchema(schema),
		warehouse.WithSink(sink))
	if err != nil {
		return err
	}
	defer reporter.Close(ctx)

	params := make([]any, len(queryParams))
	for i, p := range queryParams {
		params[i] = p
	}

	switch queryFormat {
	case output.FormatTable:
		frame, err := reporter.Frame(ctx, sql, params...)
		if err != nil {
			return err
		}
		fmt.Println(output.FrameTable(frame))
		return nil
	case output.FormatJSON:
		rows, err := reporter.Execute(ctx, sql, params...)
		if err != nil {
			return err
		}
		return output.JSON(os.Stdout, rows)
	case output.FormatText:
		rows, err := reporter.Execute(ctx, sql, params...)
		if err != nil {
			return err
		}
		return output.Text(os.Stdout, rows)
	default:
		return fmt.Errorf("unknown format %q", queryFormat)
	}
}
