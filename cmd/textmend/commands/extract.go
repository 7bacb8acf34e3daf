package commands

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/textmend/textmend/internal/logger"
	"github.com/textmend/textmend/internal/output"
	"github.com/textmend/textmend/pkg/record"
	"github.com/textmend/textmend/pkg/schema"
	"github.com/textmend/textmend/pkg/textmend"
)

// extractOptions holds the validated extract command settings.
type extractOptions struct {
	Output string `validate:"oneof=json jsonl yaml"`
	Schema bool
}

var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Extract typed records from documents",
	Long: `Extract typed records (headings, links, table rows, key/value
pairs and more) from documents for schema inference.

Each record carries a "type" field naming its kind. With --schema the
records themselves are replaced by a JSON Schema inferred from them.

Examples:
  textmend extract report.md
  textmend extract data.csv --output jsonl
  textmend extract page.html --schema`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()
	flags.StringP("output", "o", "json", "output format: json, jsonl, yaml")
	flags.Bool("schema", false, "emit an inferred JSON Schema instead of records")
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	outputFormat, _ := cmd.Flags().GetString("output")
	emitSchema, _ := cmd.Flags().GetBool("schema")

	opts := extractOptions{Output: outputFormat, Schema: emitSchema}
	if err := validator.New().Struct(opts); err != nil {
		logError("invalid options: %v", err)
		return err
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	var records []record.Record
	for _, name := range args {
		content, filename, err := readInput(name)
		if err != nil {
			logError("%v", err)
			return err
		}
		records = append(records, textmend.ParseFileContent(content, filename)...)
	}
	logger.Debug("extraction finished", "records", len(records))

	if opts.Schema {
		out, err := schema.Infer(records).MarshalIndent()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, string(out))
		return err
	}

	return output.Records(os.Stdout, output.Format(opts.Output), records)
}
