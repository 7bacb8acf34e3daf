package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/textmend/textmend/internal/logger"
	"github.com/textmend/textmend/pkg/textmend"
)

var formatCmd = &cobra.Command{
	Use:   "format [file...]",
	Short: "Repair and canonically format documents",
	Long: `Repair malformed documents and print them in canonical form.

The format is chosen from the file extension, or sniffed from the
content when reading stdin. Formatting never fails: content that
cannot be repaired is returned as close to verbatim as possible.

Examples:
  textmend format broken.json
  textmend format --write page.html report.md
  cat data.json | textmend format`,
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	flags := formatCmd.Flags()
	flags.BoolP("write", "w", false, "rewrite files in place instead of printing")
	flags.StringP("output", "o", "", "output file (default: stdout)")
}

func runFormat(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	write, _ := cmd.Flags().GetBool("write")
	outputPath, _ := cmd.Flags().GetString("output")

	if write && len(args) == 0 {
		return fmt.Errorf("--write requires at least one file argument")
	}

	if len(args) == 0 {
		args = []string{"-"}
	}

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			logError("creating %s: %v", outputPath, err)
			return err
		}
		defer f.Close()
		out = f
	}

	for _, name := range args {
		content, filename, err := readInput(name)
		if err != nil {
			logError("%v", err)
			return err
		}

		formatted := textmend.FormatContent(content, filename)

		if write {
			if err := os.WriteFile(name, []byte(formatted+"\n"), 0o644); err != nil {
				logError("writing %s: %v", name, err)
				return err
			}
			logger.Info("rewrote file", "file", name)
			continue
		}

		if _, err := fmt.Fprintln(out, formatted); err != nil {
			return err
		}
	}

	return nil
}
