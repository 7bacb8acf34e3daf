// Package commands implements the CLI commands for textmend.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "textmend",
	Short: "Repair and normalize malformed text documents",
	Long: `Textmend repairs malformed structured text (JSON, HTML, Markdown,
XML, CSV) into canonical form, and extracts typed records from documents
for schema inference.

Examples:
  # Repair a truncated JSON file and print the canonical form
  textmend format broken.json

  # Normalize HTML in place
  textmend format --write page.html

  # Extract records from a document as JSONL
  textmend extract report.md --output jsonl

  # Infer a JSON Schema from the extracted records
  textmend extract data.csv --schema`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.textmend.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".textmend")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TEXTMEND")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// readInput reads the named file, or stdin when the name is "-" or empty.
func readInput(name string) (content string, filename string, err error) {
	if name == "" || name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), name, nil
}
