package cli

import (
	"fmt"

	"github.com/ppiankov/tgextract/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Filter a chat export by keywords and write the matches",
	Long: `Run loads the export, keeps every message whose text contains one of the
keywords (substring match, case-insensitive unless --case-sensitive), and
writes the configured fields of each match to <output>.txt or <output>.json.

Example:
  tgextract run -k cat -k dog
  tgextract run -i export/result.json -o cats -f json --fields date,from,text
  TGEXTRACT_KEYWORDS=cat,dog tgextract run --dedupe`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()
	flags.StringP("input", "i", "result.json", "chat export to read")
	flags.StringP("output", "o", "out", "output path without extension")
	flags.StringSliceP("keyword", "k", nil, "keyword to match (repeatable or comma-separated)")
	flags.Bool("case-sensitive", false, "match keywords case-sensitively")
	flags.StringP("format", "f", "text", "output format (text, json)")
	flags.String("date-format", "%Y-%m-%d %H:%M:%S", "strftime pattern for the date field")
	flags.StringSlice("fields", []string{"date", "text"}, "fields to include, in output order")
	flags.Bool("dedupe", false, "skip matches whose cleaned text was already written")

	for key, flag := range map[string]string{
		"input_file":        "input",
		"output_file":       "output",
		"keywords":          "keyword",
		"case_sensitive":    "case-sensitive",
		"output_format":     "format",
		"date_format":       "date-format",
		"fields_to_include": "fields",
		"dedupe":            "dedupe",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	logger.Debug("starting run",
		zap.String("input", cfg.InputFile),
		zap.String("output", cfg.OutputPath()),
		zap.Strings("keywords", cfg.Keywords),
		zap.Bool("case_sensitive", cfg.CaseSensitive),
		zap.Strings("fields", cfg.FieldsToInclude))

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	result, err := p.Run()
	if err != nil {
		return err
	}

	if result.Duplicates > 0 {
		logger.Info("duplicates skipped", zap.Int("count", result.Duplicates))
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
	return nil
}
