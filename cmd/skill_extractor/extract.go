package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/skill-extractor/internal/extraction"
	"github.com/jonathan/skill-extractor/internal/ingestion"
	"github.com/jonathan/skill-extractor/internal/observability"
	"github.com/jonathan/skill-extractor/internal/schemas"
	"github.com/jonathan/skill-extractor/internal/types"
	schemafiles "github.com/jonathan/skill-extractor/schemas"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract skills from a resume or job description",
	Long: "Extract skills from a text file and write the ranked matches, skill clusters and gaps as JSON " +
		"that validates against the extraction_result schema. Use --text - to read from stdin.",
	RunE: runExtract,
}

var (
	extractTextFile   string
	extractIndustry   string
	extractJobFile    string
	extractOutputFile string
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractTextFile, "text", "t", "", "Path to the document text (- for stdin)")
	extractCmd.Flags().StringVarP(&extractIndustry, "industry", "i", "technology", "Industry label (technology, finance, healthcare, marketing)")
	extractCmd.Flags().StringVarP(&extractJobFile, "job", "j", "", "Path to a job description used for corroboration and gap analysis")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")
	_ = extractCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	doc, err := ingestion.Load(extractTextFile, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read text: %w", err)
	}
	var jobDescription string
	if extractJobFile != "" {
		if extractJobFile == ingestion.StdinPath && extractTextFile == ingestion.StdinPath {
			return fmt.Errorf("--text and --job cannot both read stdin")
		}
		job, err := ingestion.Load(extractJobFile, cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jobDescription = job.Text
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	industry := types.ParseIndustry(extractIndustry)
	if industry == types.IndustryUnknown {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown industry %q, using general rules only\n", extractIndustry)
	}

	a.log.Debug("document loaded",
		zap.String("source", doc.Source),
		zap.String("hash", doc.Hash),
		zap.Int("lines", doc.Lines),
		zap.Int("bullets", doc.Bullets),
	)

	result := a.engine.Extract(ctx, extraction.Request{
		Text:           doc.Text,
		Industry:       industry,
		JobDescription: jobDescription,
	})

	if err := schemas.ValidateValue(schemafiles.ExtractionResult, result); err != nil {
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if extractVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintResult(result)
	}

	if extractOutputFile == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return err
	}
	if err := os.WriteFile(extractOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Extracted %d skills\nOutput: %s\n", len(result.Matches), extractOutputFile)
	return nil
}
