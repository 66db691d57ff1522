package main

import (
	"fmt"

	"github.com/jonathan/skill-extractor/internal/db"
	"github.com/jonathan/skill-extractor/internal/knowledge"
	"github.com/jonathan/skill-extractor/internal/ontology"
	"github.com/jonathan/skill-extractor/internal/patterns"
	"github.com/jonathan/skill-extractor/internal/schemas"
	"github.com/jonathan/skill-extractor/internal/trending"
	schemafiles "github.com/jonathan/skill-extractor/schemas"
	"github.com/spf13/cobra"
)

var checkKnowledgeCmd = &cobra.Command{
	Use:   "check-knowledge",
	Short: "Validate the ontology, trending data and pattern rules",
	Long: "Load the configured knowledge (files, database or embedded defaults), validate knowledge files " +
		"against their schemas and compile every pattern rule set. Exits non-zero on any error.",
	RunE: runCheckKnowledge,
}

var (
	checkOntologyFile string
	checkTrendingFile string
)

func init() {
	checkKnowledgeCmd.Flags().StringVar(&checkOntologyFile, "ontology", "", "Path to an ontology JSON file (overrides knowledge.ontology_file)")
	checkKnowledgeCmd.Flags().StringVar(&checkTrendingFile, "trending", "", "Path to a trending skills JSON file (overrides knowledge.trending_file)")
	rootCmd.AddCommand(checkKnowledgeCmd)
}

func runCheckKnowledge(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	rules, err := patterns.Default()
	if err != nil {
		return fmt.Errorf("failed to compile pattern rules: %w", err)
	}

	ontologyFile := cfg.Knowledge.OntologyFile
	if checkOntologyFile != "" {
		ontologyFile = checkOntologyFile
	}
	trendingFile := cfg.Knowledge.TrendingFile
	if checkTrendingFile != "" {
		trendingFile = checkTrendingFile
	}

	var source knowledge.Source
	useDatabase := cfg.Knowledge.DatabaseURL != "" && checkOntologyFile == "" && checkTrendingFile == ""
	if useDatabase {
		database, err := db.Connect(ctx, cfg.Knowledge.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		source = &knowledge.DBSource{DB: database, Rules: rules}
	} else {
		if err := validateKnowledgeFile(schemafiles.Ontology, ontologyFile, ontology.DefaultJSON()); err != nil {
			return err
		}
		if err := validateKnowledgeFile(schemafiles.Trending, trendingFile, trending.DefaultJSON()); err != nil {
			return err
		}
		source = &knowledge.FileSource{OntologyFile: ontologyFile, TrendingFile: trendingFile, Rules: rules}
	}

	snapshot, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load knowledge from %s: %w", source.Name(), err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Knowledge OK (%s)\n", source.Name())
	_, _ = fmt.Fprintf(out, "  Version:         %s\n", snapshot.Version)
	_, _ = fmt.Fprintf(out, "  Skills:          %d\n", snapshot.Ontology.Len())
	_, _ = fmt.Fprintf(out, "  Compound skills: %d\n", len(snapshot.Ontology.Compounds()))
	_, _ = fmt.Fprintf(out, "  Pattern rules:   %d\n", snapshot.Rules.RuleCount())
	_, _ = fmt.Fprintf(out, "  Trending skills: %d\n", snapshot.Trending.Len())
	return nil
}

// validateKnowledgeFile checks path, or the embedded default when path is
// empty, against the named schema.
func validateKnowledgeFile(schemaName, path string, embedded []byte) error {
	if path == "" {
		if err := schemas.ValidateBytes(schemaName, embedded); err != nil {
			return fmt.Errorf("embedded knowledge does not validate against %s: %w", schemaName, err)
		}
		return nil
	}
	if err := schemas.ValidateFile(schemaName, path); err != nil {
		return fmt.Errorf("%s does not validate against %s: %w", path, schemaName, err)
	}
	return nil
}
