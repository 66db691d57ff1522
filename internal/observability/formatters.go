// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-extractor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs every section of an extraction result.
func (p *Printer) PrintResult(result *types.ExtractionResult) {
	if result == nil {
		return
	}
	p.PrintSummary(result)
	p.PrintMatches(result.Matches)
	p.PrintClusters(result.SkillClusters)
	p.PrintGaps(result.MissingCriticalSkills, result.EmergingSkills)
}

// PrintSummary outputs the metadata of an extraction result.
func (p *Printer) PrintSummary(result *types.ExtractionResult) {
	if result == nil {
		return
	}
	meta := result.Metadata

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Industry:    %s\n", meta.Industry))
	sb.WriteString(fmt.Sprintf("Skills:      %d (confidence %.2f)\n", len(result.Matches), result.ConfidenceScore))
	sb.WriteString(fmt.Sprintf("Tokens:      %d (density %.2f)\n", meta.TokenCount, meta.TechnicalDensity))
	sb.WriteString(fmt.Sprintf("Sources:     pattern %d, ontology %d, ai %d\n",
		meta.SourceCounts.Pattern, meta.SourceCounts.Ontology, meta.SourceCounts.AI))
	aiState := "absent"
	if meta.AISignal {
		aiState = "used"
	}
	sb.WriteString(fmt.Sprintf("AI signal:   %s\n", aiState))
	sb.WriteString(fmt.Sprintf("Knowledge:   %s\n", meta.KnowledgeVersion))
	sb.WriteString(fmt.Sprintf("Engine:      %s (%d ms)", meta.EngineVersion, meta.ProcessingTimeMS))

	p.printBox("EXTRACTION SUMMARY", sb.String())
}

// PrintMatches outputs the top ranked matches with their scores.
func (p *Printer) PrintMatches(matches []types.SkillMatch) {
	if len(matches) == 0 {
		p.printBox("EXTRACTED SKILLS", "No skills found")
		return
	}

	var sb strings.Builder
	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := matches[i]
		sb.WriteString(fmt.Sprintf("#%-2d %-20s %-9s %.2f\n", i+1, truncate(m.NormalizedForm, 20), m.MatchType, m.ConfidenceScore))

		var details []string
		if m.SkillLevel != nil && *m.SkillLevel != types.LevelUnknown {
			details = append(details, m.SkillLevel.String())
		}
		if m.ExperienceYears != nil {
			details = append(details, fmt.Sprintf("%d yrs", *m.ExperienceYears))
		}
		if m.Category != "" {
			details = append(details, m.Category)
		}
		if len(details) > 0 {
			sb.WriteString(fmt.Sprintf("    %s\n", strings.Join(details, ", ")))
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more skills", len(matches)-maxItemsToShow))
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintClusters outputs the detected skill clusters.
func (p *Printer) PrintClusters(clusters []types.SkillCluster) {
	if len(clusters) == 0 {
		return
	}

	var sb strings.Builder
	for i, c := range clusters {
		sb.WriteString(fmt.Sprintf("%s (%s) %.0f%%\n", c.ClusterName, c.ClusterType, c.CompletenessScore*100))
		sb.WriteString(fmt.Sprintf("  [%s]", strings.Join(c.Skills, ", ")))
		if i < len(clusters)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SKILL CLUSTERS", sb.String())
}

// PrintGaps outputs missing and emerging skills.
func (p *Printer) PrintGaps(missing, emerging []string) {
	if len(missing) == 0 && len(emerging) == 0 {
		return
	}

	var sb strings.Builder
	if len(missing) > 0 {
		sb.WriteString("Missing:\n")
		for _, s := range missing {
			sb.WriteString(fmt.Sprintf("  ⚠ %s\n", s))
		}
	}
	if len(emerging) > 0 {
		if len(missing) > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Emerging:\n")
		for _, s := range emerging {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", s))
		}
	}

	p.printBox("SKILL GAPS", strings.TrimSuffix(sb.String(), "\n"))
}
