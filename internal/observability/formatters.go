// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/jonathan/match-insight/internal/audit"
	"github.com/jonathan/match-insight/internal/explain"
	"github.com/jonathan/match-insight/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for match results and explanations
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
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
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResult outputs a human-readable summary of one match.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidate: %s\n", result.CandidateName))
	sb.WriteString(fmt.Sprintf("Position:  %s\n", result.JobTitle))
	sb.WriteString(fmt.Sprintf("Score:     %.1f%% (%s)\n", result.OverallScore*100, result.ScoreLevel))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skills:     %.0f%%\n", result.SkillsScore*100))
	sb.WriteString(fmt.Sprintf("Experience: %.0f%%\n", result.ExperienceScore*100))
	sb.WriteString(fmt.Sprintf("Education:  %.0f%%\n", result.EducationScore*100))
	sb.WriteString(fmt.Sprintf("Keywords:   %.0f%%", result.KeywordScore*100))

	if missing := result.MissingSkills(); len(missing) > 0 {
		count := min(len(missing), maxItemsToShow)
		sb.WriteString("\n\nMissing Skills:\n")
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", missing[i]))
		}
		if len(missing) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(missing)-maxItemsToShow))
		}
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreBreakdown outputs the per-factor score table.
func (p *Printer) PrintScoreBreakdown(breakdown *types.ScoreBreakdown) {
	if breakdown == nil {
		return
	}

	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Factor", "Score", "Weight", "Weighted"})

	rows := []struct {
		name                    string
		score, weight, weighted float64
	}{
		{"Skills", breakdown.SkillsScore, breakdown.SkillsWeight, breakdown.SkillsWeighted},
		{"Experience", breakdown.ExperienceScore, breakdown.ExperienceWeight, breakdown.ExperienceWeighted},
		{"Education", breakdown.EducationScore, breakdown.EducationWeight, breakdown.EducationWeighted},
		{"Semantic", breakdown.SemanticScore, breakdown.SemanticWeight, breakdown.SemanticWeighted},
		{"Keywords", breakdown.KeywordScore, breakdown.KeywordWeight, breakdown.KeywordWeighted},
	}
	for _, row := range rows {
		table.Append([]string{
			row.name,
			fmt.Sprintf("%.3f", row.score),
			fmt.Sprintf("%.2f", row.weight),
			fmt.Sprintf("%.3f", row.weighted),
		})
	}
	table.SetFooter([]string{"Total", "", "", fmt.Sprintf("%.3f", breakdown.TotalScore())})
	table.Render()
}

// PrintRanking outputs a ranked candidate table, best first.
func (p *Printer) PrintRanking(results []*types.MatchResult) {
	if len(results) == 0 {
		return
	}

	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Rank", "Candidate", "Score", "Level"})
	for i, result := range results {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			result.CandidateName,
			fmt.Sprintf("%.1f%%", result.OverallScore*100),
			string(result.ScoreLevel),
		})
	}
	table.Render()
}

// PrintFeatureImportance outputs the weighted-contribution analysis table.
func (p *Printer) PrintFeatureImportance(importance *explain.FeatureImportanceResult) {
	if importance == nil {
		return
	}

	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Feature", "Score", "Contribution", "Share", "Direction"})
	for _, f := range importance.Features {
		table.Append([]string{
			f.FeatureName,
			fmt.Sprintf("%.2f", f.RawScore),
			fmt.Sprintf("%.4f", f.WeightedContribution),
			fmt.Sprintf("%.1f%%", f.ContributionPercentage),
			f.Direction,
		})
	}
	table.SetFooter([]string{"Total", "", fmt.Sprintf("%.4f", importance.TotalScore), "", ""})
	table.Render()
}

// PrintSHAP outputs the Shapley attribution table with base and output values.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSHAP(explanation *explain.SHAPExplanation) {
	if explanation == nil {
		return
	}

	fmt.Fprintf(p.out, "Base value:   %.4f\n", explanation.ExpectedValue)
	fmt.Fprintf(p.out, "Output value: %.4f\n", explanation.PredictedValue)

	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Feature", "Value", "SHAP", "Direction"})
	for _, sv := range explanation.ShapValues {
		table.Append([]string{
			sv.FeatureName,
			fmt.Sprintf("%.2f", sv.FeatureValue),
			fmt.Sprintf("%+.4f", sv.ShapValue),
			sv.Direction,
		})
	}
	table.Render()
}

// PrintLIME outputs the surrogate model weights and fit quality.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintLIME(explanation *explain.LIMEExplanation) {
	if explanation == nil {
		return
	}

	fmt.Fprintf(p.out, "Local fit R²: %.4f over %d samples\n", explanation.RSquared, explanation.NumSamples)

	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"Rank", "Feature", "Weight", "Direction"})
	for _, fw := range explanation.FeatureWeights {
		table.Append([]string{
			fmt.Sprintf("%d", fw.ImportanceRank),
			fw.FeatureName,
			fmt.Sprintf("%+.4f", fw.Weight),
			fw.Direction,
		})
	}
	table.Render()
}

// PrintExplanation outputs the narrative explanation boxes.
func (p *Printer) PrintExplanation(explanation *explain.MatchExplanation) {
	if explanation == nil {
		return
	}

	p.printBox("SUMMARY", explanation.Summary)

	if len(explanation.Strengths) > 0 {
		p.printBox("STRENGTHS", "• "+strings.Join(explanation.Strengths, "\n• "))
	}
	if len(explanation.Gaps) > 0 {
		p.printBox("GAPS", "• "+strings.Join(explanation.Gaps, "\n• "))
	}
	if len(explanation.Recommendations) > 0 {
		p.printBox("RECOMMENDATIONS", "• "+strings.Join(explanation.Recommendations, "\n• "))
	}
}

// PrintAuditRecords outputs recent audit rows, newest first.
func (p *Printer) PrintAuditRecords(records []audit.Record) {
	if len(records) == 0 {
		p.printBox("AUDIT TRAIL", "No records found")
		return
	}

	table := tablewriter.NewWriter(p.out)
	table.SetHeader([]string{"ID", "Action", "Candidate", "Job", "Score", "When"})
	for _, r := range records {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		table.Append([]string{
			id,
			r.Action,
			r.CandidateName,
			r.JobTitle,
			fmt.Sprintf("%.1f%%", r.OverallScore*100),
			r.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	table.Render()
}
