// Package report writes the persisted score artifacts: the JSON document
// consumed by external tooling, a plain-text summary, and per-page diff
// overlay images.
package report

import (
	"fmt"
	"strings"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/scoring"
)

// FormatScoreText renders the human-readable score summary.
func FormatScoreText(doc *scoring.DocumentScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "overall_score: %.2f\n", doc.OverallScore)
	fmt.Fprintf(&b, "average_score: %.2f\n", doc.AverageScore)
	fmt.Fprintf(&b, "min_score: %.2f\n", doc.MinScore)
	fmt.Fprintf(&b, "page_count: %d\n", doc.PageCount)
	b.WriteString("\n")
	for _, p := range doc.Pages {
		fmt.Fprintf(&b, "page_%04d: %.2f\n", p.Page, p.Score)
	}
	return b.String()
}
