package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/internal/scoring"
)

// WriteJSON persists the document score as an indented JSON artifact. The
// field layout is a contract with external reporting tools.
func WriteJSON(doc *scoring.DocumentScore, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write score json %s: %w", path, err)
	}
	return nil
}

// WriteText persists the plain-text score summary next to the JSON.
func WriteText(doc *scoring.DocumentScore, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(FormatScoreText(doc)), 0o644); err != nil {
		return fmt.Errorf("write score text %s: %w", path, err)
	}
	return nil
}
