// Package textcheck runs OCR over matching page renders and reports how far
// the candidate's recognized text diverges from the reference's. The rates
// are diagnostics for triage; they never feed the visual score.
package textcheck

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/arbovm/levenshtein"
	"github.com/otiai10/gosseract/v2"

	"github.com/superdoc-dev/superdoc-visual-benchmarks/pkg/imaging"
)

// PageText holds the per-page fidelity diagnostics.
type PageText struct {
	Page          int     `json:"page"`
	ReferenceText string  `json:"reference_text"`
	CandidateText string  `json:"candidate_text"`
	CER           float64 `json:"cer"`
	WER           float64 `json:"wer"`
}

// Checker wraps a Tesseract client for page text extraction.
type Checker struct {
	client *gosseract.Client
}

// NewChecker creates an OCR checker configured for document text.
func NewChecker() (*Checker, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	return &Checker{client: client}, nil
}

// Close releases OCR resources.
func (c *Checker) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *Checker) recognize(img *imaging.RGB) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.ToImage()); err != nil {
		return "", fmt.Errorf("encode page for OCR: %w", err)
	}
	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set OCR image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return normalizeText(text), nil
}

// CheckPage OCRs both renders and computes character and word error rates of
// the candidate text against the reference text.
func (c *Checker) CheckPage(page int, ref, cand *imaging.RGB) (PageText, error) {
	refText, err := c.recognize(ref)
	if err != nil {
		return PageText{}, err
	}
	candText, err := c.recognize(cand)
	if err != nil {
		return PageText{}, err
	}

	return PageText{
		Page:          page,
		ReferenceText: refText,
		CandidateText: candText,
		CER:           CharacterErrorRate(refText, candText),
		WER:           WordErrorRate(refText, candText),
	}, nil
}

// normalizeText collapses all whitespace runs to single spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CharacterErrorRate is the character-level edit distance divided by the
// reference length. Both texts empty yields 0; empty reference with non-empty
// candidate yields 1.
func CharacterErrorRate(ref, cand string) float64 {
	if ref == "" {
		if cand == "" {
			return 0
		}
		return 1
	}
	d := levenshtein.Distance(ref, cand)
	return float64(d) / float64(len([]rune(ref)))
}

// WordErrorRate is the token-level edit distance divided by the reference
// token count.
func WordErrorRate(ref, cand string) float64 {
	refTokens := strings.Fields(ref)
	candTokens := strings.Fields(cand)
	if len(refTokens) == 0 {
		if len(candTokens) == 0 {
			return 0
		}
		return 1
	}
	return float64(tokenDistance(refTokens, candTokens)) / float64(len(refTokens))
}

// tokenDistance is the Levenshtein distance over whole tokens.
func tokenDistance(a, b []string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minOf(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
