package textcheck

import "testing"

func TestCharacterErrorRate(t *testing.T) {
	cases := []struct {
		ref, cand string
		want      float64
	}{
		{"hello", "hello", 0},
		{"hello", "hullo", 0.2},
		{"", "", 0},
		{"", "anything", 1},
		{"abcd", "", 1},
	}
	for _, c := range cases {
		if got := CharacterErrorRate(c.ref, c.cand); got != c.want {
			t.Errorf("CER(%q, %q): got %f, want %f", c.ref, c.cand, got, c.want)
		}
	}
}

func TestWordErrorRate(t *testing.T) {
	cases := []struct {
		ref, cand string
		want      float64
	}{
		{"the quick brown fox", "the quick brown fox", 0},
		{"the quick brown fox", "the quick brown", 0.25},
		{"the quick brown fox", "the slow brown fox", 0.25},
		{"a b", "x y a b", 1.0}, // two insertions against two reference tokens
		{"", "", 0},
		{"", "word", 1},
	}
	for _, c := range cases {
		if got := WordErrorRate(c.ref, c.cand); got != c.want {
			t.Errorf("WER(%q, %q): got %f, want %f", c.ref, c.cand, got, c.want)
		}
	}
}

func TestNormalizeText(t *testing.T) {
	if got := normalizeText("  hello\n\tworld  \n"); got != "hello world" {
		t.Errorf("normalizeText: got %q", got)
	}
}
