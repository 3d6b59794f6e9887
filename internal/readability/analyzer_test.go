package readability

import (
	"strings"
	"testing"
)

func TestCountSyllables(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"make", 1},   // silent trailing e
		{"table", 2},  // -le keeps its syllable
		{"reading", 2},
		{"syllable", 3},
		{"a", 1},
		{"", 1}, // floor of one
		{"rhythm", 1},
	}

	for _, c := range cases {
		if got := CountSyllables(c.word); got != c.want {
			t.Errorf("CountSyllables(%q) = %d, want %d", c.word, got, c.want)
		}
	}
}

func TestAnalyze_SimpleTextScoresHigh(t *testing.T) {
	// Roughly 11 words per sentence, mostly one-syllable words: raw
	// reading-ease lands around 75+, which the default curve maps to 95-100.
	sentence := "The cat sat on the mat and then it went home."
	text := strings.Repeat(sentence+" ", 10)

	an := NewAnalyzer().Analyze(text)

	if an.ReadingEase < 70 {
		t.Fatalf("reading ease = %.1f, want >= 70 for simple text", an.ReadingEase)
	}
	if an.Score < 95 || an.Score > 100 {
		t.Errorf("score = %d, want in [95,100]", an.Score)
	}
}

func TestAnalyze_ComplexTextScoresLow(t *testing.T) {
	text := strings.Repeat("Notwithstanding institutional heterogeneity, multidimensional organizational infrastructures necessitate comprehensive interdisciplinary contextualization methodologies alongside proportionality considerations and epistemological harmonization. ", 5)

	an := NewAnalyzer().Analyze(text)

	if an.ReadingEase >= 10 {
		t.Fatalf("reading ease = %.1f, want < 10 for very complex text", an.ReadingEase)
	}
	if an.Score < 10 || an.Score > 19 {
		t.Errorf("score = %d, want in [10,19]", an.Score)
	}
}

func TestAnalyzeWithTarget_SmallGapIsMaximal(t *testing.T) {
	a := NewAnalyzer()

	// Dense technical text whose ease sits near 35.
	text := strings.Repeat("The distributed consensus infrastructure guarantees transactional atomicity across heterogeneous replicated persistence layers during coordinated failover. ", 8)
	an := a.measure(text)
	target := int(an.ReadingEase) + 1 // gap of roughly 1

	scored := a.AnalyzeWithTarget(text, target)
	if scored.Score < 95 {
		t.Errorf("score = %d for gap ~1, want >= 95", scored.Score)
	}
}

func TestScoreAgainstTarget_Bands(t *testing.T) {
	cases := []struct {
		gap     float64
		lo, hi  int
	}{
		{0, 95, 100},
		{5, 95, 100},
		{6, 85, 94},
		{10, 85, 94},
		{12, 70, 84},
		{18, 55, 69},
		{25, 35, 54},
		{40, 10, 34},
		{80, 10, 10}, // floor
	}

	for _, c := range cases {
		got := scoreAgainstTarget(50+c.gap, 50)
		if got < c.lo || got > c.hi {
			t.Errorf("gap %.0f: score = %d, want in [%d,%d]", c.gap, got, c.lo, c.hi)
		}
	}
}

func TestScoreAgainstTarget_SymmetricAndMonotonic(t *testing.T) {
	target := 50.0
	prev := 101
	for gap := 0.0; gap <= 60; gap++ {
		above := scoreAgainstTarget(target+gap, target)
		below := scoreAgainstTarget(target-gap, target)
		if above != below {
			t.Fatalf("gap %.0f: asymmetric scores %d vs %d", gap, above, below)
		}
		if above > prev {
			t.Fatalf("gap %.0f: score %d increased from %d", gap, above, prev)
		}
		prev = above
	}
}

func TestAnalyze_DegenerateText(t *testing.T) {
	for _, text := range []string{"", "   ", "!!!", "# \n\n"} {
		an := NewAnalyzer().Analyze(text)
		if an.Score < 0 || an.Score > 100 {
			t.Errorf("degenerate %q: score %d out of range", text, an.Score)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	text := "Short sentences work. They read well. People like them."
	a := NewAnalyzer()
	first := a.Analyze(text)
	second := a.Analyze(text)
	if first != second {
		t.Errorf("analysis not idempotent: %+v vs %+v", first, second)
	}
}

func TestStripMarkup(t *testing.T) {
	md := "# Heading\n\nSome **bold** text with a [link](https://example.com) and `code`.\n\n- item one\n"
	got := StripMarkup(md)

	for _, banned := range []string{"#", "**", "](", "`", "- "} {
		if strings.Contains(got, banned) {
			t.Errorf("StripMarkup left %q in %q", banned, got)
		}
	}
	if !strings.Contains(got, "link") {
		t.Errorf("StripMarkup dropped link text: %q", got)
	}
}

func TestStripMarkup_HTML(t *testing.T) {
	content := "<html><body><p>Visible text here.</p><script>var x = 1;</script></body></html>"
	got := StripMarkup(content)

	if !strings.Contains(got, "Visible text here") {
		t.Errorf("expected visible text, got %q", got)
	}
	if strings.Contains(got, "var x") {
		t.Errorf("script content leaked: %q", got)
	}
}
