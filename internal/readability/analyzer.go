package readability

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Analysis holds the raw text statistics behind a readability score.
type Analysis struct {
	Sentences        int     `json:"sentences"`
	Words            int     `json:"words"`
	Syllables        int     `json:"syllables"`
	AvgSentenceLen   float64 `json:"avg_sentence_len"`
	AvgSyllablesWord float64 `json:"avg_syllables_word"`
	ReadingEase      float64 `json:"reading_ease"` // Clamped to [0,100]
	Score            int     `json:"score"`        // 0-100 readability dimension score
}

// Analyzer computes the reading-ease metric and maps it to a 0-100 score,
// either against an absolute curve or against an audience target.
type Analyzer struct{}

// NewAnalyzer creates a new readability analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze scores the text against the default curve, which rewards broadly
// accessible writing.
func (a *Analyzer) Analyze(text string) Analysis {
	an := a.measure(text)
	an.Score = scoreAbsolute(an.ReadingEase)
	return an
}

// AnalyzeWithTarget scores the text by its distance from an audience-specific
// reading-ease target. The penalty is symmetric: text far simpler than the
// target scores the same as text equally far more complex.
func (a *Analyzer) AnalyzeWithTarget(text string, target int) Analysis {
	an := a.measure(text)
	an.Score = scoreAgainstTarget(an.ReadingEase, float64(target))
	return an
}

func (a *Analyzer) measure(text string) Analysis {
	plain := StripMarkup(text)

	sentences := countSentences(plain)
	words := splitWords(plain)
	wordCount := len(words)

	// Degenerate text still gets a score: treat it as one sentence of one
	// word so the averages stay defined.
	if sentences == 0 {
		sentences = 1
	}
	if wordCount == 0 {
		wordCount = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}
	if syllables == 0 {
		syllables = 1
	}

	asl := float64(wordCount) / float64(sentences)
	asw := float64(syllables) / float64(wordCount)

	ease := 206.835 - 1.015*asl - 84.6*asw
	if ease < 0 {
		ease = 0
	}
	if ease > 100 {
		ease = 100
	}

	return Analysis{
		Sentences:        sentences,
		Words:            wordCount,
		Syllables:        syllables,
		AvgSentenceLen:   asl,
		AvgSyllablesWord: asw,
		ReadingEase:      ease,
	}
}

// curveKnot is one point on the absolute scoring curve; scores between knots
// are linearly interpolated.
type curveKnot struct {
	ease  float64
	score float64
}

// Monotonic curve: easy text (ease >= 70) lands near 95-100, very complex
// text (ease < 10) lands in 10-19.
var absoluteCurve = []curveKnot{
	{0, 10},
	{10, 19},
	{20, 35},
	{30, 48},
	{40, 60},
	{50, 72},
	{60, 85},
	{70, 95},
	{100, 100},
}

func scoreAbsolute(ease float64) int {
	for i := 1; i < len(absoluteCurve); i++ {
		hi := absoluteCurve[i]
		if ease <= hi.ease {
			lo := absoluteCurve[i-1]
			frac := (ease - lo.ease) / (hi.ease - lo.ease)
			return clampScore(lo.score + frac*(hi.score-lo.score))
		}
	}
	return 100
}

func scoreAgainstTarget(ease, target float64) int {
	gap := ease - target
	if gap < 0 {
		gap = -gap
	}

	var s float64
	switch {
	case gap <= 5:
		s = 100 - gap // 95..100
	case gap <= 10:
		s = 94 - (gap-5)*9/5 // 85..94
	case gap <= 15:
		s = 84 - (gap-10)*14/5 // 70..84
	case gap <= 20:
		s = 69 - (gap-15)*14/5 // 55..69
	case gap <= 30:
		s = 54 - (gap-20)*19/10 // 35..54
	default:
		s = 35 - (gap - 30)
		if s < 10 {
			s = 10
		}
	}
	return clampScore(s)
}

func clampScore(s float64) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return int(s + 0.5)
}

// CountSyllables approximates the syllable count of a word by counting vowel
// groups, with a correction for a silent trailing 'e'. Every word counts as
// at least one syllable.
func CountSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Silent trailing 'e': "make" has one syllable, not two.
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func countSentences(text string) int {
	count := 0
	inTerminator := false
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if !inTerminator {
				count++
			}
			inTerminator = true
		} else {
			inTerminator = false
		}
	}
	return count
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

var (
	codeBlockRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`]*`")
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdImageRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdHeadingRe  = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdEmphasisRe = regexp.MustCompile(`[*_]{1,3}`)
	mdBulletRe   = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+\.)\s+`)
	mdQuoteRe    = regexp.MustCompile(`(?m)^>\s?`)
)

// StripMarkup removes markdown (and, if present, HTML) formatting so the
// readability statistics only see prose.
func StripMarkup(text string) string {
	if looksLikeHTML(text) {
		text = stripHTML(text)
	}
	text = codeBlockRe.ReplaceAllString(text, " ")
	text = mdImageRe.ReplaceAllString(text, " ")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = inlineCodeRe.ReplaceAllString(text, " ")
	text = mdHeadingRe.ReplaceAllString(text, "")
	text = mdBulletRe.ReplaceAllString(text, "")
	text = mdQuoteRe.ReplaceAllString(text, "")
	text = mdEmphasisRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func looksLikeHTML(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<body") ||
		strings.Contains(lower, "</p>") || strings.Contains(lower, "</div>")
}

// stripHTML extracts visible text, skipping script and style subtrees.
func stripHTML(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return buf.String()
}
