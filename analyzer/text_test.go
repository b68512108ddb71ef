package analyzer

import (
	"math"
	"strings"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"   \n\t ", 0},
		{"one", 1},
		{"one two  three\nfour", 4},
	}
	for _, tt := range tests {
		if got := WordCount(tt.text); got != tt.want {
			t.Errorf("WordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{1, 1},
		{200, 1},
		{201, 2},
		{250, 2},
		{400, 2},
		{401, 3},
	}
	for _, tt := range tests {
		if got := ReadingTime(tt.words); got != tt.want {
			t.Errorf("ReadingTime(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestSentiment(t *testing.T) {
	engine := NewTextEngine(DefaultLexicon())
	s := engine.Sentiment("good good bad")

	if !almostEqual(s.Score, 1.0/3.0) {
		t.Errorf("score = %v, want 1/3", s.Score)
	}
	// Comparative divides the normalized score by the word count again;
	// the stored-record format depends on that arithmetic.
	if !almostEqual(s.Comparative, (1.0/3.0)/3.0) {
		t.Errorf("comparative = %v, want 1/9", s.Comparative)
	}
	if len(s.PositiveWords) != 2 || s.PositiveWords[0] != "good" || s.PositiveWords[1] != "good" {
		t.Errorf("positive words = %v", s.PositiveWords)
	}
	if len(s.NegativeWords) != 1 || s.NegativeWords[0] != "bad" {
		t.Errorf("negative words = %v", s.NegativeWords)
	}
}

func TestSentimentEmptyText(t *testing.T) {
	engine := NewTextEngine(DefaultLexicon())
	s := engine.Sentiment("")

	if s.Score != 0 || s.Comparative != 0 {
		t.Errorf("empty text should score zero, got %+v", s)
	}
	if s.PositiveWords == nil || s.NegativeWords == nil {
		t.Error("matched word lists should be empty, not nil")
	}
}

func TestSentimentCustomLexicon(t *testing.T) {
	engine := NewTextEngine(Lexicon{
		Positive: []string{"rad"},
		Negative: []string{"lame"},
	})
	s := engine.Sentiment("rad lame lame")

	if !almostEqual(s.Score, -1.0/3.0) {
		t.Errorf("score = %v, want -1/3", s.Score)
	}
	if len(s.PositiveWords) != 1 || len(s.NegativeWords) != 2 {
		t.Errorf("matched words = %v / %v", s.PositiveWords, s.NegativeWords)
	}
}

func TestReadabilityBounds(t *testing.T) {
	if got := Readability(""); got != 0 {
		t.Errorf("empty text readability = %v, want 0", got)
	}
	// Simple short words max the formula out at the upper clamp.
	if got := Readability("Hi."); got != 100 {
		t.Errorf("single short word readability = %v, want 100", got)
	}
	// Dense polysyllabic prose drives it to the lower clamp.
	dense := "Considerations regarding extraordinary complications necessitate deliberation."
	if got := Readability(dense); got != 0 {
		t.Errorf("dense text readability = %v, want 0", got)
	}

	for _, text := range []string{"", "word", "The cat sat. The dog ran!", dense} {
		got := Readability(text)
		if math.IsNaN(got) || math.IsInf(got, 0) || got < 0 || got > 100 {
			t.Errorf("Readability(%q) = %v, out of [0,100]", text, got)
		}
	}
}

func TestAnalyzeKeywords(t *testing.T) {
	text := "golang golang golang testing testing code code code code web"
	density, top := AnalyzeKeywords(text)

	// "web" is three characters and filtered out; 9 qualifying tokens.
	if len(top) != 3 {
		t.Fatalf("expected 3 keywords, got %d: %v", len(top), top)
	}
	if top[0].Word != "code" || top[0].Count != 4 {
		t.Errorf("top keyword = %+v", top[0])
	}
	if top[1].Word != "golang" || top[2].Word != "testing" {
		t.Errorf("keyword order = %v", top)
	}
	if !almostEqual(top[0].Density, 4.0/9.0*100) {
		t.Errorf("density = %v, want %v", top[0].Density, 4.0/9.0*100)
	}
	if !almostEqual(density["golang"], 3.0/9.0*100) {
		t.Errorf("density map = %v", density)
	}
	if _, found := density["web"]; found {
		t.Error("short tokens must be filtered")
	}
}

func TestAnalyzeKeywordsCapAndTies(t *testing.T) {
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliet", "kilo", "lima",
	}
	density, top := AnalyzeKeywords(strings.Join(words, " "))

	if len(top) != 10 {
		t.Fatalf("expected 10 keywords, got %d", len(top))
	}
	// Equal counts keep first-seen order.
	for i, want := range words[:10] {
		if top[i].Word != want {
			t.Errorf("top[%d] = %q, want %q", i, top[i].Word, want)
		}
	}
	// The density map mirrors the capped top list, nothing more.
	if len(density) != 10 {
		t.Errorf("density map should hold the top 10 only, got %d entries", len(density))
	}
	for _, kw := range top {
		if _, found := density[kw.Word]; !found {
			t.Errorf("density missing top keyword %q", kw.Word)
		}
	}
	if _, found := density["kilo"]; found {
		t.Error("density must not include words beyond the top 10")
	}
}

func TestAnalyzeKeywordsEmpty(t *testing.T) {
	density, top := AnalyzeKeywords("a an the of")
	if len(density) != 0 || len(top) != 0 {
		t.Errorf("expected no keywords, got %v / %v", density, top)
	}
}

func TestMetricsAggregation(t *testing.T) {
	engine := NewTextEngine(DefaultLexicon())
	text := "This product is good overall. It really works great here! Does anyone want to disagree?"
	m := engine.Metrics(text, 3)

	if m.WordCount != 15 {
		t.Errorf("wordCount = %d", m.WordCount)
	}
	if m.ReadingTimeMinutes != 1 {
		t.Errorf("readingTimeMinutes = %d", m.ReadingTimeMinutes)
	}
	if m.Content.SentenceCount != 3 {
		t.Errorf("sentenceCount = %d", m.Content.SentenceCount)
	}
	if !almostEqual(m.Content.AverageSentenceLength, 5) {
		t.Errorf("averageSentenceLength = %v", m.Content.AverageSentenceLength)
	}
	if m.Content.ParagraphCount != 3 || !almostEqual(m.Content.AverageParagraphLength, 5) {
		t.Errorf("paragraph metrics = %d / %v", m.Content.ParagraphCount, m.Content.AverageParagraphLength)
	}
	if len(m.Sentiment.PositiveWords) != 2 {
		t.Errorf("positive words = %v", m.Sentiment.PositiveWords)
	}
}

func TestMetricsFloorsCountsForEmptyText(t *testing.T) {
	engine := NewTextEngine(DefaultLexicon())
	m := engine.Metrics("", 0)

	if m.WordCount != 0 || m.ReadingTimeMinutes != 0 {
		t.Errorf("empty text metrics = %+v", m)
	}
	if m.Content.SentenceCount != 1 || m.Content.ParagraphCount != 1 {
		t.Errorf("counts must be floored at 1, got %d / %d", m.Content.SentenceCount, m.Content.ParagraphCount)
	}
	if m.Content.AverageSentenceLength != 0 || m.Content.AverageParagraphLength != 0 {
		t.Errorf("averages must be finite zero, got %+v", m.Content)
	}
}
